package postgresql

import (
	"context"
	"fmt"

	"github.com/brightmind-academy/payroll-engine/internal/pkg/database"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS staff_members (
		id                   UUID PRIMARY KEY,
		name                 VARCHAR(100) NOT NULL,
		classification       VARCHAR(32) NOT NULL
			CHECK (classification IN ('freelance', 'salaried_fixed', 'salaried_with_overtime', 'hourly_parttime')),
		base_amount          BIGINT NOT NULL CHECK (base_amount >= 0),
		overtime_hourly_rate BIGINT CHECK (overtime_hourly_rate >= 0),
		allowance_kind       VARCHAR(16) NOT NULL DEFAULT 'none'
			CHECK (allowance_kind IN ('none', 'per_head', 'per_hour')),
		allowance_rate       NUMERIC(18, 4),
		status               VARCHAR(16) NOT NULL DEFAULT 'active',
		created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT ck_staff_allowance_rate CHECK (allowance_kind = 'none' OR allowance_rate > 0)
	)`,
	`CREATE TABLE IF NOT EXISTS work_shifts (
		id            UUID PRIMARY KEY,
		staff_id      UUID NOT NULL REFERENCES staff_members (id),
		work_date     DATE NOT NULL,
		start_minute  SMALLINT NOT NULL,
		end_minute    SMALLINT NOT NULL,
		break_minutes INT NOT NULL,
		category      VARCHAR(16) NOT NULL,
		note          TEXT,
		supersedes_id UUID REFERENCES work_shifts (id),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT ck_work_shift_span CHECK (end_minute > start_minute AND break_minutes >= 0 AND break_minutes < end_minute - start_minute),
		CONSTRAINT uk_work_shift_supersedes UNIQUE (supersedes_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_shifts_staff_date ON work_shifts (staff_id, work_date)`,
	`CREATE TABLE IF NOT EXISTS pay_slips (
		id               UUID PRIMARY KEY,
		staff_id         UUID NOT NULL REFERENCES staff_members (id),
		classification   VARCHAR(32) NOT NULL,
		year             INT NOT NULL,
		month            SMALLINT NOT NULL CHECK (month BETWEEN 1 AND 12),
		base_pay         BIGINT NOT NULL,
		extra_pay        BIGINT NOT NULL,
		allowance_amount BIGINT NOT NULL,
		allowance_detail TEXT NOT NULL DEFAULT '',
		gross_pay        BIGINT NOT NULL,
		insurance        BIGINT NOT NULL,
		withholding      BIGINT NOT NULL,
		local_tax        BIGINT NOT NULL,
		net_pay          BIGINT NOT NULL,
		bracket          VARCHAR(16) NOT NULL,
		policy_version   VARCHAR(32) NOT NULL,
		issued_at        TIMESTAMPTZ NOT NULL,
		CONSTRAINT ck_pay_slip_balanced CHECK (net_pay = gross_pay - insurance - withholding - local_tax)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pay_slips_period ON pay_slips (year, month)`,
	`CREATE INDEX IF NOT EXISTS idx_pay_slips_staff ON pay_slips (staff_id)`,
	`CREATE TABLE IF NOT EXISTS filing_obligations (
		id          UUID PRIMARY KEY,
		year        INT NOT NULL,
		month       SMALLINT,
		term        SMALLINT NOT NULL,
		category    VARCHAR(32) NOT NULL,
		due_date    DATE NOT NULL,
		status      VARCHAR(16) NOT NULL DEFAULT 'pending',
		paid_amount BIGINT CHECK (paid_amount >= 0),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uk_filing_obligation UNIQUE (year, category, term)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_filing_obligations_due ON filing_obligations (due_date)`,
}

// Migrate creates any missing tables and indexes.
func Migrate(ctx context.Context, db *database.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
