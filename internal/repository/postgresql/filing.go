package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/domain/filing"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type obligationRepository struct {
	db *database.DB
}

func NewObligationRepository(db *database.DB) filing.ObligationRepository {
	return &obligationRepository{db: db}
}

const obligationColumns = `id, year, month, term, category, due_date, status, paid_amount, created_at, updated_at`

const obligationOrder = ` ORDER BY due_date, category, term`

func (r *obligationRepository) ListByYear(ctx context.Context, year int) ([]filing.Obligation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + obligationColumns + ` FROM filing_obligations WHERE year = $1` + obligationOrder

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list filing obligations: %w", err)
	}
	return collectObligations(rows)
}

// InsertMissing inserts the whole batch in one transaction. Rows that hit
// uk_filing_obligation are skipped, so a concurrent generation keeps the
// first writer's rows.
func (r *obligationRepository) InsertMissing(ctx context.Context, obligations []filing.Obligation) (int, error) {
	query := `
		INSERT INTO filing_obligations (id, year, month, term, category, due_date, status, paid_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT ON CONSTRAINT uk_filing_obligation DO NOTHING
	`

	inserted := 0
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)
		for _, o := range obligations {
			tag, err := q.Exec(ctx, query,
				o.ID, o.Year, o.Month, o.Term, string(o.Category), o.DueDate, string(o.Status), o.PaidAmount,
			)
			if err != nil {
				return fmt.Errorf("failed to insert %s obligation: %w", o.Category, err)
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *obligationRepository) GetByID(ctx context.Context, id string) (filing.Obligation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + obligationColumns + ` FROM filing_obligations WHERE id = $1`

	o, err := scanObligation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return filing.Obligation{}, filing.ErrObligationNotFound
		}
		return filing.Obligation{}, fmt.Errorf("failed to get filing obligation: %w", err)
	}
	return o, nil
}

func (r *obligationRepository) UpdateStatus(ctx context.Context, o filing.Obligation, from filing.Status) (filing.Obligation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE filing_obligations
		SET status = $2, paid_amount = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4
		RETURNING ` + obligationColumns

	updated, err := scanObligation(q.QueryRow(ctx, query, o.ID, string(o.Status), o.PaidAmount, string(from)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either gone or moved on since it was read.
			current, getErr := r.GetByID(ctx, o.ID)
			if getErr != nil {
				return filing.Obligation{}, getErr
			}
			return filing.Obligation{}, &filing.TransitionError{From: current.Status, To: o.Status}
		}
		return filing.Obligation{}, fmt.Errorf("failed to update filing obligation: %w", err)
	}
	return updated, nil
}

func (r *obligationRepository) ListDueBetween(ctx context.Context, from, to time.Time, statuses []filing.Status) ([]filing.Obligation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + obligationColumns + ` FROM filing_obligations WHERE due_date BETWEEN $1 AND $2`
	args := []interface{}{from, to}
	if len(statuses) > 0 {
		names := make([]string, len(statuses))
		for i, s := range statuses {
			names[i] = string(s)
		}
		query += ` AND status = ANY($3)`
		args = append(args, names)
	}
	query += obligationOrder

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming obligations: %w", err)
	}
	return collectObligations(rows)
}

func collectObligations(rows pgx.Rows) ([]filing.Obligation, error) {
	defer rows.Close()

	var obligations []filing.Obligation
	for rows.Next() {
		o, err := scanObligation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan filing obligation: %w", err)
		}
		obligations = append(obligations, o)
	}
	return obligations, rows.Err()
}

func scanObligation(row pgx.Row) (filing.Obligation, error) {
	var (
		o        filing.Obligation
		month    *int16
		term     int16
		category string
		status   string
	)
	err := row.Scan(
		&o.ID, &o.Year, &month, &term, &category, &o.DueDate, &status, &o.PaidAmount,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return filing.Obligation{}, err
	}
	if month != nil {
		m := int(*month)
		o.Month = &m
	}
	o.Term = int(term)
	o.Category = filing.Category(category)
	o.Status = filing.Status(status)
	return o, nil
}
