package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/brightmind-academy/payroll-engine/internal/domain/staff"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type staffRepository struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, name, classification, base_amount, overtime_hourly_rate,
	allowance_kind, allowance_rate, status, created_at, updated_at`

func (r *staffRepository) Create(ctx context.Context, m staff.StaffMember) (staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO staff_members (id, name, classification, base_amount, overtime_hourly_rate,
			allowance_kind, allowance_rate, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + staffColumns

	created, err := scanStaff(q.QueryRow(ctx, query,
		m.ID, m.Name, m.Classification.String(), m.BaseAmount, m.OvertimeHourlyRate,
		string(m.Allowance.Kind), allowanceRate(m.Allowance), string(m.Status),
	))
	if err != nil {
		return staff.StaffMember{}, fmt.Errorf("failed to create staff member: %w", err)
	}
	return created, nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE id = $1`

	m, err := scanStaff(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.StaffMember{}, staff.ErrStaffNotFound
		}
		return staff.StaffMember{}, fmt.Errorf("failed to get staff member: %w", err)
	}
	return m, nil
}

func (r *staffRepository) List(ctx context.Context, filter staff.StaffFilter) ([]staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff_members WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.ActiveOnly {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(staff.StatusActive))
		argIdx++
	}
	if filter.Classification != nil {
		query += fmt.Sprintf(" AND classification = $%d", argIdx)
		args = append(args, filter.Classification.String())
	}
	query += " ORDER BY created_at, id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff members: %w", err)
	}
	defer rows.Close()

	var members []staff.StaffMember
	for rows.Next() {
		m, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *staffRepository) Update(ctx context.Context, m staff.StaffMember) (staff.StaffMember, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE staff_members SET
			name = $2,
			classification = $3,
			base_amount = $4,
			overtime_hourly_rate = $5,
			allowance_kind = $6,
			allowance_rate = $7,
			status = $8,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + staffColumns

	updated, err := scanStaff(q.QueryRow(ctx, query,
		m.ID, m.Name, m.Classification.String(), m.BaseAmount, m.OvertimeHourlyRate,
		string(m.Allowance.Kind), allowanceRate(m.Allowance), string(m.Status),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.StaffMember{}, staff.ErrStaffNotFound
		}
		return staff.StaffMember{}, fmt.Errorf("failed to update staff member: %w", err)
	}
	return updated, nil
}

func allowanceRate(p staff.AllowancePolicy) decimal.NullDecimal {
	if p.Kind == staff.AllowancePerHead || p.Kind == staff.AllowancePerHour {
		return decimal.NullDecimal{Decimal: p.Rate, Valid: true}
	}
	return decimal.NullDecimal{}
}

func scanStaff(row pgx.Row) (staff.StaffMember, error) {
	var (
		m              staff.StaffMember
		classification string
		kind           string
		rate           decimal.NullDecimal
		status         string
	)
	err := row.Scan(
		&m.ID, &m.Name, &classification, &m.BaseAmount, &m.OvertimeHourlyRate,
		&kind, &rate, &status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return staff.StaffMember{}, err
	}

	m.Classification, err = staff.ParseClassification(classification)
	if err != nil {
		return staff.StaffMember{}, err
	}
	m.Allowance = staff.AllowancePolicy{Kind: staff.AllowanceKind(kind)}
	if rate.Valid {
		m.Allowance.Rate = rate.Decimal
	}
	m.Status = staff.Status(status)
	return m, nil
}
