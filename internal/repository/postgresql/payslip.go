package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/brightmind-academy/payroll-engine/internal/domain/payroll"
	"github.com/brightmind-academy/payroll-engine/internal/domain/staff"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type paySlipRepository struct {
	db *database.DB
}

func NewPaySlipRepository(db *database.DB) payroll.PaySlipRepository {
	return &paySlipRepository{db: db}
}

const paySlipColumns = `ps.id, ps.staff_id, ps.classification, ps.year, ps.month,
	ps.base_pay, ps.extra_pay, ps.allowance_amount, ps.allowance_detail, ps.gross_pay,
	ps.insurance, ps.withholding, ps.local_tax, ps.net_pay, ps.bracket, ps.policy_version,
	ps.issued_at, sm.name`

func (r *paySlipRepository) Create(ctx context.Context, s payroll.PaySlip) (payroll.PaySlip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO pay_slips (id, staff_id, classification, year, month,
				base_pay, extra_pay, allowance_amount, allowance_detail, gross_pay,
				insurance, withholding, local_tax, net_pay, bracket, policy_version, issued_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
			RETURNING *
		)
		SELECT ` + paySlipColumns + `
		FROM inserted ps
		JOIN staff_members sm ON sm.id = ps.staff_id
	`

	created, err := scanPaySlip(q.QueryRow(ctx, query,
		s.ID, s.StaffID, s.Classification.String(), s.Year, s.Month,
		s.BasePay, s.ExtraPay, s.AllowanceAmount, s.AllowanceDetail, s.GrossPay,
		s.Insurance, s.Withholding, s.LocalTax, s.NetPay, string(s.Bracket), s.PolicyVersion, s.IssuedAt,
	))
	if err != nil {
		return payroll.PaySlip{}, fmt.Errorf("failed to create pay slip: %w", err)
	}
	return created, nil
}

func (r *paySlipRepository) GetByID(ctx context.Context, id string) (payroll.PaySlip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + paySlipColumns + `
		FROM pay_slips ps
		JOIN staff_members sm ON sm.id = ps.staff_id
		WHERE ps.id = $1
	`

	s, err := scanPaySlip(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PaySlip{}, payroll.ErrPaySlipNotFound
		}
		return payroll.PaySlip{}, fmt.Errorf("failed to get pay slip: %w", err)
	}
	return s, nil
}

func (r *paySlipRepository) List(ctx context.Context, filter payroll.PaySlipFilter) ([]payroll.PaySlip, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM pay_slips ps
		JOIN staff_members sm ON sm.id = ps.staff_id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.StaffID != nil {
		baseQuery += fmt.Sprintf(" AND ps.staff_id = $%d", argIdx)
		args = append(args, *filter.StaffID)
		argIdx++
	}
	if filter.Year != nil {
		baseQuery += fmt.Sprintf(" AND ps.year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Month != nil {
		baseQuery += fmt.Sprintf(" AND ps.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count pay slips: %w", err)
	}

	filter.Normalize()
	selectQuery := fmt.Sprintf(`
		SELECT %s
		%s
		ORDER BY ps.issued_at DESC, ps.id DESC
		LIMIT $%d OFFSET $%d
	`, paySlipColumns, baseQuery, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pay slips: %w", err)
	}
	defer rows.Close()

	var slips []payroll.PaySlip
	for rows.Next() {
		s, err := scanPaySlip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan pay slip: %w", err)
		}
		slips = append(slips, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return slips, totalCount, nil
}

func scanPaySlip(row pgx.Row) (payroll.PaySlip, error) {
	var (
		s              payroll.PaySlip
		classification string
		bracket        string
		staffName      string
	)
	err := row.Scan(
		&s.ID, &s.StaffID, &classification, &s.Year, &s.Month,
		&s.BasePay, &s.ExtraPay, &s.AllowanceAmount, &s.AllowanceDetail, &s.GrossPay,
		&s.Insurance, &s.Withholding, &s.LocalTax, &s.NetPay, &bracket, &s.PolicyVersion,
		&s.IssuedAt, &staffName,
	)
	if err != nil {
		return payroll.PaySlip{}, err
	}

	s.Classification, err = staff.ParseClassification(classification)
	if err != nil {
		return payroll.PaySlip{}, err
	}
	s.Bracket = payroll.Bracket(bracket)
	s.StaffName = &staffName
	return s, nil
}
