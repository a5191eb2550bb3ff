package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/domain/timesheet"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) timesheet.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `id, staff_id, work_date, start_minute, end_minute, break_minutes,
	category, note, supersedes_id, created_at`

func (r *shiftRepository) Create(ctx context.Context, s timesheet.WorkShift) (timesheet.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_shifts (id, staff_id, work_date, start_minute, end_minute, break_minutes,
			category, note, supersedes_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + shiftColumns

	created, err := scanShift(q.QueryRow(ctx, query,
		s.ID, s.StaffID, s.Date, s.Start.Minutes(), s.End.Minutes(), s.BreakMinutes,
		string(s.Category), s.Note, s.SupersedesID,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.ConstraintName {
			case "uk_work_shift_supersedes":
				return timesheet.WorkShift{}, timesheet.ErrShiftAlreadySuperseded
			case "work_shifts_supersedes_id_fkey":
				return timesheet.WorkShift{}, timesheet.ErrShiftNotFound
			case "ck_work_shift_span":
				return timesheet.WorkShift{}, timesheet.ErrInvalidShift
			}
		}
		return timesheet.WorkShift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return created, nil
}

func (r *shiftRepository) GetByID(ctx context.Context, id string) (timesheet.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM work_shifts WHERE id = $1`

	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.WorkShift{}, timesheet.ErrShiftNotFound
		}
		return timesheet.WorkShift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return s, nil
}

func (r *shiftRepository) ListEffective(ctx context.Context, staffID string, from, to time.Time) ([]timesheet.WorkShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM work_shifts s
		WHERE s.staff_id = $1
		  AND s.work_date BETWEEN $2 AND $3
		  AND NOT EXISTS (SELECT 1 FROM work_shifts c WHERE c.supersedes_id = s.id)
		ORDER BY s.work_date, s.start_minute, s.id
	`

	rows, err := q.Query(ctx, query, staffID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []timesheet.WorkShift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

func (r *shiftRepository) IsSuperseded(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM work_shifts WHERE supersedes_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check shift supersession: %w", err)
	}
	return exists, nil
}

func scanShift(row pgx.Row) (timesheet.WorkShift, error) {
	var (
		s          timesheet.WorkShift
		start, end int
		category   string
	)
	err := row.Scan(
		&s.ID, &s.StaffID, &s.Date, &start, &end, &s.BreakMinutes,
		&category, &s.Note, &s.SupersedesID, &s.CreatedAt,
	)
	if err != nil {
		return timesheet.WorkShift{}, err
	}
	s.Start = timesheet.Clock(start)
	s.End = timesheet.Clock(end)
	s.Category = timesheet.Category(category)
	return s, nil
}
