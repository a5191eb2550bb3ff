package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/domain/staff"
	"github.com/brightmind-academy/payroll-engine/internal/domain/timesheet"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TimesheetServiceImpl struct {
	shiftRepo timesheet.ShiftRepository
	staffRepo staff.StaffRepository
}

// NewTimesheetService returns the concrete service; the payroll service also
// uses it to summarize a month's work.
func NewTimesheetService(shiftRepo timesheet.ShiftRepository, staffRepo staff.StaffRepository) *TimesheetServiceImpl {
	return &TimesheetServiceImpl{
		shiftRepo: shiftRepo,
		staffRepo: staffRepo,
	}
}

func (s *TimesheetServiceImpl) LogShift(ctx context.Context, req timesheet.LogShiftRequest) (timesheet.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.ShiftResponse{}, err
	}

	shift, err := req.Shift()
	if err != nil {
		return timesheet.ShiftResponse{}, err
	}
	worked, err := WorkedMinutes(shift)
	if err != nil {
		return timesheet.ShiftResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, shift.StaffID)
	if err != nil {
		return timesheet.ShiftResponse{}, err
	}
	if !member.IsActive() {
		return timesheet.ShiftResponse{}, staff.ErrStaffInactive
	}

	created, err := s.create(ctx, shift)
	if err != nil {
		return timesheet.ShiftResponse{}, err
	}

	slog.Info("Logged shift", "shift_id", created.ID, "staff_id", created.StaffID, "worked_minutes", worked)
	return toShiftResponse(created, worked), nil
}

// CorrectShift records a replacement for an earlier shift. The original row
// is kept; it simply stops counting once superseded.
func (s *TimesheetServiceImpl) CorrectShift(ctx context.Context, req timesheet.CorrectShiftRequest) (timesheet.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.ShiftResponse{}, err
	}

	original, err := s.shiftRepo.GetByID(ctx, req.ShiftID)
	if err != nil {
		return timesheet.ShiftResponse{}, err
	}
	superseded, err := s.shiftRepo.IsSuperseded(ctx, original.ID)
	if err != nil {
		return timesheet.ShiftResponse{}, fmt.Errorf("failed to check shift corrections: %w", err)
	}
	if superseded {
		return timesheet.ShiftResponse{}, timesheet.ErrShiftAlreadySuperseded
	}

	shift, err := req.Shift(original.StaffID)
	if err != nil {
		return timesheet.ShiftResponse{}, err
	}
	worked, err := WorkedMinutes(shift)
	if err != nil {
		return timesheet.ShiftResponse{}, err
	}

	created, err := s.create(ctx, shift)
	if err != nil {
		return timesheet.ShiftResponse{}, err
	}

	slog.Info("Corrected shift", "shift_id", created.ID, "supersedes_id", original.ID, "staff_id", created.StaffID)
	return toShiftResponse(created, worked), nil
}

func (s *TimesheetServiceImpl) create(ctx context.Context, shift timesheet.WorkShift) (timesheet.WorkShift, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return timesheet.WorkShift{}, fmt.Errorf("failed to generate shift id: %w", err)
	}
	shift.ID = id.String()

	created, err := s.shiftRepo.Create(ctx, shift)
	if err != nil {
		if errors.Is(err, timesheet.ErrShiftAlreadySuperseded) {
			return timesheet.WorkShift{}, err
		}
		return timesheet.WorkShift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return created, nil
}

func (s *TimesheetServiceImpl) MonthlySummary(ctx context.Context, staffID string, year, month int) (timesheet.MonthlySummaryResponse, error) {
	var errs validator.ValidationErrors
	if year < 2000 || year > 2100 {
		errs.Add("year", "must be between 2000 and 2100")
	}
	if month < 1 || month > 12 {
		errs.Add("month", "must be between 1 and 12")
	}
	if err := errs.Err(); err != nil {
		return timesheet.MonthlySummaryResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return timesheet.MonthlySummaryResponse{}, err
	}

	summary, err := s.Summarize(ctx, member, year, month)
	if err != nil {
		return timesheet.MonthlySummaryResponse{}, err
	}
	return toSummaryResponse(summary), nil
}

// Summarize totals the member's effective shifts for the month. For
// salaried_with_overtime staff with an overtime rate it also suggests the
// overtime extra pay, floor(overtime minutes * rate / 60).
func (s *TimesheetServiceImpl) Summarize(ctx context.Context, member staff.StaffMember, year, month int) (timesheet.MonthlySummary, error) {
	from, to := timesheet.MonthRange(year, month)
	shifts, err := s.shiftRepo.ListEffective(ctx, member.ID, from, to)
	if err != nil {
		return timesheet.MonthlySummary{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	summary := timesheet.MonthlySummary{StaffID: member.ID, Year: year, Month: month}
	for _, shift := range shifts {
		worked, err := WorkedMinutes(shift)
		if err != nil {
			return timesheet.MonthlySummary{}, fmt.Errorf("stored shift %s: %w", shift.ID, err)
		}
		summary.ShiftCount++
		switch shift.Category {
		case timesheet.CategoryOvertime:
			summary.OvertimeMinutes += worked
		case timesheet.CategoryConsultation:
			summary.ConsultationMinutes += worked
		default:
			summary.RegularMinutes += worked
		}
	}

	if member.Classification == staff.SalariedWithOvertime && member.OvertimeHourlyRate != nil {
		pay := PayForMinutes(summary.OvertimeMinutes, *member.OvertimeHourlyRate)
		summary.SuggestedExtraPay = &pay
	}
	return summary, nil
}

// PayForMinutes is floor(minutes * hourlyRate / 60).
func PayForMinutes(minutes int, hourlyRate int64) int64 {
	return decimal.NewFromInt(int64(minutes)).
		Mul(decimal.NewFromInt(hourlyRate)).
		Div(decimal.NewFromInt(60)).
		Floor().
		IntPart()
}

func toShiftResponse(shift timesheet.WorkShift, worked int) timesheet.ShiftResponse {
	return timesheet.ShiftResponse{
		ID:            shift.ID,
		StaffID:       shift.StaffID,
		Date:          shift.Date.Format("2006-01-02"),
		StartTime:     shift.Start.String(),
		EndTime:       shift.End.String(),
		BreakMinutes:  shift.BreakMinutes,
		WorkedMinutes: worked,
		Category:      string(shift.Category),
		Note:          shift.Note,
		SupersedesID:  shift.SupersedesID,
		CreatedAt:     shift.CreatedAt.Format(time.RFC3339),
	}
}

func toSummaryResponse(s timesheet.MonthlySummary) timesheet.MonthlySummaryResponse {
	return timesheet.MonthlySummaryResponse{
		StaffID:             s.StaffID,
		Year:                s.Year,
		Month:               s.Month,
		ShiftCount:          s.ShiftCount,
		RegularMinutes:      s.RegularMinutes,
		OvertimeMinutes:     s.OvertimeMinutes,
		ConsultationMinutes: s.ConsultationMinutes,
		TotalMinutes:        s.TotalMinutes(),
		TotalHours:          s.TotalHours().StringFixed(2),
		SuggestedExtraPay:   s.SuggestedExtraPay,
	}
}
