package timesheet

import (
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/pkg/validator"
)

type LogShiftRequest struct {
	StaffID      string  `json:"staff_id" validate:"required"`
	Date         string  `json:"date" validate:"required,date"`
	StartTime    string  `json:"start_time" validate:"required,clock"`
	EndTime      string  `json:"end_time" validate:"required,clock"`
	BreakMinutes int     `json:"break_minutes" validate:"gte=0"`
	Category     string  `json:"category,omitempty" validate:"omitempty,oneof=regular overtime consultation"`
	Note         *string `json:"note,omitempty"`
}

func (r *LogShiftRequest) Validate() error {
	return validator.Struct(r).Err()
}

// Shift converts the request into an unsaved WorkShift.
func (r *LogShiftRequest) Shift() (WorkShift, error) {
	return buildShift(r.StaffID, r.Date, r.StartTime, r.EndTime, r.BreakMinutes, r.Category, r.Note)
}

// CorrectShiftRequest replaces a logged shift with corrected values. The note
// explaining the correction is required.
type CorrectShiftRequest struct {
	ShiftID      string `json:"-"`
	Date         string `json:"date" validate:"required,date"`
	StartTime    string `json:"start_time" validate:"required,clock"`
	EndTime      string `json:"end_time" validate:"required,clock"`
	BreakMinutes int    `json:"break_minutes" validate:"gte=0"`
	Category     string `json:"category,omitempty" validate:"omitempty,oneof=regular overtime consultation"`
	Note         string `json:"note" validate:"required"`
}

func (r *CorrectShiftRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Note != "" && validator.IsEmpty(r.Note) {
		errs.Add("note", "is required")
	}
	return errs.Err()
}

func (r *CorrectShiftRequest) Shift(staffID string) (WorkShift, error) {
	note := r.Note
	shift, err := buildShift(staffID, r.Date, r.StartTime, r.EndTime, r.BreakMinutes, r.Category, &note)
	if err != nil {
		return WorkShift{}, err
	}
	supersedes := r.ShiftID
	shift.SupersedesID = &supersedes
	return shift, nil
}

func buildShift(staffID, date, start, end string, breakMinutes int, category string, note *string) (WorkShift, error) {
	day, ok := validator.IsValidDate(date)
	if !ok {
		return WorkShift{}, validator.ValidationErrors{{Field: "date", Message: "must be a date in YYYY-MM-DD format"}}
	}
	startClock, err := ParseClock(start)
	if err != nil {
		return WorkShift{}, err
	}
	endClock, err := ParseClock(end)
	if err != nil {
		return WorkShift{}, err
	}
	cat, err := ParseCategory(category)
	if err != nil {
		return WorkShift{}, err
	}
	return WorkShift{
		StaffID:      staffID,
		Date:         day,
		Start:        startClock,
		End:          endClock,
		BreakMinutes: breakMinutes,
		Category:     cat,
		Note:         note,
	}, nil
}

type ShiftResponse struct {
	ID            string  `json:"id"`
	StaffID       string  `json:"staff_id"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	BreakMinutes  int     `json:"break_minutes"`
	WorkedMinutes int     `json:"worked_minutes"`
	Category      string  `json:"category"`
	Note          *string `json:"note,omitempty"`
	SupersedesID  *string `json:"supersedes_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type MonthlySummaryResponse struct {
	StaffID             string `json:"staff_id"`
	Year                int    `json:"year"`
	Month               int    `json:"month"`
	ShiftCount          int    `json:"shift_count"`
	RegularMinutes      int    `json:"regular_minutes"`
	OvertimeMinutes     int    `json:"overtime_minutes"`
	ConsultationMinutes int    `json:"consultation_minutes"`
	TotalMinutes        int    `json:"total_minutes"`
	TotalHours          string `json:"total_hours"`
	SuggestedExtraPay   *int64 `json:"suggested_extra_pay,omitempty"`
}

// MonthRange returns the first and last day of a calendar month.
func MonthRange(year, month int) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}
