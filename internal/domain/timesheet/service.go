package timesheet

import "context"

type TimesheetService interface {
	LogShift(ctx context.Context, req LogShiftRequest) (ShiftResponse, error)
	CorrectShift(ctx context.Context, req CorrectShiftRequest) (ShiftResponse, error)
	MonthlySummary(ctx context.Context, staffID string, year, month int) (MonthlySummaryResponse, error)
}
