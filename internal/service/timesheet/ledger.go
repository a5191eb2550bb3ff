package timesheet

import "github.com/brightmind-academy/payroll-engine/internal/domain/timesheet"

// WorkedMinutes returns (end - start) - break for a same-day shift.
// Shifts that end at or before their start, or whose break is negative or
// not shorter than the span, are rejected with a *timesheet.ShiftError.
func WorkedMinutes(shift timesheet.WorkShift) (int, error) {
	fail := func(reason string) (int, error) {
		return 0, &timesheet.ShiftError{
			Start:        shift.Start,
			End:          shift.End,
			BreakMinutes: shift.BreakMinutes,
			Reason:       reason,
		}
	}

	if !shift.Start.Valid() || !shift.End.Valid() {
		return fail("time of day out of range")
	}
	span := shift.Span()
	if span <= 0 {
		return fail("end must be after start on the same day")
	}
	if shift.BreakMinutes < 0 {
		return fail("break must not be negative")
	}
	if shift.BreakMinutes >= span {
		return fail("break must be shorter than the shift")
	}
	return span - shift.BreakMinutes, nil
}
