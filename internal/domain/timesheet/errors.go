package timesheet

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidShift           = errors.New("invalid shift")
	ErrInvalidClock           = errors.New("invalid time of day, expected HH:MM")
	ErrInvalidCategory        = errors.New("invalid shift category")
	ErrShiftNotFound          = errors.New("shift not found")
	ErrShiftAlreadySuperseded = errors.New("shift already superseded by a correction")
)

// ShiftError reports why a shift's times were rejected.
type ShiftError struct {
	Start        Clock
	End          Clock
	BreakMinutes int
	Reason       string
}

func (e *ShiftError) Error() string {
	return fmt.Sprintf("invalid shift %s-%s (break %d min): %s", e.Start, e.End, e.BreakMinutes, e.Reason)
}

func (e *ShiftError) Unwrap() error {
	return ErrInvalidShift
}
