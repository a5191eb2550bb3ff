package filing

import (
	"errors"
	"fmt"
)

var (
	ErrObligationNotFound      = errors.New("filing obligation not found")
	ErrInvalidStatus           = errors.New("invalid filing status")
	ErrInvalidStatusTransition = errors.New("invalid filing status transition")
	ErrPaidAmountNotAllowed    = errors.New("paid amount can only be recorded with status paid")
	ErrNegativePaidAmount      = errors.New("paid amount must be non-negative")
	ErrInvalidYear             = errors.New("invalid filing year")
	ErrScheduleIncomplete      = errors.New("filing schedule incomplete after generation")
)

type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move filing obligation from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}
