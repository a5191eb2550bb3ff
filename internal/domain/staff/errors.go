package staff

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrStaffNotFound          = errors.New("staff member not found")
	ErrStaffInactive          = errors.New("staff member is inactive")
	ErrStaffAlreadyInactive   = errors.New("staff member already inactive")
	ErrUnknownClassification  = errors.New("unknown employment classification")
	ErrInvalidAllowancePolicy = errors.New("invalid allowance policy")
	ErrOvertimeRateNotAllowed = errors.New("overtime rate only applies to salaried_with_overtime staff")
	ErrNegativeCompensation   = errors.New("compensation amounts must be non-negative")
)

// AllowancePolicyError describes a per_head/per_hour policy without a usable rate.
type AllowancePolicyError struct {
	Kind AllowanceKind
	Rate decimal.Decimal
}

func (e *AllowancePolicyError) Error() string {
	return fmt.Sprintf("invalid allowance policy: kind %q requires a positive rate, got %s", e.Kind, e.Rate.String())
}

func (e *AllowancePolicyError) Unwrap() error {
	return ErrInvalidAllowancePolicy
}
