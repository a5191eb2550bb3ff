package payroll

import "errors"

var (
	ErrUnclassifiedEmployment    = errors.New("unclassified employment type")
	ErrInvalidPolicyTable        = errors.New("invalid payroll policy table")
	ErrPaySlipNotFound           = errors.New("pay slip not found")
	ErrInvalidPeriod             = errors.New("invalid payroll period")
	ErrNegativePayComponent      = errors.New("pay components must be non-negative")
	ErrAllowanceQuantityRequired = errors.New("allowance quantity is required for per-head allowances")
)
