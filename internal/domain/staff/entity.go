package staff

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Classification is the employment classification that decides which
// deduction formula applies to a staff member's pay.
type Classification int

const (
	ClassificationUnknown Classification = iota
	Freelance
	SalariedFixed
	SalariedWithOvertime
	HourlyPartTime
)

var classificationCodes = map[Classification]string{
	Freelance:            "freelance",
	SalariedFixed:        "salaried_fixed",
	SalariedWithOvertime: "salaried_with_overtime",
	HourlyPartTime:       "hourly_parttime",
}

// Classifications lists every known classification in display order.
func Classifications() []Classification {
	return []Classification{Freelance, SalariedFixed, SalariedWithOvertime, HourlyPartTime}
}

func (c Classification) String() string {
	if code, ok := classificationCodes[c]; ok {
		return code
	}
	return fmt.Sprintf("classification(%d)", int(c))
}

func (c Classification) Valid() bool {
	_, ok := classificationCodes[c]
	return ok
}

func ParseClassification(code string) (Classification, error) {
	for c, known := range classificationCodes {
		if known == code {
			return c, nil
		}
	}
	return ClassificationUnknown, fmt.Errorf("%w: %q", ErrUnknownClassification, code)
}

func (c Classification) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownClassification, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Classification) UnmarshalText(text []byte) error {
	parsed, err := ParseClassification(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// AllowanceKind enum
type AllowanceKind string

const (
	AllowanceNone    AllowanceKind = "none"
	AllowancePerHead AllowanceKind = "per_head"
	AllowancePerHour AllowanceKind = "per_hour"
)

// AllowancePolicy holds the single active allowance model of a staff member.
// Rate is the amount paid per head (per_head) or per hour (per_hour).
type AllowancePolicy struct {
	Kind AllowanceKind
	Rate decimal.Decimal
}

// NoAllowance is the policy of staff without a usage-based allowance.
func NoAllowance() AllowancePolicy {
	return AllowancePolicy{Kind: AllowanceNone}
}

func PerHeadAllowance(rate decimal.Decimal) AllowancePolicy {
	return AllowancePolicy{Kind: AllowancePerHead, Rate: rate}
}

func PerHourAllowance(rate decimal.Decimal) AllowancePolicy {
	return AllowancePolicy{Kind: AllowancePerHour, Rate: rate}
}

// Validate checks that a per_head or per_hour policy carries a positive rate.
func (p AllowancePolicy) Validate() error {
	switch p.Kind {
	case AllowanceNone, "":
		return nil
	case AllowancePerHead, AllowancePerHour:
		if !p.Rate.IsPositive() {
			return &AllowancePolicyError{Kind: p.Kind, Rate: p.Rate}
		}
		return nil
	default:
		return &AllowancePolicyError{Kind: p.Kind, Rate: p.Rate}
	}
}

// Status enum
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// StaffMember - academy staff with their compensation policy.
// BaseAmount is a monthly salary or an hourly rate depending on Classification.
type StaffMember struct {
	ID                 string
	Name               string
	Classification     Classification
	BaseAmount         int64
	OvertimeHourlyRate *int64 // salaried_with_overtime only
	Allowance          AllowancePolicy
	Status             Status
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (m StaffMember) IsActive() bool {
	return m.Status == StatusActive
}

// Check verifies the compensation invariants of m.
func (m StaffMember) Check() error {
	if !m.Classification.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownClassification, int(m.Classification))
	}
	if m.BaseAmount < 0 || (m.OvertimeHourlyRate != nil && *m.OvertimeHourlyRate < 0) {
		return ErrNegativeCompensation
	}
	if m.OvertimeHourlyRate != nil && m.Classification != SalariedWithOvertime {
		return ErrOvertimeRateNotAllowed
	}
	return m.Allowance.Validate()
}
