package payroll

import (
	"fmt"
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// PolicyTable - statutory rates and thresholds for one policy year.
// Rates change annually; a change is a new table with a new Version.
type PolicyTable struct {
	Version string

	// Employee-side insurance sub-rates. Long-term care is charged as a
	// share of the health rate.
	PensionRate       decimal.Decimal
	HealthRate        decimal.Decimal
	LongTermCareShare decimal.Decimal
	EmploymentRate    decimal.Decimal
	SalariedDeduction int64
	BracketEdge       int64
	LowBracketRate    decimal.Decimal
	HighBracketRate   decimal.Decimal
	HighBracketOffset int64
	FlatRate          decimal.Decimal
	PartTimeExemption int64
	LocalTaxRatio     decimal.Decimal
}

const StandardPolicyVersion = "2024.1"

// StandardPolicy returns the policy table currently in force.
func StandardPolicy() PolicyTable {
	return PolicyTable{
		Version:           StandardPolicyVersion,
		PensionRate:       decimal.RequireFromString("0.045"),
		HealthRate:        decimal.RequireFromString("0.03545"),
		LongTermCareShare: decimal.RequireFromString("0.1295"),
		EmploymentRate:    decimal.RequireFromString("0.009"),
		SalariedDeduction: 150_000,
		BracketEdge:       1_400_000,
		LowBracketRate:    decimal.RequireFromString("0.06"),
		HighBracketRate:   decimal.RequireFromString("0.15"),
		HighBracketOffset: 126_000,
		FlatRate:          decimal.RequireFromString("0.033"),
		PartTimeExemption: 1_690_000,
		LocalTaxRatio:     decimal.RequireFromString("0.10"),
	}
}

// PolicyForVersion looks up a known policy table by version.
func PolicyForVersion(version string) (PolicyTable, error) {
	switch version {
	case StandardPolicyVersion:
		return StandardPolicy(), nil
	default:
		return PolicyTable{}, fmt.Errorf("%w: unknown version %q", ErrInvalidPolicyTable, version)
	}
}

// InsuranceRate is the combined employee-side insurance rate:
// pension + health + health*long-term-care share + employment.
func (p PolicyTable) InsuranceRate() decimal.Decimal {
	return p.PensionRate.
		Add(p.HealthRate).
		Add(p.HealthRate.Mul(p.LongTermCareShare)).
		Add(p.EmploymentRate)
}

func (p PolicyTable) Validate() error {
	if p.Version == "" {
		return ErrInvalidPolicyTable
	}
	for _, r := range []decimal.Decimal{
		p.PensionRate, p.HealthRate, p.LongTermCareShare, p.EmploymentRate,
		p.LowBracketRate, p.HighBracketRate, p.FlatRate, p.LocalTaxRatio,
	} {
		if r.IsNegative() {
			return ErrInvalidPolicyTable
		}
	}
	if p.SalariedDeduction < 0 || p.BracketEdge < 0 || p.HighBracketOffset < 0 || p.PartTimeExemption < 0 {
		return ErrInvalidPolicyTable
	}
	return nil
}

// Bracket identifies which withholding rule produced a slip's withholding.
type Bracket string

const (
	BracketLow    Bracket = "low"
	BracketHigh   Bracket = "high"
	BracketFlat   Bracket = "flat"
	BracketExempt Bracket = "exempt"
)

// Deductions - output of the formula selector for one gross amount.
type Deductions struct {
	Insurance   int64
	Taxable     int64
	Withholding int64
	// OvertimeWithholding is the flat-rate part of Withholding charged on
	// extra pay (salaried_with_overtime only).
	OvertimeWithholding int64
	LocalTax            int64
	Bracket             Bracket
}

// Total is the sum of every amount taken out of gross pay.
func (d Deductions) Total() int64 {
	return d.Insurance + d.Withholding + d.LocalTax
}

// PaySlip - one staff member's pay for one period. Never mutated after issue.
type PaySlip struct {
	ID              string
	StaffID         string
	Classification  staff.Classification
	Year            int
	Month           int
	BasePay         int64
	ExtraPay        int64
	AllowanceAmount int64
	AllowanceDetail string
	GrossPay        int64
	Insurance       int64
	Withholding     int64
	LocalTax        int64
	NetPay          int64
	Bracket         Bracket
	PolicyVersion   string
	IssuedAt        time.Time

	// Joined fields
	StaffName *string
}

// Balanced reports whether net = gross - insurance - withholding - local tax.
func (s PaySlip) Balanced() bool {
	return s.NetPay == s.GrossPay-s.Insurance-s.Withholding-s.LocalTax
}
