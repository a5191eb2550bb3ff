package payroll

import (
	"fmt"

	"github.com/brightmind-academy/payroll-engine/internal/domain/payroll"
	"github.com/brightmind-academy/payroll-engine/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// FormulaSelector picks the deduction formula for an employment
// classification. The policy table is fixed at construction.
type FormulaSelector struct {
	policy        payroll.PolicyTable
	insuranceRate decimal.Decimal
}

func NewFormulaSelector(policy payroll.PolicyTable) (*FormulaSelector, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &FormulaSelector{
		policy:        policy,
		insuranceRate: policy.InsuranceRate(),
	}, nil
}

func (f *FormulaSelector) Policy() payroll.PolicyTable {
	return f.policy
}

// Deductions computes insurance, withholding and local tax. Every amount
// is floored as soon as it is produced.
func (f *FormulaSelector) Deductions(c staff.Classification, basePay, extraPay, gross int64) (payroll.Deductions, error) {
	var d payroll.Deductions

	switch c {
	case staff.Freelance:
		d.Taxable = gross
		d.Withholding = f.flat(gross)
		d.Bracket = payroll.BracketFlat

	case staff.SalariedFixed:
		d.Insurance = f.insurance(gross)
		d.Taxable = f.salariedTaxable(gross, d.Insurance)
		d.Withholding, d.Bracket = f.bracketed(d.Taxable)

	case staff.SalariedWithOvertime:
		d.Insurance = f.insurance(basePay)
		d.Taxable = f.salariedTaxable(basePay, d.Insurance)
		var base int64
		base, d.Bracket = f.bracketed(d.Taxable)
		d.OvertimeWithholding = f.flat(extraPay)
		d.Withholding = base + d.OvertimeWithholding

	case staff.HourlyPartTime:
		d.Taxable = max(0, gross-f.policy.PartTimeExemption)
		d.Withholding = f.flat(d.Taxable)
		d.Bracket = payroll.BracketFlat
		if d.Taxable == 0 {
			d.Bracket = payroll.BracketExempt
		}

	default:
		return payroll.Deductions{}, fmt.Errorf("%w: %s", payroll.ErrUnclassifiedEmployment, c)
	}

	d.LocalTax = floorMul(d.Withholding, f.policy.LocalTaxRatio)
	return d, nil
}

func (f *FormulaSelector) insurance(amount int64) int64 {
	return floorMul(amount, f.insuranceRate)
}

func (f *FormulaSelector) salariedTaxable(amount, insurance int64) int64 {
	return max(0, amount-insurance-f.policy.SalariedDeduction)
}

func (f *FormulaSelector) flat(amount int64) int64 {
	return floorMul(amount, f.policy.FlatRate)
}

// bracketed applies the progressive rule; taxable at the edge is high bracket.
func (f *FormulaSelector) bracketed(taxable int64) (int64, payroll.Bracket) {
	if taxable < f.policy.BracketEdge {
		return floorMul(taxable, f.policy.LowBracketRate), payroll.BracketLow
	}
	w := decimal.NewFromInt(taxable).
		Mul(f.policy.HighBracketRate).
		Sub(decimal.NewFromInt(f.policy.HighBracketOffset)).
		Floor().
		IntPart()
	return w, payroll.BracketHigh
}

func floorMul(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Floor().IntPart()
}
