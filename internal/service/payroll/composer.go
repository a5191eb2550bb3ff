package payroll

import (
	"fmt"

	"github.com/brightmind-academy/payroll-engine/internal/domain/payroll"
	"github.com/brightmind-academy/payroll-engine/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// Composer builds pay slips. It is pure: the returned slip has no ID or
// issue time, so identical inputs give identical slips.
type Composer struct {
	selector *FormulaSelector
}

func NewComposer(selector *FormulaSelector) *Composer {
	return &Composer{selector: selector}
}

func (c *Composer) PolicyVersion() string {
	return c.selector.Policy().Version
}

func (c *Composer) Compose(member staff.StaffMember, basePay, extraPay int64, year, month int, allowanceQuantity decimal.Decimal) (payroll.PaySlip, error) {
	if basePay < 0 || extraPay < 0 {
		return payroll.PaySlip{}, payroll.ErrNegativePayComponent
	}
	if month < 1 || month > 12 {
		return payroll.PaySlip{}, fmt.Errorf("%w: month %d", payroll.ErrInvalidPeriod, month)
	}

	allowance, detail, err := ComputeAllowance(member, allowanceQuantity)
	if err != nil {
		return payroll.PaySlip{}, err
	}

	gross := basePay + extraPay + allowance
	d, err := c.selector.Deductions(member.Classification, basePay, extraPay, gross)
	if err != nil {
		return payroll.PaySlip{}, err
	}

	return payroll.PaySlip{
		StaffID:         member.ID,
		Classification:  member.Classification,
		Year:            year,
		Month:           month,
		BasePay:         basePay,
		ExtraPay:        extraPay,
		AllowanceAmount: allowance,
		AllowanceDetail: detail,
		GrossPay:        gross,
		Insurance:       d.Insurance,
		Withholding:     d.Withholding,
		LocalTax:        d.LocalTax,
		NetPay:          gross - d.Total(),
		Bracket:         d.Bracket,
		PolicyVersion:   c.selector.Policy().Version,
	}, nil
}
