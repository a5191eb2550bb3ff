package payroll

import (
	"fmt"

	"github.com/brightmind-academy/payroll-engine/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// ComputeAllowance converts a usage quantity (head count or hours) into the
// member's allowance. Ties round half away from zero on both signs, so
// -0.5 persons × 5 is -3, not -2. Quantity is trusted as given.
func ComputeAllowance(member staff.StaffMember, quantity decimal.Decimal) (int64, string, error) {
	policy := member.Allowance
	if err := policy.Validate(); err != nil {
		return 0, "", err
	}

	var unit string
	switch policy.Kind {
	case staff.AllowancePerHead:
		unit = "persons"
	case staff.AllowancePerHour:
		unit = "hours"
	default:
		return 0, "", nil
	}

	amount := quantity.Mul(policy.Rate).Round(0).IntPart()
	detail := fmt.Sprintf("%s %s × %s", quantity.String(), unit, policy.Rate.String())
	return amount, detail, nil
}
