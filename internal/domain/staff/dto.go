package staff

import (
	"github.com/brightmind-academy/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateStaffRequest struct {
	Name               string           `json:"name" validate:"required,max=100"`
	Classification     string           `json:"classification" validate:"required,oneof=freelance salaried_fixed salaried_with_overtime hourly_parttime"`
	BaseAmount         int64            `json:"base_amount" validate:"gte=0"`
	OvertimeHourlyRate *int64           `json:"overtime_hourly_rate,omitempty" validate:"omitempty,gte=0"`
	AllowanceKind      string           `json:"allowance_kind,omitempty" validate:"omitempty,oneof=none per_head per_hour"`
	AllowanceRate      *decimal.Decimal `json:"allowance_rate,omitempty"`
}

func (r *CreateStaffRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Name != "" && validator.IsEmpty(r.Name) {
		errs.Add("name", "is required")
	}
	if r.OvertimeHourlyRate != nil && r.Classification != SalariedWithOvertime.String() {
		errs.Add("overtime_hourly_rate", "only applies to salaried_with_overtime staff")
	}
	if err := policyFrom(r.AllowanceKind, r.AllowanceRate).Validate(); err != nil {
		errs.Add("allowance_rate", "must be positive for per_head and per_hour allowances")
	}
	return errs.Err()
}

// AllowancePolicy builds the allowance policy described by the request.
func (r *CreateStaffRequest) AllowancePolicy() AllowancePolicy {
	return policyFrom(r.AllowanceKind, r.AllowanceRate)
}

// UpdatePolicyRequest changes compensation policy. Nil fields are left as is.
type UpdatePolicyRequest struct {
	ID                 string           `json:"-"`
	Classification     *string          `json:"classification,omitempty" validate:"omitempty,oneof=freelance salaried_fixed salaried_with_overtime hourly_parttime"`
	BaseAmount         *int64           `json:"base_amount,omitempty" validate:"omitempty,gte=0"`
	OvertimeHourlyRate *int64           `json:"overtime_hourly_rate,omitempty" validate:"omitempty,gte=0"`
	ClearOvertimeRate  bool             `json:"clear_overtime_rate,omitempty"`
	AllowanceKind      *string          `json:"allowance_kind,omitempty" validate:"omitempty,oneof=none per_head per_hour"`
	AllowanceRate      *decimal.Decimal `json:"allowance_rate,omitempty"`
}

func (r *UpdatePolicyRequest) Validate() error {
	errs := validator.Struct(r)
	if r.ClearOvertimeRate && r.OvertimeHourlyRate != nil {
		errs.Add("overtime_hourly_rate", "cannot be set while clear_overtime_rate is true")
	}
	if r.AllowanceRate != nil && r.AllowanceKind == nil {
		errs.Add("allowance_kind", "is required when allowance_rate is set")
	}
	return errs.Err()
}

// Apply merges the request into m and checks the resulting invariants.
func (r *UpdatePolicyRequest) Apply(m StaffMember) (StaffMember, error) {
	if r.Classification != nil {
		c, err := ParseClassification(*r.Classification)
		if err != nil {
			return StaffMember{}, err
		}
		m.Classification = c
	}
	if r.BaseAmount != nil {
		m.BaseAmount = *r.BaseAmount
	}
	if r.ClearOvertimeRate {
		m.OvertimeHourlyRate = nil
	}
	if r.OvertimeHourlyRate != nil {
		rate := *r.OvertimeHourlyRate
		m.OvertimeHourlyRate = &rate
	}
	if r.AllowanceKind != nil {
		m.Allowance = policyFrom(*r.AllowanceKind, r.AllowanceRate)
	}
	if err := m.Check(); err != nil {
		return StaffMember{}, err
	}
	return m, nil
}

func policyFrom(kind string, rate *decimal.Decimal) AllowancePolicy {
	if kind == "" {
		return NoAllowance()
	}
	p := AllowancePolicy{Kind: AllowanceKind(kind)}
	if rate != nil {
		p.Rate = *rate
	}
	return p
}

type StaffFilter struct {
	ActiveOnly     bool
	Classification *Classification
}

type StaffResponse struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Classification     string           `json:"classification"`
	BaseAmount         int64            `json:"base_amount"`
	OvertimeHourlyRate *int64           `json:"overtime_hourly_rate,omitempty"`
	AllowanceKind      string           `json:"allowance_kind"`
	AllowanceRate      *decimal.Decimal `json:"allowance_rate,omitempty"`
	Status             string           `json:"status"`
	CreatedAt          string           `json:"created_at"`
	UpdatedAt          string           `json:"updated_at"`
}
