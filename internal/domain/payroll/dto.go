package payroll

import (
	"github.com/brightmind-academy/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// IssuePaySlipRequest issues one slip. Omitted pay components are derived
// from the staff record and the month's logged shifts.
type IssuePaySlipRequest struct {
	StaffID           string           `json:"staff_id" validate:"required"`
	Year              int              `json:"year" validate:"gte=2000,lte=2100"`
	Month             int              `json:"month" validate:"gte=1,lte=12"`
	BasePay           *int64           `json:"base_pay,omitempty" validate:"omitempty,gte=0"`
	ExtraPay          *int64           `json:"extra_pay,omitempty" validate:"omitempty,gte=0"`
	AllowanceQuantity *decimal.Decimal `json:"allowance_quantity,omitempty"`
}

func (r *IssuePaySlipRequest) Validate() error {
	return validator.Struct(r).Err()
}

// BatchIssueRequest issues slips for many staff members in one period.
// An empty StaffIDs means every active staff member.
type BatchIssueRequest struct {
	Year                int                        `json:"year" validate:"gte=2000,lte=2100"`
	Month               int                        `json:"month" validate:"gte=1,lte=12"`
	StaffIDs            []string                   `json:"staff_ids,omitempty"`
	AllowanceQuantities map[string]decimal.Decimal `json:"allowance_quantities,omitempty"`
}

func (r *BatchIssueRequest) Validate() error {
	errs := validator.Struct(r)
	seen := make(map[string]bool, len(r.StaffIDs))
	for _, id := range r.StaffIDs {
		if validator.IsEmpty(id) {
			errs.Add("staff_ids", "must not contain empty IDs")
			break
		}
		if seen[id] {
			errs.Add("staff_ids", "must not contain duplicates")
			break
		}
		seen[id] = true
	}
	return errs.Err()
}

// Item returns the single-slip request for staffID within the batch.
func (r *BatchIssueRequest) Item(staffID string) IssuePaySlipRequest {
	item := IssuePaySlipRequest{StaffID: staffID, Year: r.Year, Month: r.Month}
	if q, ok := r.AllowanceQuantities[staffID]; ok {
		item.AllowanceQuantity = &q
	}
	return item
}

type PaySlipResponse struct {
	ID              string  `json:"id"`
	StaffID         string  `json:"staff_id"`
	StaffName       *string `json:"staff_name,omitempty"`
	Classification  string  `json:"classification"`
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	BasePay         int64   `json:"base_pay"`
	ExtraPay        int64   `json:"extra_pay"`
	AllowanceAmount int64   `json:"allowance_amount"`
	AllowanceDetail string  `json:"allowance_detail,omitempty"`
	GrossPay        int64   `json:"gross_pay"`
	Insurance       int64   `json:"insurance"`
	Withholding     int64   `json:"withholding"`
	LocalTax        int64   `json:"local_tax"`
	NetPay          int64   `json:"net_pay"`
	Bracket         string  `json:"bracket"`
	PolicyVersion   string  `json:"policy_version"`
	IssuedAt        string  `json:"issued_at"`
}

type BatchFailure struct {
	StaffID string `json:"staff_id"`
	Error   string `json:"error"`
}

type BatchIssueResponse struct {
	Issued []PaySlipResponse `json:"issued"`
	Failed []BatchFailure    `json:"failed,omitempty"`
}

type PaySlipFilter struct {
	StaffID *string `json:"staff_id,omitempty"`
	Year    *int    `json:"year,omitempty"`
	Month   *int    `json:"month,omitempty"`
	Page    int     `json:"page"`
	Limit   int     `json:"limit"`
}

// Normalize applies paging defaults.
func (f *PaySlipFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

func (f PaySlipFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type ListPaySlipResponse struct {
	Data       []PaySlipResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
