package filing

import "github.com/brightmind-academy/payroll-engine/internal/pkg/validator"

const (
	MinYear = 2000
	MaxYear = 2100
)

func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return validator.ValidationErrors{{Field: "year", Message: "must be between 2000 and 2100"}}
	}
	return nil
}

type UpdateStatusRequest struct {
	ID         string `json:"-"`
	Status     string `json:"status" validate:"required,oneof=pending filed paid"`
	PaidAmount *int64 `json:"paid_amount,omitempty" validate:"omitempty,gte=0"`
}

func (r *UpdateStatusRequest) Validate() error {
	errs := validator.Struct(r)
	if r.PaidAmount != nil && r.Status != string(StatusPaid) {
		errs.Add("paid_amount", "can only be set when status is paid")
	}
	return errs.Err()
}

type ObligationResponse struct {
	ID         string `json:"id"`
	Year       int    `json:"year"`
	Month      *int   `json:"month,omitempty"`
	Term       int    `json:"term"`
	Category   string `json:"category"`
	DueDate    string `json:"due_date"`
	Status     string `json:"status"`
	PaidAmount *int64 `json:"paid_amount,omitempty"`
}

type ScheduleResponse struct {
	Year        int                  `json:"year"`
	Obligations []ObligationResponse `json:"obligations"`
}

type UpcomingFilter struct {
	From string `json:"from" validate:"omitempty,date"`
	Days int    `json:"days" validate:"gte=0,lte=366"`
}

func (f *UpcomingFilter) Validate() error {
	return validator.Struct(f).Err()
}
