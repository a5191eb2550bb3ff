package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/brightmind-academy/payroll-engine/internal/domain/filing"
	"github.com/brightmind-academy/payroll-engine/internal/domain/payroll"
	"github.com/brightmind-academy/payroll-engine/internal/domain/staff"
	"github.com/brightmind-academy/payroll-engine/internal/domain/timesheet"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/jwt"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Staff domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff member not found")
	case errors.Is(err, staff.ErrStaffInactive):
		Conflict(w, "Staff member is inactive")
	case errors.Is(err, staff.ErrStaffAlreadyInactive):
		Conflict(w, "Staff member already inactive")
	case errors.Is(err, staff.ErrUnknownClassification),
		errors.Is(err, staff.ErrInvalidAllowancePolicy),
		errors.Is(err, staff.ErrOvertimeRateNotAllowed),
		errors.Is(err, staff.ErrNegativeCompensation):
		BadRequest(w, err.Error(), nil)

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, timesheet.ErrShiftAlreadySuperseded):
		Conflict(w, "Shift already corrected")
	case errors.Is(err, timesheet.ErrInvalidShift),
		errors.Is(err, timesheet.ErrInvalidClock),
		errors.Is(err, timesheet.ErrInvalidCategory):
		BadRequest(w, err.Error(), nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPaySlipNotFound):
		NotFound(w, "Pay slip not found")
	case errors.Is(err, payroll.ErrAllowanceQuantityRequired),
		errors.Is(err, payroll.ErrNegativePayComponent),
		errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrUnclassifiedEmployment),
		errors.Is(err, payroll.ErrInvalidPolicyTable):
		slog.Error("Payroll configuration fault", "error", err)
		InternalServerError(w, "Staff payroll configuration is invalid")

	// Filing domain errors
	case errors.Is(err, filing.ErrObligationNotFound):
		NotFound(w, "Filing obligation not found")
	case errors.Is(err, filing.ErrInvalidStatusTransition):
		Conflict(w, err.Error())
	case errors.Is(err, filing.ErrInvalidStatus),
		errors.Is(err, filing.ErrPaidAmountNotAllowed),
		errors.Is(err, filing.ErrNegativePaidAmount),
		errors.Is(err, filing.ErrInvalidYear):
		BadRequest(w, err.Error(), nil)

	// Token errors
	case errors.Is(err, jwt.ErrInvalidToken):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
