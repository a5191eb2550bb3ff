package http

import (
	"encoding/json"
	"net/http"

	"github.com/brightmind-academy/payroll-engine/internal/domain/timesheet"
	"github.com/brightmind-academy/payroll-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ShiftHandler interface {
	Log(w http.ResponseWriter, r *http.Request)
	Correct(w http.ResponseWriter, r *http.Request)
	MonthlySummary(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewShiftHandler(timesheetService timesheet.TimesheetService) ShiftHandler {
	return &shiftHandlerImpl{timesheetService: timesheetService}
}

func (h *shiftHandlerImpl) Log(w http.ResponseWriter, r *http.Request) {
	var req timesheet.LogShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.LogShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift logged", result)
}

func (h *shiftHandlerImpl) Correct(w http.ResponseWriter, r *http.Request) {
	var req timesheet.CorrectShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ShiftID = chi.URLParam(r, "id")

	result, err := h.timesheetService.CorrectShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift corrected", result)
}

func (h *shiftHandlerImpl) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	year, err := requiredInt(r, "year")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	month, err := requiredInt(r, "month")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.MonthlySummary(r.Context(), chi.URLParam(r, "id"), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
