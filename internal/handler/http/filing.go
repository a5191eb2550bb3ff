package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/brightmind-academy/payroll-engine/internal/domain/filing"
	"github.com/brightmind-academy/payroll-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type FilingHandler interface {
	EnsureSchedule(w http.ResponseWriter, r *http.Request)
	GetSchedule(w http.ResponseWriter, r *http.Request)
	ListUpcoming(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type filingHandlerImpl struct {
	filingService filing.FilingService
}

func NewFilingHandler(filingService filing.FilingService) FilingHandler {
	return &filingHandlerImpl{filingService: filingService}
}

func (h *filingHandlerImpl) EnsureSchedule(w http.ResponseWriter, r *http.Request) {
	year, err := requiredInt(r, "year")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.filingService.EnsureSchedule(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Filing schedule ready", result)
}

func (h *filingHandlerImpl) GetSchedule(w http.ResponseWriter, r *http.Request) {
	year, err := requiredInt(r, "year")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.filingService.GetSchedule(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *filingHandlerImpl) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	days, _, err := intParam(r, "days")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter := filing.UpcomingFilter{From: r.URL.Query().Get("from"), Days: days}

	result, err := h.filingService.ListUpcoming(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *filingHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req filing.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.filingService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Filing status updated", result)
}

func (h *filingHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	year, err := requiredInt(r, "year")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.filingService.ExportXLSX(r.Context(), year, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	writeXLSX(w, fmt.Sprintf("filings-%d.xlsx", year), &buf)
}
