package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/brightmind-academy/payroll-engine/internal/domain/payroll"
	"github.com/brightmind-academy/payroll-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PaySlipHandler interface {
	Issue(w http.ResponseWriter, r *http.Request)
	IssueBatch(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type paySlipHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPaySlipHandler(payrollService payroll.PayrollService) PaySlipHandler {
	return &paySlipHandlerImpl{payrollService: payrollService}
}

func (h *paySlipHandlerImpl) Issue(w http.ResponseWriter, r *http.Request) {
	var req payroll.IssuePaySlipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Issue(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay slip issued", result)
}

func (h *paySlipHandlerImpl) IssueBatch(w http.ResponseWriter, r *http.Request) {
	var req payroll.BatchIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.IssueBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := fmt.Sprintf("%d pay slips issued, %d failed", len(result.Issued), len(result.Failed))
	response.Created(w, message, result)
}

func (h *paySlipHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *paySlipHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := paySlipFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := 0
	if result.Limit > 0 {
		totalPages = int((result.TotalCount + int64(result.Limit) - 1) / int64(result.Limit))
	}
	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}

func (h *paySlipHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := paySlipFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.payrollService.ExportXLSX(r.Context(), filter, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	writeXLSX(w, "pay-slips.xlsx", &buf)
}

func paySlipFilter(r *http.Request) (payroll.PaySlipFilter, error) {
	var filter payroll.PaySlipFilter
	if staffID := r.URL.Query().Get("staff_id"); staffID != "" {
		filter.StaffID = &staffID
	}
	if year, ok, err := intParam(r, "year"); err != nil {
		return filter, err
	} else if ok {
		filter.Year = &year
	}
	if month, ok, err := intParam(r, "month"); err != nil {
		return filter, err
	} else if ok {
		filter.Month = &month
	}

	page, _, err := intParam(r, "page")
	if err != nil {
		return filter, err
	}
	limit, _, err := intParam(r, "limit")
	if err != nil {
		return filter, err
	}
	filter.Page, filter.Limit = page, limit
	return filter, nil
}
