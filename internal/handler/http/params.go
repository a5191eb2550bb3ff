package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/brightmind-academy/payroll-engine/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// intParam reads an integer from the URL path or, failing that, the query.
// A missing value yields (0, false, nil).
func intParam(r *http.Request, name string) (int, bool, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		raw = r.URL.Query().Get(name)
	}
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, validator.ValidationErrors{{Field: name, Message: "must be an integer"}}
	}
	return v, true, nil
}

// requiredInt is intParam for parameters that must be present.
func requiredInt(r *http.Request, name string) (int, error) {
	v, ok, err := intParam(r, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, validator.ValidationErrors{{Field: name, Message: "is required"}}
	}
	return v, nil
}

// writeXLSX sends a finished workbook as a download.
func writeXLSX(w http.ResponseWriter, filename string, body *bytes.Buffer) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := body.WriteTo(w); err != nil {
		slog.Warn("Failed to write spreadsheet", "filename", filename, "error", err)
	}
}
