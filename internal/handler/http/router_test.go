package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brightmind-academy/payroll-engine/internal/domain/payroll"
	"github.com/brightmind-academy/payroll-engine/internal/handler/http/response"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/jwt"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/lock"
	"github.com/brightmind-academy/payroll-engine/internal/repository/memory"
	filingService "github.com/brightmind-academy/payroll-engine/internal/service/filing"
	payrollService "github.com/brightmind-academy/payroll-engine/internal/service/payroll"
	staffService "github.com/brightmind-academy/payroll-engine/internal/service/staff"
	timesheetService "github.com/brightmind-academy/payroll-engine/internal/service/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	server *httptest.Server
	admin  string
	clerk  string
}

func newTestAPI(t *testing.T) testAPI {
	t.Helper()

	staffRepo := memory.NewStaffRepository()
	shiftRepo := memory.NewShiftRepository()
	timesheetSvc := timesheetService.NewTimesheetService(shiftRepo, staffRepo)

	selector, err := payrollService.NewFormulaSelector(payroll.StandardPolicy())
	require.NoError(t, err)
	payrollSvc := payrollService.NewPayrollService(
		payrollService.NewComposer(selector),
		memory.NewPaySlipRepository(),
		staffRepo,
		timesheetSvc,
		2,
	)

	jwtService := jwt.NewJWTService("router-test-secret", "1h")
	router := NewRouter(RouterConfig{Env: "test", Version: "test"}, jwtService, Handlers{
		Staff:   NewStaffHandler(staffService.NewStaffService(staffRepo)),
		Shift:   NewShiftHandler(timesheetSvc),
		PaySlip: NewPaySlipHandler(payrollSvc),
		Filing:  NewFilingHandler(filingService.NewFilingService(memory.NewObligationRepository(), lock.NewLocal())),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	admin, _, err := jwtService.GenerateAccessToken("op-admin", jwt.RoleAdmin)
	require.NoError(t, err)
	clerk, _, err := jwtService.GenerateAccessToken("op-clerk", jwt.RoleClerk)
	require.NoError(t, err)

	return testAPI{server: server, admin: admin, clerk: clerk}
}

type envelope struct {
	Success bool                  `json:"success"`
	Data    json.RawMessage       `json:"data"`
	Error   *response.ErrorDetail `json:"error"`
	Meta    *response.Meta        `json:"meta"`
}

func (a testAPI) do(t *testing.T, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

func TestRouter_RequiresToken(t *testing.T) {
	api := newTestAPI(t)

	resp, _ := api.do(t, http.MethodGet, "/api/v1/staff", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/v1/staff", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_AdminOnlyRoutes(t *testing.T) {
	api := newTestAPI(t)

	resp, env := api.do(t, http.MethodPost, "/api/v1/staff", api.clerk, map[string]any{
		"name": "Kim", "classification": "freelance", "base_amount": 2500000,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	resp, _ = api.do(t, http.MethodPost, "/api/v1/filings/2026", api.clerk, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_PayrollFlow(t *testing.T) {
	api := newTestAPI(t)

	resp, env := api.do(t, http.MethodPost, "/api/v1/staff", api.admin, map[string]any{
		"name": "Kim", "classification": "freelance", "base_amount": 2500000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var member struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &member))

	resp, env = api.do(t, http.MethodPost, "/api/v1/payslips", api.clerk, map[string]any{
		"staff_id": member.ID, "year": 2026, "month": 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var slip payroll.PaySlipResponse
	require.NoError(t, json.Unmarshal(env.Data, &slip))
	assert.Equal(t, int64(2409250), slip.NetPay)

	resp, env = api.do(t, http.MethodGet, "/api/v1/payslips?year=2026&limit=10", api.clerk, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.TotalItems)
	assert.Equal(t, 1, env.Meta.TotalPages)

	resp, _ = api.do(t, http.MethodGet, "/api/v1/payslips/"+slip.ID, api.clerk, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/v1/payslips/export?year=2026", api.clerk, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "pay-slips.xlsx")

	resp, _ = api.do(t, http.MethodPost, "/api/v1/staff/"+member.ID+"/deactivate", api.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = api.do(t, http.MethodPost, "/api/v1/payslips", api.clerk, map[string]any{
		"staff_id": member.ID, "year": 2026, "month": 4,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestRouter_ShiftErrors(t *testing.T) {
	api := newTestAPI(t)

	resp, env := api.do(t, http.MethodPost, "/api/v1/staff", api.admin, map[string]any{
		"name": "Park", "classification": "hourly_parttime", "base_amount": 12000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var member struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &member))

	resp, env = api.do(t, http.MethodPost, "/api/v1/shifts", api.clerk, map[string]any{
		"staff_id": member.ID, "date": "2026-03-02", "start_time": "9:00", "end_time": "18:00",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, env.Error.Details, "start_time")

	resp, _ = api.do(t, http.MethodPost, "/api/v1/shifts", api.clerk, map[string]any{
		"staff_id": member.ID, "date": "2026-03-02", "start_time": "18:00", "end_time": "09:00",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/v1/staff/"+member.ID+"/timesheet?year=2026", api.clerk, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = api.do(t, http.MethodPost, "/api/v1/shifts/unknown/corrections", api.clerk, map[string]any{
		"date": "2026-03-02", "start_time": "09:00", "end_time": "10:00", "note": "fix",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_FilingFlow(t *testing.T) {
	api := newTestAPI(t)

	resp, env := api.do(t, http.MethodPost, "/api/v1/filings/2026", api.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var schedule struct {
		Obligations []struct {
			ID       string `json:"id"`
			Category string `json:"category"`
			Term     int    `json:"term"`
			DueDate  string `json:"due_date"`
		} `json:"obligations"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &schedule))
	require.Len(t, schedule.Obligations, filingService.ScheduleSize)
	last := schedule.Obligations[len(schedule.Obligations)-1]
	assert.Equal(t, "2027-01-10", last.DueDate)

	id := schedule.Obligations[0].ID
	resp, _ = api.do(t, http.MethodPatch, "/api/v1/filings/obligations/"+id, api.admin, map[string]any{"status": "paid", "paid_amount": 500000})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = api.do(t, http.MethodPatch, "/api/v1/filings/obligations/"+id, api.admin, map[string]any{"status": "filed"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	resp, _ = api.do(t, http.MethodGet, "/api/v1/filings/abc", api.clerk, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/v1/filings/upcoming?from=2026-05-20&days=30", api.clerk, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/v1/filings/2026/export", api.clerk, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "filings-2026.xlsx")
}

func TestRouter_RevokeToken(t *testing.T) {
	api := newTestAPI(t)

	resp, _ := api.do(t, http.MethodGet, "/api/v1/staff", api.clerk, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = api.do(t, http.MethodPost, "/api/v1/tokens/revoke", api.clerk, map[string]any{"token": api.admin})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env := api.do(t, http.MethodPost, "/api/v1/tokens/revoke", api.admin, map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, env.Error.Details, "token")

	resp, _ = api.do(t, http.MethodPost, "/api/v1/tokens/revoke", api.admin, map[string]any{"token": "garbage"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = api.do(t, http.MethodPost, "/api/v1/tokens/revoke", api.admin, map[string]any{"token": api.clerk})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = api.do(t, http.MethodGet, "/api/v1/staff", api.clerk, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	resp, _ = api.do(t, http.MethodGet, "/api/v1/staff", api.admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
