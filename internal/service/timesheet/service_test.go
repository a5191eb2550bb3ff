package timesheet

import (
	"context"
	"testing"

	"github.com/brightmind-academy/payroll-engine/internal/domain/staff"
	"github.com/brightmind-academy/payroll-engine/internal/domain/timesheet"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/validator"
	"github.com/brightmind-academy/payroll-engine/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, members ...staff.StaffMember) *TimesheetServiceImpl {
	t.Helper()
	staffRepo := memory.NewStaffRepository()
	for _, m := range members {
		if m.Status == "" {
			m.Status = staff.StatusActive
		}
		_, err := staffRepo.Create(context.Background(), m)
		require.NoError(t, err)
	}
	return NewTimesheetService(memory.NewShiftRepository(), staffRepo)
}

func TestService_LogShift(t *testing.T) {
	svc := newTestService(t, staff.StaffMember{ID: "kim", Classification: staff.HourlyPartTime, BaseAmount: 12000})
	ctx := context.Background()

	resp, err := svc.LogShift(ctx, timesheet.LogShiftRequest{
		StaffID: "kim", Date: "2026-03-02", StartTime: "09:00", EndTime: "18:00", BreakMinutes: 60,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 480, resp.WorkedMinutes)
	assert.Equal(t, "regular", resp.Category)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Nil(t, resp.SupersedesID)
}

func TestService_LogShiftRejects(t *testing.T) {
	svc := newTestService(t,
		staff.StaffMember{ID: "kim", Classification: staff.HourlyPartTime},
		staff.StaffMember{ID: "old", Classification: staff.HourlyPartTime, Status: staff.StatusInactive},
	)
	ctx := context.Background()

	_, err := svc.LogShift(ctx, timesheet.LogShiftRequest{StaffID: "kim", Date: "2026-03-02", StartTime: "18:00", EndTime: "09:00"})
	assert.ErrorIs(t, err, timesheet.ErrInvalidShift)

	_, err = svc.LogShift(ctx, timesheet.LogShiftRequest{StaffID: "kim", Date: "2026-03-02", StartTime: "9:00", EndTime: "18:00"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "start_time")

	_, err = svc.LogShift(ctx, timesheet.LogShiftRequest{StaffID: "nobody", Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00"})
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)

	_, err = svc.LogShift(ctx, timesheet.LogShiftRequest{StaffID: "old", Date: "2026-03-02", StartTime: "09:00", EndTime: "10:00"})
	assert.ErrorIs(t, err, staff.ErrStaffInactive)
}

func TestService_CorrectShift(t *testing.T) {
	svc := newTestService(t, staff.StaffMember{ID: "kim", Classification: staff.HourlyPartTime, BaseAmount: 12000})
	ctx := context.Background()

	original, err := svc.LogShift(ctx, timesheet.LogShiftRequest{
		StaffID: "kim", Date: "2026-03-31", StartTime: "09:00", EndTime: "12:00",
	})
	require.NoError(t, err)

	// Moving the shift into April removes it from March entirely.
	corrected, err := svc.CorrectShift(ctx, timesheet.CorrectShiftRequest{
		ShiftID: original.ID, Date: "2026-04-01", StartTime: "09:00", EndTime: "13:00", Note: "wrong day",
	})
	require.NoError(t, err)
	require.NotNil(t, corrected.SupersedesID)
	assert.Equal(t, original.ID, *corrected.SupersedesID)
	assert.Equal(t, "kim", corrected.StaffID)
	assert.Equal(t, 240, corrected.WorkedMinutes)

	march, err := svc.MonthlySummary(ctx, "kim", 2026, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, march.ShiftCount)

	april, err := svc.MonthlySummary(ctx, "kim", 2026, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, april.ShiftCount)
	assert.Equal(t, 240, april.TotalMinutes)

	_, err = svc.CorrectShift(ctx, timesheet.CorrectShiftRequest{
		ShiftID: original.ID, Date: "2026-04-01", StartTime: "09:00", EndTime: "12:00", Note: "again",
	})
	assert.ErrorIs(t, err, timesheet.ErrShiftAlreadySuperseded)

	_, err = svc.CorrectShift(ctx, timesheet.CorrectShiftRequest{
		ShiftID: "missing", Date: "2026-04-01", StartTime: "09:00", EndTime: "12:00", Note: "typo",
	})
	assert.ErrorIs(t, err, timesheet.ErrShiftNotFound)

	_, err = svc.CorrectShift(ctx, timesheet.CorrectShiftRequest{
		ShiftID: corrected.ID, Date: "2026-04-01", StartTime: "09:00", EndTime: "12:00", Note: "  ",
	})
	assert.Error(t, err)
}

func TestService_MonthlySummary(t *testing.T) {
	rate := int64(20000)
	svc := newTestService(t, staff.StaffMember{
		ID:                 "lee",
		Classification:     staff.SalariedWithOvertime,
		BaseAmount:         2500000,
		OvertimeHourlyRate: &rate,
	})
	ctx := context.Background()

	requests := []timesheet.LogShiftRequest{
		{StaffID: "lee", Date: "2026-03-02", StartTime: "09:00", EndTime: "18:00", BreakMinutes: 60},
		{StaffID: "lee", Date: "2026-03-02", StartTime: "19:00", EndTime: "20:30", Category: "overtime"},
		{StaffID: "lee", Date: "2026-03-03", StartTime: "16:00", EndTime: "16:45", Category: "consultation"},
		{StaffID: "lee", Date: "2026-02-28", StartTime: "09:00", EndTime: "10:00", Category: "overtime"},
	}
	for _, req := range requests {
		_, err := svc.LogShift(ctx, req)
		require.NoError(t, err)
	}

	summary, err := svc.MonthlySummary(ctx, "lee", 2026, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ShiftCount)
	assert.Equal(t, 480, summary.RegularMinutes)
	assert.Equal(t, 90, summary.OvertimeMinutes)
	assert.Equal(t, 45, summary.ConsultationMinutes)
	assert.Equal(t, 615, summary.TotalMinutes)
	assert.Equal(t, "10.25", summary.TotalHours)
	require.NotNil(t, summary.SuggestedExtraPay)
	assert.Equal(t, int64(30000), *summary.SuggestedExtraPay)

	_, err = svc.MonthlySummary(ctx, "lee", 2026, 13)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "month")

	_, err = svc.MonthlySummary(ctx, "ghost", 2026, 3)
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestService_SummaryWithoutOvertimeRate(t *testing.T) {
	svc := newTestService(t, staff.StaffMember{ID: "park", Classification: staff.SalariedFixed, BaseAmount: 3000000})
	ctx := context.Background()

	_, err := svc.LogShift(ctx, timesheet.LogShiftRequest{
		StaffID: "park", Date: "2026-03-02", StartTime: "19:00", EndTime: "21:00", Category: "overtime",
	})
	require.NoError(t, err)

	summary, err := svc.MonthlySummary(ctx, "park", 2026, 3)
	require.NoError(t, err)
	assert.Equal(t, 120, summary.OvertimeMinutes)
	assert.Nil(t, summary.SuggestedExtraPay)
}
