package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/domain/filing"
	"github.com/brightmind-academy/payroll-engine/internal/domain/staff"
	"github.com/brightmind-academy/payroll-engine/internal/domain/timesheet"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/lock"
	"github.com/brightmind-academy/payroll-engine/internal/repository/postgresql"
	filingsvc "github.com/brightmind-academy/payroll-engine/internal/service/filing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	ctx := context.Background()

	setup, ok, err := NewTestDatabase(ctx)
	if !ok {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, err)
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)
	return setup
}

func newID(t *testing.T) string {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id.String()
}

func TestStaffRepository_RoundTrip(t *testing.T) {
	setup := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewStaffRepository(setup.DB)

	member := staff.StaffMember{
		ID:             newID(t),
		Name:           "Park Jiwoo",
		Classification: staff.HourlyPartTime,
		BaseAmount:     12000,
		Allowance:      staff.PerHourAllowance(decimal.NewFromInt(3000)),
		Status:         staff.StatusActive,
	}
	created, err := repo.Create(ctx, member)
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, staff.HourlyPartTime, got.Classification)
	assert.True(t, decimal.NewFromInt(3000).Equal(got.Allowance.Rate))

	_, err = repo.GetByID(ctx, newID(t))
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestShiftRepository_SupersedeOnce(t *testing.T) {
	setup := setupTestDB(t)
	ctx := context.Background()
	staffRepo := postgresql.NewStaffRepository(setup.DB)
	shiftRepo := postgresql.NewShiftRepository(setup.DB)

	member, err := staffRepo.Create(ctx, staff.StaffMember{
		ID: newID(t), Name: "Han Seo", Classification: staff.SalariedFixed,
		BaseAmount: 3000000, Allowance: staff.NoAllowance(), Status: staff.StatusActive,
	})
	require.NoError(t, err)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	original, err := shiftRepo.Create(ctx, timesheet.WorkShift{
		ID: newID(t), StaffID: member.ID, Date: day, Start: 9 * 60, End: 18 * 60,
		BreakMinutes: 60, Category: timesheet.CategoryRegular,
	})
	require.NoError(t, err)

	correction := timesheet.WorkShift{
		ID: newID(t), StaffID: member.ID, Date: day, Start: 9 * 60, End: 17 * 60,
		BreakMinutes: 60, Category: timesheet.CategoryRegular, SupersedesID: &original.ID,
	}
	_, err = shiftRepo.Create(ctx, correction)
	require.NoError(t, err)

	second := correction
	second.ID = newID(t)
	_, err = shiftRepo.Create(ctx, second)
	assert.ErrorIs(t, err, timesheet.ErrShiftAlreadySuperseded)

	effective, err := shiftRepo.ListEffective(ctx, member.ID, day, day)
	require.NoError(t, err)
	require.Len(t, effective, 1)
	assert.Equal(t, correction.ID, effective[0].ID)
}

func TestFilingService_ConcurrentEnsureSchedule(t *testing.T) {
	setup := setupTestDB(t)
	ctx := context.Background()

	// Separate lockers per caller simulate separate API instances; only the
	// unique key keeps the schedule from duplicating.
	var wg sync.WaitGroup
	errs := make([]error, 6)
	for i := range errs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			svc := filingsvc.NewFilingService(postgresql.NewObligationRepository(setup.DB), lock.NewLocal())
			_, errs[i] = svc.EnsureSchedule(ctx, 2026)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	obligations, err := postgresql.NewObligationRepository(setup.DB).ListByYear(ctx, 2026)
	require.NoError(t, err)
	assert.Len(t, obligations, filingsvc.ScheduleSize)

	seen := make(map[filing.Key]bool)
	for _, o := range obligations {
		assert.False(t, seen[o.Key()], "duplicate %v", o.Key())
		seen[o.Key()] = true
	}
}
