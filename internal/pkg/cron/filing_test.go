package cron

import (
	"context"
	"testing"
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/pkg/lock"
	"github.com/brightmind-academy/payroll-engine/internal/repository/memory"
	filingsvc "github.com/brightmind-academy/payroll-engine/internal/service/filing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilingJobs_RunOnce(t *testing.T) {
	repo := memory.NewObligationRepository()
	jobs := NewFilingJobs(filingsvc.NewFilingService(repo, lock.NewLocal()))
	jobs.now = func() time.Time { return time.Date(2026, time.December, 28, 9, 0, 0, 0, time.UTC) }

	scheduler := NewScheduler(context.Background())
	jobs.RegisterJobs(scheduler, time.Hour)
	assert.Equal(t, []string{"ensure_filing_schedules", "remind_upcoming_filings"}, scheduler.Jobs())

	require.NoError(t, scheduler.RunOnce(context.Background()))

	for _, year := range []int{2026, 2027} {
		stored, err := repo.ListByYear(context.Background(), year)
		require.NoError(t, err)
		assert.Len(t, stored, filingsvc.ScheduleSize, "year %d", year)
	}

	// A second run finds everything in place.
	require.NoError(t, scheduler.RunOnce(context.Background()))
	stored, err := repo.ListByYear(context.Background(), 2027)
	require.NoError(t, err)
	assert.Len(t, stored, filingsvc.ScheduleSize)
}

func TestFilingJobs_EnsureSchedulesReportsErrors(t *testing.T) {
	jobs := NewFilingJobs(filingsvc.NewFilingService(memory.NewObligationRepository(), lock.NewLocal()))
	jobs.now = func() time.Time { return time.Date(2100, time.March, 1, 0, 0, 0, 0, time.UTC) }

	// 2100 is generated, 2101 is out of range.
	err := jobs.EnsureSchedules(context.Background())
	assert.ErrorContains(t, err, "2101")
}

func TestScheduler_StartStop(t *testing.T) {
	scheduler := NewScheduler(context.Background())
	ran := make(chan struct{}, 1)
	scheduler.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	scheduler.Start()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	scheduler.Stop()
}
