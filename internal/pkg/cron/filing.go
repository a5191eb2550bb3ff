package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/domain/filing"
)

// reminderWindowDays is how far ahead the reminder job looks for open obligations.
const reminderWindowDays = 14

type FilingJobs struct {
	filingSvc filing.FilingService
	now       func() time.Time
}

func NewFilingJobs(filingSvc filing.FilingService) *FilingJobs {
	return &FilingJobs{
		filingSvc: filingSvc,
		now:       time.Now,
	}
}

func (j *FilingJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("ensure_filing_schedules", interval, j.EnsureSchedules)
	scheduler.AddJob("remind_upcoming_filings", interval, j.RemindUpcoming)
}

// EnsureSchedules makes sure this year's and next year's calendars exist, so
// January deadlines of the next year are visible in December.
func (j *FilingJobs) EnsureSchedules(ctx context.Context) error {
	year := j.now().UTC().Year()

	var errs []error
	for _, y := range []int{year, year + 1} {
		schedule, err := j.filingSvc.EnsureSchedule(ctx, y)
		if err != nil {
			errs = append(errs, fmt.Errorf("ensure filing schedule %d: %w", y, err))
			continue
		}
		slog.Debug("Cron: Filing schedule present", "year", y, "obligations", len(schedule.Obligations))
	}
	return errors.Join(errs...)
}

// RemindUpcoming logs every open obligation due soon.
func (j *FilingJobs) RemindUpcoming(ctx context.Context) error {
	from := j.now().UTC().Format("2006-01-02")
	upcoming, err := j.filingSvc.ListUpcoming(ctx, filing.UpcomingFilter{From: from, Days: reminderWindowDays})
	if err != nil {
		return fmt.Errorf("failed to list upcoming filings: %w", err)
	}

	if len(upcoming) == 0 {
		slog.Info("Cron: No filings due soon", "window_days", reminderWindowDays)
		return nil
	}
	for _, o := range upcoming {
		slog.Warn("Cron: Filing due soon",
			"obligation_id", o.ID,
			"category", o.Category,
			"term", o.Term,
			"due_date", o.DueDate,
			"status", o.Status,
		)
	}
	return nil
}
