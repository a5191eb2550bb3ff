package filing

import (
	"context"
	"io"
)

type FilingService interface {
	EnsureSchedule(ctx context.Context, year int) (ScheduleResponse, error)
	GetSchedule(ctx context.Context, year int) (ScheduleResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (ObligationResponse, error)
	ListUpcoming(ctx context.Context, filter UpcomingFilter) ([]ObligationResponse, error)
	ExportXLSX(ctx context.Context, year int, w io.Writer) error
}

// Locker serializes schedule generation per key across processes.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(context.Context) error, err error)
}
