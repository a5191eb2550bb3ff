package timesheet

import (
	"context"
	"time"
)

// ShiftRepository is append-only: there is no update or delete.
type ShiftRepository interface {
	// Create stores a shift. A second shift superseding the same ID fails
	// with ErrShiftAlreadySuperseded.
	Create(ctx context.Context, shift WorkShift) (WorkShift, error)
	GetByID(ctx context.Context, id string) (WorkShift, error)
	// ListEffective returns the shifts dated within [from, to] that no
	// correction supersedes, ordered by date and start time.
	ListEffective(ctx context.Context, staffID string, from, to time.Time) ([]WorkShift, error)
	IsSuperseded(ctx context.Context, id string) (bool, error)
}
