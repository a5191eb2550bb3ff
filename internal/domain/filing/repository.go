package filing

import (
	"context"
	"time"
)

type ObligationRepository interface {
	// ListByYear returns the year's obligations ordered by due date.
	ListByYear(ctx context.Context, year int) ([]Obligation, error)
	// InsertMissing inserts obligations whose key is not yet stored and
	// silently skips the rest. It returns how many rows were inserted.
	InsertMissing(ctx context.Context, obligations []Obligation) (int, error)
	GetByID(ctx context.Context, id string) (Obligation, error)
	// UpdateStatus saves o's status and paid amount only if the stored status
	// is still from; otherwise it fails with ErrInvalidStatusTransition.
	UpdateStatus(ctx context.Context, o Obligation, from Status) (Obligation, error)
	ListDueBetween(ctx context.Context, from, to time.Time, statuses []Status) ([]Obligation, error)
}
