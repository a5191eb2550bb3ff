package memory

import (
	"context"
	"sync"
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/domain/filing"
)

type ObligationRepository struct {
	mu    sync.RWMutex
	byID  map[string]filing.Obligation
	byKey map[filing.Key]string
}

func NewObligationRepository() *ObligationRepository {
	return &ObligationRepository{
		byID:  make(map[string]filing.Obligation),
		byKey: make(map[filing.Key]string),
	}
}

func (r *ObligationRepository) ListByYear(ctx context.Context, year int) ([]filing.Obligation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []filing.Obligation
	for _, o := range r.byID {
		if o.Year == year {
			out = append(out, o)
		}
	}
	filing.SortObligations(out)
	return out, nil
}

func (r *ObligationRepository) InsertMissing(ctx context.Context, obligations []filing.Obligation) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	inserted := 0
	for _, o := range obligations {
		if _, exists := r.byKey[o.Key()]; exists {
			continue
		}
		o.CreatedAt, o.UpdatedAt = now, now
		r.byID[o.ID] = o
		r.byKey[o.Key()] = o.ID
		inserted++
	}
	return inserted, nil
}

func (r *ObligationRepository) GetByID(ctx context.Context, id string) (filing.Obligation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return filing.Obligation{}, filing.ErrObligationNotFound
	}
	return o, nil
}

func (r *ObligationRepository) UpdateStatus(ctx context.Context, o filing.Obligation, from filing.Status) (filing.Obligation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[o.ID]
	if !ok {
		return filing.Obligation{}, filing.ErrObligationNotFound
	}
	if current.Status != from {
		return filing.Obligation{}, &filing.TransitionError{From: current.Status, To: o.Status}
	}
	current.Status = o.Status
	current.PaidAmount = o.PaidAmount
	current.UpdatedAt = time.Now().UTC()
	r.byID[o.ID] = current
	return current, nil
}

func (r *ObligationRepository) ListDueBetween(ctx context.Context, from, to time.Time, statuses []filing.Status) ([]filing.Obligation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	allowed := make(map[filing.Status]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}

	var out []filing.Obligation
	for _, o := range r.byID {
		if o.DueDate.Before(from) || o.DueDate.After(to) {
			continue
		}
		if len(allowed) > 0 && !allowed[o.Status] {
			continue
		}
		out = append(out, o)
	}
	filing.SortObligations(out)
	return out, nil
}
