package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/brightmind-academy/payroll-engine/internal/domain/payroll"
)

type PaySlipRepository struct {
	mu    sync.RWMutex
	slips map[string]payroll.PaySlip
}

func NewPaySlipRepository() *PaySlipRepository {
	return &PaySlipRepository{slips: make(map[string]payroll.PaySlip)}
}

func (r *PaySlipRepository) Create(ctx context.Context, slip payroll.PaySlip) (payroll.PaySlip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slips[slip.ID]; ok {
		return payroll.PaySlip{}, fmt.Errorf("pay slip %s already exists", slip.ID)
	}
	r.slips[slip.ID] = slip
	return slip, nil
}

func (r *PaySlipRepository) GetByID(ctx context.Context, id string) (payroll.PaySlip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.slips[id]
	if !ok {
		return payroll.PaySlip{}, payroll.ErrPaySlipNotFound
	}
	return s, nil
}

// List orders newest first, like the PostgreSQL repository.
func (r *PaySlipRepository) List(ctx context.Context, filter payroll.PaySlipFilter) ([]payroll.PaySlip, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []payroll.PaySlip
	for _, s := range r.slips {
		if filter.StaffID != nil && s.StaffID != *filter.StaffID {
			continue
		}
		if filter.Year != nil && s.Year != *filter.Year {
			continue
		}
		if filter.Month != nil && s.Month != *filter.Month {
			continue
		}
		matched = append(matched, s)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].IssuedAt.Equal(matched[j].IssuedAt) {
			return matched[i].IssuedAt.After(matched[j].IssuedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	filter.Normalize()
	start := min(filter.Offset(), len(matched))
	end := min(start+filter.Limit, len(matched))
	return matched[start:end], total, nil
}
