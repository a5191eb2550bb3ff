package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/domain/timesheet"
)

type ShiftRepository struct {
	mu         sync.RWMutex
	shifts     map[string]timesheet.WorkShift
	supersedes map[string]string // superseded id -> correction id
}

func NewShiftRepository() *ShiftRepository {
	return &ShiftRepository{
		shifts:     make(map[string]timesheet.WorkShift),
		supersedes: make(map[string]string),
	}
}

func (r *ShiftRepository) Create(ctx context.Context, shift timesheet.WorkShift) (timesheet.WorkShift, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shifts[shift.ID]; ok {
		return timesheet.WorkShift{}, fmt.Errorf("shift %s already exists", shift.ID)
	}
	if shift.SupersedesID != nil {
		if _, ok := r.shifts[*shift.SupersedesID]; !ok {
			return timesheet.WorkShift{}, timesheet.ErrShiftNotFound
		}
		if _, taken := r.supersedes[*shift.SupersedesID]; taken {
			return timesheet.WorkShift{}, timesheet.ErrShiftAlreadySuperseded
		}
		r.supersedes[*shift.SupersedesID] = shift.ID
	}
	shift.CreatedAt = time.Now().UTC()
	r.shifts[shift.ID] = shift
	return shift, nil
}

func (r *ShiftRepository) GetByID(ctx context.Context, id string) (timesheet.WorkShift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.shifts[id]
	if !ok {
		return timesheet.WorkShift{}, timesheet.ErrShiftNotFound
	}
	return s, nil
}

func (r *ShiftRepository) ListEffective(ctx context.Context, staffID string, from, to time.Time) ([]timesheet.WorkShift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []timesheet.WorkShift
	for id, s := range r.shifts {
		if s.StaffID != staffID || s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		if _, superseded := r.supersedes[id]; superseded {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ShiftRepository) IsSuperseded(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.supersedes[id]
	return ok, nil
}
