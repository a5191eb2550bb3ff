// Package memory holds in-process repository implementations used by
// service tests and local runs without PostgreSQL.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/domain/staff"
)

type StaffRepository struct {
	mu      sync.RWMutex
	members map[string]staff.StaffMember
	order   []string
}

func NewStaffRepository() *StaffRepository {
	return &StaffRepository{members: make(map[string]staff.StaffMember)}
}

func (r *StaffRepository) Create(ctx context.Context, member staff.StaffMember) (staff.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[member.ID]; ok {
		return staff.StaffMember{}, fmt.Errorf("staff member %s already exists", member.ID)
	}
	now := time.Now().UTC()
	member.CreatedAt, member.UpdatedAt = now, now
	r.members[member.ID] = member
	r.order = append(r.order, member.ID)
	return member, nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id string) (staff.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.members[id]
	if !ok {
		return staff.StaffMember{}, staff.ErrStaffNotFound
	}
	return m, nil
}

func (r *StaffRepository) List(ctx context.Context, filter staff.StaffFilter) ([]staff.StaffMember, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []staff.StaffMember
	for _, id := range r.order {
		m := r.members[id]
		if filter.ActiveOnly && !m.IsActive() {
			continue
		}
		if filter.Classification != nil && m.Classification != *filter.Classification {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *StaffRepository) Update(ctx context.Context, member staff.StaffMember) (staff.StaffMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.members[member.ID]
	if !ok {
		return staff.StaffMember{}, staff.ErrStaffNotFound
	}
	member.CreatedAt = current.CreatedAt
	member.UpdatedAt = time.Now().UTC()
	r.members[member.ID] = member
	return member, nil
}
