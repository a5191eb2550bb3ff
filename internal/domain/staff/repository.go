package staff

import "context"

// StaffRepository defines data access methods for staff members.
// Staff rows are never deleted; deactivation is an Update with StatusInactive.
type StaffRepository interface {
	Create(ctx context.Context, member StaffMember) (StaffMember, error)
	GetByID(ctx context.Context, id string) (StaffMember, error)
	List(ctx context.Context, filter StaffFilter) ([]StaffMember, error)
	Update(ctx context.Context, member StaffMember) (StaffMember, error)
}
