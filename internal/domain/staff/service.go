package staff

import "context"

type StaffService interface {
	Create(ctx context.Context, req CreateStaffRequest) (StaffResponse, error)
	GetByID(ctx context.Context, id string) (StaffResponse, error)
	List(ctx context.Context, filter StaffFilter) ([]StaffResponse, error)
	UpdatePolicy(ctx context.Context, req UpdatePolicyRequest) (StaffResponse, error)
	Deactivate(ctx context.Context, id string) (StaffResponse, error)
}
