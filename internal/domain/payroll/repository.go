package payroll

import "context"

// PaySlipRepository stores issued slips. Slips are insert-only.
type PaySlipRepository interface {
	Create(ctx context.Context, slip PaySlip) (PaySlip, error)
	GetByID(ctx context.Context, id string) (PaySlip, error)
	List(ctx context.Context, filter PaySlipFilter) ([]PaySlip, int64, error)
}
