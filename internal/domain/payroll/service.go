package payroll

import (
	"context"
	"io"
)

type PayrollService interface {
	Issue(ctx context.Context, req IssuePaySlipRequest) (PaySlipResponse, error)
	IssueBatch(ctx context.Context, req BatchIssueRequest) (BatchIssueResponse, error)
	GetByID(ctx context.Context, id string) (PaySlipResponse, error)
	List(ctx context.Context, filter PaySlipFilter) (ListPaySlipResponse, error)
	// ExportXLSX writes every slip matching filter as a spreadsheet, ignoring paging.
	ExportXLSX(ctx context.Context, filter PaySlipFilter, w io.Writer) error
}
