package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/domain/payroll"
	"github.com/brightmind-academy/payroll-engine/internal/domain/staff"
	"github.com/brightmind-academy/payroll-engine/internal/domain/timesheet"
	timesheetsvc "github.com/brightmind-academy/payroll-engine/internal/service/timesheet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const defaultBatchLimit = 8

// WorkSummaries provides a staff member's logged work for a month.
type WorkSummaries interface {
	Summarize(ctx context.Context, member staff.StaffMember, year, month int) (timesheet.MonthlySummary, error)
}

type PayrollServiceImpl struct {
	composer   *Composer
	slipRepo   payroll.PaySlipRepository
	staffRepo  staff.StaffRepository
	work       WorkSummaries
	batchLimit int
	now        func() time.Time
}

func NewPayrollService(
	composer *Composer,
	slipRepo payroll.PaySlipRepository,
	staffRepo staff.StaffRepository,
	work WorkSummaries,
	batchLimit int,
) payroll.PayrollService {
	if batchLimit <= 0 {
		batchLimit = defaultBatchLimit
	}
	return &PayrollServiceImpl{
		composer:   composer,
		slipRepo:   slipRepo,
		staffRepo:  staffRepo,
		work:       work,
		batchLimit: batchLimit,
		now:        time.Now,
	}
}

func (s *PayrollServiceImpl) Issue(ctx context.Context, req payroll.IssuePaySlipRequest) (payroll.PaySlipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PaySlipResponse{}, err
	}

	member, err := s.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		return payroll.PaySlipResponse{}, err
	}

	slip, err := s.issue(ctx, member, req)
	if err != nil {
		return payroll.PaySlipResponse{}, err
	}
	return toPaySlipResponse(slip), nil
}

// IssueBatch issues one slip per staff member concurrently. A failure for one
// member is reported in the response and does not stop the others.
func (s *PayrollServiceImpl) IssueBatch(ctx context.Context, req payroll.BatchIssueRequest) (payroll.BatchIssueResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchIssueResponse{}, err
	}

	var members []staff.StaffMember
	ids := req.StaffIDs
	if len(ids) == 0 {
		var err error
		members, err = s.staffRepo.List(ctx, staff.StaffFilter{ActiveOnly: true})
		if err != nil {
			return payroll.BatchIssueResponse{}, fmt.Errorf("failed to list active staff: %w", err)
		}
		ids = make([]string, len(members))
		for i, m := range members {
			ids[i] = m.ID
		}
	}

	type outcome struct {
		slip payroll.PaySlip
		err  error
	}
	outcomes := make([]outcome, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchLimit)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			var member staff.StaffMember
			if members != nil {
				member = members[i]
			} else {
				m, err := s.staffRepo.GetByID(gctx, id)
				if err != nil {
					outcomes[i].err = err
					return nil
				}
				member = m
			}
			outcomes[i].slip, outcomes[i].err = s.issue(gctx, member, req.Item(id))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.BatchIssueResponse{}, err
	}
	if err := ctx.Err(); err != nil {
		return payroll.BatchIssueResponse{}, err
	}

	resp := payroll.BatchIssueResponse{Issued: make([]payroll.PaySlipResponse, 0, len(ids))}
	for i, o := range outcomes {
		if o.err != nil {
			level := slog.LevelError
			if isDomainError(o.err) {
				level = slog.LevelWarn
			}
			slog.Log(ctx, level, "Failed to issue pay slip in batch", "staff_id", ids[i], "error", o.err)
			resp.Failed = append(resp.Failed, payroll.BatchFailure{StaffID: ids[i], Error: o.err.Error()})
			continue
		}
		resp.Issued = append(resp.Issued, toPaySlipResponse(o.slip))
	}

	slog.Info("Issued pay slip batch",
		"year", req.Year,
		"month", req.Month,
		"issued", len(resp.Issued),
		"failed", len(resp.Failed),
	)
	return resp, nil
}

func (s *PayrollServiceImpl) issue(ctx context.Context, member staff.StaffMember, req payroll.IssuePaySlipRequest) (payroll.PaySlip, error) {
	if !member.IsActive() {
		return payroll.PaySlip{}, staff.ErrStaffInactive
	}

	in, err := s.resolveInputs(ctx, member, req)
	if err != nil {
		return payroll.PaySlip{}, err
	}

	slip, err := s.composer.Compose(member, in.basePay, in.extraPay, req.Year, req.Month, in.quantity)
	if err != nil {
		return payroll.PaySlip{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.PaySlip{}, fmt.Errorf("failed to generate pay slip id: %w", err)
	}
	slip.ID = id.String()
	slip.IssuedAt = s.now().UTC()

	created, err := s.slipRepo.Create(ctx, slip)
	if err != nil {
		return payroll.PaySlip{}, fmt.Errorf("failed to save pay slip for staff %s: %w", member.ID, err)
	}
	if created.StaffName == nil {
		name := member.Name
		created.StaffName = &name
	}

	slog.Info("Issued pay slip",
		"pay_slip_id", created.ID,
		"staff_id", created.StaffID,
		"period", fmt.Sprintf("%04d-%02d", created.Year, created.Month),
		"gross_pay", created.GrossPay,
		"net_pay", created.NetPay,
		"policy_version", created.PolicyVersion,
	)
	return created, nil
}

type composeInputs struct {
	basePay  int64
	extraPay int64
	quantity decimal.Decimal
}

// resolveInputs fills omitted pay components. Monthly classifications default
// to the staff base amount; hourly part-time staff are paid for every logged
// minute. Extra pay defaults to the suggested overtime pay, and a per-hour
// allowance defaults to the logged hours.
func (s *PayrollServiceImpl) resolveInputs(ctx context.Context, member staff.StaffMember, req payroll.IssuePaySlipRequest) (composeInputs, error) {
	needsWork := (req.BasePay == nil && member.Classification == staff.HourlyPartTime) ||
		(req.ExtraPay == nil && member.Classification == staff.SalariedWithOvertime) ||
		(req.AllowanceQuantity == nil && member.Allowance.Kind == staff.AllowancePerHour)

	var summary timesheet.MonthlySummary
	if needsWork {
		var err error
		summary, err = s.work.Summarize(ctx, member, req.Year, req.Month)
		if err != nil {
			return composeInputs{}, fmt.Errorf("failed to summarize work for staff %s: %w", member.ID, err)
		}
	}

	var in composeInputs
	switch {
	case req.BasePay != nil:
		in.basePay = *req.BasePay
	case member.Classification == staff.HourlyPartTime:
		in.basePay = timesheetsvc.PayForMinutes(summary.TotalMinutes(), member.BaseAmount)
	default:
		in.basePay = member.BaseAmount
	}

	switch {
	case req.ExtraPay != nil:
		in.extraPay = *req.ExtraPay
	case summary.SuggestedExtraPay != nil:
		in.extraPay = *summary.SuggestedExtraPay
	}

	switch {
	case req.AllowanceQuantity != nil:
		in.quantity = *req.AllowanceQuantity
	case member.Allowance.Kind == staff.AllowancePerHour:
		in.quantity = summary.TotalHours()
	case member.Allowance.Kind == staff.AllowancePerHead:
		return composeInputs{}, payroll.ErrAllowanceQuantityRequired
	default:
		in.quantity = decimal.Zero
	}
	return in, nil
}

func (s *PayrollServiceImpl) GetByID(ctx context.Context, id string) (payroll.PaySlipResponse, error) {
	slip, err := s.slipRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PaySlipResponse{}, err
	}
	return toPaySlipResponse(slip), nil
}

func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PaySlipFilter) (payroll.ListPaySlipResponse, error) {
	filter.Normalize()

	slips, total, err := s.slipRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPaySlipResponse{}, fmt.Errorf("failed to list pay slips: %w", err)
	}

	return payroll.ListPaySlipResponse{
		Data:       toPaySlipResponses(slips),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// isDomainError reports whether err is a caller-correctable batch failure.
func isDomainError(err error) bool {
	return errors.Is(err, staff.ErrStaffNotFound) ||
		errors.Is(err, staff.ErrStaffInactive) ||
		errors.Is(err, staff.ErrInvalidAllowancePolicy) ||
		errors.Is(err, payroll.ErrAllowanceQuantityRequired) ||
		errors.Is(err, payroll.ErrUnclassifiedEmployment)
}

func toPaySlipResponse(s payroll.PaySlip) payroll.PaySlipResponse {
	return payroll.PaySlipResponse{
		ID:              s.ID,
		StaffID:         s.StaffID,
		StaffName:       s.StaffName,
		Classification:  s.Classification.String(),
		Year:            s.Year,
		Month:           s.Month,
		BasePay:         s.BasePay,
		ExtraPay:        s.ExtraPay,
		AllowanceAmount: s.AllowanceAmount,
		AllowanceDetail: s.AllowanceDetail,
		GrossPay:        s.GrossPay,
		Insurance:       s.Insurance,
		Withholding:     s.Withholding,
		LocalTax:        s.LocalTax,
		NetPay:          s.NetPay,
		Bracket:         string(s.Bracket),
		PolicyVersion:   s.PolicyVersion,
		IssuedAt:        s.IssuedAt.Format(time.RFC3339),
	}
}

func toPaySlipResponses(slips []payroll.PaySlip) []payroll.PaySlipResponse {
	responses := make([]payroll.PaySlipResponse, 0, len(slips))
	for _, s := range slips {
		responses = append(responses, toPaySlipResponse(s))
	}
	return responses
}
