package filing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/domain/filing"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/export"
	"github.com/brightmind-academy/payroll-engine/internal/pkg/validator"
	"github.com/google/uuid"
)

const defaultUpcomingDays = 30

type FilingServiceImpl struct {
	repo   filing.ObligationRepository
	locker filing.Locker
	now    func() time.Time
}

func NewFilingService(repo filing.ObligationRepository, locker filing.Locker) filing.FilingService {
	return &FilingServiceImpl{
		repo:   repo,
		locker: locker,
		now:    time.Now,
	}
}

// EnsureSchedule returns the year's obligations, generating any that are
// missing. Generation for a year runs under a lock and inserts skip existing
// keys, so concurrent callers never create duplicates.
func (s *FilingServiceImpl) EnsureSchedule(ctx context.Context, year int) (filing.ScheduleResponse, error) {
	if err := filing.ValidateYear(year); err != nil {
		return filing.ScheduleResponse{}, err
	}

	existing, err := s.repo.ListByYear(ctx, year)
	if err != nil {
		return filing.ScheduleResponse{}, fmt.Errorf("failed to load filing schedule: %w", err)
	}
	if len(existing) >= ScheduleSize {
		return toScheduleResponse(year, existing), nil
	}

	unlock, err := s.locker.Lock(ctx, fmt.Sprintf("filing:schedule:%d", year))
	if err != nil {
		return filing.ScheduleResponse{}, fmt.Errorf("failed to lock filing schedule %d: %w", year, err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("Failed to release filing schedule lock", "year", year, "error", err)
		}
	}()

	// Another caller may have generated it while we waited.
	existing, err = s.repo.ListByYear(ctx, year)
	if err != nil {
		return filing.ScheduleResponse{}, fmt.Errorf("failed to load filing schedule: %w", err)
	}
	if len(existing) >= ScheduleSize {
		return toScheduleResponse(year, existing), nil
	}

	generated, err := GenerateSchedule(year)
	if err != nil {
		return filing.ScheduleResponse{}, err
	}
	for i := range generated {
		id, err := uuid.NewV7()
		if err != nil {
			return filing.ScheduleResponse{}, fmt.Errorf("failed to generate obligation id: %w", err)
		}
		generated[i].ID = id.String()
	}

	inserted, err := s.repo.InsertMissing(ctx, generated)
	if err != nil {
		return filing.ScheduleResponse{}, fmt.Errorf("failed to save filing schedule: %w", err)
	}

	obligations, err := s.repo.ListByYear(ctx, year)
	if err != nil {
		return filing.ScheduleResponse{}, fmt.Errorf("failed to load filing schedule: %w", err)
	}
	if len(obligations) != ScheduleSize {
		return filing.ScheduleResponse{}, fmt.Errorf("%w: year %d has %d obligations", filing.ErrScheduleIncomplete, year, len(obligations))
	}

	slog.Info("Generated filing schedule", "year", year, "inserted", inserted)
	return toScheduleResponse(year, obligations), nil
}

// GetSchedule returns what is stored for the year without generating.
func (s *FilingServiceImpl) GetSchedule(ctx context.Context, year int) (filing.ScheduleResponse, error) {
	if err := filing.ValidateYear(year); err != nil {
		return filing.ScheduleResponse{}, err
	}
	obligations, err := s.repo.ListByYear(ctx, year)
	if err != nil {
		return filing.ScheduleResponse{}, fmt.Errorf("failed to load filing schedule: %w", err)
	}
	return toScheduleResponse(year, obligations), nil
}

func (s *FilingServiceImpl) UpdateStatus(ctx context.Context, req filing.UpdateStatusRequest) (filing.ObligationResponse, error) {
	if err := req.Validate(); err != nil {
		return filing.ObligationResponse{}, err
	}
	next, err := filing.ParseStatus(req.Status)
	if err != nil {
		return filing.ObligationResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return filing.ObligationResponse{}, err
	}

	updated, err := current.Transition(next, req.PaidAmount)
	if err != nil {
		return filing.ObligationResponse{}, err
	}

	saved, err := s.repo.UpdateStatus(ctx, updated, current.Status)
	if err != nil {
		return filing.ObligationResponse{}, err
	}

	slog.Info("Updated filing obligation status",
		"obligation_id", saved.ID,
		"category", string(saved.Category),
		"from", string(current.Status),
		"to", string(saved.Status),
	)
	return toObligationResponse(saved), nil
}

// ListUpcoming returns pending and filed obligations due within the window
// starting at filter.From (today when empty).
func (s *FilingServiceImpl) ListUpcoming(ctx context.Context, filter filing.UpcomingFilter) ([]filing.ObligationResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	from := s.now().UTC().Truncate(24 * time.Hour)
	if filter.From != "" {
		from, _ = validator.IsValidDate(filter.From)
	}
	days := filter.Days
	if days == 0 {
		days = defaultUpcomingDays
	}
	to := from.AddDate(0, 0, days)

	obligations, err := s.repo.ListDueBetween(ctx, from, to, []filing.Status{filing.StatusPending, filing.StatusFiled})
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming obligations: %w", err)
	}

	responses := make([]filing.ObligationResponse, 0, len(obligations))
	for _, o := range obligations {
		responses = append(responses, toObligationResponse(o))
	}
	return responses, nil
}

func (s *FilingServiceImpl) ExportXLSX(ctx context.Context, year int, w io.Writer) error {
	if err := filing.ValidateYear(year); err != nil {
		return err
	}
	obligations, err := s.repo.ListByYear(ctx, year)
	if err != nil {
		return fmt.Errorf("failed to load filing schedule: %w", err)
	}

	rows := make([][]any, 0, len(obligations))
	for _, o := range obligations {
		month := ""
		if o.Month != nil {
			month = fmt.Sprintf("%02d", *o.Month)
		}
		var paid any = ""
		if o.PaidAmount != nil {
			paid = *o.PaidAmount
		}
		rows = append(rows, []any{
			o.DueDate.Format("2006-01-02"), string(o.Category), o.Term, month, string(o.Status), paid,
		})
	}

	return export.WriteXLSX(w, export.Table{
		Sheet:   fmt.Sprintf("Filings %d", year),
		Headers: []string{"Due Date", "Category", "Term", "Month", "Status", "Paid Amount"},
		Rows:    rows,
	})
}

func toScheduleResponse(year int, obligations []filing.Obligation) filing.ScheduleResponse {
	resp := filing.ScheduleResponse{Year: year, Obligations: make([]filing.ObligationResponse, 0, len(obligations))}
	for _, o := range obligations {
		resp.Obligations = append(resp.Obligations, toObligationResponse(o))
	}
	return resp
}

func toObligationResponse(o filing.Obligation) filing.ObligationResponse {
	return filing.ObligationResponse{
		ID:         o.ID,
		Year:       o.Year,
		Month:      o.Month,
		Term:       o.Term,
		Category:   string(o.Category),
		DueDate:    o.DueDate.Format("2006-01-02"),
		Status:     string(o.Status),
		PaidAmount: o.PaidAmount,
	}
}
