package staff

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/brightmind-academy/payroll-engine/internal/domain/staff"
	"github.com/google/uuid"
)

type StaffServiceImpl struct {
	staffRepo staff.StaffRepository
}

func NewStaffService(staffRepo staff.StaffRepository) staff.StaffService {
	return &StaffServiceImpl{staffRepo: staffRepo}
}

func (s *StaffServiceImpl) Create(ctx context.Context, req staff.CreateStaffRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}

	classification, err := staff.ParseClassification(req.Classification)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return staff.StaffResponse{}, fmt.Errorf("failed to generate staff id: %w", err)
	}

	member := staff.StaffMember{
		ID:                 id.String(),
		Name:               strings.TrimSpace(req.Name),
		Classification:     classification,
		BaseAmount:         req.BaseAmount,
		OvertimeHourlyRate: req.OvertimeHourlyRate,
		Allowance:          req.AllowancePolicy(),
		Status:             staff.StatusActive,
	}
	if err := member.Check(); err != nil {
		return staff.StaffResponse{}, err
	}

	created, err := s.staffRepo.Create(ctx, member)
	if err != nil {
		return staff.StaffResponse{}, fmt.Errorf("failed to create staff member: %w", err)
	}

	slog.Info("Created staff member", "staff_id", created.ID, "classification", created.Classification.String())
	return toStaffResponse(created), nil
}

func (s *StaffServiceImpl) GetByID(ctx context.Context, id string) (staff.StaffResponse, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	return toStaffResponse(member), nil
}

func (s *StaffServiceImpl) List(ctx context.Context, filter staff.StaffFilter) ([]staff.StaffResponse, error) {
	members, err := s.staffRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	responses := make([]staff.StaffResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, toStaffResponse(m))
	}
	return responses, nil
}

func (s *StaffServiceImpl) UpdatePolicy(ctx context.Context, req staff.UpdatePolicyRequest) (staff.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return staff.StaffResponse{}, err
	}

	current, err := s.staffRepo.GetByID(ctx, req.ID)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	updated, err := req.Apply(current)
	if err != nil {
		return staff.StaffResponse{}, err
	}

	saved, err := s.staffRepo.Update(ctx, updated)
	if err != nil {
		return staff.StaffResponse{}, fmt.Errorf("failed to update staff policy: %w", err)
	}

	slog.Info("Updated staff policy",
		"staff_id", saved.ID,
		"classification", saved.Classification.String(),
		"allowance_kind", string(saved.Allowance.Kind),
	)
	return toStaffResponse(saved), nil
}

// Deactivate marks a staff member inactive. Issued slips stay untouched.
func (s *StaffServiceImpl) Deactivate(ctx context.Context, id string) (staff.StaffResponse, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return staff.StaffResponse{}, err
	}
	if !member.IsActive() {
		return staff.StaffResponse{}, staff.ErrStaffAlreadyInactive
	}

	member.Status = staff.StatusInactive
	saved, err := s.staffRepo.Update(ctx, member)
	if err != nil {
		return staff.StaffResponse{}, fmt.Errorf("failed to deactivate staff member: %w", err)
	}

	slog.Info("Deactivated staff member", "staff_id", saved.ID)
	return toStaffResponse(saved), nil
}

func toStaffResponse(m staff.StaffMember) staff.StaffResponse {
	resp := staff.StaffResponse{
		ID:                 m.ID,
		Name:               m.Name,
		Classification:     m.Classification.String(),
		BaseAmount:         m.BaseAmount,
		OvertimeHourlyRate: m.OvertimeHourlyRate,
		AllowanceKind:      string(m.Allowance.Kind),
		Status:             string(m.Status),
		CreatedAt:          m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          m.UpdatedAt.Format(time.RFC3339),
	}
	if resp.AllowanceKind == "" {
		resp.AllowanceKind = string(staff.AllowanceNone)
	}
	if m.Allowance.Kind == staff.AllowancePerHead || m.Allowance.Kind == staff.AllowancePerHour {
		rate := m.Allowance.Rate
		resp.AllowanceRate = &rate
	}
	return resp
}
