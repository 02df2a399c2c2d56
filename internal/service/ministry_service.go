package service

import (
	"context"
	"strings"

	"github.com/civicgrid/complaint-service/internal/domain"
	"github.com/civicgrid/complaint-service/internal/repository"
	"github.com/civicgrid/complaint-service/pkg/util"
)

// MinistryService manages the ministry registry.
type MinistryService struct {
	ministries repository.MinistryRepository
}

// MinistryInput describes create/update payloads.
type MinistryInput struct {
	Name        string
	Description string
	Icon        string
	Color       string
	IsActive    *bool
}

// NewMinistryService constructs the service.
func NewMinistryService(ministries repository.MinistryRepository) *MinistryService {
	return &MinistryService{ministries: ministries}
}

// CreateMinistry registers a ministry. Name is required.
func (s *MinistryService) CreateMinistry(ctx context.Context, input MinistryInput) (*domain.Ministry, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, util.NewValidationError("name required", nil)
	}

	ministry := &domain.Ministry{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Icon:        input.Icon,
		Color:       input.Color,
		IsActive:    true,
	}
	if input.IsActive != nil {
		ministry.IsActive = *input.IsActive
	}

	if err := s.ministries.Create(ctx, ministry); err != nil {
		return nil, err
	}
	return ministry, nil
}

// UpdateMinistry applies a partial update.
func (s *MinistryService) UpdateMinistry(ctx context.Context, id string, input MinistryInput) (*domain.Ministry, error) {
	ministry, err := s.getMinistry(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		ministry.Name = name
	}
	if input.Description != "" {
		ministry.Description = strings.TrimSpace(input.Description)
	}
	if input.Icon != "" {
		ministry.Icon = input.Icon
	}
	if input.Color != "" {
		ministry.Color = input.Color
	}
	if input.IsActive != nil {
		ministry.IsActive = *input.IsActive
	}

	if err := s.ministries.Update(ctx, ministry); err != nil {
		return nil, err
	}
	return ministry, nil
}

// GetMinistry fetches one ministry.
func (s *MinistryService) GetMinistry(ctx context.Context, id string) (*domain.Ministry, error) {
	return s.getMinistry(ctx, id)
}

// ListMinistries returns ministries, optionally only active ones.
func (s *MinistryService) ListMinistries(ctx context.Context, activeOnly bool) ([]domain.Ministry, error) {
	ministries, err := s.ministries.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	if ministries == nil {
		ministries = []domain.Ministry{}
	}
	return ministries, nil
}

// DeleteMinistry removes a ministry unless complaints still reference it.
func (s *MinistryService) DeleteMinistry(ctx context.Context, id string) error {
	ministry, err := s.getMinistry(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.ministries.ComplaintCount(ctx, ministry.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.NewConflict("ministry has existing complaints", map[string]any{"complaint_count": count})
	}

	if err := s.ministries.Delete(ctx, ministry.ID); err != nil {
		if util.IsNotFound(err) {
			return util.NewNotFound("ministry", nil)
		}
		return err
	}
	return nil
}

func (s *MinistryService) getMinistry(ctx context.Context, id string) (*domain.Ministry, error) {
	ministry, err := s.ministries.GetByID(ctx, id)
	if err != nil {
		if util.IsNotFound(err) {
			return nil, util.NewNotFound("ministry", nil)
		}
		return nil, err
	}
	return ministry, nil
}
