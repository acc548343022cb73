package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

type projectService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewProjectService returns the business logic for the events ("projects") surface.
func NewProjectService(eventRepo domain.EventRepository, timeout time.Duration) domain.ProjectService {
	return &projectService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *projectService) ListProjects(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListWithRelations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *projectService) CreateProject(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.Title == "" {
		return domain.NewValidationError("title is required")
	}
	if event.OrgID <= 0 {
		return domain.NewValidationError("orgId is required")
	}
	if event.EndsAt.Before(event.StartsAt) {
		return domain.NewValidationError("endsAt must not be before startsAt")
	}
	if event.Capacity != nil && *event.Capacity < 0 {
		return domain.NewValidationError("capacity must be >= 0")
	}
	if event.Status == "" {
		event.Status = domain.EventStatusPlanned
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}
