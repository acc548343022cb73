package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

// Minimum query length accepted by Search.
const minSearchQueryLen = 3

type searchService struct {
	taskRepo       domain.TaskRepository
	eventRepo      domain.EventRepository
	memberRepo     domain.MemberRepository
	contextTimeout time.Duration
}

// NewSearchService returns a SearchService querying tasks, events, and members.
func NewSearchService(taskRepo domain.TaskRepository, eventRepo domain.EventRepository, memberRepo domain.MemberRepository, timeout time.Duration) domain.SearchService {
	return &searchService{
		taskRepo:       taskRepo,
		eventRepo:      eventRepo,
		memberRepo:     memberRepo,
		contextTimeout: timeout,
	}
}

func (s *searchService) Search(ctx context.Context, query string) (*domain.SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	query = strings.TrimSpace(query)
	if len(query) < minSearchQueryLen {
		return nil, domain.NewValidationError(
			fmt.Sprintf("Query parameter is required and must be at least %d characters", minSearchQueryLen))
	}

	tasks, err := s.taskRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	events, err := s.eventRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	members, err := s.memberRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search members: %w", err)
	}

	result := &domain.SearchResult{
		VolunteerTasks: tasks,
		Events:         events,
		Members:        members,
	}
	if result.VolunteerTasks == nil {
		result.VolunteerTasks = []*domain.VolunteerTask{}
	}
	if result.Events == nil {
		result.Events = []*domain.Event{}
	}
	if result.Members == nil {
		result.Members = []*domain.Member{}
	}
	return result, nil
}
