package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

type taskService struct {
	taskRepo       domain.TaskRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewTaskService returns the business logic for the volunteer task surface.
func NewTaskService(taskRepo domain.TaskRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.TaskService {
	return &taskService{
		taskRepo:       taskRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *taskService) ListTasks(ctx context.Context, eventID int) ([]*domain.VolunteerTask, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tasks, err := s.taskRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*domain.VolunteerTask{}
	}
	return tasks, nil
}

func (s *taskService) ListAllTasks(ctx context.Context) ([]*domain.VolunteerTask, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*domain.VolunteerTask{}
	}
	return tasks, nil
}

func (s *taskService) ListMemberTasks(ctx context.Context, memberID int) ([]*domain.VolunteerTask, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tasks, err := s.taskRepo.ListByAssignee(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("list member tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*domain.VolunteerTask{}
	}
	return tasks, nil
}

func (s *taskService) CreateTask(ctx context.Context, task *domain.VolunteerTask) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if task.Title == "" {
		return domain.NewValidationError("title is required")
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusToDo
	}
	if !domain.ValidTaskStatus(task.Status) {
		return domain.NewValidationError("invalid task status")
	}
	if task.Priority != nil && !domain.ValidTaskPriority(*task.Priority) {
		return domain.NewValidationError("invalid task priority")
	}

	// The event must exist; its org also scopes the task.
	event, err := s.eventRepo.GetByID(ctx, task.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewNotFoundError("event not found")
		}
		return fmt.Errorf("get event: %w", err)
	}
	task.OrgID = event.OrgID

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (s *taskService) UpdateTaskStatus(ctx context.Context, taskID int, status string) (*domain.VolunteerTask, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.ValidTaskStatus(status) {
		return nil, domain.NewValidationError("invalid task status")
	}
	task, err := s.taskRepo.UpdateStatus(ctx, taskID, status)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("task not found")
		}
		return nil, fmt.Errorf("update task status: %w", err)
	}
	return task, nil
}
