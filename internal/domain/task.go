package domain

import (
	"context"
	"time"
)

// Volunteer task statuses (fixed set used by the Kanban board).
const (
	TaskStatusToDo        = "To Do"
	TaskStatusInProgress  = "Work In Progress"
	TaskStatusUnderReview = "Under Review"
	TaskStatusCompleted   = "Completed"
)

// Volunteer task priorities. Priority is optional on a task.
const (
	TaskPriorityUrgent = "Urgent"
	TaskPriorityHigh   = "High"
	TaskPriorityMedium = "Medium"
	TaskPriorityLow    = "Low"
)

// ValidTaskStatus reports whether s is one of the fixed task statuses.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusUnderReview, TaskStatusCompleted:
		return true
	}
	return false
}

// ValidTaskPriority reports whether p is one of the fixed task priorities.
func ValidTaskPriority(p string) bool {
	switch p {
	case TaskPriorityUrgent, TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	}
	return false
}

// VolunteerTask represents a unit of volunteer work tied to an event.
// swagger:model VolunteerTask
type VolunteerTask struct {
	ID               int        `json:"id"`
	Title            string     `json:"title"`
	Status           string     `json:"status"`
	Priority         *string    `json:"priority,omitempty"`
	DueAt            *time.Time `json:"dueAt,omitempty"`
	EventID          int        `json:"eventId"`
	OrgID            int        `json:"orgId"`
	AssigneeMemberID *int       `json:"assigneeMemberId,omitempty"`

	Assignee *Member `json:"assignee,omitempty"`
	Event    *Event  `json:"event,omitempty"`
}

// IsCritical reports whether the task's priority is Urgent or High.
func (t *VolunteerTask) IsCritical() bool {
	return t.Priority != nil && (*t.Priority == TaskPriorityUrgent || *t.Priority == TaskPriorityHigh)
}

// TaskRepository defines the interface for volunteer task storage.
type TaskRepository interface {
	Create(ctx context.Context, task *VolunteerTask) error
	// GetWithRelations returns the task with its event and assignee loaded, or ErrNotFound.
	GetWithRelations(ctx context.Context, id int) (*VolunteerTask, error)
	ListByEvent(ctx context.Context, eventID int) ([]*VolunteerTask, error)
	ListAll(ctx context.Context) ([]*VolunteerTask, error)
	ListByAssignee(ctx context.Context, memberID int) ([]*VolunteerTask, error)
	// ListIncompleteByEvent returns the event's tasks with status != Completed,
	// ordered by due date ascending (tasks without a due date last) and then by
	// priority rank descending (Urgent > High > Medium > Low > none).
	ListIncompleteByEvent(ctx context.Context, eventID int) ([]*VolunteerTask, error)
	// UpdateStatus sets the task status and returns the updated task with
	// event and assignee loaded, or ErrNotFound.
	UpdateStatus(ctx context.Context, id int, status string) (*VolunteerTask, error)
	// Search returns tasks whose title matches term, case-insensitively.
	Search(ctx context.Context, term string) ([]*VolunteerTask, error)
}

// TaskService is the business logic for the volunteer task surface.
type TaskService interface {
	ListTasks(ctx context.Context, eventID int) ([]*VolunteerTask, error)
	ListAllTasks(ctx context.Context) ([]*VolunteerTask, error)
	ListMemberTasks(ctx context.Context, memberID int) ([]*VolunteerTask, error)
	CreateTask(ctx context.Context, task *VolunteerTask) error
	UpdateTaskStatus(ctx context.Context, taskID int, status string) (*VolunteerTask, error)
}
