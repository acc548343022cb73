package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

// Date formats used in generated email text.
const (
	emailDateFormat     = "Jan 2, 2006"
	emailDateTimeFormat = "Jan 2, 2006 3:04 PM"
)

// Aggregate task-reminder policy: tasks overdue or due within this window need
// a reminder; when nothing falls in the window, fall back to the first
// taskReminderFallbackLimit incomplete tasks.
const (
	taskReminderWindow        = 7 * 24 * time.Hour
	taskReminderFallbackLimit = 20
)

// Severity glyphs for digest task lines.
const (
	glyphOverdue  = "\U0001F534" // red circle
	glyphDueToday = "⚠️"
	glyphUpcoming = "\U0001F4C5" // calendar
)

// Default signer when an event has no org attached.
const defaultSigner = "Event Management Team"

type emailContentService struct {
	eventRepo      domain.EventRepository
	taskRepo       domain.TaskRepository
	renderer       domain.EmailTemplateRenderer
	now            func() time.Time
	contextTimeout time.Duration
}

// NewEmailContentService returns an EmailContentService. Templates never send
// anything; the service only resolves records and renders text. now supplies
// the current time for due-date logic.
func NewEmailContentService(
	eventRepo domain.EventRepository,
	taskRepo domain.TaskRepository,
	renderer domain.EmailTemplateRenderer,
	now func() time.Time,
	timeout time.Duration,
) domain.EmailContentService {
	return &emailContentService{
		eventRepo:      eventRepo,
		taskRepo:       taskRepo,
		renderer:       renderer,
		now:            now,
		contextTimeout: timeout,
	}
}

// eventEmailContext is the render context for event-scoped templates
// (event_reminder, sponsor_thank_you, rsvp_confirmation). Optional fields are
// resolved and defaulted before rendering so templates stay interpolation-only.
type eventEmailContext struct {
	RecipientName string
	EventTitle    string
	StartDate     string
	StartsAt      string
	EndsAt        string
	Location      string
	OrgName       string
}

// taskEmailContext is the render context for single-task templates.
type taskEmailContext struct {
	RecipientName string
	TaskTitle     string
	Priority      string
	Status        string
	EventTitle    string
	EventLocation string
	DueAt         string
	DueLine       string
	DuePhrase     string
	UrgencyLine   string
}

// digestTaskLine is one itemized entry in the aggregate task reminder.
type digestTaskLine struct {
	Glyph    string
	Title    string
	Priority string
	DueLabel string
}

// digestEmailContext is the render context for the aggregate task reminder.
type digestEmailContext struct {
	RecipientName  string
	EventTitle     string
	TaskCount      int
	TaskPlural     string
	OverdueCount   int
	DueSoonCount   int
	NoDueDateCount int
	Tasks          []digestTaskLine
}

func (s *emailContentService) Generate(ctx context.Context, req *domain.EmailRequest) (*domain.EmailContent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		subject string
		body    string
		err     error
	)

	switch req.Type {
	case domain.NotificationEventReminder:
		subject, body, err = s.eventTemplate(ctx, req, "event reminder", domain.NotificationEventReminder)
	case domain.NotificationSponsorThankYou:
		subject, body, err = s.eventTemplate(ctx, req, "sponsor thank you", domain.NotificationSponsorThankYou)
	case domain.NotificationRSVPConfirmation:
		subject, body, err = s.eventTemplate(ctx, req, "RSVP confirmation", domain.NotificationRSVPConfirmation)
	case domain.NotificationTaskAssignment:
		subject, body, err = s.taskAssignment(ctx, req)
	case domain.NotificationTaskReminder:
		subject, body, err = s.taskReminder(ctx, req)
	default:
		return nil, domain.NewValidationError(
			"Invalid email type. Supported types: " + strings.Join(domain.NotificationTypes, ", "))
	}
	if err != nil {
		return nil, err
	}

	return &domain.EmailContent{Subject: subject, Body: body, To: req.RecipientEmail}, nil
}

// eventTemplate handles the three notification types that require only an
// event reference.
func (s *emailContentService) eventTemplate(ctx context.Context, req *domain.EmailRequest, label, templateName string) (string, string, error) {
	event, err := s.resolveEvent(ctx, req, label)
	if err != nil {
		return "", "", err
	}

	recipient := req.RecipientName
	if recipient == "" {
		switch templateName {
		case domain.NotificationSponsorThankYou:
			recipient = "Sponsor"
		case domain.NotificationRSVPConfirmation:
			recipient = "Guest"
		default:
			recipient = "Volunteer"
		}
	}

	data := eventEmailContext{
		RecipientName: recipient,
		EventTitle:    event.Title,
		StartDate:     event.StartsAt.Format(emailDateFormat),
		StartsAt:      event.StartsAt.Format(emailDateTimeFormat),
		EndsAt:        event.EndsAt.Format(emailDateTimeFormat),
		OrgName:       orgName(event),
	}
	if event.Location != nil {
		data.Location = *event.Location
	}
	return s.renderer.Render(templateName, data)
}

func (s *emailContentService) taskAssignment(ctx context.Context, req *domain.EmailRequest) (string, string, error) {
	task, err := s.resolveTask(ctx, req, "task assignment")
	if err != nil {
		return "", "", err
	}

	data := taskEmailContext{
		RecipientName: taskRecipient(req, task),
		TaskTitle:     task.Title,
		Priority:      taskPriority(task),
		EventTitle:    task.Event.Title,
	}
	if task.DueAt != nil {
		data.DueAt = task.DueAt.Format(emailDateTimeFormat)
	}
	if task.Event.Location != nil {
		data.EventLocation = *task.Event.Location
	}
	return s.renderer.Render(domain.NotificationTaskAssignment, data)
}

// taskReminder is dual mode: a task reference renders a single-task reminder;
// an event reference alone renders the aggregate digest for that event's
// incomplete tasks. Neither reference is a validation error.
func (s *emailContentService) taskReminder(ctx context.Context, req *domain.EmailRequest) (string, string, error) {
	if req.TaskID != nil {
		return s.singleTaskReminder(ctx, req)
	}
	if req.EventID != nil {
		return s.eventTaskDigest(ctx, req)
	}
	return "", "", domain.NewValidationError("Task ID or Event ID required for task reminder")
}

func (s *emailContentService) singleTaskReminder(ctx context.Context, req *domain.EmailRequest) (string, string, error) {
	task, err := s.resolveTask(ctx, req, "task reminder")
	if err != nil {
		return "", "", err
	}
	now := s.now()

	data := taskEmailContext{
		RecipientName: taskRecipient(req, task),
		TaskTitle:     task.Title,
		Priority:      taskPriority(task),
		Status:        task.Status,
		EventTitle:    task.Event.Title,
		DuePhrase:     "pending",
		DueLine:       "No due date set",
		UrgencyLine:   "Please ensure this task is completed on time.",
	}
	if task.DueAt != nil {
		data.DueLine = "Due Date: " + task.DueAt.Format(emailDateTimeFormat)
		until := task.DueAt.Sub(now)
		if until < 0 {
			data.DuePhrase = "overdue"
		} else {
			days := int(math.Ceil(until.Hours() / 24))
			if days < 1 {
				days = 1
			}
			data.DuePhrase = fmt.Sprintf("due in %d day%s", days, plural(days))
		}
		if until <= 24*time.Hour {
			data.UrgencyLine = glyphDueToday + " This task is due soon! Please prioritize completing it."
		}
	}
	return s.renderer.Render(domain.NotificationTaskReminder, data)
}

// eventTaskDigest renders one reminder covering every incomplete task of an
// event that is overdue or due within the reminder window. Tasks without a due
// date are always included. If the window filter selects nothing, the first
// taskReminderFallbackLimit incomplete tasks (repository order) are used so
// the digest is never empty for an event that still has open work.
func (s *emailContentService) eventTaskDigest(ctx context.Context, req *domain.EmailRequest) (string, string, error) {
	event, err := s.resolveEvent(ctx, req, "task reminder")
	if err != nil {
		return "", "", err
	}

	tasks, err := s.taskRepo.ListIncompleteByEvent(ctx, event.ID)
	if err != nil {
		return "", "", fmt.Errorf("list incomplete tasks: %w", err)
	}
	if len(tasks) == 0 {
		return "", "", domain.NewNotFoundError("No tasks found that need reminders")
	}
	now := s.now()

	selected := make([]*domain.VolunteerTask, 0, len(tasks))
	for _, t := range tasks {
		if t.DueAt == nil || t.DueAt.Before(now) || t.DueAt.Sub(now) <= taskReminderWindow {
			selected = append(selected, t)
		}
	}
	if len(selected) == 0 {
		if len(tasks) > taskReminderFallbackLimit {
			tasks = tasks[:taskReminderFallbackLimit]
		}
		selected = tasks
	}

	recipient := req.RecipientName
	if recipient == "" {
		recipient = "Volunteer"
	}
	data := digestEmailContext{
		RecipientName: recipient,
		EventTitle:    event.Title,
		TaskCount:     len(selected),
		TaskPlural:    plural(len(selected)),
	}
	for _, t := range selected {
		line := digestTaskLine{
			Title:    t.Title,
			Priority: taskPriority(t),
			Glyph:    glyphUpcoming,
			DueLabel: "no due date",
		}
		switch {
		case t.DueAt == nil:
			data.NoDueDateCount++
		case t.DueAt.Before(now):
			data.OverdueCount++
			line.Glyph = glyphOverdue
			line.DueLabel = "overdue since " + t.DueAt.Format(emailDateFormat)
		default:
			if t.DueAt.Sub(now) <= taskReminderWindow {
				data.DueSoonCount++
			}
			if t.DueAt.Sub(now) <= 24*time.Hour {
				line.Glyph = glyphDueToday
			}
			line.DueLabel = "due " + t.DueAt.Format(emailDateTimeFormat)
		}
		data.Tasks = append(data.Tasks, line)
	}
	return s.renderer.Render("task_reminder_digest", data)
}

// resolveEvent enforces the type's event-reference contract: a missing id is a
// validation error, an id that resolves to nothing is not-found.
func (s *emailContentService) resolveEvent(ctx context.Context, req *domain.EmailRequest, label string) (*domain.Event, error) {
	if req.EventID == nil {
		return nil, domain.NewValidationError(fmt.Sprintf("Event ID required for %s", label))
	}
	event, err := s.eventRepo.GetByID(ctx, *req.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("event not found")
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *emailContentService) resolveTask(ctx context.Context, req *domain.EmailRequest, label string) (*domain.VolunteerTask, error) {
	if req.TaskID == nil {
		return nil, domain.NewValidationError(fmt.Sprintf("Task ID required for %s", label))
	}
	task, err := s.taskRepo.GetWithRelations(ctx, *req.TaskID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("task not found")
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

func taskRecipient(req *domain.EmailRequest, task *domain.VolunteerTask) string {
	if req.RecipientName != "" {
		return req.RecipientName
	}
	if task.Assignee != nil && task.Assignee.FullName != "" {
		return task.Assignee.FullName
	}
	return "Volunteer"
}

func taskPriority(task *domain.VolunteerTask) string {
	if task.Priority != nil {
		return *task.Priority
	}
	return domain.TaskPriorityMedium
}

func orgName(event *domain.Event) string {
	if event.Org != nil && event.Org.Name != "" {
		return event.Org.Name
	}
	return defaultSigner
}
