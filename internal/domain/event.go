package domain

import (
	"context"
	"time"
)

// Event statuses used by the dashboard.
const (
	EventStatusPlanned   = "Planned"
	EventStatusActive    = "Active"
	EventStatusCompleted = "Completed"
	EventStatusCancelled = "Cancelled"
)

// Event represents an organization's event ("project" in the dashboard).
// Capacity and location are optional; capacity, when set, is >= 0.
// swagger:model Event
type Event struct {
	ID       int        `json:"id"`
	Title    string     `json:"title"`
	StartsAt time.Time  `json:"startsAt"`
	EndsAt   time.Time  `json:"endsAt"`
	Location *string    `json:"location,omitempty"`
	Status   string     `json:"status"`
	Capacity *int       `json:"capacity,omitempty"`
	OrgID    int        `json:"orgId"`

	Org            *Org             `json:"org,omitempty"`
	RSVPs          []*RSVP          `json:"rsvps,omitempty"`
	VolunteerTasks []*VolunteerTask `json:"volunteerTasks,omitempty"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(title string, startsAt, endsAt time.Time, location *string, status string, capacity *int, orgID int) *Event {
	return &Event{
		Title:    title,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Location: location,
		Status:   status,
		Capacity: capacity,
		OrgID:    orgID,
	}
}

// EventRepository defines the interface for event storage.
// GetWithRelations and ListWithRelations return events with their relations
// eagerly loaded; callers treat them as read-only snapshots.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	// GetByID returns the event with its org loaded, or ErrNotFound.
	GetByID(ctx context.Context, id int) (*Event, error)
	// GetWithRelations returns the event with rsvps (with member), volunteer
	// tasks (with assignee), and org (with sponsors) loaded, or ErrNotFound.
	GetWithRelations(ctx context.Context, id int) (*Event, error)
	// ListWithRelations returns all events ordered by id with org, rsvps, and
	// volunteer tasks loaded.
	ListWithRelations(ctx context.Context) ([]*Event, error)
	// Search returns events whose title or location matches term, case-insensitively.
	Search(ctx context.Context, term string) ([]*Event, error)
}

// ProjectService is the business logic for the events ("projects") surface.
type ProjectService interface {
	ListProjects(ctx context.Context) ([]*Event, error)
	CreateProject(ctx context.Context, event *Event) error
}
