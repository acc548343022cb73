package domain

import "context"

// RSVP statuses.
const (
	RSVPStatusConfirmed = "CONFIRMED"
	RSVPStatusDeclined  = "DECLINED"
	RSVPStatusPending   = "PENDING"
)

// RSVP represents a member's attendance response to an event.
// swagger:model RSVP
type RSVP struct {
	ID        int    `json:"id"`
	EventID   int    `json:"eventId"`
	MemberID  int    `json:"memberId"`
	Status    string `json:"status"`
	CheckedIn bool   `json:"checkedIn"`

	Event  *Event  `json:"event,omitempty"`
	Member *Member `json:"member,omitempty"`
}

// RSVPRepository defines the interface for RSVP storage.
type RSVPRepository interface {
	// ListByEvent returns the event's RSVPs with event and member loaded.
	ListByEvent(ctx context.Context, eventID int) ([]*RSVP, error)
	ListAll(ctx context.Context) ([]*RSVP, error)
}

// RSVPService exposes RSVP listings.
type RSVPService interface {
	ListRSVPs(ctx context.Context, eventID *int) ([]*RSVP, error)
}
