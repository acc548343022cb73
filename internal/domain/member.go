package domain

import (
	"context"
	"time"
)

// Member represents a person in an org's directory (volunteers, staff, guests).
// swagger:model Member
type Member struct {
	ID         int        `json:"id"`
	FullName   string     `json:"fullName"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Tags       []string   `json:"tags"`
	OrgID      int        `json:"orgId"`
	LastSeenAt *time.Time `json:"lastSeenAt,omitempty"`

	Org   *Org    `json:"org,omitempty"`
	RSVPs []*RSVP `json:"rsvps,omitempty"`
}

// MemberRepository defines the interface for member storage.
type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	// GetByID returns the member with org and rsvps (with events) loaded, or ErrNotFound.
	GetByID(ctx context.Context, id int) (*Member, error)
	// List returns all members with their org loaded.
	List(ctx context.Context) ([]*Member, error)
	// Search returns members whose full name or email matches term, case-insensitively.
	Search(ctx context.Context, term string) ([]*Member, error)
}

// MemberService is the business logic for the member directory.
type MemberService interface {
	ListMembers(ctx context.Context) ([]*Member, error)
	GetMember(ctx context.Context, memberID int) (*Member, error)
	CreateMember(ctx context.Context, member *Member) error
}
