package domain

import "context"

// SearchResult groups matches across volunteer tasks, events, and members.
// swagger:model SearchResult
type SearchResult struct {
	VolunteerTasks []*VolunteerTask `json:"volunteerTasks"`
	Events         []*Event         `json:"events"`
	Members        []*Member        `json:"members"`
}

// SearchService runs a case-insensitive substring search across tasks
// (title), events (title, location), and members (full name, email).
type SearchService interface {
	Search(ctx context.Context, query string) (*SearchResult, error)
}
