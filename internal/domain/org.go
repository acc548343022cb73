package domain

import "context"

// Org represents an organization that runs events.
// swagger:model Org
type Org struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	Members  []*Member  `json:"members,omitempty"`
	Events   []*Event   `json:"events,omitempty"`
	Sponsors []*Sponsor `json:"sponsors,omitempty"`
}

// Sponsor represents a sponsor record belonging to an org.
// swagger:model Sponsor
type Sponsor struct {
	ID           int      `json:"id"`
	OrgID        int      `json:"orgId"`
	Name         string   `json:"name"`
	ContactEmail *string  `json:"contactEmail,omitempty"`
	Tier         *string  `json:"tier,omitempty"`
	Stage        string   `json:"stage"`
	Pledged      *float64 `json:"pledged,omitempty"`
	Received     *float64 `json:"received,omitempty"`
	Org          *Org     `json:"org,omitempty"`
}

// OrgRepository defines the interface for org storage.
type OrgRepository interface {
	// ListWithRelations returns all orgs with member, event, and sponsor summaries.
	ListWithRelations(ctx context.Context) ([]*Org, error)
}

// SponsorRepository defines the interface for sponsor storage.
type SponsorRepository interface {
	ListByOrg(ctx context.Context, orgID int) ([]*Sponsor, error)
	ListAll(ctx context.Context) ([]*Sponsor, error)
}

// OrgService exposes the org ("teams") directory.
type OrgService interface {
	ListOrgs(ctx context.Context) ([]*Org, error)
}

// SponsorService exposes sponsor listings.
type SponsorService interface {
	ListSponsors(ctx context.Context, orgID *int) ([]*Sponsor, error)
}
