package postgres

import (
	"context"
	"database/sql"

	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

type orgRepository struct {
	DB *sql.DB
}

func NewOrgRepository(db *sql.DB) domain.OrgRepository {
	return &orgRepository{
		DB: db,
	}
}

// ListWithRelations returns all orgs with member, event, and sponsor
// summaries, the shape the teams dashboard consumes.
func (r *orgRepository) ListWithRelations(ctx context.Context) ([]*domain.Org, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM orgs ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orgs := make([]*domain.Org, 0)
	byID := make(map[int]*domain.Org)
	for rows.Next() {
		o := &domain.Org{
			Members:  []*domain.Member{},
			Events:   []*domain.Event{},
			Sponsors: []*domain.Sponsor{},
		}
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
		byID[o.ID] = o
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return orgs, nil
	}

	memberRows, err := r.DB.QueryContext(ctx,
		`SELECT id, full_name, email, role, org_id FROM members ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer memberRows.Close()
	for memberRows.Next() {
		m := &domain.Member{}
		if err := memberRows.Scan(&m.ID, &m.FullName, &m.Email, &m.Role, &m.OrgID); err != nil {
			return nil, err
		}
		if o, ok := byID[m.OrgID]; ok {
			o.Members = append(o.Members, m)
		}
	}
	if err := memberRows.Err(); err != nil {
		return nil, err
	}

	eventRows, err := r.DB.QueryContext(ctx,
		`SELECT id, title, status, org_id FROM events ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer eventRows.Close()
	for eventRows.Next() {
		e := &domain.Event{}
		if err := eventRows.Scan(&e.ID, &e.Title, &e.Status, &e.OrgID); err != nil {
			return nil, err
		}
		if o, ok := byID[e.OrgID]; ok {
			o.Events = append(o.Events, e)
		}
	}
	if err := eventRows.Err(); err != nil {
		return nil, err
	}

	sponsorRows, err := r.DB.QueryContext(ctx,
		`SELECT id, org_id, name, tier, stage FROM sponsors ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer sponsorRows.Close()
	for sponsorRows.Next() {
		sp := &domain.Sponsor{}
		var tierNull sql.NullString
		if err := sponsorRows.Scan(&sp.ID, &sp.OrgID, &sp.Name, &tierNull, &sp.Stage); err != nil {
			return nil, err
		}
		if tierNull.Valid {
			sp.Tier = &tierNull.String
		}
		if o, ok := byID[sp.OrgID]; ok {
			o.Sponsors = append(o.Sponsors, sp)
		}
	}
	return orgs, sponsorRows.Err()
}
