package postgres

import (
	"context"
	"database/sql"

	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

type sponsorRepository struct {
	DB *sql.DB
}

func NewSponsorRepository(db *sql.DB) domain.SponsorRepository {
	return &sponsorRepository{
		DB: db,
	}
}

// scanSponsor scans the bare sponsor columns (no org join).
func scanSponsor(scan func(dest ...any) error) (*domain.Sponsor, error) {
	sp := &domain.Sponsor{}
	var contactNull, tierNull sql.NullString
	var pledgedNull, receivedNull sql.NullFloat64
	err := scan(
		&sp.ID, &sp.OrgID, &sp.Name, &contactNull, &tierNull, &sp.Stage, &pledgedNull, &receivedNull,
	)
	if err != nil {
		return nil, err
	}
	if contactNull.Valid {
		sp.ContactEmail = &contactNull.String
	}
	if tierNull.Valid {
		sp.Tier = &tierNull.String
	}
	if pledgedNull.Valid {
		sp.Pledged = &pledgedNull.Float64
	}
	if receivedNull.Valid {
		sp.Received = &receivedNull.Float64
	}
	return sp, nil
}

func (r *sponsorRepository) list(ctx context.Context, where string, args ...any) ([]*domain.Sponsor, error) {
	query := `
		SELECT s.id, s.org_id, s.name, s.contact_email, s.tier, s.stage, s.pledged, s.received,
		       o.id, o.name
		FROM sponsors s
		JOIN orgs o ON o.id = s.org_id
	` + where
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sponsors := make([]*domain.Sponsor, 0)
	for rows.Next() {
		sp := &domain.Sponsor{Org: &domain.Org{}}
		var contactNull, tierNull sql.NullString
		var pledgedNull, receivedNull sql.NullFloat64
		if err := rows.Scan(
			&sp.ID, &sp.OrgID, &sp.Name, &contactNull, &tierNull, &sp.Stage, &pledgedNull, &receivedNull,
			&sp.Org.ID, &sp.Org.Name,
		); err != nil {
			return nil, err
		}
		if contactNull.Valid {
			sp.ContactEmail = &contactNull.String
		}
		if tierNull.Valid {
			sp.Tier = &tierNull.String
		}
		if pledgedNull.Valid {
			sp.Pledged = &pledgedNull.Float64
		}
		if receivedNull.Valid {
			sp.Received = &receivedNull.Float64
		}
		sponsors = append(sponsors, sp)
	}
	return sponsors, rows.Err()
}

func (r *sponsorRepository) ListByOrg(ctx context.Context, orgID int) ([]*domain.Sponsor, error) {
	return r.list(ctx, ` WHERE s.org_id = $1 ORDER BY s.id ASC`, orgID)
}

func (r *sponsorRepository) ListAll(ctx context.Context) ([]*domain.Sponsor, error) {
	return r.list(ctx, ` ORDER BY s.id ASC`)
}
