package postgres

import (
	"context"
	"database/sql"

	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{
		DB: db,
	}
}

// rsvpListQuery selects RSVPs with member and parent event.
const rsvpListQuery = `
	SELECT r.id, r.event_id, r.member_id, r.status, r.checked_in,
	       m.id, m.full_name, m.email, m.role, m.org_id,
	       e.id, e.title, e.starts_at, e.ends_at, e.location, e.status, e.capacity, e.org_id
	FROM rsvps r
	JOIN members m ON m.id = r.member_id
	JOIN events e ON e.id = r.event_id
`

func (r *rsvpRepository) list(ctx context.Context, where string, args ...any) ([]*domain.RSVP, error) {
	rows, err := r.DB.QueryContext(ctx, rsvpListQuery+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rsvps := make([]*domain.RSVP, 0)
	for rows.Next() {
		rsvp := &domain.RSVP{Member: &domain.Member{}, Event: &domain.Event{}}
		var eLocationNull sql.NullString
		var eCapacityNull sql.NullInt64
		if err := rows.Scan(
			&rsvp.ID, &rsvp.EventID, &rsvp.MemberID, &rsvp.Status, &rsvp.CheckedIn,
			&rsvp.Member.ID, &rsvp.Member.FullName, &rsvp.Member.Email, &rsvp.Member.Role, &rsvp.Member.OrgID,
			&rsvp.Event.ID, &rsvp.Event.Title, &rsvp.Event.StartsAt, &rsvp.Event.EndsAt,
			&eLocationNull, &rsvp.Event.Status, &eCapacityNull, &rsvp.Event.OrgID,
		); err != nil {
			return nil, err
		}
		if eLocationNull.Valid {
			rsvp.Event.Location = &eLocationNull.String
		}
		if eCapacityNull.Valid {
			c := int(eCapacityNull.Int64)
			rsvp.Event.Capacity = &c
		}
		rsvps = append(rsvps, rsvp)
	}
	return rsvps, rows.Err()
}

func (r *rsvpRepository) ListByEvent(ctx context.Context, eventID int) ([]*domain.RSVP, error) {
	return r.list(ctx, ` WHERE r.event_id = $1 ORDER BY r.id ASC`, eventID)
}

func (r *rsvpRepository) ListAll(ctx context.Context) ([]*domain.RSVP, error) {
	return r.list(ctx, ` ORDER BY r.id ASC`)
}
