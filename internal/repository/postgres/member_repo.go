package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

type memberRepository struct {
	DB *sql.DB
}

func NewMemberRepository(db *sql.DB) domain.MemberRepository {
	return &memberRepository{
		DB: db,
	}
}

const memberColumns = `m.id, m.full_name, m.email, m.role, m.tags, m.org_id, m.last_seen_at`

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	query := `
		INSERT INTO members (full_name, email, role, tags, org_id, last_seen_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var lastSeen sql.NullTime
	if m.LastSeenAt != nil {
		lastSeen = sql.NullTime{Time: *m.LastSeenAt, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		m.FullName, m.Email, m.Role, pq.StringArray(m.Tags), m.OrgID, lastSeen,
	).Scan(&m.ID)
}

func scanMember(scan func(dest ...any) error) (*domain.Member, error) {
	m := &domain.Member{Org: &domain.Org{}}
	var tags pq.StringArray
	var lastSeenNull sql.NullTime
	err := scan(
		&m.ID, &m.FullName, &m.Email, &m.Role, &tags, &m.OrgID, &lastSeenNull,
		&m.Org.ID, &m.Org.Name,
	)
	if err != nil {
		return nil, err
	}
	m.Tags = []string(tags)
	if m.Tags == nil {
		m.Tags = []string{}
	}
	if lastSeenNull.Valid {
		t := lastSeenNull.Time
		m.LastSeenAt = &t
	}
	return m, nil
}

func (r *memberRepository) GetByID(ctx context.Context, id int) (*domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `, o.id, o.name
		FROM members m
		JOIN orgs o ON o.id = m.org_id
		WHERE m.id = $1
	`
	row := r.DB.QueryRowContext(ctx, query, id)
	m, err := scanMember(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	// Load the member's RSVPs with their events.
	rsvpQuery := `
		SELECT r.id, r.event_id, r.member_id, r.status, r.checked_in,
		       e.id, e.title, e.starts_at, e.ends_at, e.location, e.status, e.capacity, e.org_id
		FROM rsvps r
		JOIN events e ON e.id = r.event_id
		WHERE r.member_id = $1
		ORDER BY r.id ASC
	`
	rows, err := r.DB.QueryContext(ctx, rsvpQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m.RSVPs = make([]*domain.RSVP, 0)
	for rows.Next() {
		rsvp := &domain.RSVP{Event: &domain.Event{}}
		var eLocationNull sql.NullString
		var eCapacityNull sql.NullInt64
		if err := rows.Scan(
			&rsvp.ID, &rsvp.EventID, &rsvp.MemberID, &rsvp.Status, &rsvp.CheckedIn,
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
		m.RSVPs = append(m.RSVPs, rsvp)
	}
	return m, rows.Err()
}

func (r *memberRepository) list(ctx context.Context, where string, args ...any) ([]*domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `, o.id, o.name
		FROM members m
		JOIN orgs o ON o.id = m.org_id
	` + where
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*domain.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows.Scan)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *memberRepository) List(ctx context.Context) ([]*domain.Member, error) {
	return r.list(ctx, ` ORDER BY m.id ASC`)
}

func (r *memberRepository) Search(ctx context.Context, term string) ([]*domain.Member, error) {
	return r.list(ctx, ` WHERE m.full_name ILIKE '%' || $1 || '%' OR m.email ILIKE '%' || $1 || '%' ORDER BY m.id ASC`, term)
}
