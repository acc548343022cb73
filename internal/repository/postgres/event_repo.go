package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `e.id, e.title, e.starts_at, e.ends_at, e.location, e.status, e.capacity, e.org_id`

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, starts_at, ends_at, location, status, capacity, org_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var location sql.NullString
	if e.Location != nil {
		location = sql.NullString{String: *e.Location, Valid: true}
	}
	var capacity sql.NullInt64
	if e.Capacity != nil {
		capacity = sql.NullInt64{Int64: int64(*e.Capacity), Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.StartsAt, e.EndsAt, location, e.Status, capacity, e.OrgID,
	).Scan(&e.ID)
}

// scanEvent scans one event row plus its org columns.
func scanEvent(scan func(dest ...any) error) (*domain.Event, error) {
	e := &domain.Event{Org: &domain.Org{}}
	var locationNull sql.NullString
	var capacityNull sql.NullInt64
	err := scan(
		&e.ID, &e.Title, &e.StartsAt, &e.EndsAt, &locationNull, &e.Status, &capacityNull, &e.OrgID,
		&e.Org.ID, &e.Org.Name,
	)
	if err != nil {
		return nil, err
	}
	if locationNull.Valid {
		e.Location = &locationNull.String
	}
	if capacityNull.Valid {
		c := int(capacityNull.Int64)
		e.Capacity = &c
	}
	return e, nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `, o.id, o.name
		FROM events e
		JOIN orgs o ON o.id = e.org_id
		WHERE e.id = $1
	`
	row := r.DB.QueryRowContext(ctx, query, id)
	e, err := scanEvent(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetWithRelations(ctx context.Context, id int) (*domain.Event, error) {
	e, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if e.Org.Sponsors, err = r.loadOrgSponsors(ctx, e.OrgID); err != nil {
		return nil, err
	}
	rsvpsByEvent, err := r.loadRSVPs(ctx, &id)
	if err != nil {
		return nil, err
	}
	tasksByEvent, err := r.loadTasks(ctx, &id)
	if err != nil {
		return nil, err
	}
	e.RSVPs = rsvpsByEvent[id]
	e.VolunteerTasks = tasksByEvent[id]
	if e.RSVPs == nil {
		e.RSVPs = []*domain.RSVP{}
	}
	if e.VolunteerTasks == nil {
		e.VolunteerTasks = []*domain.VolunteerTask{}
	}
	return e, nil
}

func (r *eventRepository) ListWithRelations(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `, o.id, o.name
		FROM events e
		JOIN orgs o ON o.id = e.org_id
		ORDER BY e.id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return events, nil
	}

	rsvpsByEvent, err := r.loadRSVPs(ctx, nil)
	if err != nil {
		return nil, err
	}
	tasksByEvent, err := r.loadTasks(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		e.RSVPs = rsvpsByEvent[e.ID]
		e.VolunteerTasks = tasksByEvent[e.ID]
		if e.RSVPs == nil {
			e.RSVPs = []*domain.RSVP{}
		}
		if e.VolunteerTasks == nil {
			e.VolunteerTasks = []*domain.VolunteerTask{}
		}
	}
	return events, nil
}

func (r *eventRepository) Search(ctx context.Context, term string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `, o.id, o.name
		FROM events e
		JOIN orgs o ON o.id = e.org_id
		WHERE e.title ILIKE '%' || $1 || '%' OR e.location ILIKE '%' || $1 || '%'
		ORDER BY e.id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// loadRSVPs returns rsvps (with member) grouped by event id, for one event or all.
func (r *eventRepository) loadRSVPs(ctx context.Context, eventID *int) (map[int][]*domain.RSVP, error) {
	query := `
		SELECT r.id, r.event_id, r.member_id, r.status, r.checked_in,
		       m.id, m.full_name, m.email, m.role, m.org_id
		FROM rsvps r
		JOIN members m ON m.id = r.member_id
	`
	var (
		rows *sql.Rows
		err  error
	)
	if eventID != nil {
		rows, err = r.DB.QueryContext(ctx, query+` WHERE r.event_id = $1 ORDER BY r.id ASC`, *eventID)
	} else {
		rows, err = r.DB.QueryContext(ctx, query+` ORDER BY r.id ASC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byEvent := make(map[int][]*domain.RSVP)
	for rows.Next() {
		rsvp := &domain.RSVP{Member: &domain.Member{}}
		if err := rows.Scan(
			&rsvp.ID, &rsvp.EventID, &rsvp.MemberID, &rsvp.Status, &rsvp.CheckedIn,
			&rsvp.Member.ID, &rsvp.Member.FullName, &rsvp.Member.Email, &rsvp.Member.Role, &rsvp.Member.OrgID,
		); err != nil {
			return nil, err
		}
		byEvent[rsvp.EventID] = append(byEvent[rsvp.EventID], rsvp)
	}
	return byEvent, rows.Err()
}

// loadTasks returns volunteer tasks (with assignee) grouped by event id, for one event or all.
func (r *eventRepository) loadTasks(ctx context.Context, eventID *int) (map[int][]*domain.VolunteerTask, error) {
	query := `
		SELECT t.id, t.title, t.status, t.priority, t.due_at, t.event_id, t.org_id, t.assignee_member_id,
		       m.id, m.full_name, m.email, m.role, m.org_id
		FROM volunteer_tasks t
		LEFT JOIN members m ON m.id = t.assignee_member_id
	`
	var (
		rows *sql.Rows
		err  error
	)
	if eventID != nil {
		rows, err = r.DB.QueryContext(ctx, query+` WHERE t.event_id = $1 ORDER BY t.id ASC`, *eventID)
	} else {
		rows, err = r.DB.QueryContext(ctx, query+` ORDER BY t.id ASC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byEvent := make(map[int][]*domain.VolunteerTask)
	for rows.Next() {
		t, err := scanTaskWithAssignee(rows.Scan)
		if err != nil {
			return nil, err
		}
		byEvent[t.EventID] = append(byEvent[t.EventID], t)
	}
	return byEvent, rows.Err()
}

func (r *eventRepository) loadOrgSponsors(ctx context.Context, orgID int) ([]*domain.Sponsor, error) {
	query := `
		SELECT id, org_id, name, contact_email, tier, stage, pledged, received
		FROM sponsors
		WHERE org_id = $1
		ORDER BY id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sponsors := make([]*domain.Sponsor, 0)
	for rows.Next() {
		sp, err := scanSponsor(rows.Scan)
		if err != nil {
			return nil, err
		}
		sponsors = append(sponsors, sp)
	}
	return sponsors, rows.Err()
}
