package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

type taskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) domain.TaskRepository {
	return &taskRepository{
		DB: db,
	}
}

const taskColumns = `t.id, t.title, t.status, t.priority, t.due_at, t.event_id, t.org_id, t.assignee_member_id`

// taskListQuery selects tasks with assignee and parent event.
const taskListQuery = `
	SELECT ` + taskColumns + `,
	       m.id, m.full_name, m.email, m.role, m.org_id,
	       e.id, e.title, e.starts_at, e.ends_at, e.location, e.status, e.capacity, e.org_id
	FROM volunteer_tasks t
	LEFT JOIN members m ON m.id = t.assignee_member_id
	JOIN events e ON e.id = t.event_id
`

// priorityRank orders Urgent > High > Medium > Low > unset in SQL.
const priorityRank = `
	CASE t.priority
		WHEN 'Urgent' THEN 4
		WHEN 'High' THEN 3
		WHEN 'Medium' THEN 2
		WHEN 'Low' THEN 1
		ELSE 0
	END
`

func (r *taskRepository) Create(ctx context.Context, t *domain.VolunteerTask) error {
	query := `
		INSERT INTO volunteer_tasks (title, status, priority, due_at, event_id, org_id, assignee_member_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var priority sql.NullString
	if t.Priority != nil {
		priority = sql.NullString{String: *t.Priority, Valid: true}
	}
	var dueAt sql.NullTime
	if t.DueAt != nil {
		dueAt = sql.NullTime{Time: *t.DueAt, Valid: true}
	}
	var assignee sql.NullInt64
	if t.AssigneeMemberID != nil {
		assignee = sql.NullInt64{Int64: int64(*t.AssigneeMemberID), Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		t.Title, t.Status, priority, dueAt, t.EventID, t.OrgID, assignee,
	).Scan(&t.ID)
}

// scanTaskBase scans the bare task columns shared by every task query.
func scanTaskBase(t *domain.VolunteerTask, priorityNull *sql.NullString, dueNull *sql.NullTime, assigneeNull *sql.NullInt64) []any {
	return []any{
		&t.ID, &t.Title, &t.Status, priorityNull, dueNull, &t.EventID, &t.OrgID, assigneeNull,
	}
}

func applyTaskNulls(t *domain.VolunteerTask, priorityNull sql.NullString, dueNull sql.NullTime, assigneeNull sql.NullInt64) {
	if priorityNull.Valid {
		t.Priority = &priorityNull.String
	}
	if dueNull.Valid {
		due := dueNull.Time
		t.DueAt = &due
	}
	if assigneeNull.Valid {
		id := int(assigneeNull.Int64)
		t.AssigneeMemberID = &id
	}
}

// scanTaskWithAssignee scans a task row left-joined with its optional assignee.
func scanTaskWithAssignee(scan func(dest ...any) error) (*domain.VolunteerTask, error) {
	t := &domain.VolunteerTask{}
	var priorityNull sql.NullString
	var dueNull sql.NullTime
	var assigneeNull sql.NullInt64
	var mID, mOrgID sql.NullInt64
	var mName, mEmail, mRole sql.NullString

	dest := scanTaskBase(t, &priorityNull, &dueNull, &assigneeNull)
	dest = append(dest, &mID, &mName, &mEmail, &mRole, &mOrgID)
	if err := scan(dest...); err != nil {
		return nil, err
	}
	applyTaskNulls(t, priorityNull, dueNull, assigneeNull)
	if mID.Valid {
		t.Assignee = &domain.Member{
			ID:       int(mID.Int64),
			FullName: mName.String,
			Email:    mEmail.String,
			Role:     mRole.String,
			OrgID:    int(mOrgID.Int64),
		}
	}
	return t, nil
}

// scanTaskFull scans a task row with assignee and parent event.
func scanTaskFull(scan func(dest ...any) error) (*domain.VolunteerTask, error) {
	t := &domain.VolunteerTask{Event: &domain.Event{}}
	var priorityNull sql.NullString
	var dueNull sql.NullTime
	var assigneeNull sql.NullInt64
	var mID, mOrgID sql.NullInt64
	var mName, mEmail, mRole sql.NullString
	var eLocationNull sql.NullString
	var eCapacityNull sql.NullInt64

	dest := scanTaskBase(t, &priorityNull, &dueNull, &assigneeNull)
	dest = append(dest, &mID, &mName, &mEmail, &mRole, &mOrgID)
	dest = append(dest,
		&t.Event.ID, &t.Event.Title, &t.Event.StartsAt, &t.Event.EndsAt,
		&eLocationNull, &t.Event.Status, &eCapacityNull, &t.Event.OrgID,
	)
	if err := scan(dest...); err != nil {
		return nil, err
	}
	applyTaskNulls(t, priorityNull, dueNull, assigneeNull)
	if mID.Valid {
		t.Assignee = &domain.Member{
			ID:       int(mID.Int64),
			FullName: mName.String,
			Email:    mEmail.String,
			Role:     mRole.String,
			OrgID:    int(mOrgID.Int64),
		}
	}
	if eLocationNull.Valid {
		t.Event.Location = &eLocationNull.String
	}
	if eCapacityNull.Valid {
		c := int(eCapacityNull.Int64)
		t.Event.Capacity = &c
	}
	return t, nil
}

func (r *taskRepository) GetWithRelations(ctx context.Context, id int) (*domain.VolunteerTask, error) {
	row := r.DB.QueryRowContext(ctx, taskListQuery+` WHERE t.id = $1`, id)
	t, err := scanTaskFull(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *taskRepository) listFull(ctx context.Context, where string, args ...any) ([]*domain.VolunteerTask, error) {
	rows, err := r.DB.QueryContext(ctx, taskListQuery+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.VolunteerTask, 0)
	for rows.Next() {
		t, err := scanTaskFull(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) ListByEvent(ctx context.Context, eventID int) ([]*domain.VolunteerTask, error) {
	return r.listFull(ctx, ` WHERE t.event_id = $1 ORDER BY t.id ASC`, eventID)
}

func (r *taskRepository) ListAll(ctx context.Context) ([]*domain.VolunteerTask, error) {
	return r.listFull(ctx, ` ORDER BY t.id ASC`)
}

func (r *taskRepository) ListByAssignee(ctx context.Context, memberID int) ([]*domain.VolunteerTask, error) {
	return r.listFull(ctx, ` WHERE t.assignee_member_id = $1 ORDER BY t.id ASC`, memberID)
}

func (r *taskRepository) Search(ctx context.Context, term string) ([]*domain.VolunteerTask, error) {
	return r.listFull(ctx, ` WHERE t.title ILIKE '%' || $1 || '%' ORDER BY t.id ASC`, term)
}

func (r *taskRepository) ListIncompleteByEvent(ctx context.Context, eventID int) ([]*domain.VolunteerTask, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM volunteer_tasks t
		WHERE t.event_id = $1 AND t.status <> $2
		ORDER BY t.due_at ASC NULLS LAST, ` + priorityRank + ` DESC, t.id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, domain.TaskStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.VolunteerTask, 0)
	for rows.Next() {
		t := &domain.VolunteerTask{}
		var priorityNull sql.NullString
		var dueNull sql.NullTime
		var assigneeNull sql.NullInt64
		if err := rows.Scan(scanTaskBase(t, &priorityNull, &dueNull, &assigneeNull)...); err != nil {
			return nil, err
		}
		applyTaskNulls(t, priorityNull, dueNull, assigneeNull)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id int, status string) (*domain.VolunteerTask, error) {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE volunteer_tasks SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return nil, err
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetWithRelations(ctx, id)
}
