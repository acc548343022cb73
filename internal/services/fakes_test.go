package services

import (
	"context"
	"strings"
	"time"

	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[int]*domain.Event
	nextID int
	err    error // if set, every method returns this error
}

func newFakeEventRepo(events ...*domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{byID: make(map[int]*domain.Event), nextID: 1}
	for _, e := range events {
		if e.ID == 0 {
			e.ID = f.nextID
		}
		if e.ID >= f.nextID {
			f.nextID = e.ID + 1
		}
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = f.nextID
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetWithRelations(ctx context.Context, id int) (*domain.Event, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeEventRepo) ListWithRelations(ctx context.Context) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Event, 0, len(f.byID))
	for id := 1; id < f.nextID; id++ {
		if e, ok := f.byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Search(ctx context.Context, term string) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for id := 1; id < f.nextID; id++ {
		e, ok := f.byID[id]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(e.Title), strings.ToLower(term)) {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeTaskRepo is an in-memory TaskRepository for tests. ListIncompleteByEvent
// returns tasks in insertion order; tests that care about ordering insert in
// the order the real repository would return.
type fakeTaskRepo struct {
	byID   map[int]*domain.VolunteerTask
	order  []int
	nextID int
	err    error
}

func newFakeTaskRepo(tasks ...*domain.VolunteerTask) *fakeTaskRepo {
	f := &fakeTaskRepo{byID: make(map[int]*domain.VolunteerTask), nextID: 1}
	for _, t := range tasks {
		if t.ID == 0 {
			t.ID = f.nextID
		}
		if t.ID >= f.nextID {
			f.nextID = t.ID + 1
		}
		f.byID[t.ID] = t
		f.order = append(f.order, t.ID)
	}
	return f
}

func (f *fakeTaskRepo) Create(ctx context.Context, t *domain.VolunteerTask) error {
	if f.err != nil {
		return f.err
	}
	t.ID = f.nextID
	f.nextID++
	f.byID[t.ID] = t
	f.order = append(f.order, t.ID)
	return nil
}

func (f *fakeTaskRepo) GetWithRelations(ctx context.Context, id int) (*domain.VolunteerTask, error) {
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := f.byID[id]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTaskRepo) ListByEvent(ctx context.Context, eventID int) ([]*domain.VolunteerTask, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.VolunteerTask
	for _, id := range f.order {
		if t := f.byID[id]; t.EventID == eventID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListAll(ctx context.Context) ([]*domain.VolunteerTask, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.VolunteerTask, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeTaskRepo) ListByAssignee(ctx context.Context, memberID int) ([]*domain.VolunteerTask, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.VolunteerTask
	for _, id := range f.order {
		t := f.byID[id]
		if t.AssigneeMemberID != nil && *t.AssigneeMemberID == memberID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) ListIncompleteByEvent(ctx context.Context, eventID int) ([]*domain.VolunteerTask, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.VolunteerTask
	for _, id := range f.order {
		t := f.byID[id]
		if t.EventID == eventID && t.Status != domain.TaskStatusCompleted {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) UpdateStatus(ctx context.Context, id int, status string) (*domain.VolunteerTask, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	t.Status = status
	return t, nil
}

func (f *fakeTaskRepo) Search(ctx context.Context, term string) ([]*domain.VolunteerTask, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.VolunteerTask
	for _, id := range f.order {
		t := f.byID[id]
		if strings.Contains(strings.ToLower(t.Title), strings.ToLower(term)) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Helpers shared by the risk and email tests.

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

// fixedNow is the reference instant the core service tests evaluate against.
var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }
