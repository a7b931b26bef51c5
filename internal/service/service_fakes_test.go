package service

import (
	"context"
	"sort"

	"go-hr-events/internal/domain"
)

// in-memory doubles for the repository and the event store

type memRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, users: map[int64]*domain.User{}}
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || !u.IsActive {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.users[u.ID] = &cp
	return u, nil
}

func (r *memRepo) GetAll(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.IsActive {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) Update(_ context.Context, id int64, u *domain.User) (*domain.User, error) {
	if _, ok := r.users[id]; !ok {
		return nil, nil
	}
	cp := *u
	cp.ID = id
	r.users[id] = &cp
	out := cp
	return &out, nil
}

func (r *memRepo) Delete(_ context.Context, id int64) (bool, error) {
	u, ok := r.users[id]
	if !ok || !u.IsActive {
		return false, nil
	}
	u.IsActive = false
	return true, nil
}

func (r *memRepo) ListAll(_ context.Context, includeInactive bool) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if includeInactive || u.IsActive {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) SetActive(_ context.Context, id int64, active bool) (bool, error) {
	u, ok := r.users[id]
	if !ok || u.IsActive == active {
		return false, nil
	}
	u.IsActive = active
	return true, nil
}

type memStore struct {
	nextID int64
	events []domain.Event
}

func newMemStore() *memStore { return &memStore{nextID: 1} }

func (s *memStore) Append(_ context.Context, e *domain.Event) (int64, error) {
	e.ID = s.nextID
	s.nextID++
	s.events = append(s.events, *e)
	return e.ID, nil
}

func (s *memStore) EventsFor(_ context.Context, aggregateID int64) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range s.events {
		if e.AggregateID == aggregateID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memStore) EventsOfKind(_ context.Context, t domain.EventType) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range s.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memStore) types() []domain.EventType {
	out := make([]domain.EventType, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Type)
	}
	return out
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }
func i64Ptr(i int64) *int64     { return &i }
