package service

import (
	"context"

	"go-hr-events/internal/core/cache"
	"go-hr-events/internal/domain"
	"go-hr-events/internal/eventbus"
	"go-hr-events/internal/eventstore"
)

// AdminService backs the operator surface. It shares the event stack with
// UserService so operator actions land in the same audit trail.
type AdminService struct {
	repo  domain.AdminUserRepository
	store eventstore.Store
	bus   *eventbus.Bus
	cache *cache.Cache
}

func NewAdminService(repo domain.AdminUserRepository, store eventstore.Store, bus *eventbus.Bus) *AdminService {
	return &AdminService{repo: repo, store: store, bus: bus}
}

// WithCache lets operator writes invalidate the public read-through cache.
func (s *AdminService) WithCache(c *cache.Cache) *AdminService {
	s.cache = c
	return s
}

func (s *AdminService) record(ctx context.Context, e *domain.Event) error {
	if _, err := s.store.Append(ctx, e); err != nil {
		return err
	}
	s.bus.Publish(e)
	return nil
}

// ListUsers lists employees, optionally including soft-deleted rows, and
// records the query in the audit trail.
func (s *AdminService) ListUsers(ctx context.Context, includeInactive bool, queriedBy *int64) ([]domain.User, error) {
	users, err := s.repo.ListAll(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	filters := map[string]any{"scope": "admin", "include_inactive": includeInactive}
	if err := s.record(ctx, domain.NewUserListQueried(filters, queriedBy)); err != nil {
		return nil, err
	}
	return users, nil
}

// SetUserActive reactivates or deactivates an employee and records the
// matching activation event. Reports false when nothing changed.
func (s *AdminService) SetUserActive(ctx context.Context, id int64, active bool, changedBy *int64) (bool, error) {
	changed, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return false, err
	}
	if !changed {
		return false, nil
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, userCacheKey(id))
	}
	var e *domain.Event
	if active {
		e = domain.NewUserActivated(id, changedBy)
	} else {
		e = domain.NewUserDeactivated(id, changedBy)
	}
	if err := s.record(ctx, e); err != nil {
		return false, err
	}
	return true, nil
}

// EventsOfKind exposes the by-kind audit query to operators. Read-only, so
// no audit event of its own.
func (s *AdminService) EventsOfKind(ctx context.Context, t domain.EventType) ([]domain.Event, error) {
	return s.store.EventsOfKind(ctx, t)
}
