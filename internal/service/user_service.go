package service

import (
	"context"
	"fmt"
	"time"

	"go-hr-events/internal/core/cache"
	"go-hr-events/internal/domain"
	"go-hr-events/internal/eventbus"
	"go-hr-events/internal/eventstore"
)

// UserService orchestrates employee CRUD and records the audit trail: every
// domain-relevant change is appended to the event store and then published on
// the bus. The service owns no state of its own.
type UserService struct {
	repo  domain.UserRepository
	store eventstore.Store
	bus   *eventbus.Bus

	cache    *cache.Cache
	cacheTTL time.Duration
}

func NewUserService(repo domain.UserRepository, store eventstore.Store, bus *eventbus.Bus) *UserService {
	return &UserService{repo: repo, store: store, bus: bus}
}

// WithCache enables the read-through user cache. Safe to skip entirely; every
// path is nil-checked.
func (s *UserService) WithCache(c *cache.Cache, ttl time.Duration) *UserService {
	s.cache = c
	s.cacheTTL = ttl
	return s
}

// record appends the event, then fans it out. Append failures propagate to
// the caller; publish never fails (the bus swallows handler errors). There is
// no compensation: if append fails after a repository write, the write stands
// and the event is lost.
func (s *UserService) record(ctx context.Context, e *domain.Event) error {
	if _, err := s.store.Append(ctx, e); err != nil {
		return err
	}
	s.bus.Publish(e)
	return nil
}

func userCacheKey(id int64) string { return fmt.Sprintf("hr:user:%d", id) }

func (s *UserService) invalidate(ctx context.Context, id int64) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userCacheKey(id))
	}
}

// GetUser fetches an active user and records the query in the audit trail.
// Not-found is (nil, nil).
func (s *UserService) GetUser(ctx context.Context, id int64, queriedBy *int64) (*domain.User, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if err := s.record(ctx, domain.NewUserQueried(id, queriedBy)); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) loadUser(ctx context.Context, id int64) (*domain.User, error) {
	if s.cache == nil {
		return s.repo.GetByID(ctx, id)
	}
	return cache.GetOrLoadJSON[domain.User](s.cache, ctx, userCacheKey(id), s.cacheTTL,
		func(ctx context.Context) (*domain.User, error) {
			return s.repo.GetByID(ctx, id)
		})
}

// CreateUser validates and persists a new employee, then records UserCreated
// with the submitted fields as payload.
func (s *UserService) CreateUser(ctx context.Context, in *domain.UserInput) (*domain.User, error) {
	user, err := domain.NewUser(in)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := s.record(ctx, domain.NewUserCreated(created.ID, in.Fields())); err != nil {
		return nil, err
	}
	return created, nil
}

// GetAllUsers returns the active users. Filters are recorded verbatim in the
// UserListQueried payload but not applied to the query.
func (s *UserService) GetAllUsers(ctx context.Context, filters map[string]any, queriedBy *int64) ([]domain.User, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.record(ctx, domain.NewUserListQueried(filters, queriedBy)); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser replaces the full record. Before writing, it diffs the submitted
// fields against the current state and records one field-specific event per
// changed trackable field, plus an activation/deactivation event if is_active
// flips. The generic UserUpdated event follows a successful write.
//
// Field events are recorded before the repository write, so they land in the
// log even when the write subsequently finds no row.
func (s *UserService) UpdateUser(ctx context.Context, id int64, in *domain.UserInput, changedBy *int64) (*domain.User, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	if err := s.recordFieldChanges(ctx, id, current, in, changedBy); err != nil {
		return nil, err
	}

	if in.IsActive != nil && *in.IsActive != current.IsActive {
		var e *domain.Event
		if *in.IsActive {
			e = domain.NewUserActivated(id, changedBy)
		} else {
			e = domain.NewUserDeactivated(id, changedBy)
		}
		if err := s.record(ctx, e); err != nil {
			return nil, err
		}
	}

	user, err := domain.NewUser(in)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, user)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	if updated == nil {
		return nil, nil
	}

	if err := s.record(ctx, domain.NewUserUpdated(id, in.Fields())); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *UserService) recordFieldChanges(ctx context.Context, id int64, current *domain.User, in *domain.UserInput, changedBy *int64) error {
	var events []*domain.Event

	if in.Name != nil && *in.Name != current.Name {
		events = append(events, domain.NewUserNameChanged(id, current.Name, *in.Name))
	}
	if in.Email != nil && *in.Email != current.Email {
		events = append(events, domain.NewUserEmailChanged(id, current.Email, *in.Email))
	}
	if in.Phone != nil && *in.Phone != current.Phone {
		events = append(events, domain.NewUserPhoneChanged(id, current.Phone, *in.Phone))
	}
	if in.Address != nil && *in.Address != current.Address {
		events = append(events, domain.NewUserAddressChanged(id, current.Address, *in.Address))
	}
	if in.Position != nil && *in.Position != current.Position {
		events = append(events, domain.NewPositionChanged(id, current.Position, *in.Position, changedBy))
	}
	if in.Salary != nil && *in.Salary != current.Salary {
		events = append(events, domain.NewSalaryChanged(id, current.Salary, *in.Salary, changedBy))
	}
	if in.Department != nil && *in.Department != current.Department {
		events = append(events, domain.NewDepartmentChanged(id, current.Department, *in.Department, changedBy))
	}
	if in.ManagerID != nil && (current.ManagerID == nil || *current.ManagerID != *in.ManagerID) {
		events = append(events, domain.NewManagerChanged(id, current.ManagerID, in.ManagerID, changedBy))
	}
	if in.EmploymentType != nil && *in.EmploymentType != current.EmploymentType {
		events = append(events, domain.NewEmploymentTypeChanged(id, current.EmploymentType, *in.EmploymentType, changedBy))
	}

	for _, e := range events {
		if err := s.record(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// DeleteUser soft-deletes (deactivates) the user and records UserDeleted. The
// event history for the id stays queryable.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}
	s.invalidate(ctx, id)
	if err := s.record(ctx, domain.NewUserDeleted(id)); err != nil {
		return false, err
	}
	return true, nil
}

// GetUserEvents returns the ordered event history for the user. The audit
// event for this very call is appended first, so it is part of the returned
// history.
func (s *UserService) GetUserEvents(ctx context.Context, id int64, queriedBy *int64) ([]domain.Event, error) {
	if err := s.record(ctx, domain.NewUserEventsQueried(id, queriedBy)); err != nil {
		return nil, err
	}
	return s.store.EventsFor(ctx, id)
}

// ChangePosition classifies the move by salary delta (promotion, demotion, or
// lateral), records the career event, then delegates to UpdateUser with a
// full snapshot carrying the new position and salary. The delegated update
// re-derives PositionChanged/SalaryChanged from its own diff, so one logical
// position change yields at least two career events in the log.
func (s *UserService) ChangePosition(ctx context.Context, id int64, newPosition string, newSalary float64, changedBy *int64) (*domain.User, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	var e *domain.Event
	switch {
	case newSalary > current.Salary:
		e = domain.NewUserPromoted(id, current.Position, newPosition, current.Salary, newSalary)
	case newSalary < current.Salary:
		e = domain.NewUserDemoted(id, current.Position, newPosition, current.Salary, newSalary)
	default:
		e = domain.NewPositionChanged(id, current.Position, newPosition, nil)
	}
	if err := s.record(ctx, e); err != nil {
		return nil, err
	}

	snapshot := &domain.UserInput{
		Name:           &current.Name,
		Email:          &current.Email,
		IsActive:       &current.IsActive,
		Phone:          &current.Phone,
		Salary:         &newSalary,
		Position:       &newPosition,
		Department:     &current.Department,
		EmploymentType: &current.EmploymentType,
		ManagerID:      current.ManagerID,
		HireDate:       &current.HireDate,
		BirthDate:      &current.BirthDate,
		Address:        &current.Address,
	}
	return s.UpdateUser(ctx, id, snapshot, changedBy)
}
