package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-hr-events/internal/domain"
	"go-hr-events/internal/eventbus"
)

func newTestService() (*UserService, *memRepo, *memStore) {
	repo := newMemRepo()
	store := newMemStore()
	bus := eventbus.New(zap.NewNop())
	return NewUserService(repo, store, bus), repo, store
}

func anaInput() *domain.UserInput {
	return &domain.UserInput{
		Name:  strPtr("Ana"),
		Email: strPtr("ana@x.com"),
	}
}

func TestCreateUser(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, anaInput())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.True(t, user.IsActive)

	events, err := store.EventsFor(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.UserCreated, events[0].Type)
	assert.Equal(t, user.ID, events[0].AggregateID)
	assert.Equal(t, "Ana", events[0].Data["name"])
	assert.Equal(t, "ana@x.com", events[0].Data["email"])
}

func TestCreateUserInvalid(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	cases := []struct {
		name string
		in   *domain.UserInput
	}{
		{"missing email", &domain.UserInput{Name: strPtr("Ana")}},
		{"email without at", &domain.UserInput{Name: strPtr("Ana"), Email: strPtr("ana.x.com")}},
		{"unknown position", &domain.UserInput{Name: strPtr("Ana"), Email: strPtr("ana@x.com"), Position: strPtr("wizard")}},
		{"unknown department", &domain.UserInput{Name: strPtr("Ana"), Email: strPtr("ana@x.com"), Department: strPtr("magic")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateUser(ctx, tc.in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}
	assert.Empty(t, store.events, "invalid input must not record events")
}

func TestGetUserRecordsQuery(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, anaInput())
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, created.ID, i64Ptr(99))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.Name)

	events, _ := store.EventsFor(ctx, created.ID)
	require.Len(t, events, 2)
	assert.Equal(t, domain.UserQueried, events[1].Type)
	assert.Equal(t, int64(99), events[1].Data["queried_by"])
}

func TestGetUserMissing(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	got, err := svc.GetUser(ctx, 42, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, store.events, "missing user must not record a query event")
}

func TestDeleteKeepsHistory(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, anaInput())
	require.NoError(t, err)

	deleted, err := svc.DeleteUser(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := svc.GetUser(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, got, "soft-deleted user reads as absent")

	events, err := store.EventsFor(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.UserCreated, events[0].Type)
	assert.Equal(t, domain.UserDeleted, events[1].Type)
}

func TestDeleteMissing(t *testing.T) {
	svc, _, store := newTestService()

	deleted, err := svc.DeleteUser(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Empty(t, store.events)
}

func TestGetAllUsersRecordsFilters(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, anaInput())
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, &domain.UserInput{Name: strPtr("Bob"), Email: strPtr("bob@x.com")})
	require.NoError(t, err)

	users, err := svc.GetAllUsers(ctx, map[string]any{"department": "engineering"}, i64Ptr(1))
	require.NoError(t, err)
	assert.Len(t, users, 2, "filters are recorded, not applied")

	listEvents, err := store.EventsOfKind(ctx, domain.UserListQueried)
	require.NoError(t, err)
	require.Len(t, listEvents, 1)
	assert.Equal(t, int64(0), listEvents[0].AggregateID)
	filters, ok := listEvents[0].Data["filters"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "engineering", filters["department"])
}

func TestUpdateUserEmitsFieldEvents(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &domain.UserInput{
		Name:       strPtr("Ana"),
		Email:      strPtr("ana@x.com"),
		Phone:      strPtr("111"),
		Position:   strPtr(domain.PosJunior),
		Salary:     f64Ptr(5000),
		Department: strPtr(domain.DeptEngineering),
	})
	require.NoError(t, err)

	// change exactly three trackable fields
	updated, err := svc.UpdateUser(ctx, created.ID, &domain.UserInput{
		Name:       strPtr("Ana Silva"),
		Email:      strPtr("ana@x.com"),
		Phone:      strPtr("222"),
		Position:   strPtr(domain.PosJunior),
		Salary:     f64Ptr(6000),
		Department: strPtr(domain.DeptEngineering),
	}, i64Ptr(9))
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Ana Silva", updated.Name)

	events, _ := store.EventsFor(ctx, created.ID)
	types := make([]domain.EventType, 0, len(events))
	for _, e := range events[1:] { // skip UserCreated
		types = append(types, e.Type)
	}
	assert.Equal(t, []domain.EventType{
		domain.UserNameChanged,
		domain.UserPhoneChanged,
		domain.SalaryChanged,
		domain.UserUpdated,
	}, types)

	salaryEvents, _ := store.EventsOfKind(ctx, domain.SalaryChanged)
	require.Len(t, salaryEvents, 1)
	assert.Equal(t, float64(5000), salaryEvents[0].Data["old_salary"])
	assert.Equal(t, float64(6000), salaryEvents[0].Data["new_salary"])
	assert.Equal(t, int64(9), salaryEvents[0].Data["changed_by"])
}

func TestUpdateUserNoTrackableChange(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, anaInput())
	require.NoError(t, err)

	updated, err := svc.UpdateUser(ctx, created.ID, anaInput(), nil)
	require.NoError(t, err)
	require.NotNil(t, updated)

	events, _ := store.EventsFor(ctx, created.ID)
	require.Len(t, events, 2)
	assert.Equal(t, domain.UserUpdated, events[1].Type)
}

func TestUpdateUserMissing(t *testing.T) {
	svc, _, store := newTestService()

	updated, err := svc.UpdateUser(context.Background(), 42, anaInput(), nil)
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.Empty(t, store.events)
}

func TestUpdateUserDeactivation(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, anaInput())
	require.NoError(t, err)

	in := anaInput()
	in.IsActive = boolPtr(false)
	updated, err := svc.UpdateUser(ctx, created.ID, in, i64Ptr(3))
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.False(t, updated.IsActive)

	assert.Equal(t, []domain.EventType{
		domain.UserCreated,
		domain.UserDeactivated,
		domain.UserUpdated,
	}, store.types())

	deact, _ := store.EventsOfKind(ctx, domain.UserDeactivated)
	require.Len(t, deact, 1)
	assert.Equal(t, int64(3), deact[0].Data["deactivated_by"])
}

func TestChangePositionPromotion(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &domain.UserInput{
		Name:     strPtr("Ana"),
		Email:    strPtr("ana@x.com"),
		Position: strPtr(domain.PosJunior),
		Salary:   f64Ptr(5000),
	})
	require.NoError(t, err)

	updated, err := svc.ChangePosition(ctx, created.ID, domain.PosSenior, 7000, i64Ptr(2))
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, domain.PosSenior, updated.Position)
	assert.Equal(t, float64(7000), updated.Salary)

	events, _ := store.EventsFor(ctx, created.ID)
	types := make([]domain.EventType, 0, len(events))
	for _, e := range events[1:] {
		types = append(types, e.Type)
	}
	// the career event comes first, then the delegated update re-derives the
	// position and salary changes from its own diff
	assert.Equal(t, []domain.EventType{
		domain.UserPromoted,
		domain.PositionChanged,
		domain.SalaryChanged,
		domain.UserUpdated,
	}, types)

	promoted, _ := store.EventsOfKind(ctx, domain.UserPromoted)
	require.Len(t, promoted, 1)
	assert.Equal(t, domain.PosJunior, promoted[0].Data["old_position"])
	assert.Equal(t, domain.PosSenior, promoted[0].Data["new_position"])
	assert.Equal(t, float64(5000), promoted[0].Data["old_salary"])
	assert.Equal(t, float64(7000), promoted[0].Data["new_salary"])
}

func TestChangePositionDemotion(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &domain.UserInput{
		Name:     strPtr("Ana"),
		Email:    strPtr("ana@x.com"),
		Position: strPtr(domain.PosSenior),
		Salary:   f64Ptr(7000),
	})
	require.NoError(t, err)

	_, err = svc.ChangePosition(ctx, created.ID, domain.PosJunior, 5000, nil)
	require.NoError(t, err)

	demoted, _ := store.EventsOfKind(ctx, domain.UserDemoted)
	require.Len(t, demoted, 1)
}

func TestChangePositionLateral(t *testing.T) {
	svc, _, store := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &domain.UserInput{
		Name:     strPtr("Ana"),
		Email:    strPtr("ana@x.com"),
		Position: strPtr(domain.PosJunior),
		Salary:   f64Ptr(5000),
	})
	require.NoError(t, err)

	_, err = svc.ChangePosition(ctx, created.ID, domain.PosPleno, 5000, i64Ptr(2))
	require.NoError(t, err)

	assert.Empty(t, mustEvents(t, store, ctx, domain.UserPromoted))
	assert.Empty(t, mustEvents(t, store, ctx, domain.UserDemoted))

	// equal salary is neither promotion nor demotion: a lateral move records
	// PositionChanged twice, once directly and once from the update diff
	posChanged := mustEvents(t, store, ctx, domain.PositionChanged)
	require.Len(t, posChanged, 2)
	assert.Nil(t, posChanged[0].Data["changed_by"])
	assert.Equal(t, int64(2), posChanged[1].Data["changed_by"])
}

func TestChangePositionMissing(t *testing.T) {
	svc, _, store := newTestService()

	updated, err := svc.ChangePosition(context.Background(), 42, domain.PosSenior, 1, nil)
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.Empty(t, store.events)
}

func TestGetUserEventsIncludesOwnAudit(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, anaInput())
	require.NoError(t, err)

	events, err := svc.GetUserEvents(ctx, created.ID, i64Ptr(5))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.UserCreated, events[0].Type)
	assert.Equal(t, domain.UserEventsQueried, events[1].Type)
}

func TestLifecycleScenario(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, anaInput())
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := svc.GetUser(ctx, 1, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "ana@x.com", got.Email)

	deleted, err := svc.DeleteUser(ctx, 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	gone, err := svc.GetUser(ctx, 1, nil)
	require.NoError(t, err)
	assert.Nil(t, gone)

	history, err := svc.GetUserEvents(ctx, 1, nil)
	require.NoError(t, err)
	types := make([]domain.EventType, 0, len(history))
	for _, e := range history {
		types = append(types, e.Type)
	}
	assert.Equal(t, []domain.EventType{
		domain.UserCreated,
		domain.UserQueried,
		domain.UserDeleted,
		domain.UserEventsQueried,
	}, types)
}

func mustEvents(t *testing.T, store *memStore, ctx context.Context, kind domain.EventType) []domain.Event {
	t.Helper()
	events, err := store.EventsOfKind(ctx, kind)
	require.NoError(t, err)
	return events
}
