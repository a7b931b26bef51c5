package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ip(i int64) *int64 { return &i }

func TestNewEventBasics(t *testing.T) {
	before := time.Now()
	e := NewUserDeleted(7)
	assert.Equal(t, UserDeleted, e.Type)
	assert.Equal(t, int64(7), e.AggregateID)
	assert.Zero(t, e.ID, "the store assigns the id on append")
	assert.NotNil(t, e.Data)
	assert.False(t, e.OccurredAt.Before(before))
}

func TestActorPayloads(t *testing.T) {
	withActor := NewUserQueried(1, ip(9))
	assert.Equal(t, int64(9), withActor.Data["queried_by"])

	anonymous := NewUserQueried(1, nil)
	v, present := anonymous.Data["queried_by"]
	assert.True(t, present)
	assert.Nil(t, v, "unknown actor is an explicit null, not a missing key")
}

func TestFieldChangePayloads(t *testing.T) {
	name := NewUserNameChanged(1, "Ana", "Ana Silva")
	assert.Equal(t, map[string]any{"old_name": "Ana", "new_name": "Ana Silva"}, name.Data)

	salary := NewSalaryChanged(1, 5000, 6000, ip(2))
	assert.Equal(t, map[string]any{
		"old_salary": float64(5000), "new_salary": float64(6000), "changed_by": int64(2),
	}, salary.Data)

	birth := NewUserBirthDateChanged(1, "1990-01-01", "1990-01-02")
	assert.Equal(t, map[string]any{
		"old_birth_date": "1990-01-01", "new_birth_date": "1990-01-02",
	}, birth.Data)
}

func TestManagerChangedNullableEnds(t *testing.T) {
	e := NewManagerChanged(1, nil, ip(4), ip(2))
	assert.Nil(t, e.Data["old_manager_id"])
	assert.Equal(t, int64(4), e.Data["new_manager_id"])
	assert.Equal(t, int64(2), e.Data["changed_by"])
}

func TestCareerEventPayloads(t *testing.T) {
	promoted := NewUserPromoted(1, PosJunior, PosSenior, 5000, 7000)
	assert.Equal(t, UserPromoted, promoted.Type)
	assert.Equal(t, map[string]any{
		"old_position": PosJunior, "new_position": PosSenior,
		"old_salary": float64(5000), "new_salary": float64(7000),
	}, promoted.Data)

	demoted := NewUserDemoted(1, PosSenior, PosJunior, 7000, 5000)
	assert.Equal(t, UserDemoted, demoted.Type)

	hired := NewUserHired(1, "2024-01-15", PosJunior, DeptEngineering, 5000)
	assert.Equal(t, UserHired, hired.Type)
	assert.Equal(t, "2024-01-15", hired.Data["hire_date"])
}

func TestListQueriedAggregateZero(t *testing.T) {
	e := NewUserListQueried(nil, nil)
	assert.Equal(t, int64(0), e.AggregateID)
	filters, ok := e.Data["filters"].(map[string]any)
	require.True(t, ok)
	assert.Empty(t, filters, "nil filters normalize to an empty map")
}

func TestAllEventTypesCoversConstructors(t *testing.T) {
	seen := map[EventType]struct{}{}
	for _, et := range AllEventTypes {
		_, dup := seen[et]
		assert.False(t, dup, "duplicate kind %s", et)
		seen[et] = struct{}{}
	}
	assert.Len(t, AllEventTypes, 21)
}
