package domain

import "time"

// EventType enumerates every audit event this service records. The set is
// closed: adding a kind means adding a constructor here and reviewing every
// bus subscription that filters on it.
type EventType string

const (
	// lifecycle
	UserCreated     EventType = "user.created"
	UserUpdated     EventType = "user.updated"
	UserDeleted     EventType = "user.deleted"
	UserActivated   EventType = "user.activated"
	UserDeactivated EventType = "user.deactivated"

	// attribute changes
	UserNameChanged      EventType = "user.name.changed"
	UserEmailChanged     EventType = "user.email.changed"
	UserPhoneChanged     EventType = "user.phone.changed"
	UserAddressChanged   EventType = "user.address.changed"
	UserBirthDateChanged EventType = "user.birth_date.changed"

	// career
	PositionChanged       EventType = "user.position.changed"
	SalaryChanged         EventType = "user.salary.changed"
	DepartmentChanged     EventType = "user.department.changed"
	ManagerChanged        EventType = "user.manager.changed"
	EmploymentTypeChanged EventType = "user.employment_type.changed"
	UserHired             EventType = "user.hired"
	UserPromoted          EventType = "user.promoted"
	UserDemoted           EventType = "user.demoted"

	// query audit
	UserQueried       EventType = "user.queried"
	UserListQueried   EventType = "user.list.queried"
	UserEventsQueried EventType = "user.events.queried"
)

// AllEventTypes holds every kind, in catalog order. Used to subscribe
// catch-all handlers.
var AllEventTypes = []EventType{
	UserCreated, UserUpdated, UserDeleted, UserActivated, UserDeactivated,
	UserNameChanged, UserEmailChanged, UserPhoneChanged, UserAddressChanged,
	UserBirthDateChanged,
	PositionChanged, SalaryChanged, DepartmentChanged, ManagerChanged,
	EmploymentTypeChanged, UserHired, UserPromoted, UserDemoted,
	UserQueried, UserListQueried, UserEventsQueried,
}

// Event is an immutable audit record. ID is assigned by the event store on
// append; AggregateID is the subject user's id, or 0 for list-level queries.
type Event struct {
	ID          int64          `json:"event_id"`
	Type        EventType      `json:"event_type"`
	AggregateID int64          `json:"aggregate_id"`
	Data        map[string]any `json:"data"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

func newEvent(t EventType, aggregateID int64, data map[string]any) *Event {
	if data == nil {
		data = map[string]any{}
	}
	return &Event{
		Type:        t,
		AggregateID: aggregateID,
		Data:        data,
		OccurredAt:  time.Now(),
	}
}

// actor renders an optional acting-user id into a payload value; nil becomes
// JSON null so readers can tell "system" from a concrete employee.
func actor(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func NewUserCreated(userID int64, fields map[string]any) *Event {
	return newEvent(UserCreated, userID, fields)
}

func NewUserUpdated(userID int64, changes map[string]any) *Event {
	return newEvent(UserUpdated, userID, changes)
}

func NewUserDeleted(userID int64) *Event {
	return newEvent(UserDeleted, userID, map[string]any{})
}

func NewUserActivated(userID int64, activatedBy *int64) *Event {
	return newEvent(UserActivated, userID, map[string]any{"activated_by": actor(activatedBy)})
}

func NewUserDeactivated(userID int64, deactivatedBy *int64) *Event {
	return newEvent(UserDeactivated, userID, map[string]any{"deactivated_by": actor(deactivatedBy)})
}

func NewUserNameChanged(userID int64, oldName, newName string) *Event {
	return newEvent(UserNameChanged, userID, map[string]any{
		"old_name": oldName, "new_name": newName,
	})
}

func NewUserEmailChanged(userID int64, oldEmail, newEmail string) *Event {
	return newEvent(UserEmailChanged, userID, map[string]any{
		"old_email": oldEmail, "new_email": newEmail,
	})
}

func NewUserPhoneChanged(userID int64, oldPhone, newPhone string) *Event {
	return newEvent(UserPhoneChanged, userID, map[string]any{
		"old_phone": oldPhone, "new_phone": newPhone,
	})
}

func NewUserAddressChanged(userID int64, oldAddress, newAddress string) *Event {
	return newEvent(UserAddressChanged, userID, map[string]any{
		"old_address": oldAddress, "new_address": newAddress,
	})
}

func NewUserBirthDateChanged(userID int64, oldDate, newDate string) *Event {
	return newEvent(UserBirthDateChanged, userID, map[string]any{
		"old_birth_date": oldDate, "new_birth_date": newDate,
	})
}

func NewPositionChanged(userID int64, oldPos, newPos string, changedBy *int64) *Event {
	return newEvent(PositionChanged, userID, map[string]any{
		"old_position": oldPos, "new_position": newPos, "changed_by": actor(changedBy),
	})
}

func NewSalaryChanged(userID int64, oldSalary, newSalary float64, changedBy *int64) *Event {
	return newEvent(SalaryChanged, userID, map[string]any{
		"old_salary": oldSalary, "new_salary": newSalary, "changed_by": actor(changedBy),
	})
}

func NewDepartmentChanged(userID int64, oldDept, newDept string, changedBy *int64) *Event {
	return newEvent(DepartmentChanged, userID, map[string]any{
		"old_department": oldDept, "new_department": newDept, "changed_by": actor(changedBy),
	})
}

func NewManagerChanged(userID int64, oldManager, newManager *int64, changedBy *int64) *Event {
	return newEvent(ManagerChanged, userID, map[string]any{
		"old_manager_id": actor(oldManager), "new_manager_id": actor(newManager),
		"changed_by": actor(changedBy),
	})
}

func NewEmploymentTypeChanged(userID int64, oldType, newType string, changedBy *int64) *Event {
	return newEvent(EmploymentTypeChanged, userID, map[string]any{
		"old_employment_type": oldType, "new_employment_type": newType,
		"changed_by": actor(changedBy),
	})
}

func NewUserHired(userID int64, hireDate, position, department string, salary float64) *Event {
	return newEvent(UserHired, userID, map[string]any{
		"hire_date": hireDate, "position": position,
		"department": department, "salary": salary,
	})
}

func NewUserPromoted(userID int64, oldPos, newPos string, oldSalary, newSalary float64) *Event {
	return newEvent(UserPromoted, userID, map[string]any{
		"old_position": oldPos, "new_position": newPos,
		"old_salary": oldSalary, "new_salary": newSalary,
	})
}

func NewUserDemoted(userID int64, oldPos, newPos string, oldSalary, newSalary float64) *Event {
	return newEvent(UserDemoted, userID, map[string]any{
		"old_position": oldPos, "new_position": newPos,
		"old_salary": oldSalary, "new_salary": newSalary,
	})
}

func NewUserQueried(userID int64, queriedBy *int64) *Event {
	return newEvent(UserQueried, userID, map[string]any{"queried_by": actor(queriedBy)})
}

func NewUserListQueried(filters map[string]any, queriedBy *int64) *Event {
	if filters == nil {
		filters = map[string]any{}
	}
	return newEvent(UserListQueried, 0, map[string]any{
		"filters": filters, "queried_by": actor(queriedBy),
	})
}

func NewUserEventsQueried(userID int64, queriedBy *int64) *Event {
	return newEvent(UserEventsQueried, userID, map[string]any{"queried_by": actor(queriedBy)})
}
