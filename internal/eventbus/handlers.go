package eventbus

import (
	"go.uber.org/zap"

	"go-hr-events/internal/domain"
)

// Side-effect subscribers. They only log; the event store already holds the
// durable trail, so losing one of these on failure costs nothing.

// LogHandler records every event that passes through the bus.
func LogHandler(l *zap.Logger) Handler {
	return func(e *domain.Event) error {
		l.Info("event",
			zap.String("event_type", string(e.Type)),
			zap.Int64("user_id", e.AggregateID),
			zap.Any("data", e.Data),
			zap.Time("occurred_at", e.OccurredAt),
		)
		return nil
	}
}

// PositionChangeNotificationHandler notifies on lateral position changes.
func PositionChangeNotificationHandler(l *zap.Logger) Handler {
	return func(e *domain.Event) error {
		l.Info("position change notification",
			zap.Int64("user_id", e.AggregateID),
			zap.Any("old_position", e.Data["old_position"]),
			zap.Any("new_position", e.Data["new_position"]),
		)
		return nil
	}
}

// SalaryChangeAuditHandler audits salary changes, including who made them.
func SalaryChangeAuditHandler(l *zap.Logger) Handler {
	return func(e *domain.Event) error {
		changedBy := e.Data["changed_by"]
		if changedBy == nil {
			changedBy = "system"
		}
		l.Info("salary change audit",
			zap.Int64("user_id", e.AggregateID),
			zap.Any("old_salary", e.Data["old_salary"]),
			zap.Any("new_salary", e.Data["new_salary"]),
			zap.Any("changed_by", changedBy),
		)
		return nil
	}
}

// DepartmentChangeHandler processes department moves.
func DepartmentChangeHandler(l *zap.Logger) Handler {
	return func(e *domain.Event) error {
		l.Info("department change",
			zap.Int64("user_id", e.AggregateID),
			zap.Any("old_department", e.Data["old_department"]),
			zap.Any("new_department", e.Data["new_department"]),
		)
		return nil
	}
}

// UserActivationHandler processes activations and deactivations.
func UserActivationHandler(l *zap.Logger) Handler {
	return func(e *domain.Event) error {
		action := "activated"
		if e.Type == domain.UserDeactivated {
			action = "deactivated"
		}
		l.Info("user status change",
			zap.Int64("user_id", e.AggregateID),
			zap.String("action", action),
		)
		return nil
	}
}

// CareerMoveHandler classifies promoted/demoted events by salary delta.
func CareerMoveHandler(l *zap.Logger) Handler {
	return func(e *domain.Event) error {
		changeType := "lateral"
		oldSalary, okOld := e.Data["old_salary"].(float64)
		newSalary, okNew := e.Data["new_salary"].(float64)
		if okOld && okNew {
			switch {
			case newSalary > oldSalary:
				changeType = "promotion"
			case newSalary < oldSalary:
				changeType = "demotion"
			}
		}
		l.Info("career move",
			zap.Int64("user_id", e.AggregateID),
			zap.String("change_type", changeType),
			zap.Any("old_position", e.Data["old_position"]),
			zap.Any("new_position", e.Data["new_position"]),
		)
		return nil
	}
}

// QueryAuditHandler audits read access.
func QueryAuditHandler(l *zap.Logger) Handler {
	return func(e *domain.Event) error {
		queriedBy := e.Data["queried_by"]
		if queriedBy == nil {
			queriedBy = "unknown"
		}
		l.Info("query audit",
			zap.String("event_type", string(e.Type)),
			zap.Int64("user_id", e.AggregateID),
			zap.Any("queried_by", queriedBy),
		)
		return nil
	}
}

// SubscribeDefaults wires the standard subscriber set: the log handler on
// every kind, then the targeted handlers on theirs.
func SubscribeDefaults(b *Bus, l *zap.Logger) {
	logh := LogHandler(l)
	for _, t := range domain.AllEventTypes {
		b.Subscribe(t, logh)
	}

	b.Subscribe(domain.PositionChanged, PositionChangeNotificationHandler(l))
	b.Subscribe(domain.SalaryChanged, SalaryChangeAuditHandler(l))
	b.Subscribe(domain.DepartmentChanged, DepartmentChangeHandler(l))
	b.Subscribe(domain.UserActivated, UserActivationHandler(l))
	b.Subscribe(domain.UserDeactivated, UserActivationHandler(l))
	b.Subscribe(domain.UserPromoted, CareerMoveHandler(l))
	b.Subscribe(domain.UserDemoted, CareerMoveHandler(l))
	b.Subscribe(domain.UserQueried, QueryAuditHandler(l))
	b.Subscribe(domain.UserListQueried, QueryAuditHandler(l))
	b.Subscribe(domain.UserEventsQueried, QueryAuditHandler(l))
}
