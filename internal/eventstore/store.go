package eventstore

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"gorm.io/gorm"

	"go-hr-events/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store is the append-only audit log. Append assigns the sequential id and
// never mutates an existing row; reads come back ascending by assigned id.
type Store interface {
	Append(ctx context.Context, e *domain.Event) (int64, error)
	EventsFor(ctx context.Context, aggregateID int64) ([]domain.Event, error)
	EventsOfKind(ctx context.Context, t domain.EventType) ([]domain.Event, error)
}

// EventRecord is the events table row. The payload is stored as rendered
// JSON text; there is no schema versioning, a payload shape change breaks old
// rows on read.
type EventRecord struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	EventType   string `gorm:"size:64;not null;index:idx_events_aggregate_type,priority:2;index:idx_events_type"`
	AggregateID int64  `gorm:"not null;index:idx_events_aggregate_type,priority:1"`
	Data        string `gorm:"type:text;not null"`
	OccurredAt  string `gorm:"size:40;not null"`
}

func (EventRecord) TableName() string { return "events" }

type GormStore struct{ db *gorm.DB }

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) Append(ctx context.Context, e *domain.Event) (int64, error) {
	rec, err := toRecord(e)
	if err != nil {
		return 0, err
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return 0, fmt.Errorf("append event %s: %w", e.Type, err)
	}
	e.ID = rec.ID
	return rec.ID, nil
}

func (s *GormStore) EventsFor(ctx context.Context, aggregateID int64) ([]domain.Event, error) {
	var recs []EventRecord
	err := s.db.WithContext(ctx).
		Where("aggregate_id = ?", aggregateID).
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("load events for aggregate %d: %w", aggregateID, err)
	}
	return fromRecords(recs)
}

func (s *GormStore) EventsOfKind(ctx context.Context, t domain.EventType) ([]domain.Event, error) {
	var recs []EventRecord
	err := s.db.WithContext(ctx).
		Where("event_type = ?", string(t)).
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("load events of kind %s: %w", t, err)
	}
	return fromRecords(recs)
}

func toRecord(e *domain.Event) (*EventRecord, error) {
	data, err := json.MarshalToString(e.Data)
	if err != nil {
		return nil, fmt.Errorf("marshal payload of %s: %w", e.Type, err)
	}
	return &EventRecord{
		EventType:   string(e.Type),
		AggregateID: e.AggregateID,
		Data:        data,
		OccurredAt:  e.OccurredAt.Format(time.RFC3339Nano),
	}, nil
}

func fromRecord(rec EventRecord) (domain.Event, error) {
	var data map[string]any
	if err := json.UnmarshalFromString(rec.Data, &data); err != nil {
		return domain.Event{}, fmt.Errorf("unmarshal payload of event %d: %w", rec.ID, err)
	}
	occurredAt, err := time.Parse(time.RFC3339Nano, rec.OccurredAt)
	if err != nil {
		return domain.Event{}, fmt.Errorf("parse occurred_at of event %d: %w", rec.ID, err)
	}
	return domain.Event{
		ID:          rec.ID,
		Type:        domain.EventType(rec.EventType),
		AggregateID: rec.AggregateID,
		Data:        data,
		OccurredAt:  occurredAt,
	}, nil
}

func fromRecords(recs []EventRecord) ([]domain.Event, error) {
	out := make([]domain.Event, 0, len(recs))
	for _, rec := range recs {
		e, err := fromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
