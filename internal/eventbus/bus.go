package eventbus

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"go-hr-events/internal/domain"
)

var eventsPublished = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "hr_events_published_total", Help: "Count of domain events published on the bus"},
	[]string{"event_type"},
)

func init() { prometheus.MustRegister(eventsPublished) }

// Handler reacts to one published event. Returned errors are logged at the
// publish site and never reach the publisher.
type Handler func(e *domain.Event) error

// Bus is a synchronous in-process fan-out from event type to handlers.
// Publish runs every handler inline, in registration order; a failing or
// panicking handler never stops the rest. Durability is the event store's
// job, not the bus's: nothing published here survives a restart.
type Bus struct {
	log *zap.Logger

	mu   sync.RWMutex
	subs map[domain.EventType][]Handler
}

func New(log *zap.Logger) *Bus {
	return &Bus{
		log:  log,
		subs: make(map[domain.EventType][]Handler),
	}
}

func (b *Bus) Subscribe(t domain.EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[t] = append(b.subs[t], h)
}

func (b *Bus) Publish(e *domain.Event) {
	b.mu.RLock()
	handlers := b.subs[e.Type]
	b.mu.RUnlock()

	eventsPublished.WithLabelValues(string(e.Type)).Inc()
	for _, h := range handlers {
		b.dispatch(h, e)
	}
}

func (b *Bus) dispatch(h Handler, e *domain.Event) {
	defer func() {
		if rec := recover(); rec != nil {
			b.log.Error("event handler panicked",
				zap.String("event_type", string(e.Type)),
				zap.Int64("aggregate_id", e.AggregateID),
				zap.String("panic", fmt.Sprint(rec)),
			)
		}
	}()
	if err := h(e); err != nil {
		b.log.Error("event handler failed",
			zap.String("event_type", string(e.Type)),
			zap.Int64("aggregate_id", e.AggregateID),
			zap.Error(err),
		)
	}
}
