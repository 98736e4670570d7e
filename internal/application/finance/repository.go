package finance

import (
	"context"
	"fmt"
	"sync"

	"github.com/money/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AppendRecorder counts events after they are durably appended
type AppendRecorder interface {
	RecordEventsAppended(ctx context.Context, events []shared.DomainEvent)
}

// EventSourcedRepository loads aggregates from their history and saves new
// events with an optimistic version check, then publishes them
type EventSourcedRepository struct {
	store     shared.EventStore
	publisher shared.EventPublisher
	metrics   AppendRecorder
	logger    *zap.Logger
	locks     keyLocks
}

// keyLocks hands out one mutex per aggregate key. Entries are dropped once
// no writer holds or waits for them.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sync.Mutex
	refs int
}

func (l *keyLocks) lock(key string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*keyLock)
	}
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	kl.Lock()
	return func() {
		kl.Unlock()
		l.mu.Lock()
		kl.refs--
		if kl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// NewEventSourcedRepository creates a repository. metrics may be nil.
func NewEventSourcedRepository(store shared.EventStore, publisher shared.EventPublisher, metrics AppendRecorder, logger *zap.Logger) *EventSourcedRepository {
	return &EventSourcedRepository{
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Save appends the aggregate's uncommitted events at its original version.
// Read models are only notified after the append succeeded. A publish
// failure is logged: the events are durable and projections can be rebuilt.
//
// Append and publish run under a per-aggregate lock so handlers receive one
// aggregate's events in sequence order.
func (r *EventSourcedRepository) Save(ctx context.Context, agg shared.AggregateRoot) error {
	expected := agg.OriginalVersion()
	events := agg.UncommittedEvents()
	if len(events) == 0 {
		return nil
	}

	unlock := r.locks.lock(agg.Key().String())
	defer unlock()

	if err := r.store.Append(ctx, agg.Key(), expected, events); err != nil {
		return err
	}
	if r.metrics != nil {
		r.metrics.RecordEventsAppended(ctx, events)
	}

	if err := r.publisher.Publish(ctx, events...); err != nil {
		r.logger.Warn("appended events were not published",
			zap.String("aggregate_key", agg.Key().String()),
			zap.Int("events", len(events)),
			zap.Error(err),
		)
	}
	return nil
}

// load rebuilds the aggregate of the given type from its history.
// A key without history is not found.
func load[A shared.AggregateRoot](ctx context.Context, r *EventSourcedRepository, key shared.Key, aggregateType string,
	rebuild func(shared.Key, []shared.DomainEvent) (A, error)) (A, error) {
	var zero A
	if key.IsEmpty() || key.Type != aggregateType {
		return zero, shared.NewValidationError(fmt.Sprintf("%s is not a %s key", key, aggregateType))
	}

	history, err := r.store.ReadHistory(ctx, key)
	if err != nil {
		return zero, err
	}
	if len(history) == 0 {
		return zero, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("%s not found", key))
	}
	return rebuild(key, history)
}
