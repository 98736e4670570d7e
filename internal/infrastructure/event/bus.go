package event

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/money/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// FailureRecorder counts projection handler failures
type FailureRecorder interface {
	RecordProjectionFailure(ctx context.Context, handler string)
}

type nopFailureRecorder struct{}

func (nopFailureRecorder) RecordProjectionFailure(context.Context, string) {}

// InMemoryEventBus delivers events synchronously in the publisher's goroutine.
// It is used for projection rebuilds and tests.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	failures FailureRecorder
	running  atomic.Bool
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
		failures: nopFailureRecorder{},
	}
}

// SetFailureRecorder sets where handler failures are counted
func (b *InMemoryEventBus) SetFailureRecorder(r FailureRecorder) {
	if r != nil {
		b.failures = r
	}
}

// Publish delivers each event to every subscribed handler in order.
// Handler failures are logged and never returned.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		for _, handler := range b.registry.GetHandlers(event.EventType()) {
			deliver(ctx, b.logger, b.failures, handler, event)
		}
	}
	return nil
}

// Subscribe registers a handler for specific event types
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.String("handler", shared.HandlerName(handler)),
		zap.Strings("event_types", eventTypes),
	)
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("handler unsubscribed", zap.String("handler", shared.HandlerName(handler)))
}

// Start starts the event bus
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.running.Store(true)
	b.logger.Info("event bus started", zap.String("mode", "sync"))
	return nil
}

// Stop stops the event bus
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.running.Store(false)
	b.logger.Info("event bus stopped", zap.String("mode", "sync"))
	return nil
}

// deliver runs one handler for one event, isolating errors and panics
func deliver(ctx context.Context, logger *zap.Logger, failures FailureRecorder, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	name := shared.HandlerName(handler)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler %s panicked: %v", name, r)
		}
		if err != nil {
			failures.RecordProjectionFailure(ctx, name)
			logger.Error("handler failed to process event",
				zap.String("handler", name),
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.String("aggregate_key", event.AggregateKey().String()),
				zap.Int64("sequence", event.Sequence()),
				zap.Error(err),
			)
		}
	}()

	return handler.Handle(ctx, event)
}

// Ensure InMemoryEventBus implements EventBus
var _ shared.EventBus = (*InMemoryEventBus)(nil)
