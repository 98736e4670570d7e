package telemetry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/money/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// EventSourcingMetrics counts commands, appended events, projection failures
// and optimistic concurrency conflicts. A nil *EventSourcingMetrics records
// nothing.
type EventSourcingMetrics struct {
	meter              metric.Meter
	commands           *Counter
	commandDuration    *Histogram
	eventsAppended     *Counter
	projectionFailures *Counter
	conflicts          *Counter
}

// NewEventSourcingMetrics registers the instruments on meter.
func NewEventSourcingMetrics(meter metric.Meter) (*EventSourcingMetrics, error) {
	m := &EventSourcingMetrics{meter: meter}
	var err error

	if m.commands, err = NewCounter(meter, "money_commands_total",
		"Commands dispatched, by type and result", "{commands}"); err != nil {
		return nil, err
	}
	if m.commandDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "money_command_duration_ms",
		Description: "Command handling latency",
		Unit:        "ms",
		Boundaries:  CommandDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if m.eventsAppended, err = NewCounter(meter, "money_events_appended_total",
		"Events appended to the event store, by type", "{events}"); err != nil {
		return nil, err
	}
	if m.projectionFailures, err = NewCounter(meter, "money_projection_failures_total",
		"Projection handler failures and panics, by handler", "{failures}"); err != nil {
		return nil, err
	}
	if m.conflicts, err = NewCounter(meter, "money_concurrency_conflicts_total",
		"Appends rejected by the optimistic version check", "{conflicts}"); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordCommand counts one dispatched command and its latency. The result
// label is "ok", the lower-cased domain error code, or "error".
func (m *EventSourcingMetrics) RecordCommand(ctx context.Context, commandType string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{AttrCommandType.String(commandType), AttrResult.String(resultOf(err))}
	m.commands.Inc(ctx, attrs...)
	m.commandDuration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs...)
	if errors.Is(err, shared.ErrConcurrencyConflict) {
		m.conflicts.Inc(ctx)
	}
}

// RecordEventsAppended counts events by type after a successful append.
func (m *EventSourcingMetrics) RecordEventsAppended(ctx context.Context, events []shared.DomainEvent) {
	if m == nil {
		return
	}
	for _, e := range events {
		m.eventsAppended.Inc(ctx, AttrEventType.String(e.EventType()))
	}
}

// RecordProjectionFailure satisfies the event bus failure recorder.
func (m *EventSourcingMetrics) RecordProjectionFailure(ctx context.Context, handler string) {
	if m == nil {
		return
	}
	m.projectionFailures.Inc(ctx, AttrHandler.String(handler))
}

// ObserveQueueDepth exports the per-handler backlog reported by depth as
// the money_projection_queue_depth gauge.
func (m *EventSourcingMetrics) ObserveQueueDepth(depth func() map[string]int) error {
	if m == nil {
		return nil
	}
	_, err := m.meter.Int64ObservableGauge("money_projection_queue_depth",
		metric.WithDescription("Events waiting in each projection queue"),
		metric.WithUnit("{events}"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			for handler, n := range depth() {
				o.Observe(int64(n), metric.WithAttributes(AttrHandler.String(handler)))
			}
			return nil
		}),
	)
	return err
}

func resultOf(err error) string {
	if err == nil {
		return "ok"
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return strings.ToLower(de.Code)
	}
	return "error"
}
