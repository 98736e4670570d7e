package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
)

// QueryDispatcher sends each query to the one handler registered for its type
type QueryDispatcher struct {
	handlers *registry[shared.QueryHandler]
	opts     options
}

// NewQueryDispatcher creates an empty query dispatcher
func NewQueryDispatcher(opts ...Option) *QueryDispatcher {
	return &QueryDispatcher{
		handlers: newRegistry[shared.QueryHandler]("query"),
		opts:     newOptions(opts),
	}
}

// Register adds a handler for all of its query types
func (d *QueryDispatcher) Register(h shared.QueryHandler) error {
	return d.handlers.register(h, h.QueryTypes())
}

// MustRegister registers handlers and panics on a configuration error
func (d *QueryDispatcher) MustRegister(handlers ...shared.QueryHandler) {
	for _, h := range handlers {
		if err := d.Register(h); err != nil {
			panic(err)
		}
	}
}

// QueryTypes lists the registered query types, sorted
func (d *QueryDispatcher) QueryTypes() []string {
	return d.handlers.types()
}

// Dispatch answers the query
func (d *QueryDispatcher) Dispatch(ctx context.Context, q shared.Query) (result any, err error) {
	queryType := q.QueryType()
	ctx, span := d.opts.tracer.Start(ctx, "query.dispatch",
		trace.WithAttributes(telemetry.AttrQueryType.String(queryType)))
	start := time.Now()

	defer func() {
		endSpan(span, err)
		logOutcome(ctx, d.opts.logger, "query", queryType, time.Since(start), err)
	}()

	h, err := d.handlers.lookup(queryType)
	if err != nil {
		return nil, err
	}
	return h.Ask(ctx, q)
}

// Ask dispatches q and asserts the result type
func Ask[R any](ctx context.Context, d *QueryDispatcher, q shared.Query) (R, error) {
	var zero R
	result, err := d.Dispatch(ctx, q)
	if err != nil {
		return zero, err
	}
	typed, ok := result.(R)
	if !ok {
		return zero, fmt.Errorf("query %s answered with %T, want %T", q.QueryType(), result, zero)
	}
	return typed, nil
}
