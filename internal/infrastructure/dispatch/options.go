package dispatch

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/money/backend/dispatch"

// CommandRecorder receives one observation per dispatched command
type CommandRecorder interface {
	RecordCommand(ctx context.Context, commandType string, err error, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordCommand(context.Context, string, error, time.Duration) {}

type options struct {
	tracer  trace.Tracer
	metrics CommandRecorder
	logger  *zap.Logger
}

// Option configures a dispatcher
type Option func(*options)

// WithTracer sets the tracer used for dispatch spans
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithMetrics sets where command outcomes are recorded
func WithMetrics(m CommandRecorder) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

// WithLogger sets the dispatcher's logger
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		tracer:  otel.Tracer(tracerName),
		metrics: nopRecorder{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
