package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/infrastructure/logger"
	"github.com/money/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// CommandDispatcher sends each command to the one handler registered for its type
type CommandDispatcher struct {
	handlers *registry[shared.CommandHandler]
	opts     options
}

// NewCommandDispatcher creates an empty command dispatcher
func NewCommandDispatcher(opts ...Option) *CommandDispatcher {
	return &CommandDispatcher{
		handlers: newRegistry[shared.CommandHandler]("command"),
		opts:     newOptions(opts),
	}
}

// Register adds a handler for all of its command types. A type that already
// has a handler fails with ErrAmbiguousHandler and nothing is registered.
func (d *CommandDispatcher) Register(h shared.CommandHandler) error {
	return d.handlers.register(h, h.CommandTypes())
}

// MustRegister registers handlers and panics on a configuration error
func (d *CommandDispatcher) MustRegister(handlers ...shared.CommandHandler) {
	for _, h := range handlers {
		if err := d.Register(h); err != nil {
			panic(err)
		}
	}
}

// CommandTypes lists the registered command types, sorted
func (d *CommandDispatcher) CommandTypes() []string {
	return d.handlers.types()
}

// Dispatch runs the command and returns the key of the affected aggregate
func (d *CommandDispatcher) Dispatch(ctx context.Context, cmd shared.Command) (key shared.Key, err error) {
	commandType := cmd.CommandType()
	ctx, span := d.opts.tracer.Start(ctx, "command.dispatch",
		trace.WithAttributes(telemetry.AttrCommandType.String(commandType)))
	start := time.Now()

	defer func() {
		elapsed := time.Since(start)
		d.opts.metrics.RecordCommand(ctx, commandType, err, elapsed)
		endSpan(span, err)
		logOutcome(ctx, d.opts.logger, "command", commandType, elapsed, err,
			zap.String("aggregate_key", key.String()))
	}()

	h, err := d.handlers.lookup(commandType)
	if err != nil {
		return key, err
	}
	return h.Handle(ctx, cmd)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// logOutcome logs caller errors at warn and everything unexpected at error
func logOutcome(ctx context.Context, base *zap.Logger, kind, messageType string, elapsed time.Duration, err error, extra ...zap.Field) {
	fields := []zap.Field{
		zap.String(kind+"_type", messageType),
		zap.Duration("elapsed", elapsed),
	}
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	l := logger.WithLogger(ctx, base)

	if err == nil {
		l.Debug(kind+" handled", append(fields, extra...)...)
		return
	}
	fields = append(fields, zap.Error(err))
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		l.Warn(kind+" rejected", append(fields, zap.String("code", domainErr.Code))...)
		return
	}
	l.Error(kind+" failed", fields...)
}
