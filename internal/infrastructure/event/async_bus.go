package event

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/money/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrBusStopped is returned when publishing to a stopped bus
var ErrBusStopped = errors.New("event bus is stopped")

// DefaultBufferSize is the per-handler queue length
const DefaultBufferSize = 256

type delivery struct {
	ctx   context.Context
	event shared.DomainEvent
}

// worker owns one handler and its bounded queue. A single goroutine drains
// the queue, so the handler sees events in publish order.
type worker struct {
	handler shared.EventHandler
	queue   chan delivery
	quit    chan struct{}
	once    sync.Once
	started atomic.Bool
}

func (w *worker) stop() {
	w.once.Do(func() { close(w.quit) })
}

// AsyncEventBus delivers events through one bounded channel per handler.
// Publish blocks while a handler's queue is full, until the context is done.
type AsyncEventBus struct {
	registry   *HandlerRegistry
	logger     *zap.Logger
	failures   FailureRecorder
	bufferSize int

	mu      sync.Mutex
	workers map[shared.EventHandler]*worker
	running bool
	stopped atomic.Bool
	wg      sync.WaitGroup
}

// AsyncOption configures an AsyncEventBus
type AsyncOption func(*AsyncEventBus)

// WithBufferSize sets the per-handler queue length
func WithBufferSize(n int) AsyncOption {
	return func(b *AsyncEventBus) {
		if n > 0 {
			b.bufferSize = n
		}
	}
}

// WithFailureRecorder sets where handler failures are counted
func WithFailureRecorder(r FailureRecorder) AsyncOption {
	return func(b *AsyncEventBus) {
		if r != nil {
			b.failures = r
		}
	}
}

// NewAsyncEventBus creates an asynchronous event bus
func NewAsyncEventBus(logger *zap.Logger, opts ...AsyncOption) *AsyncEventBus {
	b := &AsyncEventBus{
		registry:   NewHandlerRegistry(),
		logger:     logger,
		failures:   nopFailureRecorder{},
		bufferSize: DefaultBufferSize,
		workers:    make(map[shared.EventHandler]*worker),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a handler and gives it its own queue
func (b *AsyncEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}

	b.mu.Lock()
	w, ok := b.workers[handler]
	if !ok {
		w = &worker{
			handler: handler,
			queue:   make(chan delivery, b.bufferSize),
			quit:    make(chan struct{}),
		}
		b.workers[handler] = w
	}
	if b.running {
		b.startWorker(w)
	}
	b.mu.Unlock()

	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.String("handler", shared.HandlerName(handler)),
		zap.Strings("event_types", eventTypes),
		zap.Int("buffer_size", b.bufferSize),
	)
}

// Unsubscribe removes a handler. Events already queued for it are still delivered.
func (b *AsyncEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)

	b.mu.Lock()
	w, ok := b.workers[handler]
	delete(b.workers, handler)
	b.mu.Unlock()

	if ok {
		w.stop()
	}
	b.logger.Debug("handler unsubscribed", zap.String("handler", shared.HandlerName(handler)))
}

// Publish enqueues each event for every subscribed handler.
// Handlers run with a context that keeps the publisher's values but not its
// cancellation, since the append they react to is already durable.
func (b *AsyncEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if b.stopped.Load() {
		return ErrBusStopped
	}
	handlerCtx := context.WithoutCancel(ctx)

	for _, event := range events {
		for _, handler := range b.registry.GetHandlers(event.EventType()) {
			b.mu.Lock()
			w, ok := b.workers[handler]
			b.mu.Unlock()
			if !ok {
				continue
			}

			select {
			case w.queue <- delivery{ctx: handlerCtx, event: event}:
			case <-w.quit:
				b.logger.Warn("handler stopped, event not delivered",
					zap.String("handler", shared.HandlerName(handler)),
					zap.String("event_id", event.EventID().String()),
				)
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// Start launches one goroutine per subscribed handler
func (b *AsyncEventBus) Start(ctx context.Context) error {
	if b.stopped.Load() {
		return ErrBusStopped
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.running = true
	for _, w := range b.workers {
		b.startWorker(w)
	}
	b.logger.Info("event bus started",
		zap.String("mode", "async"),
		zap.Int("handlers", len(b.workers)),
	)
	return nil
}

// Stop rejects new publishes, lets every worker drain its queue and waits
// for them or for ctx, whichever comes first.
func (b *AsyncEventBus) Stop(ctx context.Context) error {
	b.stopped.Store(true)

	b.mu.Lock()
	for _, w := range b.workers {
		if !w.started.Load() {
			// queued before Start; run it once so the queue drains
			b.startWorker(w)
		}
		w.stop()
	}
	b.running = false
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("event bus stopped", zap.String("mode", "async"))
		return nil
	case <-ctx.Done():
		b.logger.Warn("event bus stop timed out, pending deliveries abandoned")
		return ctx.Err()
	}
}

// QueueDepth returns the number of queued events per handler name
func (b *AsyncEventBus) QueueDepth() map[string]int {
	b.mu.Lock()
	defer b.mu.Unlock()

	depth := make(map[string]int, len(b.workers))
	for h, w := range b.workers {
		depth[shared.HandlerName(h)] += len(w.queue)
	}
	return depth
}

// startWorker must be called with b.mu held
func (b *AsyncEventBus) startWorker(w *worker) {
	if !w.started.CompareAndSwap(false, true) {
		return
	}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.run(w)
	}()
}

func (b *AsyncEventBus) run(w *worker) {
	for {
		select {
		case d := <-w.queue:
			deliver(d.ctx, b.logger, b.failures, w.handler, d.event)
		case <-w.quit:
			for {
				select {
				case d := <-w.queue:
					deliver(d.ctx, b.logger, b.failures, w.handler, d.event)
				default:
					return
				}
			}
		}
	}
}

// Ensure AsyncEventBus implements EventBus
var _ shared.EventBus = (*AsyncEventBus)(nil)
