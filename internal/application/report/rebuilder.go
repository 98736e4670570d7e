package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/infrastructure/event"
	"github.com/money/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const defaultRebuildBatch = 500

// RebuildResult summarizes one rebuild run
type RebuildResult struct {
	Events   int
	Position int64
	Duration time.Duration
}

// Rebuilder empties the read models and replays the whole event log into
// them. Writes must be stopped while it runs.
type Rebuilder struct {
	store       shared.EventStore
	projections []Projection
	batchSize   int
	logger      *zap.Logger
}

// NewRebuilder creates a rebuilder over the given projections
func NewRebuilder(store shared.EventStore, logger *zap.Logger, projections ...Projection) *Rebuilder {
	return &Rebuilder{
		store:       store,
		projections: projections,
		batchSize:   defaultRebuildBatch,
		logger:      logger,
	}
}

// WithBatchSize sets how many events are read per page
func (r *Rebuilder) WithBatchSize(n int) *Rebuilder {
	if n > 0 {
		r.batchSize = n
	}
	return r
}

// Rebuild clears every projection and replays all events. It fails if any
// projection rejected an event.
func (r *Rebuilder) Rebuild(ctx context.Context) (RebuildResult, error) {
	started := time.Now()
	var result RebuildResult

	for _, p := range r.projections {
		if err := p.Reset(ctx); err != nil {
			return result, fmt.Errorf("reset %s: %w", p.HandlerName(), err)
		}
	}

	failures := &failureCounter{}
	bus := event.NewInMemoryEventBus(r.logger)
	bus.SetFailureRecorder(failures)
	for _, p := range r.projections {
		bus.Subscribe(p)
	}

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		page, err := r.store.ReadAll(ctx, result.Position, r.batchSize)
		if err != nil {
			return result, fmt.Errorf("read events after %d: %w", result.Position, err)
		}
		for _, stored := range page {
			if err := bus.Publish(ctx, stored.Event); err != nil {
				return result, err
			}
			result.Position = stored.Position
			result.Events++
		}
		if len(page) < r.batchSize {
			break
		}
	}
	result.Duration = time.Since(started)

	logger.WithLogger(ctx, r.logger).Info("read models rebuilt",
		zap.Int("events", result.Events),
		zap.Int64("position", result.Position),
		zap.Duration("duration", result.Duration),
		zap.Int("failures", failures.total()),
	)
	if n := failures.total(); n > 0 {
		return result, fmt.Errorf("rebuild finished with %d projection failures (%v)", n, failures.handlers())
	}
	return result, nil
}

type failureCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *failureCounter) RecordProjectionFailure(_ context.Context, handler string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[handler]++
}

func (c *failureCounter) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

func (c *failureCounter) handlers() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
