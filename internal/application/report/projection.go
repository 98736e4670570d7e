// Package report keeps the query-side read models up to date and answers
// queries from them.
package report

import (
	"context"
	"errors"

	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Projection is a read-model builder that can be emptied for a rebuild
type Projection interface {
	shared.NamedEventHandler
	Reset(ctx context.Context) error
}

// stale reports whether the row already reflects the event. Events without
// a sequence are always applied.
func stale(rowVersion, seq int64) bool {
	return seq != 0 && seq <= rowVersion
}

func bump(rowVersion, seq int64) int64 {
	if seq > rowVersion {
		return seq
	}
	return rowVersion
}

// missingRow logs an update for a row that does not exist. It happens when
// a projection is rebuilt concurrently or the row was deleted.
func missingRow(ctx context.Context, l *zap.Logger, projection string, event shared.DomainEvent) {
	logger.WithLogger(ctx, l).Debug("read model row missing, event skipped",
		zap.String("projection", projection),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_key", event.AggregateKey().String()),
		zap.Int64("sequence", event.Sequence()),
	)
}

func isNotFound(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}
