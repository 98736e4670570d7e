package shared

import (
	"context"
	"fmt"
)

// StoredEvent is an event together with its position in the global log
type StoredEvent struct {
	Position int64
	Event    DomainEvent
}

// EventStore is the append-only system of record, keyed by aggregate key
type EventStore interface {
	// Append stores events after the given expected version.
	// It fails with ErrConcurrencyConflict if the stored version differs.
	// Appended events get sequence numbers expectedVersion+1, +2, ...
	Append(ctx context.Context, key Key, expectedVersion int, events []DomainEvent) error

	// ReadHistory returns all events of one aggregate in append order.
	// An unknown key yields an empty slice, not an error.
	ReadHistory(ctx context.Context, key Key) ([]DomainEvent, error)

	// ReadAll returns up to limit events across all aggregates in global
	// append order, starting after the given position.
	ReadAll(ctx context.Context, afterPosition int64, limit int) ([]StoredEvent, error)
}

// NewConcurrencyConflictError describes an optimistic version mismatch
func NewConcurrencyConflictError(key Key, expected, actual int) *DomainError {
	return NewDomainError(CodeConcurrencyConflict,
		fmt.Sprintf("%s: expected version %d, stored version %d", key, expected, actual))
}
