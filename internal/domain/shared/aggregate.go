package shared

import (
	"fmt"
)

// EventApplier applies one event to an aggregate's in-memory state.
// Implementations switch exhaustively over their own event variants and
// return ErrCorruptHistory for anything they do not recognise.
type EventApplier interface {
	ApplyEvent(event DomainEvent) error
}

// AggregateRoot is the base interface for all event-sourced aggregate roots
type AggregateRoot interface {
	EventApplier
	Key() Key
	// Version is the number of events ever applied (replayed plus raised)
	Version() int
	// OriginalVersion is the version before any uncommitted events were raised.
	// It is the expected version when appending the uncommitted events.
	OriginalVersion() int
	// UncommittedEvents drains the events raised since load or creation
	UncommittedEvents() []DomainEvent
}

// BaseAggregateRoot carries the key, version and uncommitted event buffer.
// State fields live in the embedding aggregate and change only in ApplyEvent.
type BaseAggregateRoot struct {
	key     Key
	version int
	pending []DomainEvent
}

// NewBaseAggregateRoot creates the base for an aggregate with the given key
func NewBaseAggregateRoot(key Key) BaseAggregateRoot {
	return BaseAggregateRoot{key: key}
}

// Key returns the aggregate key
func (a *BaseAggregateRoot) Key() Key {
	return a.key
}

// Version returns the number of applied events
func (a *BaseAggregateRoot) Version() int {
	return a.version
}

// OriginalVersion returns the version the aggregate had when it was loaded
func (a *BaseAggregateRoot) OriginalVersion() int {
	return a.version - len(a.pending)
}

// HasUncommittedEvents returns true if there are events waiting to be persisted
func (a *BaseAggregateRoot) HasUncommittedEvents() bool {
	return len(a.pending) > 0
}

// UncommittedEvents returns and clears the pending events.
// A second call without new events returns an empty slice.
func (a *BaseAggregateRoot) UncommittedEvents() []DomainEvent {
	events := a.pending
	a.pending = nil
	if events == nil {
		return []DomainEvent{}
	}
	return events
}

// Raise applies a newly created event through the aggregate's applier and
// buffers it for persistence. Nothing is buffered if the apply fails.
func (a *BaseAggregateRoot) Raise(applier EventApplier, event DomainEvent) error {
	if !event.AggregateKey().Equals(a.key) {
		return NewDomainError(CodeValidation,
			fmt.Sprintf("event %s targets %s, not %s", event.EventType(), event.AggregateKey(), a.key))
	}
	if err := applier.ApplyEvent(event); err != nil {
		return err
	}
	a.version++
	a.pending = append(a.pending, event)
	return nil
}

// Replay applies stored events strictly in order. After a successful replay
// the version equals the number of events. Any failure is reported as
// ErrCorruptHistory.
func (a *BaseAggregateRoot) Replay(applier EventApplier, events []DomainEvent) error {
	for i, event := range events {
		if !event.AggregateKey().Equals(a.key) {
			return NewCorruptHistoryError(fmt.Sprintf(
				"event %d (%s) belongs to %s, not %s", i+1, event.EventType(), event.AggregateKey(), a.key))
		}
		if seq := event.Sequence(); seq != 0 && seq != int64(a.version+1) {
			return NewCorruptHistoryError(fmt.Sprintf(
				"event %s of %s has sequence %d, expected %d", event.EventType(), a.key, seq, a.version+1))
		}
		if err := applier.ApplyEvent(event); err != nil {
			return NewCorruptHistoryError(fmt.Sprintf("replay %s at %d: %v", a.key, i+1, err))
		}
		a.version++
	}
	return nil
}

// NewCorruptHistoryError creates an ErrCorruptHistory with a specific message
func NewCorruptHistoryError(message string) *DomainError {
	return NewDomainError(CodeCorruptHistory, message)
}

// NewValidationError creates an ErrValidation with a specific message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}
