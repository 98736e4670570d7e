package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is an immutable fact about one state change of one aggregate
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateKey() Key
	// Sequence is the 1-based position of the event in its aggregate's
	// history. It is zero until the event store assigns it at append time.
	Sequence() int64
	// SchemaVersion returns the version of the event payload schema.
	// Schemas evolve additively only; old payloads are replayed forever.
	SchemaVersion() int
}

// SequencedEvent is implemented by events whose sequence is assigned by an event store
type SequencedEvent interface {
	DomainEvent
	AssignSequence(seq int64)
}

// BaseDomainEvent provides common fields for all domain events
type BaseDomainEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	AggKey    Key       `json:"aggregate_key"`
	Seq       int64     `json:"sequence"`
	Version   int       `json:"schema_version,omitempty"`
}

// EventID returns the unique event identifier
func (e *BaseDomainEvent) EventID() uuid.UUID {
	return e.ID
}

// EventType returns the type of the event
func (e *BaseDomainEvent) EventType() string {
	return e.Type
}

// OccurredAt returns when the event occurred
func (e *BaseDomainEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateKey returns the key of the aggregate that produced this event
func (e *BaseDomainEvent) AggregateKey() Key {
	return e.AggKey
}

// Sequence returns the per-aggregate sequence number
func (e *BaseDomainEvent) Sequence() int64 {
	return e.Seq
}

// AssignSequence records the sequence number given by the event store
func (e *BaseDomainEvent) AssignSequence(seq int64) {
	e.Seq = seq
}

// SchemaVersion returns the schema version of the event
// Returns 1 if no version is set (payloads written before versioning)
func (e *BaseDomainEvent) SchemaVersion() int {
	if e.Version == 0 {
		return 1
	}
	return e.Version
}

// NewBaseDomainEvent creates a new base domain event with default schema version 1
func NewBaseDomainEvent(eventType string, aggregateKey Key) BaseDomainEvent {
	return NewVersionedBaseDomainEvent(eventType, aggregateKey, 1)
}

// NewVersionedBaseDomainEvent creates a new base domain event with explicit schema version
// If schemaVersion is less than 1, it defaults to 1
func NewVersionedBaseDomainEvent(eventType string, aggregateKey Key, schemaVersion int) BaseDomainEvent {
	if schemaVersion < 1 {
		schemaVersion = 1
	}
	return BaseDomainEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		AggKey:    aggregateKey,
		Version:   schemaVersion,
	}
}
