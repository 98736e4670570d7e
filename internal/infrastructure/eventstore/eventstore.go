// Package eventstore holds the append-only event log implementations.
package eventstore

import (
	"github.com/money/backend/internal/domain/shared"
)

// Serializer converts events to and from their stored payload
type Serializer interface {
	Serialize(event shared.DomainEvent) ([]byte, error)
	Deserialize(eventType string, schemaVersion int, data []byte) (shared.DomainEvent, error)
}

// checkBatch verifies every event belongs to key
func checkBatch(key shared.Key, events []shared.DomainEvent) error {
	for _, e := range events {
		if !e.AggregateKey().Equals(key) {
			return shared.NewValidationError("event " + e.EventType() + " for " +
				e.AggregateKey().String() + " appended to " + key.String())
		}
	}
	return nil
}

// assignSequences numbers events expectedVersion+1, +2, ... and returns a
// func that puts the previous numbers back when the append fails
func assignSequences(expectedVersion int, events []shared.DomainEvent) (restore func()) {
	previous := make([]int64, len(events))
	for i, e := range events {
		previous[i] = e.Sequence()
		if seq, ok := e.(shared.SequencedEvent); ok {
			seq.AssignSequence(int64(expectedVersion + i + 1))
		}
	}
	return func() {
		for i, e := range events {
			if seq, ok := e.(shared.SequencedEvent); ok {
				seq.AssignSequence(previous[i])
			}
		}
	}
}
