package eventstore

import (
	"context"
	"sync"

	"github.com/money/backend/internal/domain/shared"
)

type memoryRecord struct {
	position      int64
	sequence      int64
	eventType     string
	schemaVersion int
	payload       []byte
	event         shared.DomainEvent
}

// MemoryEventStore keeps the event log in process memory. With a
// serializer it stores payloads and decodes fresh events on every read,
// which mirrors the SQL store.
type MemoryEventStore struct {
	mu         sync.RWMutex
	streams    map[shared.Key][]int
	log        []memoryRecord
	serializer Serializer
}

// MemoryOption configures a MemoryEventStore
type MemoryOption func(*MemoryEventStore)

// WithSerializer stores serialized payloads instead of event values
func WithSerializer(s Serializer) MemoryOption {
	return func(m *MemoryEventStore) {
		m.serializer = s
	}
}

// NewMemoryEventStore creates an empty store
func NewMemoryEventStore(opts ...MemoryOption) *MemoryEventStore {
	m := &MemoryEventStore{streams: make(map[shared.Key][]int)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Append implements shared.EventStore
func (m *MemoryEventStore) Append(ctx context.Context, key shared.Key, expectedVersion int, events []shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	if err := checkBatch(key, events); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current := len(m.streams[key])
	if current != expectedVersion {
		return shared.NewConcurrencyConflictError(key, expectedVersion, current)
	}

	records := make([]memoryRecord, len(events))
	for i, e := range events {
		rec := memoryRecord{
			position:      int64(len(m.log) + i + 1),
			sequence:      int64(expectedVersion + i + 1),
			eventType:     e.EventType(),
			schemaVersion: e.SchemaVersion(),
			event:         e,
		}
		records[i] = rec
	}

	restore := assignSequences(expectedVersion, events)
	if m.serializer != nil {
		for i, e := range events {
			payload, err := m.serializer.Serialize(e)
			if err != nil {
				restore()
				return err
			}
			records[i].payload = payload
			records[i].event = nil
		}
	}

	for _, rec := range records {
		m.streams[key] = append(m.streams[key], len(m.log))
		m.log = append(m.log, rec)
	}
	return nil
}

// ReadHistory implements shared.EventStore
func (m *MemoryEventStore) ReadHistory(ctx context.Context, key shared.Key) ([]shared.DomainEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	indexes := m.streams[key]
	events := make([]shared.DomainEvent, 0, len(indexes))
	for _, idx := range indexes {
		e, err := m.decode(m.log[idx])
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

// ReadAll implements shared.EventStore. A non-positive limit reads to the end.
func (m *MemoryEventStore) ReadAll(ctx context.Context, afterPosition int64, limit int) ([]shared.StoredEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if afterPosition < 0 {
		afterPosition = 0
	}
	if afterPosition >= int64(len(m.log)) {
		return []shared.StoredEvent{}, nil
	}
	tail := m.log[afterPosition:]
	if limit > 0 && len(tail) > limit {
		tail = tail[:limit]
	}

	out := make([]shared.StoredEvent, 0, len(tail))
	for _, rec := range tail {
		e, err := m.decode(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, shared.StoredEvent{Position: rec.position, Event: e})
	}
	return out, nil
}

func (m *MemoryEventStore) decode(rec memoryRecord) (shared.DomainEvent, error) {
	if m.serializer == nil {
		return rec.event, nil
	}
	e, err := m.serializer.Deserialize(rec.eventType, rec.schemaVersion, rec.payload)
	if err != nil {
		return nil, err
	}
	if seq, ok := e.(shared.SequencedEvent); ok {
		seq.AssignSequence(rec.sequence)
	}
	return e, nil
}

var _ shared.EventStore = (*MemoryEventStore)(nil)
