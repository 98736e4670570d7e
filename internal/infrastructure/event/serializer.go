package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/money/backend/internal/domain/shared"
)

// UpgradeFunc rewrites a raw payload from one schema version to the next.
// Schemas only grow, so upgraders typically fill defaults for new fields.
type UpgradeFunc func(data map[string]any) (map[string]any, error)

// EventSerializer maps event type names to Go types and upgrades old
// payloads to the current schema on read
type EventSerializer struct {
	mu        sync.RWMutex
	registry  map[string]reflect.Type      // eventType -> Go type
	upgraders map[string]map[int]UpgradeFunc // eventType -> from version -> upgrader
}

// NewEventSerializer creates a new event serializer
func NewEventSerializer() *EventSerializer {
	return &EventSerializer{
		registry:  make(map[string]reflect.Type),
		upgraders: make(map[string]map[int]UpgradeFunc),
	}
}

// Register registers an event type for deserialization.
// The eventType should match what EventType() returns on the event.
func (s *EventSerializer) Register(eventType string, eventInstance shared.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := reflect.TypeOf(eventInstance)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	s.registry[eventType] = t
}

// RegisterUpgrader registers the step from fromVersion to fromVersion+1
func (s *EventSerializer) RegisterUpgrader(eventType string, fromVersion int, fn UpgradeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.upgraders[eventType] == nil {
		s.upgraders[eventType] = make(map[int]UpgradeFunc)
	}
	s.upgraders[eventType][fromVersion] = fn
}

// Serialize serializes a domain event to JSON bytes
func (s *EventSerializer) Serialize(event shared.DomainEvent) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", event.EventType(), err)
	}
	return data, nil
}

// Deserialize decodes a stored payload written with the given schema version.
// Unknown event types fail with ErrCorruptHistory.
func (s *EventSerializer) Deserialize(eventType string, schemaVersion int, data []byte) (shared.DomainEvent, error) {
	s.mu.RLock()
	t, ok := s.registry[eventType]
	steps := s.upgraders[eventType]
	s.mu.RUnlock()

	if !ok {
		return nil, shared.NewCorruptHistoryError(fmt.Sprintf("unknown event type: %s", eventType))
	}

	if len(steps) > 0 {
		upgraded, err := upgrade(steps, schemaVersion, data)
		if err != nil {
			return nil, fmt.Errorf("upgrade %s v%d: %w", eventType, schemaVersion, err)
		}
		data = upgraded
	}

	eventPtr := reflect.New(t).Interface()
	if err := json.Unmarshal(data, eventPtr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event %s: %w", eventType, err)
	}

	event, ok := eventPtr.(shared.DomainEvent)
	if !ok {
		return nil, fmt.Errorf("deserialized %s does not implement DomainEvent", eventType)
	}
	return event, nil
}

func upgrade(steps map[int]UpgradeFunc, version int, data []byte) ([]byte, error) {
	if version < 1 {
		version = 1
	}
	if _, ok := steps[version]; !ok {
		return data, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	for {
		fn, ok := steps[version]
		if !ok {
			break
		}
		next, err := fn(payload)
		if err != nil {
			return nil, err
		}
		version++
		next["schema_version"] = version
		payload = next
	}
	return json.Marshal(payload)
}

// IsRegistered checks if an event type is registered
func (s *EventSerializer) IsRegistered(eventType string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.registry[eventType]
	return ok
}

// RegisteredTypes returns all registered event types, sorted
func (s *EventSerializer) RegisteredTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]string, 0, len(s.registry))
	for t := range s.registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
