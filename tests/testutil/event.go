package testutil

import (
	"context"
	"sync"

	"github.com/money/backend/internal/domain/shared"
)

// RecordingHandler is a shared.NamedEventHandler that remembers every event it receives
type RecordingHandler struct {
	mu         sync.Mutex
	name       string
	eventTypes []string
	handled    []shared.DomainEvent
	err        error
}

// NewRecordingHandler creates a handler subscribed to eventTypes (all events if none)
func NewRecordingHandler(name string, eventTypes ...string) *RecordingHandler {
	return &RecordingHandler{name: name, eventTypes: eventTypes}
}

func (h *RecordingHandler) HandlerName() string { return h.name }

func (h *RecordingHandler) EventTypes() []string { return h.eventTypes }

// Handle records the event and returns the configured error
func (h *RecordingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, event)
	return h.err
}

// Handled returns a copy of the recorded events in delivery order
func (h *RecordingHandler) Handled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	result := make([]shared.DomainEvent, len(h.handled))
	copy(result, h.handled)
	return result
}

// HandledTypes returns the event types received, in order
func (h *RecordingHandler) HandledTypes() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	types := make([]string, len(h.handled))
	for i, e := range h.handled {
		types[i] = e.EventType()
	}
	return types
}

func (h *RecordingHandler) HandledCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

// SetError makes every following Handle call fail with err
func (h *RecordingHandler) SetError(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
}

// Reset forgets recorded events and the configured error
func (h *RecordingHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = nil
	h.err = nil
}

var _ shared.NamedEventHandler = (*RecordingHandler)(nil)
