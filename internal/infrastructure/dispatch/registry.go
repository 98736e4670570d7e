// Package dispatch routes commands and queries to their single handler.
package dispatch

import (
	"fmt"
	"sort"
	"sync"

	"github.com/money/backend/internal/domain/shared"
)

// registry maps message types to exactly one handler
type registry[H any] struct {
	kind     string
	mu       sync.RWMutex
	handlers map[string]H
}

func newRegistry[H any](kind string) *registry[H] {
	return &registry[H]{kind: kind, handlers: make(map[string]H)}
}

// register claims every type for h, or none of them
func (r *registry[H]) register(h H, types []string) error {
	if len(types) == 0 {
		return shared.NewValidationError(fmt.Sprintf("%s handler %T declares no types", r.kind, h))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(types))
	for _, t := range types {
		if _, ok := r.handlers[t]; ok {
			return shared.NewAmbiguousHandlerError(r.kind, t)
		}
		if _, ok := seen[t]; ok {
			return shared.NewAmbiguousHandlerError(r.kind, t)
		}
		seen[t] = struct{}{}
	}
	for _, t := range types {
		r.handlers[t] = h
	}
	return nil
}

func (r *registry[H]) lookup(messageType string) (H, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[messageType]
	if !ok {
		var zero H
		return zero, shared.NewNoHandlerError(r.kind, messageType)
	}
	return h, nil
}

func (r *registry[H]) types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
