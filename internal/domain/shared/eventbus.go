package shared

import "context"

// EventHandler handles published domain events (projections, reactors)
type EventHandler interface {
	// Handle processes a domain event
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes returns the event types this handler is interested in
	// An empty slice means the handler receives all events
	EventTypes() []string
}

// NamedEventHandler is implemented by handlers that want a stable name in logs and metrics
type NamedEventHandler interface {
	EventHandler
	HandlerName() string
}

// EventPublisher publishes domain events that are already durably appended
type EventPublisher interface {
	// Publish delivers one or more domain events to subscribed handlers
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber subscribes to domain events
type EventSubscriber interface {
	// Subscribe registers a handler for specific event types
	// If no event types are provided, the handler's own EventTypes are used
	Subscribe(handler EventHandler, eventTypes ...string)
	// Unsubscribe removes a handler from the subscription list
	Unsubscribe(handler EventHandler)
}

// EventBus combines publisher and subscriber capabilities
type EventBus interface {
	EventPublisher
	EventSubscriber
	// Start starts the event bus (e.g., background workers)
	Start(ctx context.Context) error
	// Stop drains pending deliveries and stops the bus
	Stop(ctx context.Context) error
}

// HandlerName returns the handler's name if it has one, otherwise its Go type
func HandlerName(handler EventHandler) string {
	if named, ok := handler.(NamedEventHandler); ok {
		return named.HandlerName()
	}
	return typeName(handler)
}
