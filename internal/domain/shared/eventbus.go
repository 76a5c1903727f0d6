package shared

import "context"

// EventHandler handles domain events
type EventHandler interface {
	// Handle processes a domain event
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes returns the event types this handler is interested in.
	// An empty slice means the handler receives all events.
	EventTypes() []string
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber subscribes to domain events
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus combines publisher and subscriber capabilities
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// EventHandlerFunc adapts a function to EventHandler
type EventHandlerFunc struct {
	Types []string
	Fn    func(ctx context.Context, event DomainEvent) error
}

func (h *EventHandlerFunc) Handle(ctx context.Context, event DomainEvent) error {
	return h.Fn(ctx, event)
}

func (h *EventHandlerFunc) EventTypes() []string {
	return h.Types
}
