package event

import "context"

// Priority determines handler execution order.
// Lower values execute first.
type Priority int

const (
	// PriorityCritical is for state that other handlers read, such as the
	// table state tracker.
	PriorityCritical Priority = 0

	// PriorityHigh is for key binding updates.
	PriorityHigh Priority = 100

	// PriorityNormal is the default priority for plugins and front-ends.
	PriorityNormal Priority = 200

	// PriorityLow is for logging handlers that run last.
	PriorityLow Priority = 300
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch {
	case p <= PriorityCritical:
		return "critical"
	case p <= PriorityHigh:
		return "high"
	case p <= PriorityNormal:
		return "normal"
	default:
		return "low"
	}
}

// Handler is the interface for event handlers.
type Handler interface {
	// Handle processes an event.
	// The event parameter is type-erased; handlers should type-assert.
	Handle(ctx context.Context, event any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, event any) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// Topical is implemented by events that carry their own topic.
type Topical interface {
	EventTopic() Topic
}
