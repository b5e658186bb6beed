package event

import (
	"time"

	"github.com/google/uuid"
)

// Event represents an event in the system.
// Events are immutable once created.
type Event[T any] struct {
	// Type is the hierarchical event type (e.g., "cursor.moved").
	Type Topic

	// Payload contains the event-specific data.
	Payload T

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the module that published the event.
	Source string

	// CausationID links to the event that caused this one.
	CausationID string
}

// NewEvent creates a new event with the given type and payload.
func NewEvent[T any](eventType Topic, payload T, source string) Event[T] {
	return Event[T]{
		Type:    eventType,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// EventTopic returns the event's topic for type-erased handling.
func (e Event[T]) EventTopic() Topic {
	return e.Type
}

// WithCausation returns a copy of the event caused by another event.
func (e Event[T]) WithCausation(causationID string) Event[T] {
	e.Metadata.CausationID = causationID
	return e
}

// Position is a line/column pair carried in event payloads.
type Position struct {
	Line   int
	Column int
}

// CursorMoved is published whenever the document cursor changes.
type CursorMoved struct {
	From Position
	To   Position

	// Programmatic is true when a command moved the cursor rather than the
	// user. Subscribers must not start further edits in response.
	Programmatic bool
}

// BufferChanged is published after every buffer mutation.
type BufferChanged struct {
	StartLine int
	EndLine   int
	Revision  uint64
}

// TableStateChanged is published when the cursor enters or leaves a table.
type TableStateChanged struct {
	InTable   bool
	StartLine int
	EndLine   int
}

// CommandExecuted is published after a command ran.
type CommandExecuted struct {
	Name   string
	Status string
}
