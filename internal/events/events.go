package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the state store.
const (
	TypeGroupCreated = "group.created"
	TypeGroupDeleted = "group.deleted"
	TypeCardAdded    = "card.added"
	TypeCardEasy     = "card.easy"
	TypeCardHard     = "card.hard"
)

// Mutates reports whether events of the given type change deck data.
// card.hard is recorded for symmetry but leaves the data untouched.
func Mutates(eventType string) bool {
	switch eventType {
	case TypeGroupCreated, TypeGroupDeleted, TypeCardAdded, TypeCardEasy:
		return true
	default:
		return false
	}
}

// MutatingTypes lists the event types for which Mutates is true.
func MutatingTypes() []string {
	return []string{TypeGroupCreated, TypeGroupDeleted, TypeCardAdded, TypeCardEasy}
}

// StateEvent describes one operation applied to the deck.
type StateEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// Payload contains the operation-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *StateEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// Mutating reports whether the event changed deck data.
func (e *StateEvent) Mutating() bool {
	return Mutates(e.Type)
}

// NewStateEvent creates a new StateEvent with the specified type and payload.
func NewStateEvent(eventType string, payload interface{}) (*StateEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &StateEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *StateEvent) error
}

// EventHandlerFunc adapts a plain function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *StateEvent) error

// HandleEvent calls f.
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *StateEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows the store to publish changes without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *StateEvent) error
}
