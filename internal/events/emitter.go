package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// ErrNilEvent is returned when EmitEvent is called without an event.
var ErrNilEvent = errors.New("event cannot be nil")

// HandlerError reports one handler that failed to process a deck event.
type HandlerError struct {
	EventID   uuid.UUID
	EventType string
	Handler   int
	Err       error
}

// Error implements the error interface for HandlerError.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %d failed on %s event: %v", e.Handler, e.EventType, e.Err)
}

// Unwrap returns the handler's own error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// subscription is a handler plus the event types it wants. A nil set means
// every type.
type subscription struct {
	handler EventHandler
	types   map[string]struct{}
}

func (s subscription) wants(eventType string) bool {
	if s.types == nil {
		return true
	}
	_, ok := s.types[eventType]
	return ok
}

// InMemoryEventEmitter delivers deck events synchronously to the handlers
// subscribed to their type, in subscription order.
type InMemoryEventEmitter struct {
	mu     sync.RWMutex
	subs   []subscription
	logger *slog.Logger
}

var _ EventEmitter = (*InMemoryEventEmitter)(nil)

// NewInMemoryEventEmitter creates an emitter with no subscribers.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{
		logger: logger.With(slog.String("component", "event_emitter")),
	}
}

// Subscribe registers handler for the listed event types. With no types the
// handler receives every event.
func (e *InMemoryEventEmitter) Subscribe(handler EventHandler, eventTypes ...string) {
	sub := subscription{handler: handler}
	if len(eventTypes) > 0 {
		sub.types = make(map[string]struct{}, len(eventTypes))
		for _, t := range eventTypes {
			sub.types[t] = struct{}{}
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, sub)
	e.logger.Debug("handler subscribed",
		slog.Any("event_types", eventTypes),
		slog.Int("subscriber_count", len(e.subs)))
}

// Subscribers counts the handlers that would receive an event of the type.
func (e *InMemoryEventEmitter) Subscribers(eventType string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	n := 0
	for _, sub := range e.subs {
		if sub.wants(eventType) {
			n++
		}
	}
	return n
}

// EmitEvent hands the event to every interested handler. A failing handler
// does not stop delivery; all failures come back joined, each as a
// *HandlerError.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *StateEvent) error {
	if event == nil {
		return ErrNilEvent
	}

	e.mu.RLock()
	handlers := make([]EventHandler, 0, len(e.subs))
	for _, sub := range e.subs {
		if sub.wants(event.Type) {
			handlers = append(handlers, sub.handler)
		}
	}
	e.mu.RUnlock()

	log := e.logger.With(
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type))
	if len(handlers) == 0 {
		log.Debug("no subscribers for event")
		return nil
	}

	var errs []error
	for i, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			log.Error("handler failed to process event",
				slog.Int("handler", i),
				slog.String("error", err.Error()))
			errs = append(errs, &HandlerError{
				EventID:   event.ID,
				EventType: event.Type,
				Handler:   i,
				Err:       err,
			})
		}
	}
	return errors.Join(errs...)
}
