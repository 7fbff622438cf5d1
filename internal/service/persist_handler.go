package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/events"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/persistence"
)

// Saver writes a full state. *persistence.Adapter implements it.
type Saver interface {
	Save(ctx context.Context, state *domain.State) error
}

// SnapshotSource yields the state to save.
type SnapshotSource interface {
	Snapshot() *domain.State
}

// PersistHandler resaves the whole state for each event it receives. Open
// subscribes it to the mutating event types only.
//
// Saves are serialized and each takes its snapshot while holding the lock,
// so the last save to finish always carries the newest state.
type PersistHandler struct {
	mu     sync.Mutex
	saver  Saver
	source SnapshotSource
	logger *slog.Logger
}

var _ events.EventHandler = (*PersistHandler)(nil)

// NewPersistHandler creates a PersistHandler.
func NewPersistHandler(saver Saver, source SnapshotSource, logger *slog.Logger) *PersistHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PersistHandler{
		saver:  saver,
		source: source,
		logger: logger.With(slog.String("component", "persist_handler")),
	}
}

// HandleEvent implements events.EventHandler.
func (h *PersistHandler) HandleEvent(ctx context.Context, event *events.StateEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, h.logger)
	if err := h.saver.Save(ctx, h.source.Snapshot()); err != nil {
		log.Error("failed to persist state",
			slog.String("event_type", event.Type),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Open loads the state through adapter and returns a StateStore that
// persists every change back through it.
func Open(
	ctx context.Context,
	adapter *persistence.Adapter,
	logger *slog.Logger,
) (*StateStore, persistence.Source, error) {
	if adapter == nil {
		return nil, "", NewStateStoreError("open", "adapter cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	state, source := adapter.Load(ctx)

	emitter := events.NewInMemoryEventEmitter(logger)
	s, err := NewStateStore(state, emitter, logger)
	if err != nil {
		return nil, "", NewStateStoreError("open", "create state store", err)
	}
	emitter.Subscribe(NewPersistHandler(adapter, s, logger), events.MutatingTypes()...)

	logger.Info("deck opened",
		slog.String("source", string(source)),
		slog.Int("group_count", len(state.Groups)))
	return s, source, nil
}
