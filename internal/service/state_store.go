package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/events"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

type groupPayload struct {
	GroupID domain.GroupID `json:"group_id"`
	Name    string         `json:"name,omitempty"`
}

type cardPayload struct {
	GroupID  domain.GroupID `json:"group_id"`
	CardID   domain.CardID  `json:"card_id"`
	Category string         `json:"category,omitempty"`
}

// StateStore owns the application state. All methods are safe for
// concurrent use; each operation is atomic with respect to the state.
type StateStore struct {
	mu      sync.Mutex
	state   *domain.State
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewStateStore creates a StateStore around initial, which it takes ownership
// of. It returns an error if initial or emitter is nil.
func NewStateStore(
	initial *domain.State,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (*StateStore, error) {
	if initial == nil {
		return nil, domain.NewValidationError("initial", "cannot be nil", domain.ErrValidation)
	}
	if emitter == nil {
		return nil, domain.NewValidationError("emitter", "cannot be nil", domain.ErrValidation)
	}
	if initial.Groups == nil {
		initial.Groups = make(map[domain.GroupID]*domain.Group)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StateStore{
		state:   initial,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "state_store")),
	}, nil
}

// CreateGroup adds an empty group and returns its ID. The name is trimmed
// and must not be empty.
func (s *StateStore) CreateGroup(ctx context.Context, name string) (domain.GroupID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	group, err := domain.NewGroup(s.state.NextGroupID, name)
	if err != nil {
		s.mu.Unlock()
		log.Debug("rejected group", slog.String("error", err.Error()))
		return 0, err
	}
	s.state.AllocateGroupID()
	s.state.Groups[group.ID] = group
	s.mu.Unlock()

	log.Info("created group",
		slog.Int("group_id", int(group.ID)),
		slog.String("name", group.Name))
	s.emit(ctx, events.TypeGroupCreated, groupPayload{GroupID: group.ID, Name: group.Name})
	return group.ID, nil
}

// DeleteGroup removes the group and its cards. Deleting a missing group is a
// no-op.
func (s *StateStore) DeleteGroup(ctx context.Context, id domain.GroupID) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	_, ok := s.state.Groups[id]
	delete(s.state.Groups, id)
	s.mu.Unlock()

	if !ok {
		log.Debug("delete of missing group ignored", slog.Int("group_id", int(id)))
		return
	}

	log.Warn("deleted group", slog.Int("group_id", int(id)))
	s.emit(ctx, events.TypeGroupDeleted, groupPayload{GroupID: id})
}

// AddCard appends a card to the group and returns its ID. It fails with a
// validation error when the group does not exist or the input is incomplete;
// the state is left unchanged in that case.
func (s *StateStore) AddCard(
	ctx context.Context,
	groupID domain.GroupID,
	in domain.CardInput,
) (domain.CardID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	group, ok := s.state.Groups[groupID]
	if !ok {
		s.mu.Unlock()
		log.Debug("rejected card for missing group", slog.Int("group_id", int(groupID)))
		return 0, domain.NewValidationError("group_id", "group does not exist", store.ErrGroupNotFound)
	}

	card, err := domain.NewCard(s.state.NextCardID, in)
	if err != nil {
		s.mu.Unlock()
		log.Debug("rejected card",
			slog.Int("group_id", int(groupID)),
			slog.String("error", err.Error()))
		return 0, err
	}
	s.state.AllocateCardID()
	group.Cards = append(group.Cards, card)
	s.mu.Unlock()

	log.Info("added card",
		slog.Int("group_id", int(groupID)),
		slog.Int("card_id", int(card.ID)),
		slog.String("category", card.Category))
	s.emit(ctx, events.TypeCardAdded, cardPayload{
		GroupID:  groupID,
		CardID:   card.ID,
		Category: card.Category,
	})
	return card.ID, nil
}

// RecordEasy increments the card's easy count. A missing group or card is
// tolerated silently: the caller may hold a reference that a deletion has
// already invalidated.
func (s *StateStore) RecordEasy(ctx context.Context, groupID domain.GroupID, cardID domain.CardID) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	group, ok := s.state.Groups[groupID]
	idx := -1
	if ok {
		idx = group.CardIndex(cardID)
	}
	if idx < 0 {
		s.mu.Unlock()
		reason := store.ErrCardNotFound
		if !ok {
			reason = store.ErrGroupNotFound
		}
		log.Debug("easy feedback for missing card ignored",
			slog.Int("group_id", int(groupID)),
			slog.Int("card_id", int(cardID)),
			slog.String("reason", reason.Error()))
		return
	}
	group.Cards[idx].EasyCount++
	count := group.Cards[idx].EasyCount
	s.mu.Unlock()

	log.Debug("recorded easy",
		slog.Int("group_id", int(groupID)),
		slog.Int("card_id", int(cardID)),
		slog.Int("easy_count", count))
	s.emit(ctx, events.TypeCardEasy, cardPayload{GroupID: groupID, CardID: cardID})
}

// RecordHard records that the card was not recalled. It changes no data.
func (s *StateStore) RecordHard(ctx context.Context, groupID domain.GroupID, cardID domain.CardID) {
	logger.FromContextOrDefault(ctx, s.logger).Debug("recorded hard",
		slog.Int("group_id", int(groupID)),
		slog.Int("card_id", int(cardID)))
	s.emit(ctx, events.TypeCardHard, cardPayload{GroupID: groupID, CardID: cardID})
}

// Groups returns copies of all groups in ascending ID order.
func (s *StateStore) Groups() []domain.Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := s.state.SortedGroups()
	out := make([]domain.Group, 0, len(sorted))
	for _, g := range sorted {
		out = append(out, *g.Clone())
	}
	return out
}

// Group returns a copy of the group with the given ID.
func (s *StateStore) Group(id domain.GroupID) (domain.Group, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.state.Groups[id]
	if !ok {
		return domain.Group{}, false
	}
	return *g.Clone(), true
}

// HasGroup reports whether the group exists.
func (s *StateStore) HasGroup(id domain.GroupID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.state.Groups[id]
	return ok
}

// Categories returns the filter choices of the group: the all-cards sentinel
// followed by its sorted distinct categories. It returns nil for a missing
// group.
func (s *StateStore) Categories(id domain.GroupID) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.state.Groups[id]
	if !ok {
		return nil
	}
	return g.Categories()
}

// NextIDs returns the IDs the next created group and card will receive.
func (s *StateStore) NextIDs() (domain.GroupID, domain.CardID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.NextGroupID, s.state.NextCardID
}

// Snapshot returns a deep copy of the whole state.
func (s *StateStore) Snapshot() *domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// emit announces an operation. It runs outside the lock so handlers may read
// the store. Handler failures are logged only.
func (s *StateStore) emit(ctx context.Context, eventType string, payload any) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewStateEvent(eventType, payload)
	if err != nil {
		log.Error("failed to build state event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("state change not fully handled",
			slog.String("error", NewStateStoreError(eventType, "event handler failed", err).Error()))
	}
}
