// Package study implements one study session over a group: the category
// filter, the visible card subset, the current position and flip state, and
// the learning feedback that feeds back into the state store.
package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/phrazzld/flashdeck/internal/store"
)

// DefaultAdvanceDelay keeps the card face down briefly before the next one
// shows, so the flip back is visible.
const DefaultAdvanceDelay = 100 * time.Millisecond

// Deck is the part of the state store a session needs.
// *service.StateStore implements it.
type Deck interface {
	Group(id domain.GroupID) (domain.Group, bool)
	AddCard(ctx context.Context, groupID domain.GroupID, in domain.CardInput) (domain.CardID, error)
	RecordEasy(ctx context.Context, groupID domain.GroupID, cardID domain.CardID)
	RecordHard(ctx context.Context, groupID domain.GroupID, cardID domain.CardID)
}

// Progress locates the current card. Position is 1-based and 0 when no card
// is shown; Visible counts the filtered cards and Total every card in the
// group.
type Progress struct {
	Position int
	Visible  int
	Total    int
}

// View is a consistent snapshot of everything a screen renders.
type View struct {
	GroupID    domain.GroupID
	GroupName  string
	Category   string
	Categories []string
	Card       domain.Card
	HasCard    bool
	Flipped    bool
	Progress   Progress
}

// Session holds the study position for one group. The deferred advance runs
// on a timer goroutine, so all state is guarded by mu.
type Session struct {
	mu        sync.Mutex
	deck      Deck
	groupID   domain.GroupID
	category  string
	index     int
	flipped   bool
	cardCount int
	// epoch changes on every reset; a deferred advance scheduled under an
	// older epoch is discarded when it fires.
	epoch     uint64
	// timers holds the advances still pending, keyed by schedule order.
	timers    map[uint64]Timer
	nextTimer uint64
	closed    bool
	delay     time.Duration
	scheduler Scheduler
	onChange  func()
	logger    *slog.Logger
}

// Option customizes a Session.
type Option func(*Session)

// WithAdvanceDelay sets how long Advance waits before moving on. Zero moves
// immediately.
func WithAdvanceDelay(d time.Duration) Option {
	return func(s *Session) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithScheduler replaces the runtime timer, mainly for tests.
func WithScheduler(sch Scheduler) Option {
	return func(s *Session) {
		if sch != nil {
			s.scheduler = sch
		}
	}
}

// WithOnChange registers fn to run after a deferred advance lands, so the
// presentation can redraw. It runs on the timer goroutine with the session
// unlocked.
func WithOnChange(fn func()) Option {
	return func(s *Session) {
		s.onChange = fn
	}
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession starts a session on the group with the all-cards filter.
func NewSession(deck Deck, groupID domain.GroupID, opts ...Option) (*Session, error) {
	if deck == nil {
		return nil, errors.New("deck cannot be nil")
	}
	g, ok := deck.Group(groupID)
	if !ok {
		return nil, fmt.Errorf("start session for group %d: %w", groupID, store.ErrGroupNotFound)
	}

	s := &Session{
		deck:      deck,
		groupID:   groupID,
		category:  domain.CategoryAll,
		cardCount: len(g.Cards),
		timers:    make(map[uint64]Timer),
		delay:     DefaultAdvanceDelay,
		scheduler: clockScheduler{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(
		slog.String("component", "study_session"),
		slog.Int("group_id", int(groupID)))
	return s, nil
}

// GroupID returns the studied group.
func (s *Session) GroupID() domain.GroupID {
	return s.groupID
}

// SelectedCategory returns the active filter.
func (s *Session) SelectedCategory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// SetCategory changes the filter. An empty value selects every card. A
// changed filter starts over at the first card, face up.
func (s *Session) SetCategory(category string) {
	if category == "" {
		category = domain.CategoryAll
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if category == s.category {
		return
	}
	s.category = category
	s.resetLocked()
	s.logger.Debug("category selected", slog.String("category", category))
}

// Categories returns the filter choices for the group.
func (s *Session) Categories() []string {
	g, ok := s.deck.Group(s.groupID)
	if !ok {
		return []string{domain.CategoryAll}
	}
	return g.Categories()
}

// Visible returns the cards that pass the filter, in group order.
func (s *Session) Visible() []domain.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, visible, _ := s.observeLocked()
	return visible
}

// Current returns the displayed card. ok is false when the filter leaves no
// cards ("no cards in this category") or the group is gone.
func (s *Session) Current() (card domain.Card, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, visible, _ := s.observeLocked()
	if len(visible) == 0 {
		return domain.Card{}, false
	}
	return visible[s.index], true
}

// Flipped reports whether the answer side is showing.
func (s *Session) Flipped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observeLocked()
	return s.flipped
}

// Flip turns the card over and returns the new side.
func (s *Session) Flip() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observeLocked()
	s.flipped = !s.flipped
	return s.flipped
}

// Progress returns the position of the current card.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, visible, _ := s.observeLocked()
	return s.progressLocked(len(g.Cards), len(visible))
}

// Snapshot returns everything needed to render the session at once.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, visible, _ := s.observeLocked()
	v := View{
		GroupID:    s.groupID,
		GroupName:  g.Name,
		Category:   s.category,
		Categories: g.Categories(),
		Flipped:    s.flipped,
		Progress:   s.progressLocked(len(g.Cards), len(visible)),
	}
	if len(visible) > 0 {
		v.Card = visible[s.index]
		v.HasCard = true
	}
	return v
}

// Advance turns the card face down and, when there are cards to show, moves
// to the next one (wrapping around) after the advance delay.
func (s *Session) Advance() {
	s.mu.Lock()
	_, visible, _ := s.observeLocked()
	s.flipped = false
	if len(visible) == 0 || s.closed {
		s.mu.Unlock()
		return
	}

	if s.delay == 0 {
		s.index = (s.index + 1) % len(visible)
		s.mu.Unlock()
		return
	}

	epoch := s.epoch
	seq := s.nextTimer
	s.nextTimer++
	s.timers[seq] = s.scheduler.AfterFunc(s.delay, func() { s.fireAdvance(epoch, seq) })
	s.mu.Unlock()
}

// fireAdvance moves to the next card unless the session changed since the
// advance was scheduled.
func (s *Session) fireAdvance(epoch, seq uint64) {
	s.mu.Lock()
	delete(s.timers, seq)
	if s.closed || s.epoch != epoch {
		s.mu.Unlock()
		return
	}
	_, visible, _ := s.observeLocked()
	if s.epoch != epoch || len(visible) == 0 {
		s.mu.Unlock()
		return
	}
	s.index = (s.index + 1) % len(visible)
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange()
	}
}

// SubmitFeedback records the verdict on the current card and advances.
// Easy increments the card's easy count first; hard changes no data. With
// no card displayed it does nothing.
func (s *Session) SubmitFeedback(ctx context.Context, kind domain.Feedback) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidFeedback, kind)
	}

	card, ok := s.Current()
	if !ok {
		return nil
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("feedback",
		slog.String("kind", string(kind)),
		slog.Int("card_id", int(card.ID)))

	if kind == domain.FeedbackEasy {
		s.deck.RecordEasy(ctx, s.groupID, card.ID)
	} else {
		s.deck.RecordHard(ctx, s.groupID, card.ID)
	}
	s.Advance()
	return nil
}

// AddCard adds a card to the studied group. The grown card count starts the
// session over at the first card.
func (s *Session) AddCard(ctx context.Context, in domain.CardInput) (domain.CardID, error) {
	id, err := s.deck.AddCard(ctx, s.groupID, in)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.observeLocked()
	s.mu.Unlock()
	return id, nil
}

// Close discards pending advances. The session stays readable.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopTimersLocked()
}

// observeLocked reads the group and applies the reset rule: a changed card
// count puts the session back at the first card, face up. A vanished group
// reads as empty.
func (s *Session) observeLocked() (domain.Group, []domain.Card, bool) {
	g, ok := s.deck.Group(s.groupID)
	if !ok {
		if s.cardCount != 0 {
			s.cardCount = 0
			s.resetLocked()
		}
		return domain.Group{ID: s.groupID}, nil, false
	}

	if len(g.Cards) != s.cardCount {
		s.cardCount = len(g.Cards)
		s.resetLocked()
	}

	visible := g.Filter(s.category)
	if s.index >= len(visible) {
		s.index = 0
	}
	return g, visible, true
}

func (s *Session) resetLocked() {
	s.index = 0
	s.flipped = false
	s.epoch++
	s.stopTimersLocked()
}

func (s *Session) stopTimersLocked() {
	for seq, t := range s.timers {
		t.Stop()
		delete(s.timers, seq)
	}
}

func (s *Session) progressLocked(total, visible int) Progress {
	p := Progress{Visible: visible, Total: total}
	if visible > 0 {
		p.Position = s.index + 1
	}
	return p
}
