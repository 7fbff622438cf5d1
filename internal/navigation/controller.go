// Package navigation tracks which screen the user is on: the group list or a
// study session for one group. The controller never reports a study state
// for a group that no longer exists; it falls back to the group list instead.
package navigation

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/store"
)

// Screen identifies one of the two screens.
type Screen int

// Screens
const (
	ScreenGroupList Screen = iota
	ScreenStudying
)

// String returns the screen name used in logs.
func (s Screen) String() string {
	switch s {
	case ScreenGroupList:
		return "group_list"
	case ScreenStudying:
		return "studying"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

// State is the controller's position. GroupID is only meaningful while
// Screen is ScreenStudying.
type State struct {
	Screen  Screen
	GroupID domain.GroupID
}

// Studying reports whether the state is a study session.
func (s State) Studying() bool {
	return s.Screen == ScreenStudying
}

// GroupResolver answers whether a group still exists.
// *service.StateStore implements it.
type GroupResolver interface {
	HasGroup(id domain.GroupID) bool
}

// Controller is the two-screen state machine. Every method runs the guard
// that drops back to the group list when the studied group has vanished.
type Controller struct {
	mu       sync.Mutex
	groups   GroupResolver
	state    State
	logger   *slog.Logger
	onChange func(from, to State)
}

// Option customizes a Controller.
type Option func(*Controller)

// WithTransitionHook registers fn to run after every transition, including
// the automatic fallback. It runs with the controller unlocked.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// NewController starts on the group list.
func NewController(groups GroupResolver, logger *slog.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		groups: groups,
		state:  State{Screen: ScreenGroupList},
		logger: logger.With(slog.String("component", "navigation")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current returns the state after running the guard.
func (c *Controller) Current() State {
	c.mu.Lock()
	from, to, changed := c.guardLocked()
	c.mu.Unlock()

	c.notify(from, to, changed)
	return to
}

// Select starts studying the group. A group that does not exist leaves the
// controller on the group list and returns store.ErrGroupNotFound.
func (c *Controller) Select(id domain.GroupID) error {
	c.mu.Lock()
	from := c.state
	if !c.groups.HasGroup(id) {
		c.state = State{Screen: ScreenGroupList}
		to := c.state
		c.mu.Unlock()

		c.logger.Warn("selected group does not exist",
			slog.Int("group_id", int(id)))
		c.notify(from, to, from != to)
		return fmt.Errorf("select group %d: %w", id, store.ErrGroupNotFound)
	}
	c.state = State{Screen: ScreenStudying, GroupID: id}
	to := c.state
	c.mu.Unlock()

	c.logger.Debug("navigated",
		slog.String("from", from.Screen.String()),
		slog.String("to", to.Screen.String()),
		slog.Int("group_id", int(id)))
	c.notify(from, to, from != to)
	return nil
}

// Return goes back to the group list.
func (c *Controller) Return() {
	c.mu.Lock()
	from := c.state
	c.state = State{Screen: ScreenGroupList}
	to := c.state
	c.mu.Unlock()

	if from != to {
		c.logger.Debug("navigated",
			slog.String("from", from.Screen.String()),
			slog.String("to", to.Screen.String()))
	}
	c.notify(from, to, from != to)
}

// guardLocked falls back to the group list when the studied group is gone.
func (c *Controller) guardLocked() (from, to State, changed bool) {
	from = c.state
	if from.Studying() && !c.groups.HasGroup(from.GroupID) {
		c.state = State{Screen: ScreenGroupList}
		c.logger.Warn("studied group no longer exists, returning to group list",
			slog.Int("group_id", int(from.GroupID)))
		return from, c.state, true
	}
	return from, from, false
}

func (c *Controller) notify(from, to State, changed bool) {
	if changed && c.onChange != nil {
		c.onChange(from, to)
	}
}
