// Package tui is the terminal front end: a group list screen and a study
// screen driven by the navigation controller and a study session.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/navigation"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/phrazzld/flashdeck/internal/study"
)

// Store is everything the screens call on the state store.
type Store interface {
	study.Deck
	navigation.GroupResolver
	Groups() []domain.Group
	CreateGroup(ctx context.Context, name string) (domain.GroupID, error)
	DeleteGroup(ctx context.Context, id domain.GroupID)
}

// advanceMsg reports that a deferred advance landed.
type advanceMsg struct{}

type inputMode int

const (
	modeBrowse inputMode = iota
	modeNewGroup
	modeAddCard
)

// Model is the root bubbletea model. It owns the navigation controller and,
// while a group is being studied, that group's study session.
type Model struct {
	width, height int

	ctx         context.Context
	store       Store
	nav         *navigation.Controller
	session     *study.Session
	sessionOpts []study.Option
	changes     chan struct{}
	logger      *slog.Logger

	mode      inputMode
	cursor    int
	nameInput nameInput
	form      cardForm
	status    string
	err       error
}

// NewModel builds the root model. sessionOpts are applied to every study
// session the model starts.
func NewModel(
	ctx context.Context,
	deck Store,
	nav *navigation.Controller,
	logger *slog.Logger,
	sessionOpts ...study.Option,
) Model {
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		ctx:         ctx,
		store:       deck,
		nav:         nav,
		sessionOpts: sessionOpts,
		changes:     make(chan struct{}, 1),
		logger:      logger.With(slog.String("component", "tui")),
		nameInput:   newNameInput(),
	}
}

// Init starts listening for deferred advances.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange turns session change notifications into messages.
func (m Model) waitForChange() tea.Cmd {
	ctx, ch := m.ctx, m.changes
	return func() tea.Msg {
		select {
		case <-ch:
			return advanceMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

// notifyChange is the session OnChange hook. It never blocks the timer.
func (m Model) notifyChange() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

// Update handles a key press or a landed advance. Before dispatching a key it
// drops the session if navigation has fallen back to the group list.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case advanceMsg:
		return m, m.waitForChange()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.closeSession()
			return m, tea.Quit
		}

		m.syncScreen()
		if m.nav.Current().Studying() {
			return m.updateStudy(msg)
		}
		return m.updateGroups(msg)
	}
	return m, nil
}

// View renders the current screen with the status or error line beneath it.
func (m Model) View() string {
	var b strings.Builder

	st := m.nav.Current()
	if st.Studying() && m.session != nil {
		b.WriteString(m.viewStudy())
	} else {
		b.WriteString(m.viewGroups())
	}

	if m.err != nil {
		b.WriteString("\n" + ErrorStyle.Render(errorText(m.err)) + "\n")
	} else if m.status != "" {
		b.WriteString("\n" + StatusStyle.Render(m.status) + "\n")
	}
	return b.String()
}

// syncScreen drops the session when navigation has left the study screen,
// for instance because the studied group was deleted.
func (m *Model) syncScreen() {
	st := m.nav.Current()
	if m.session == nil {
		return
	}
	if !st.Studying() || st.GroupID != m.session.GroupID() {
		m.closeSession()
		m.mode = modeBrowse
	}
}

func (m *Model) openSession(id domain.GroupID) error {
	opts := append([]study.Option{
		study.WithLogger(m.logger),
		study.WithOnChange(m.notifyChange),
	}, m.sessionOpts...)

	s, err := study.NewSession(m.store, id, opts...)
	if err != nil {
		return err
	}
	m.session = s
	return nil
}

func (m *Model) closeSession() {
	if m.session != nil {
		m.session.Close()
		m.session = nil
	}
}

func (m *Model) clearMessages() {
	m.status = ""
	m.err = nil
}

// errorText renders a failure for the status line. The screens only look up
// groups, so any not-found error means the group went away.
func errorText(err error) string {
	if store.IsNotFoundError(err) {
		return "this group no longer exists"
	}
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) && vErr.Err != nil {
		return vErr.Err.Error()
	}
	return err.Error()
}
