package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type nameInput struct {
	input textinput.Model
}

func newNameInput() nameInput {
	ti := textinput.New()
	ti.Placeholder = "Group name (e.g. English midterm)"
	ti.Prompt = "> "
	ti.CharLimit = 120
	ti.Width = 48
	return nameInput{input: ti}
}

func (m Model) updateGroups(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeNewGroup {
		return m.updateNewGroup(msg)
	}

	groups := m.store.Groups()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(groups)-1 {
			m.cursor++
		}
	case "enter":
		if len(groups) == 0 {
			return m, nil
		}
		m.clearMessages()
		id := groups[m.clampCursor(len(groups))].ID
		if err := m.nav.Select(id); err != nil {
			m.err = err
			return m, nil
		}
		if err := m.openSession(id); err != nil {
			m.nav.Return()
			m.err = err
		}
	case "n":
		m.clearMessages()
		m.mode = modeNewGroup
		m.nameInput.input.Reset()
		cmd := m.nameInput.input.Focus()
		return m, cmd
	case "d":
		if len(groups) == 0 {
			return m, nil
		}
		m.clearMessages()
		g := groups[m.clampCursor(len(groups))]
		m.store.DeleteGroup(m.ctx, g.ID)
		m.status = fmt.Sprintf("Deleted %q", g.Name)
		m.clampCursor(len(groups) - 1)
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateNewGroup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.nameInput.input.Blur()
		m.err = nil
		return m, nil
	case tea.KeyEnter:
		id, err := m.store.CreateGroup(m.ctx, m.nameInput.input.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.mode = modeBrowse
		m.nameInput.input.Blur()
		for i, g := range m.store.Groups() {
			if g.ID == id {
				m.cursor = i
				m.status = fmt.Sprintf("Created %q", g.Name)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput.input, cmd = m.nameInput.input.Update(msg)
	return m, cmd
}

// clampCursor keeps the cursor inside a list of n rows and returns it.
func (m *Model) clampCursor(n int) int {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m.cursor
}

func (m Model) viewGroups() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("flashdeck") + "\n")
	b.WriteString(SubtitleStyle.Render("Pick a group to study") + "\n\n")

	if m.mode == modeNewGroup {
		b.WriteString(InputActiveStyle.Render("New group\n"+m.nameInput.input.View()) + "\n\n")
	}

	groups := m.store.Groups()
	if len(groups) == 0 {
		b.WriteString(SubtitleStyle.Render("No groups yet. Press n to create one.") + "\n")
	}
	for i, g := range groups {
		count := SubtitleStyle.Render(fmt.Sprintf("%d cards", len(g.Cards)))
		if i == m.cursor {
			b.WriteString(SelectedRowStyle.Render("> "+g.Name) + "  " + count + "\n")
			continue
		}
		b.WriteString("  " + RowStyle.Render(g.Name) + "  " + count + "\n")
	}

	help := "enter study • n new group • d delete • q quit"
	if m.mode == modeNewGroup {
		help = "enter create • esc cancel"
	}
	b.WriteString("\n" + HelpStyle.Render(help))
	return b.String()
}
