package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// Form field order.
const (
	fieldCategory = iota
	fieldNewCategory
	fieldQuestion
	fieldAnswer
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Category",
	"Or a new category",
	"Question",
	"Answer",
}

// cardForm collects a new card for the studied group.
type cardForm struct {
	inputs     [fieldCount]textinput.Model
	focus      int
	categories []string
}

// newCardForm prefills the category with the active filter, or the first
// existing category when every card is shown.
func newCardForm(categories []string, selected string) cardForm {
	var f cardForm
	placeholders := [fieldCount]string{
		"existing category",
		"e.g. English chapter 1",
		"e.g. What is the latest React version?",
		"e.g. React 19",
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = ""
		ti.CharLimit = 500
		ti.Width = 48
		f.inputs[i] = ti
	}

	for _, c := range categories {
		if c != domain.CategoryAll {
			f.categories = append(f.categories, c)
		}
	}
	switch {
	case selected != domain.CategoryAll && selected != "":
		f.inputs[fieldCategory].SetValue(selected)
	case len(f.categories) > 0:
		f.inputs[fieldCategory].SetValue(f.categories[0])
	}
	return f
}

func (f *cardForm) focusCurrent() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	return f.inputs[f.focus].Focus()
}

func (f *cardForm) move(delta int) tea.Cmd {
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.focusCurrent()
}

func (f cardForm) input() domain.CardInput {
	return domain.CardInput{
		Category:    f.inputs[fieldCategory].Value(),
		NewCategory: f.inputs[fieldNewCategory].Value(),
		Question:    f.inputs[fieldQuestion].Value(),
		Answer:      f.inputs[fieldAnswer].Value(),
	}
}

func (f cardForm) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Add a card") + "\n")
	if len(f.categories) > 0 {
		b.WriteString(SubtitleStyle.Render("Existing: "+strings.Join(f.categories, ", ")) + "\n")
	}
	for i, in := range f.inputs {
		style := InputBorderStyle
		if i == f.focus {
			style = InputActiveStyle
		}
		b.WriteString(style.Render(fieldLabels[i]+"\n"+in.View()) + "\n")
	}
	return b.String()
}

func (m Model) updateCardForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.err = nil
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		cmd := m.form.move(1)
		return m, cmd
	case tea.KeyShiftTab, tea.KeyUp:
		cmd := m.form.move(-1)
		return m, cmd
	case tea.KeyEnter:
		if m.form.focus < fieldAnswer {
			cmd := m.form.move(1)
			return m, cmd
		}
		id, err := m.session.AddCard(m.ctx, m.form.input())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.logger.Debug("card added from form", slog.Int("card_id", int(id)))
		m.mode = modeBrowse
		m.err = nil
		m.status = "Card added"
		return m, nil
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}
