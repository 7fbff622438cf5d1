package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phrazzld/flashdeck/internal/domain"
)

func (m Model) updateStudy(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.session == nil {
		if err := m.openSession(m.nav.Current().GroupID); err != nil {
			m.nav.Return()
			m.err = err
			return m, nil
		}
	}
	if m.mode == modeAddCard {
		return m.updateCardForm(msg)
	}

	switch msg.String() {
	case "esc":
		m.clearMessages()
		m.closeSession()
		m.nav.Return()
	case " ":
		m.session.Flip()
	case "e", "h":
		if !m.session.Flipped() {
			return m, nil
		}
		kind := domain.FeedbackHard
		if msg.String() == "e" {
			kind = domain.FeedbackEasy
		}
		if err := m.session.SubmitFeedback(m.ctx, kind); err != nil {
			m.err = err
		}
	case "c":
		m.session.SetCategory(nextCategory(m.session.Categories(), m.session.SelectedCategory()))
	case "a":
		m.clearMessages()
		m.mode = modeAddCard
		m.form = newCardForm(m.session.Categories(), m.session.SelectedCategory())
		cmd := m.form.focusCurrent()
		return m, cmd
	}
	return m, nil
}

// nextCategory cycles through the filter choices, wrapping to the first.
func nextCategory(categories []string, current string) string {
	for i, c := range categories {
		if c == current {
			return categories[(i+1)%len(categories)]
		}
	}
	return domain.CategoryAll
}

func (m Model) viewStudy() string {
	v := m.session.Snapshot()
	var b strings.Builder

	b.WriteString(TitleStyle.Render(v.GroupName) + "\n")

	tabs := make([]string, 0, len(v.Categories))
	for _, c := range v.Categories {
		if c == v.Category {
			tabs = append(tabs, ActiveCategoryStyle.Render(c))
			continue
		}
		tabs = append(tabs, CategoryStyle.Render(c))
	}
	b.WriteString(strings.Join(tabs, " ") + "\n\n")

	if m.mode == modeAddCard {
		b.WriteString(m.form.View() + "\n")
		b.WriteString(HelpStyle.Render("tab next field • enter save • esc cancel"))
		return b.String()
	}

	if !v.HasCard {
		b.WriteString(SubtitleStyle.Render("No cards in this category.") + "\n")
		b.WriteString(SubtitleStyle.Render("Press a to add one.") + "\n\n")
		b.WriteString(HelpStyle.Render("c category • a add card • esc back"))
		return b.String()
	}

	b.WriteString(SubtitleStyle.Render(fmt.Sprintf("%d / %d (%d total)  %s: %s  easy: %d",
		v.Progress.Position, v.Progress.Visible, v.Progress.Total,
		"category", v.Card.Category, v.Card.EasyCount)) + "\n")

	if v.Flipped {
		b.WriteString(AnswerCardStyle.Render(CardLabelStyle.Render("Answer")+"\n\n"+v.Card.Answer) + "\n")
		b.WriteString(HardStyle.Render("h again (hard)") + "   " + EasyStyle.Render("e got it (easy)") + "\n\n")
		b.WriteString(HelpStyle.Render("space flip • c category • a add card • esc back"))
		return b.String()
	}

	b.WriteString(CardStyle.Render(CardLabelStyle.Render("Question")+"\n\n"+v.Card.Question) + "\n")
	b.WriteString(SubtitleStyle.Render("Press space to show the answer") + "\n\n")
	b.WriteString(HelpStyle.Render("space flip • c category • a add card • esc back"))
	return b.String()
}
