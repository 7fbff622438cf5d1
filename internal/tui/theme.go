package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Core palette
	Indigo    = lipgloss.Color("#5A56E0")
	SoftBlue  = lipgloss.Color("#A5B4FC")
	Green     = lipgloss.Color("#22C55E")
	Amber     = lipgloss.Color("#F59E0B")
	Red       = lipgloss.Color("#EF4444")
	LightGray = lipgloss.Color("#9CA3AF")
	DimGray   = lipgloss.Color("#4B5563")
	White     = lipgloss.Color("#F3F4F6")

	TitleStyle = lipgloss.NewStyle().
			Foreground(Indigo).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	// Group list
	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(Indigo).
				Bold(true)

	RowStyle = lipgloss.NewStyle().
			Foreground(White)

	// Study screen
	CategoryStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	ActiveCategoryStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(Indigo).
				Bold(true).
				Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Indigo).
			Padding(1, 3).
			Width(56)

	AnswerCardStyle = CardStyle.
			BorderForeground(Green)

	CardLabelStyle = lipgloss.NewStyle().
			Foreground(SoftBlue).
			Italic(true)

	EasyStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	HardStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)

	// Forms
	InputBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(DimGray).
				Padding(0, 1)

	InputActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Indigo).
				Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(Green)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)
