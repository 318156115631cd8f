package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/bloco/internal/model"
)

// ------- styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("#888888"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).
			Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#6c5ce7"))
	tabBarStyle = lipgloss.NewStyle().Background(lipgloss.Color("#424242"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 1)

	starOn  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5a67d8"))
	starOff = lipgloss.NewStyle().Foreground(lipgloss.Color("#7a7a7a"))

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

// cardStyle is the frame of a note in the grid, filled with the note color.
func cardStyle(c model.Color, selected bool, width int) lipgloss.Style {
	border := lipgloss.Color("#333333")
	if selected {
		border = lipgloss.Color("#6c5ce7")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Background(lipgloss.Color(string(c))).
		Padding(0, 1).
		Width(width)
}

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}
