package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/model"
)

// ------- Lip Gloss styles for the interactive view -------
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
	markStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)

	priorityStyles = map[model.Priority]lipgloss.Style{
		model.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		model.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		model.PriorityLow:    lipgloss.NewStyle().Faint(true),
	}

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("8")).
	Padding(0, 1)

var priorityBadges = map[model.Priority]string{
	model.PriorityHigh:   "H",
	model.PriorityMedium: "M",
	model.PriorityLow:    "L",
}
