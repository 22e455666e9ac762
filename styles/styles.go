package styles

import "github.com/charmbracelet/lipgloss"

var (
	TITLE = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7d56f4"))

	INFO = lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color("#888888"))

	SUCCESS = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#28a745"))

	SELECTED = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	DIR      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	PAGE     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
