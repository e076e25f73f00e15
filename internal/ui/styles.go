package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#11175E")).
			MarginBottom(1)

	headingStyle = lipgloss.NewStyle().Bold(true)

	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	linkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	checkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Strikethrough(true)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)

	buttonStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("250"))
	activeButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("63"))
	dangerButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("160"))
)
