package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	primaryColor = lipgloss.Color("#43BF6D") // Green
	accentColor  = lipgloss.Color("#7D56F4") // Purple
	errorColor   = lipgloss.Color("#FF0000") // Red
	subtleColor  = lipgloss.Color("#626262") // Gray
	textColor    = lipgloss.Color("#FFFFFF") // White
)

// Common styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 1).
			MarginBottom(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Bold(true)

	onStyle = lipgloss.NewStyle().
		Foreground(primaryColor).
		Bold(true)

	offStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true).
			MarginTop(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			MarginTop(1)
)
