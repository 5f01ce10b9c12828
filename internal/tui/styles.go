package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("170") // Orchid
	accentColor  = lipgloss.Color("205") // Pink
	mutedColor   = lipgloss.Color("241") // Gray
	successColor = lipgloss.Color("76")  // Green
	warningColor = lipgloss.Color("214") // Orange
	errorColor   = lipgloss.Color("196") // Red

	// Base styles
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("117")) // Bright cyan
	focusedStyle  = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	errorStyle    = lipgloss.NewStyle().Foreground(errorColor)
	successStyle  = lipgloss.NewStyle().Foreground(successColor)
	warningStyle  = lipgloss.NewStyle().Foreground(warningColor)

	// Box styles
	boxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	// Layout
	borderColor    = lipgloss.Color("63") // Soft purple
	appBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(1, 2)

	// Header/Footer
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true) // Bright yellow

	// Wizard progress
	stepDoneStyle    = lipgloss.NewStyle().Foreground(successColor)
	stepCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	stepTodoStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	totalsStyle      = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
)
