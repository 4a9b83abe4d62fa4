package main

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual styling for the kaizoarch dashboard.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color
}

// DefaultTheme returns the default dashboard theme.
func DefaultTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("12"),  // Blue
		Secondary: lipgloss.Color("14"),  // Cyan
		Success:   lipgloss.Color("10"),  // Green
		Warning:   lipgloss.Color("11"),  // Yellow
		Error:     lipgloss.Color("9"),   // Red
		Muted:     lipgloss.Color("240"), // Gray
	}
}

// Styles holds the pre-built lipgloss styles derived from a theme.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Good    lipgloss.Style
	Bad     lipgloss.Style
	Warn    lipgloss.Style
	Muted   lipgloss.Style
	Section lipgloss.Style
}

// NewStyles builds the dashboard styles from theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Header:  lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Cell:    lipgloss.NewStyle(),
		Good:    lipgloss.NewStyle().Foreground(theme.Success),
		Bad:     lipgloss.NewStyle().Foreground(theme.Error),
		Warn:    lipgloss.NewStyle().Foreground(theme.Warning),
		Muted:   lipgloss.NewStyle().Foreground(theme.Muted),
		Section: lipgloss.NewStyle().Bold(true),
	}
}
