package tui

import "github.com/charmbracelet/lipgloss"

// Spagen Color Palette
var (
	ColorAccent = lipgloss.Color("#4F9DDE") // Blue for titles and borders
	ColorDeep   = lipgloss.Color("#596E79") // Muted Blue/Grey for secondary text
	ColorDark   = lipgloss.Color("#2C3E50") // Dark background elements
	ColorText   = lipgloss.Color("#E0E0E0") // Primary text
	ColorAlert  = lipgloss.Color("#FF6B6B") // Red for errors
	ColorGood   = lipgloss.Color("#4ECDC4") // Green for success
	ColorMuted  = lipgloss.Color("#6c757d") // Muted text
)

// Styles
var (
	// Headers and Titles
	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorDeep).
			Italic(true)

	// Status Indicators
	StyleStatusGood = lipgloss.NewStyle().Foreground(ColorGood).Bold(true)
	StyleStatusBad  = lipgloss.NewStyle().Foreground(ColorAlert).Bold(true)

	// Panel/Card Styles
	StyleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDeep).
			Padding(0, 1).
			Margin(0, 1)

	StyleActiveCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1).
			Margin(0, 1)

	// CLI text inside cards
	StyleCode = lipgloss.NewStyle().Foreground(ColorText)

	// Top Bar / Menu Styles
	StyleTopBar = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(ColorDeep).
			Padding(0, 1).
			MarginBottom(1)

	StyleMenuItem = lipgloss.NewStyle().
			Foreground(ColorDeep).
			Padding(0, 1)

	StyleMenuItemActive = lipgloss.NewStyle().
				Foreground(ColorDark).
				Background(ColorAccent).
				Bold(true).
				Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Faint(true)

	StyleHelp = lipgloss.NewStyle().Foreground(ColorMuted)
)
