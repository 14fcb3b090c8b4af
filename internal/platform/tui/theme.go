package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the styles shared by the menu screens.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	Description lipgloss.Style
	Help        lipgloss.Style
	Heading     lipgloss.Style
	Panel       lipgloss.Style
	Stars       lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Stars: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

var theme = DefaultTheme()
