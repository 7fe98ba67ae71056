// Package display renders cards, hands and game results for terminals.
package display

import "github.com/charmbracelet/lipgloss"

// Styles groups every style used by the renderers.
type Styles struct {
	Header    lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Layout    lipgloss.Style
	Winner    lipgloss.Style
	Folded    lipgloss.Style
	Info      lipgloss.Style
	Warning   lipgloss.Style
	Box       lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		RedCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Layout: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")),
		Winner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Folded: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Strikethrough(true),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1),
	}
}

// PlainStyles renders without colour or borders, for logs and tests.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:    plain,
		RedCard:   plain,
		BlackCard: plain,
		Layout:    plain,
		Winner:    plain,
		Folded:    plain,
		Info:      plain,
		Warning:   plain,
		Box:       plain,
	}
}
