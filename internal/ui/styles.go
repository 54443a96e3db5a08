package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#8BC34A")
	destructive = lipgloss.Color("#e53935")
	muted       = lipgloss.Color("#6b7280")
	border      = lipgloss.Color("#2a3850")
)

// Styles groups the lipgloss styles used by the storefront.
type Styles struct {
	Title     lipgloss.Style
	Badge     lipgloss.Style
	Card      lipgloss.Style
	CardFocus lipgloss.Style
	CardTitle lipgloss.Style
	Category  lipgloss.Style
	Price     lipgloss.Style
	Drawer    lipgloss.Style
	LineFocus lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Spinner   lipgloss.Style
}

// DefaultStyles returns the storefront styles.
func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accent),
		Badge:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(destructive).Padding(0, 1),
		Card:      card,
		CardFocus: card.BorderForeground(accent),
		CardTitle: lipgloss.NewStyle().Bold(true),
		Category:  lipgloss.NewStyle().Foreground(muted).Italic(true),
		Price:     lipgloss.NewStyle().Foreground(accent),
		Drawer: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(border).
			Padding(0, 2),
		LineFocus: lipgloss.NewStyle().Foreground(accent).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(destructive).Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Spinner:   lipgloss.NewStyle().Foreground(accent),
	}
}
