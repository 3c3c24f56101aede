package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#8BC34A")
	primary     = lipgloss.Color("#2196F3")
	muted       = lipgloss.Color("#6B7280")
	destructive = lipgloss.Color("#e53935")
)

type styles struct {
	Title    lipgloss.Style
	Badge    lipgloss.Style
	Selected lipgloss.Style
	Item     lipgloss.Style
	Price    lipgloss.Style
	Muted    lipgloss.Style
	Total    lipgloss.Style
	Modal    lipgloss.Style
	Alert    lipgloss.Style
	AlertErr lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Badge:    lipgloss.NewStyle().Foreground(primary).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(accent).Bold(true),
		Item:     lipgloss.NewStyle(),
		Price:    lipgloss.NewStyle().Foreground(primary),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Total:    lipgloss.NewStyle().Bold(true),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2),
		Alert: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accent).
			Padding(1, 3),
		AlertErr: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(destructive).
			Padding(1, 3),
	}
}
