package tui

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/dealdesk/internal/config"
)

// styles holds the lipgloss styles derived from the color scheme
type styles struct {
	column       lipgloss.Style
	columnHeader lipgloss.Style
	card         lipgloss.Style
	selectedCard lipgloss.Style
	title        lipgloss.Style
	subtle       lipgloss.Style
	normal       lipgloss.Style
	amount       lipgloss.Style
	info         lipgloss.Style
	error        lipgloss.Style
	overlay      lipgloss.Style
}

func newStyles(colors config.ColorScheme) styles {
	return styles{
		column: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(colors.ColumnBorder)).
			Padding(0, 1),
		columnHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.Title)),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colors.CardBorder)).
			Padding(0, 1),
		selectedCard: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(colors.SelectedBorder)).
			Padding(0, 1),
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.Title)),
		subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors.Subtle)),
		normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors.Normal)),
		amount: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.Amount)),
		info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors.InfoFg)),
		error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.ErrorFg)),
		overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colors.Accent)).
			Padding(1, 2),
	}
}
