package tui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

type styles struct {
	title    lipgloss.Style
	status   lipgloss.Style
	header   lipgloss.Style
	today    lipgloss.Style
	gutter   lipgloss.Style
	empty    lipgloss.Style
	hour     lipgloss.Style
	preview  lipgloss.Style
	proposal lipgloss.Style
	help     lipgloss.Style
	editor   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		header:   lipgloss.NewStyle().Bold(true),
		today:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		gutter:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		empty:    lipgloss.NewStyle(),
		hour:     lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		preview:  lipgloss.NewStyle().Background(lipgloss.Color("237")),
		proposal: lipgloss.NewStyle().Background(lipgloss.Color("250")).Foreground(lipgloss.Color("232")),
		help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		editor: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
	}
}

// blockStyle renders a block in its own color with a readable foreground.
func blockStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(textColor(hex))
}

// textColor picks black or white, whichever reads better on hex.
func textColor(hex string) lipgloss.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.Color("#ffffff")
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#ffffff")
}
