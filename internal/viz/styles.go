package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour scheme of the previewer.
type Theme struct {
	Name    string
	Title   lipgloss.Color
	Map     lipgloss.Color
	Label   lipgloss.Color
	Value   lipgloss.Color
	Active  lipgloss.Color
	Warning lipgloss.Color
	Graph   lipgloss.Color
	Muted   lipgloss.Color
}

var Themes = []Theme{
	{
		Name:    "cyberpunk",
		Title:   lipgloss.Color("#00ffff"),
		Map:     lipgloss.Color("#ff00ff"),
		Label:   lipgloss.Color("#888899"),
		Value:   lipgloss.Color("#ffffff"),
		Active:  lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffaa00"),
		Graph:   lipgloss.Color("#00ccff"),
		Muted:   lipgloss.Color("#666688"),
	},
	{
		Name:    "retro",
		Title:   lipgloss.Color("#88ff88"),
		Map:     lipgloss.Color("#00ff00"),
		Label:   lipgloss.Color("#00aa00"),
		Value:   lipgloss.Color("#00ff00"),
		Active:  lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
		Graph:   lipgloss.Color("#00cc00"),
		Muted:   lipgloss.Color("#005500"),
	},
	{
		Name:    "ocean",
		Title:   lipgloss.Color("#00a8cc"),
		Map:     lipgloss.Color("#0077be"),
		Label:   lipgloss.Color("#4488aa"),
		Value:   lipgloss.Color("#e0f0ff"),
		Active:  lipgloss.Color("#00ff88"),
		Warning: lipgloss.Color("#ffcc00"),
		Graph:   lipgloss.Color("#ffd700"),
		Muted:   lipgloss.Color("#336688"),
	},
}

func ThemeByName(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func nextTheme(cur Theme) Theme {
	for i, t := range Themes {
		if t.Name == cur.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

type styles struct {
	title, label, value, active, warning, graph, muted, panel, canvas lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:   lipgloss.NewStyle().Foreground(t.Title).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Label).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Value),
		active:  lipgloss.NewStyle().Foreground(t.Active).Bold(true),
		warning: lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		graph:   lipgloss.NewStyle().Foreground(t.Graph).Padding(1, 0),
		muted:   lipgloss.NewStyle().Foreground(t.Muted),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(52),
		canvas: lipgloss.NewStyle().Foreground(t.Map).Padding(1, 2),
	}
}

// ProgressBar renders a bar of the given width for p in [0, 1].
func ProgressBar(p float64, width int) string {
	filled := int(p * float64(width))
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
