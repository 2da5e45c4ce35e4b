package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all the lipgloss styles
type Styles struct {
	title     lipgloss.Style
	label     lipgloss.Style
	summary   lipgloss.Style
	enabled   lipgloss.Style
	disabled  lipgloss.Style
	selected  lipgloss.Style
	file      lipgloss.Style
	muted     lipgloss.Style
	warning   lipgloss.Style
	help      lipgloss.Style
	statusBar lipgloss.Style
}

var (
	accent    = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#93C5FD"}
	barFg     = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#0F172A"}
	barBg     = lipgloss.AdaptiveColor{Light: "#1E3A8A", Dark: "#60A5FA"}
	mutedFg   = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
	warningFg = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
)

func createStyles() *Styles {
	return &Styles{
		title: lipgloss.NewStyle().
			Foreground(barFg).
			Background(barBg).
			Bold(true).
			Padding(0, 1),
		label: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		summary: lipgloss.NewStyle().
			Bold(true).
			PaddingLeft(2),
		enabled: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		disabled: lipgloss.NewStyle().
			Foreground(mutedFg).
			Faint(true),
		selected: lipgloss.NewStyle().
			Foreground(barFg).
			Background(accent),
		file:    lipgloss.NewStyle(),
		muted:   lipgloss.NewStyle().Foreground(mutedFg),
		warning: lipgloss.NewStyle().Foreground(warningFg),
		help: lipgloss.NewStyle().
			Foreground(mutedFg).
			Italic(true).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		statusBar: lipgloss.NewStyle().
			Foreground(barFg).
			Background(barBg).
			Padding(0, 1),
	}
}
