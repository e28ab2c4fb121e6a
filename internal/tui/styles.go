package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the watch dashboard.
type Styles struct {
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Muted   lipgloss.Style
	Target  lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	Running lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the dashboard's fixed palette.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color("#101F38")).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 2),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")),
		Target: lipgloss.NewStyle().
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8BC34A")).
			Bold(true),
		Failure: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e53935")).
			Bold(true),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFC107")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e53935")),
	}
}
