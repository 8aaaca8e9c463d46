package cli

import "github.com/charmbracelet/lipgloss"

// Colors used for command output.
var colors = struct {
	Muted   lipgloss.Color
	Error   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
}{
	Muted:   lipgloss.Color("#636E72"), // Gray
	Error:   lipgloss.Color("#D63031"), // Red
	Success: lipgloss.Color("#00B894"), // Green
	Warning: lipgloss.Color("#FDCB6E"), // Yellow
}

// Styles for progress lines and the run summary.
var styles = struct {
	Success lipgloss.Style
	Failure lipgloss.Style
	Preview lipgloss.Style
	Muted   lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
}{
	Success: lipgloss.NewStyle().Foreground(colors.Success),
	Failure: lipgloss.NewStyle().Foreground(colors.Error),
	Preview: lipgloss.NewStyle().Foreground(colors.Muted),
	Muted:   lipgloss.NewStyle().Foreground(colors.Muted),
	Warning: lipgloss.NewStyle().Foreground(colors.Warning),
	Bold:    lipgloss.NewStyle().Bold(true),
}
