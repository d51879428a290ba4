package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color definitions using AdaptiveColor for automatic light/dark mode switching
var (
	headingColor = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#FAFAFA"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#A0A8B0"}
	successColor = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	warningColor = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
	pathColor    = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
)

// styles are bound to one lipgloss renderer so color detection follows
// the writer being rendered to.
type styles struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
	warning lipgloss.Style
	path    lipgloss.Style
	box     lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Foreground(headingColor).Bold(true),
		muted:   r.NewStyle().Foreground(mutedColor),
		success: r.NewStyle().Foreground(successColor).Bold(true),
		err:     r.NewStyle().Foreground(errorColor).Bold(true),
		warning: r.NewStyle().Foreground(warningColor).Bold(true),
		path:    r.NewStyle().Foreground(pathColor).Italic(true),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1),
	}
}
