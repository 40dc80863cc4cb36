// Package mainview provides the main content area component.
package mainview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the main view component.
type Props struct {
	Width  int
	Height int
	Header string
	Body   string
	// Notice is an inline panel shown above the body, e.g. a fetch error.
	Notice     string
	NoticeTint lipgloss.Color
	Pagination string
}

// Render renders the main view component.
func Render(p Props) string {
	mainStyle := lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		PaddingLeft(1)

	parts := make([]string, 0, 4)
	if p.Header != "" {
		parts = append(parts, p.Header)
	}
	if p.Notice != "" {
		parts = append(parts, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.NoticeTint).
			Foreground(p.NoticeTint).
			Padding(0, 1).
			Width(max(p.Width-3, 1)).
			Render(p.Notice))
	}
	if p.Body != "" {
		parts = append(parts, p.Body)
	}
	if p.Pagination != "" {
		parts = append(parts, "", p.Pagination)
	}
	return mainStyle.Render(strings.Join(parts, "\n"))
}
