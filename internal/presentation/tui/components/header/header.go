// Package header provides the main-pane header component.
package header

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the header component.
type Props struct {
	Visible bool
	Title   string
	// Subtitle is the page/count line under the title.
	Subtitle string
	Accent   lipgloss.Color
	Muted    lipgloss.Color
}

// Render renders the header component.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Render(p.Title)
	subtitle := lipgloss.NewStyle().Foreground(p.Muted).Render(p.Subtitle)
	return title + "\n" + subtitle
}
