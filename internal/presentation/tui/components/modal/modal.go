// Package modal provides modal dialog components.
package modal

import (
	"github.com/charmbracelet/lipgloss"
)

// Kind represents the type of modal.
type Kind int

const (
	// None indicates no modal.
	None Kind = iota
	// Form shows a sign-in, sign-up or compose form.
	Form
	// Confirm shows a yes/no question such as delete or quit.
	Confirm
	// Help shows the full key help.
	Help
)

// Props defines the properties for the modal component.
type Props struct {
	Visible bool
	Kind    Kind
	Title   string
	Body    string
	Width   int
	Height  int
	// BoxWidth fixes the dialog width; zero sizes it to the content.
	BoxWidth int
	Accent   lipgloss.Color
}

// Render renders the modal component.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}

	borderColor := lipgloss.Color("63")
	if p.Kind == Form || p.Kind == Confirm {
		borderColor = p.Accent
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2)
	if p.BoxWidth > 0 {
		box = box.Width(p.BoxWidth)
	}

	body := p.Body
	if p.Title != "" {
		body = lipgloss.NewStyle().Bold(true).Foreground(borderColor).Render(p.Title) + "\n\n" + body
	}

	return lipgloss.Place(p.Width, p.Height, lipgloss.Center, lipgloss.Center, box.Render(body))
}
