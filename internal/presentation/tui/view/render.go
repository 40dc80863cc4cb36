// Package view orchestrates the composition of UI components.
package view

import (
	"github.com/tesso57/storyterm/internal/presentation/tui/components/header"
	"github.com/tesso57/storyterm/internal/presentation/tui/components/layout"
	mainview "github.com/tesso57/storyterm/internal/presentation/tui/components/main"
	"github.com/tesso57/storyterm/internal/presentation/tui/components/modal"
	"github.com/tesso57/storyterm/internal/presentation/tui/components/sidebar"
)

// Placeholder is shown until the terminal size is known.
const Placeholder = "Starting storyterm..."

// Props aggregates properties for all UI components.
type Props struct {
	Sidebar sidebar.Props
	Header  header.Props
	Main    mainview.Props
	Modal   modal.Props
	Footer  string
}

// Render renders the complete UI view based on the provided props.
// A visible modal replaces the whole screen.
func Render(p Props) string {
	if p.Main.Width <= 0 {
		return Placeholder
	}
	if p.Modal.Visible {
		return modal.Render(p.Modal)
	}

	p.Main.Header = header.Render(p.Header)
	return layout.Render(layout.Props{
		Sidebar: sidebar.Render(p.Sidebar),
		Main:    mainview.Render(p.Main),
		Footer:  p.Footer,
	})
}
