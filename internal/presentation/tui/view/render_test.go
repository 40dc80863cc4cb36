package view

import (
	"strings"
	"testing"

	"github.com/tesso57/storyterm/internal/presentation/tui/components/header"
	mainview "github.com/tesso57/storyterm/internal/presentation/tui/components/main"
	"github.com/tesso57/storyterm/internal/presentation/tui/components/modal"
	"github.com/tesso57/storyterm/internal/presentation/tui/components/sidebar"
)

func TestRender(t *testing.T) {
	props := Props{
		Sidebar: sidebar.Props{View: "NAV", Width: 20, Height: 10, Title: "storyterm", Account: "Guest"},
		Header:  header.Props{Visible: true, Title: "Explore Stories", Subtitle: "Page 1"},
		Main:    mainview.Props{Width: 50, Height: 10, Body: "BODY", Pagination: "Page 1"},
		Footer:  "FOOTER",
	}

	got := Render(props)
	for _, want := range []string{"NAV", "Guest", "Explore Stories", "BODY", "FOOTER"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q", want)
		}
	}

	props.Modal = modal.Props{Visible: true, Kind: modal.Confirm, Body: "Are you sure?", Width: 70, Height: 12}
	got = Render(props)
	if !strings.Contains(got, "Are you sure?") || strings.Contains(got, "BODY") {
		t.Errorf("modal should replace the layout:\n%s", got)
	}
}

func TestRenderBeforeResize(t *testing.T) {
	if got := Render(Props{}); got != Placeholder {
		t.Errorf("Render() = %q, want placeholder", got)
	}
}
