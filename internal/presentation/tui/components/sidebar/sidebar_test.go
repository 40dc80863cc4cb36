package sidebar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRender(t *testing.T) {
	got := Render(Props{
		View:    "All Stories",
		Width:   24,
		Height:  10,
		Title:   "storyterm",
		Account: "Guest",
		Active:  true,
		Accent:  lipgloss.Color("205"),
	})

	for _, want := range []string{"storyterm", "All Stories", "Guest"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() missing %q", want)
		}
	}
	if h := lipgloss.Height(got); h != 10 {
		t.Errorf("Render() height = %d, want 10", h)
	}
}
