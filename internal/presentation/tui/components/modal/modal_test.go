package modal

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		props Props
		want  []string
	}{
		{
			name:  "hidden",
			props: Props{Visible: false, Body: "x"},
		},
		{
			name: "form",
			props: Props{
				Visible:  true,
				Kind:     Form,
				Title:    "Sign in",
				Body:     "Email",
				Width:    80,
				Height:   24,
				BoxWidth: 40,
				Accent:   lipgloss.Color("205"),
			},
			want: []string{"Sign in", "Email"},
		},
		{
			name:  "help",
			props: Props{Visible: true, Kind: Help, Body: "keys", Width: 40, Height: 10},
			want:  []string{"keys"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.props)
			if len(tt.want) == 0 {
				if got != "" {
					t.Fatalf("Render() = %q, want empty", got)
				}
				return
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Render() missing %q", w)
				}
			}
		})
	}
}
