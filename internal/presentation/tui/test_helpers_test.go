package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/storyterm/internal/application/settings"
	"github.com/tesso57/storyterm/internal/presentation/tui/update"
	"github.com/tesso57/storyterm/internal/testutil/teststack"
)

func testSettings() settings.Settings {
	return settings.Settings{
		KeyMap: settings.KeyMapConfig{
			Up: "k", Down: "j", PrevPage: "h,left", NextPage: "l,right",
			Open: "enter", Back: "esc", Quit: "q", Refresh: "r",
			ToggleView: "tab", AllView: "a", MineView: "m",
			Compose: "n", Delete: "x", Login: "L", Signup: "U", Logout: "O",
		},
		Theme: settings.ThemeConfig{Accent: "205", Muted: "244", Tag: "39", Error: "203"},
	}
}

// newTestModel builds a sized model over a fresh stack without running Init.
func newTestModel(t *testing.T) (*Model, *teststack.Stack) {
	t.Helper()
	stack := teststack.New(t)
	m := NewModel(testSettings(), stack.App)
	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, stack
}

func send(m *Model, msg tea.Msg) *Model {
	tm, cmd := m.Update(msg)
	m = tm.(*Model)
	return run(m, cmd)
}

// run executes cmd and feeds the resulting messages back into the model.
// Spinner ticks and quit requests are dropped.
func run(m *Model, cmd tea.Cmd) *Model {
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(m, c)
		}
	case update.InitializedMsg, update.FeedLoadedMsg, update.ResultMsg, update.LoggedOutMsg:
		m = send(m, msg)
	}
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
