package update

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/storyterm/internal/application/settings"
	"github.com/tesso57/storyterm/internal/presentation/tui/state"
	"github.com/tesso57/storyterm/internal/testutil/teststack"
)

func testKeyMap() state.KeyMap {
	return state.NewKeyMap(settings.KeyMapConfig{
		Up: "k", Down: "j", PrevPage: "h,left", NextPage: "l,right",
		Open: "enter", Back: "esc", Quit: "q", Refresh: "r",
		ToggleView: "tab", AllView: "a", MineView: "m",
		Compose: "n", Delete: "x", Login: "L", Signup: "U", Logout: "O",
	})
}

func newTestState() *state.ModelState {
	return &state.ModelState{
		Screen:    state.FeedScreen,
		NavList:   list.New(nil, list.NewDefaultDelegate(), 0, 0),
		StoryList: list.New(nil, list.NewDefaultDelegate(), 0, 0),
		Viewport:  viewport.New(0, 0),
		Help:      help.New(),
		Spinner:   spinner.New(),
		Keys:      testKeyMap(),
		Width:     100,
		Height:    40,
	}
}

// harness couples a state with a live stack and drives commands to completion.
type harness struct {
	t     *testing.T
	stack *teststack.Stack
	deps  Deps
	s     *state.ModelState
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	stack := teststack.New(t)
	return &harness{t: t, stack: stack, deps: Deps{App: stack.App}, s: newTestState()}
}

func (h *harness) init() {
	h.t.Helper()
	h.drain(InitCmd(h.deps.App))
}

// press sends one key and runs whatever it schedules. It reports whether the key was handled.
func (h *harness) press(msg tea.KeyMsg) bool {
	h.t.Helper()
	cmd, handled := HandleKeyMsg(h.s, msg, h.deps)
	h.drain(cmd)
	return handled
}

func (h *harness) typeText(text string) {
	h.t.Helper()
	h.press(runes(text))
}

func (h *harness) drain(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	quit := false
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			quit = h.drain(c) || quit
		}
	case tea.QuitMsg:
		quit = true
	case InitializedMsg:
		HandleInitializedMsg(h.s, msg, h.deps)
	case FeedLoadedMsg:
		HandleFeedLoadedMsg(h.s, msg, h.deps)
	case ResultMsg:
		HandleResultMsg(h.s, msg, h.deps)
	case LoggedOutMsg:
		HandleLoggedOutMsg(h.s, h.deps)
	}
	return quit
}

func (h *harness) signIn() {
	h.t.Helper()
	h.press(runes("L"))
	h.typeText("ada@x.com")
	h.press(tea.KeyMsg{Type: tea.KeyTab})
	h.typeText("secret")
	h.press(tea.KeyMsg{Type: tea.KeyEnter})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
