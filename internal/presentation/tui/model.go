package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/storyterm/internal/application/app"
	"github.com/tesso57/storyterm/internal/application/settings"
	"github.com/tesso57/storyterm/internal/presentation/tui/state"
	"github.com/tesso57/storyterm/internal/presentation/tui/update"
	"github.com/tesso57/storyterm/internal/presentation/tui/view"
	listview "github.com/tesso57/storyterm/internal/presentation/tui/view/list"
)

// Model represents the main application state.
type Model struct {
	settings settings.Settings
	app      *app.App
	state    *state.ModelState
}

// NewModel creates a new application model on top of a.
func NewModel(cfg settings.Settings, a *app.App) *Model {
	return &Model{
		settings: cfg,
		app:      a,
		state:    newModelState(cfg, a),
	}
}

// Init starts identity resolution and the first feed load.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.state.Spinner.Tick, update.InitCmd(m.app))
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		cmd, handled := update.HandleKeyMsg(m.state, msg, m.deps())
		if handled {
			update.UpdateListSizes(m.state)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		update.HandleWindowSize(m.state, msg)
	case update.InitializedMsg:
		update.HandleInitializedMsg(m.state, msg, m.deps())
	case update.FeedLoadedMsg:
		update.HandleFeedLoadedMsg(m.state, msg, m.deps())
	case update.ResultMsg:
		update.HandleResultMsg(m.state, msg, m.deps())
	case update.LoggedOutMsg:
		update.HandleLoggedOutMsg(m.state, m.deps())
	}

	if m.state.Loading() {
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch m.state.Screen {
	case state.FeedScreen:
		m.state.StoryList, cmd = m.state.StoryList.Update(msg)
		cmds = append(cmds, cmd)
	case state.DetailScreen:
		m.state.Viewport, cmd = m.state.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the application view.
func (m *Model) View() string {
	return view.Render(m.buildProps())
}

func (m *Model) deps() update.Deps {
	return update.Deps{App: m.app}
}

func newModelState(cfg settings.Settings, a *app.App) *state.ModelState {
	st := &state.ModelState{
		Screen:    state.FeedScreen,
		NavList:   newNavList(cfg),
		StoryList: newStoryList(cfg),
		Viewport:  newViewport(),
		Help:      help.New(),
		Spinner:   newSpinner(cfg),
		Keys:      state.NewKeyMap(cfg.KeyMap),
		Session:   a.Session.State(),
		Feed:      a.Feed.State(),
	}
	st.StoryList.KeyMap.CursorUp = st.Keys.Up
	st.StoryList.KeyMap.CursorDown = st.Keys.Down
	return st
}

func newNavList(cfg settings.Settings) list.Model {
	l := list.New([]list.Item{}, listview.NewNavDelegate(lipgloss.Color(cfg.Theme.Accent), lipgloss.Color(cfg.Theme.Muted)), 0, 0)
	l.Title = "storyterm"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func newStoryList(cfg settings.Settings) list.Model {
	l := list.New([]list.Item{}, listview.NewStoryDelegate(lipgloss.Color(cfg.Theme.Accent), lipgloss.Color(cfg.Theme.Tag)), 0, 0)
	l.Title = "Explore Stories"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func newSpinner(cfg settings.Settings) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Theme.Accent))
	return s
}

func newViewport() viewport.Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)
	return vp
}
