// Package update holds UI update logic for the TUI.
package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/storyterm/internal/application/app"
	"github.com/tesso57/storyterm/internal/application/usecase"
	"github.com/tesso57/storyterm/internal/domain/apperr"
	"github.com/tesso57/storyterm/internal/domain/story"
	"github.com/tesso57/storyterm/internal/presentation/tui/intent"
	"github.com/tesso57/storyterm/internal/presentation/tui/presenter"
	"github.com/tesso57/storyterm/internal/presentation/tui/state"
)

// Deps groups external dependencies for updates.
type Deps struct {
	App *app.App
}

// Op names the user action behind an async result.
type Op int

const (
	OpLogin Op = iota
	OpSignup
	OpCreate
	OpDelete
)

// InitializedMsg is emitted once identity resolution and the first fetch finish.
type InitializedMsg struct {
	User *story.User
	Err  error
}

// FeedLoadedMsg is emitted after any feed fetch completes.
type FeedLoadedMsg struct {
	Err error
}

// ResultMsg is emitted after a sign-in, sign-up, create or delete.
type ResultMsg struct {
	Op     Op
	Result usecase.Result
}

// LoggedOutMsg is emitted after the session is cleared.
type LoggedOutMsg struct{}

// InitCmd resolves the identity and loads the default view.
func InitCmd(a *app.App) tea.Cmd {
	return func() tea.Msg {
		user, err := a.Init(context.Background())
		return InitializedMsg{User: user, Err: err}
	}
}

func fetchCmd(run func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return FeedLoadedMsg{Err: run(context.Background())}
	}
}

// ChangePageCmd loads page n of the current view.
func ChangePageCmd(feed *usecase.FeedManager, n int) tea.Cmd {
	return fetchCmd(func(ctx context.Context) error { return feed.ChangePage(ctx, n) })
}

// SwitchViewCmd loads the first page of view.
func SwitchViewCmd(feed *usecase.FeedManager, view story.View) tea.Cmd {
	return fetchCmd(func(ctx context.Context) error { return feed.SwitchView(ctx, view) })
}

// RefreshCmd reloads the current view from page 1.
func RefreshCmd(feed *usecase.FeedManager) tea.Cmd {
	return fetchCmd(feed.Refresh)
}

// RetryCmd repeats the last attempted fetch.
func RetryCmd(feed *usecase.FeedManager) tea.Cmd {
	return fetchCmd(feed.Retry)
}

// LoginCmd signs in with the given credentials.
func LoginCmd(a *app.App, email, password string) tea.Cmd {
	return func() tea.Msg {
		return ResultMsg{Op: OpLogin, Result: a.Login(context.Background(), email, password)}
	}
}

// SignupCmd creates an account.
func SignupCmd(a *app.App, firstName, lastName, email, password string) tea.Cmd {
	return func() tea.Msg {
		return ResultMsg{Op: OpSignup, Result: a.Signup(context.Background(), firstName, lastName, email, password)}
	}
}

// LogoutCmd ends the session.
func LogoutCmd(a *app.App) tea.Cmd {
	return func() tea.Msg {
		a.Logout(context.Background())
		return LoggedOutMsg{}
	}
}

// CreateCmd publishes a new story.
func CreateCmd(feed *usecase.FeedManager, draft story.Draft) tea.Cmd {
	return func() tea.Msg {
		return ResultMsg{Op: OpCreate, Result: feed.Create(context.Background(), draft)}
	}
}

// DeleteCmd removes a story.
func DeleteCmd(feed *usecase.FeedManager, id string) tea.Cmd {
	return func() tea.Msg {
		return ResultMsg{Op: OpDelete, Result: feed.Delete(context.Background(), id)}
	}
}

// Sync copies the manager snapshots into the UI state and rebuilds both lists.
func Sync(s *state.ModelState, deps Deps) {
	s.Session = deps.App.Session.State()
	s.Feed = deps.App.Feed.State()
	presenter.ApplyStoryList(&s.StoryList, s.Feed)
	presenter.ApplyNavList(&s.NavList, s.Feed.View, s.SignedIn())
	UpdateListSizes(s)
}

// HandleWindowSize updates layout sizing based on terminal size.
func HandleWindowSize(s *state.ModelState, msg tea.WindowSizeMsg) {
	s.Width = msg.Width
	s.Height = msg.Height

	UpdateListSizes(s)
	if s.Screen == state.DetailScreen {
		refreshDetailViewport(s)
	}
}

// HandleInitializedMsg applies the first snapshot.
func HandleInitializedMsg(s *state.ModelState, msg InitializedMsg, deps Deps) {
	Sync(s, deps)
	if msg.User != nil {
		s.StatusMessage = signedInStatus(msg.User)
	}
}

// HandleFeedLoadedMsg applies the feed snapshot after a fetch.
// Superseded fetches still resync so the spinner tracks the newest request.
func HandleFeedLoadedMsg(s *state.ModelState, msg FeedLoadedMsg, deps Deps) {
	Sync(s, deps)
	if msg.Err == nil {
		s.StatusMessage = ""
	}
}

// HandleLoggedOutMsg returns the UI to the guest feed.
func HandleLoggedOutMsg(s *state.ModelState, deps Deps) {
	s.Busy = false
	s.Screen = state.FeedScreen
	s.DeleteTarget = nil
	Sync(s, deps)
	s.StatusMessage = "Signed out"
}

// HandleResultMsg applies the outcome of a form submission or delete.
func HandleResultMsg(s *state.ModelState, msg ResultMsg, deps Deps) {
	s.Busy = false
	s.Form.Submitting = false
	Sync(s, deps)

	if !msg.Result.Success {
		text := apperr.Message(msg.Result.Err, failureFallback(msg.Op))
		if s.Screen == formScreen(msg.Op) {
			s.Form.Err = text
			return
		}
		s.StatusMessage = text
		return
	}

	switch msg.Op {
	case OpLogin, OpSignup:
		s.StatusMessage = signedInStatus(s.Session.Identity)
	case OpCreate:
		s.StatusMessage = "Story published"
	case OpDelete:
		s.StatusMessage = "Story deleted"
		s.DeleteTarget = nil
	}
	if s.Screen == formScreen(msg.Op) {
		s.Form = state.Form{}
		s.Screen = state.FeedScreen
	}
}

func signedInStatus(u *story.User) string {
	if name := u.DisplayName(); name != "" {
		return "Signed in as " + name
	}
	return "Signed in"
}

func failureFallback(op Op) string {
	switch op {
	case OpLogin:
		return "Login failed"
	case OpSignup:
		return "Signup failed"
	case OpCreate:
		return "Failed to create story"
	default:
		return "Failed to delete story"
	}
}

func formScreen(op Op) state.Screen {
	switch op {
	case OpLogin:
		return state.LoginScreen
	case OpSignup:
		return state.SignupScreen
	case OpCreate:
		return state.ComposeScreen
	default:
		return state.DeleteScreen
	}
}

// HandleKeyMsg processes key input based on the current screen.
func HandleKeyMsg(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	if s.Screen.IsForm() {
		return handleFormScreen(s, msg, deps)
	}
	if s.Screen == state.QuitScreen {
		return handleQuitScreen(s, msg)
	}
	if s.Screen == state.DeleteScreen {
		return handleDeleteScreen(s, msg, deps)
	}

	parsed := intent.FromKeyMsg(msg, s.Keys)
	switch parsed.Type {
	case intent.Quit:
		s.Previous = s.Screen
		s.Screen = state.QuitScreen
		return nil, true
	case intent.ToggleHelp:
		s.Help.ShowAll = !s.Help.ShowAll
		return nil, true
	}
	if s.Help.ShowAll && parsed.Type == intent.Back {
		s.Help.ShowAll = false
		return nil, true
	}

	switch s.Screen {
	case state.FeedScreen:
		return handleFeedScreenIntent(s, parsed, deps)
	case state.DetailScreen:
		return handleDetailScreenIntent(s, parsed, deps)
	default:
		return nil, false
	}
}

func handleQuitScreen(s *state.ModelState, msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "y", "Y":
		return tea.Quit, true
	case "n", "N", "esc", "q", "Q":
		s.Screen = s.Previous
		return nil, true
	}
	return nil, true
}

func handleDeleteScreen(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch msg.String() {
	case "y", "Y":
		s.Screen = state.FeedScreen
		if s.DeleteTarget == nil {
			return nil, true
		}
		s.Busy = true
		s.StatusMessage = ""
		return tea.Batch(s.Spinner.Tick, DeleteCmd(deps.App.Feed, s.DeleteTarget.ID)), true
	case "n", "N", "esc", "q", "Q":
		s.Screen = state.FeedScreen
		s.DeleteTarget = nil
		return nil, true
	}
	return nil, true
}

func handleFormScreen(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	if msg.String() == "esc" {
		s.Form = state.Form{}
		s.Screen = state.FeedScreen
		return nil, true
	}
	if s.Form.Submitting {
		return nil, true
	}

	switch msg.String() {
	case "tab", "down":
		s.Form.Next()
		return nil, true
	case "shift+tab", "up":
		s.Form.Prev()
		return nil, true
	case "enter":
		if !s.Form.OnLastField() {
			s.Form.Next()
			return nil, true
		}
		return submitForm(s, deps), true
	}

	s.Form.Err = ""
	return s.Form.Update(msg), true
}

func submitForm(s *state.ModelState, deps Deps) tea.Cmd {
	if missing := s.Form.Missing(); missing != "" {
		s.Form.Err = fmt.Sprintf("%s is required", missing)
		return nil
	}

	var cmd tea.Cmd
	switch s.Screen {
	case state.LoginScreen:
		cmd = LoginCmd(deps.App, s.Form.Value(0), s.Form.Value(1))
	case state.SignupScreen:
		cmd = SignupCmd(deps.App, s.Form.Value(0), s.Form.Value(1), s.Form.Value(2), s.Form.Value(3))
	case state.ComposeScreen:
		cmd = CreateCmd(deps.App.Feed, story.Draft{
			Title:       s.Form.Value(0),
			Description: s.Form.Value(1),
			Tags:        s.Form.Value(2),
		})
	default:
		return nil
	}

	s.Form.Err = ""
	s.Form.Submitting = true
	s.Busy = true
	return tea.Batch(s.Spinner.Tick, cmd)
}

func handleFeedScreenIntent(s *state.ModelState, in intent.Intent, deps Deps) (tea.Cmd, bool) {
	feed := deps.App.Feed
	switch in.Type {
	case intent.Open:
		if _, ok := selectedItem(s); ok {
			s.Screen = state.DetailScreen
			refreshDetailViewport(s)
		}
		return nil, true
	case intent.Refresh:
		if s.Feed.LastError != nil {
			return startFetch(s, RetryCmd(feed)), true
		}
		return startFetch(s, RefreshCmd(feed)), true
	case intent.NextPage:
		if !s.Feed.HasMore {
			return nil, true
		}
		return startFetch(s, ChangePageCmd(feed, s.Feed.Page+1)), true
	case intent.PrevPage:
		if !s.Feed.HasPrev() {
			return nil, true
		}
		return startFetch(s, ChangePageCmd(feed, s.Feed.Page-1)), true
	case intent.ToggleView:
		return switchView(s, s.Feed.View.Toggle(), deps), true
	case intent.ShowAll:
		return switchView(s, story.AllView, deps), true
	case intent.ShowMine:
		return switchView(s, story.MineView, deps), true
	case intent.Compose:
		if !requireIdentity(s, "Sign in to write a story") {
			return nil, true
		}
		s.Form = state.NewComposeForm()
		s.Screen = state.ComposeScreen
		return nil, true
	case intent.Delete:
		return confirmDelete(s), true
	case intent.Login:
		if s.SignedIn() {
			return nil, true
		}
		s.Form = state.NewLoginForm()
		s.Screen = state.LoginScreen
		return nil, true
	case intent.Signup:
		if s.SignedIn() {
			return nil, true
		}
		s.Form = state.NewSignupForm()
		s.Screen = state.SignupScreen
		return nil, true
	case intent.Logout:
		if !s.SignedIn() {
			return nil, true
		}
		s.Busy = true
		s.StatusMessage = ""
		return tea.Batch(s.Spinner.Tick, LogoutCmd(deps.App)), true
	}
	return nil, false
}

func handleDetailScreenIntent(s *state.ModelState, in intent.Intent, deps Deps) (tea.Cmd, bool) {
	switch in.Type {
	case intent.Back:
		s.Screen = state.FeedScreen
		return nil, true
	case intent.Delete:
		return confirmDelete(s), true
	case intent.Refresh:
		s.Screen = state.FeedScreen
		return handleFeedScreenIntent(s, in, deps)
	}
	return nil, false
}

func switchView(s *state.ModelState, view story.View, deps Deps) tea.Cmd {
	if view == story.MineView && !requireIdentity(s, "Sign in to see your stories") {
		return nil
	}
	return startFetch(s, SwitchViewCmd(deps.App.Feed, view))
}

func confirmDelete(s *state.ModelState) tea.Cmd {
	if !requireIdentity(s, "Sign in to manage your stories") {
		return nil
	}
	if s.Feed.View != story.MineView {
		s.StatusMessage = "Switch to your stories to delete"
		return nil
	}
	item, ok := selectedItem(s)
	if !ok {
		return nil
	}
	if id := s.Session.Identity.ID; item.OwnerID != "" && id != "" && item.OwnerID != id {
		s.StatusMessage = "You can only delete your own stories"
		return nil
	}
	target := item.Story()
	s.DeleteTarget = &target
	s.Screen = state.DeleteScreen
	return nil
}

func requireIdentity(s *state.ModelState, hint string) bool {
	if s.SignedIn() {
		return true
	}
	s.StatusMessage = hint
	return false
}

func startFetch(s *state.ModelState, cmd tea.Cmd) tea.Cmd {
	s.Feed.Loading = true
	s.Feed.LastError = nil
	return tea.Batch(s.Spinner.Tick, cmd)
}

func selectedItem(s *state.ModelState) (*presenter.Item, bool) {
	item, ok := s.StoryList.SelectedItem().(*presenter.Item)
	if !ok || item == nil {
		return nil, false
	}
	return item, true
}

func refreshDetailViewport(s *state.ModelState) {
	item, ok := selectedItem(s)
	if !ok {
		return
	}
	s.Viewport.SetContent(buildDetailContent(item, detailWrapWidth(s)))
	s.Viewport.GotoTop()
}

func detailWrapWidth(s *state.ModelState) int {
	viewportContentWidth := s.Viewport.Width - s.Viewport.Style.GetHorizontalFrameSize()
	if viewportContentWidth > 0 {
		return viewportContentWidth
	}
	// Before the first resize.
	return max(s.StoryList.Width()-1-s.Viewport.Style.GetHorizontalFrameSize(), 1)
}
