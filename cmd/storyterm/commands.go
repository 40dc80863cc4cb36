package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/tesso57/storyterm/internal/domain/story"
	"github.com/tesso57/storyterm/internal/presentation/tui"
	"github.com/tesso57/storyterm/internal/presentation/tui/presenter"
	"github.com/tesso57/storyterm/internal/presentation/tui/textutil"
)

// CLI is the command-line grammar.
type CLI struct {
	Globals

	TUI     TUICmd     `cmd:"" default:"1" help:"Start the interactive client."`
	Whoami  WhoamiCmd  `cmd:"" help:"Show the signed-in account."`
	Login   LoginCmd   `cmd:"" help:"Sign in and keep the session for later commands."`
	Signup  SignupCmd  `cmd:"" help:"Create an account and sign in."`
	Logout  LogoutCmd  `cmd:"" help:"End the session and forget stored cookies."`
	Stories StoriesCmd `cmd:"" help:"List one page of stories."`
	Post    PostCmd    `cmd:"" help:"Publish a new story."`
	Delete  DeleteCmd  `cmd:"" help:"Delete one of your stories."`
}

// TUICmd runs the full-screen client.
type TUICmd struct{}

func (c *TUICmd) Run(g *Globals) error {
	rt, err := g.open(true)
	if err != nil {
		return err
	}
	defer rt.close()

	p := tea.NewProgram(tui.NewModel(rt.settings, rt.app), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// WhoamiCmd prints the current identity.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	rt, err := g.open(false)
	if err != nil {
		return err
	}
	defer rt.close()

	user := rt.app.Session.ResolveIdentity(ctx)
	if user == nil {
		_, _ = fmt.Fprintln(out, "Guest (not signed in)")
		return nil
	}
	_, _ = fmt.Fprintf(out, "%s <%s>\n", user.DisplayName(), user.Email)
	return nil
}

// LoginCmd signs in.
type LoginCmd struct {
	Email    string `required:"" help:"Account email."`
	Password string `required:"" env:"STORYTERM_PASSWORD" help:"Account password."`
}

func (c *LoginCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	rt, err := g.open(false)
	if err != nil {
		return err
	}
	defer rt.close()

	if res := rt.app.Session.Login(ctx, c.Email, c.Password); !res.Success {
		return res.Err
	}
	_, _ = fmt.Fprintln(out, signedInLine(rt.app.Session.Identity()))
	return nil
}

// SignupCmd creates an account.
type SignupCmd struct {
	FirstName string `required:"" help:"First name."`
	LastName  string `help:"Last name."`
	Email     string `required:"" help:"Account email."`
	Password  string `required:"" env:"STORYTERM_PASSWORD" help:"Account password."`
}

func (c *SignupCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	rt, err := g.open(false)
	if err != nil {
		return err
	}
	defer rt.close()

	if res := rt.app.Session.Signup(ctx, c.FirstName, c.LastName, c.Email, c.Password); !res.Success {
		return res.Err
	}
	_, _ = fmt.Fprintln(out, signedInLine(rt.app.Session.Identity()))
	return nil
}

// LogoutCmd ends the session.
type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	rt, err := g.open(false)
	if err != nil {
		return err
	}
	defer rt.close()

	rt.app.Session.Logout(ctx)
	_, _ = fmt.Fprintln(out, "Signed out")
	return nil
}

// StoriesCmd prints one page of a view.
type StoriesCmd struct {
	View string `help:"Which stories to list (all or mine). Defaults to mine when signed in."`
	Page int    `default:"1" help:"Page number, starting at 1."`
}

func (c *StoriesCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	if c.Page < 1 {
		return fmt.Errorf("page must be 1 or greater")
	}
	rt, err := g.open(false)
	if err != nil {
		return err
	}
	defer rt.close()

	user := rt.app.Session.ResolveIdentity(ctx)
	view := story.DefaultView(user)
	if c.View != "" {
		if view, err = story.ParseView(c.View); err != nil {
			return err
		}
	}
	if view == story.MineView && user == nil {
		return errNotSignedIn
	}

	if err := rt.app.Feed.Fetch(ctx, view, c.Page); err != nil {
		return err
	}
	printStories(out, rt.app.Feed.State())
	return nil
}

// PostCmd publishes a story.
type PostCmd struct {
	Title       string `required:"" help:"Story title."`
	Description string `required:"" help:"Story text."`
	Tags        string `help:"Space separated tags."`
}

func (c *PostCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	rt, err := g.open(false)
	if err != nil {
		return err
	}
	defer rt.close()

	if rt.app.Session.ResolveIdentity(ctx) == nil {
		return errNotSignedIn
	}
	res := rt.app.Feed.Create(ctx, story.Draft{Title: c.Title, Description: c.Description, Tags: c.Tags})
	if !res.Success {
		return res.Err
	}
	_, _ = fmt.Fprintln(out, "Story published")
	return nil
}

// DeleteCmd removes a story.
type DeleteCmd struct {
	ID string `arg:"" help:"Story id, as shown by the stories command."`
}

func (c *DeleteCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	rt, err := g.open(false)
	if err != nil {
		return err
	}
	defer rt.close()

	if rt.app.Session.ResolveIdentity(ctx) == nil {
		return errNotSignedIn
	}
	if res := rt.app.Feed.Delete(ctx, c.ID); !res.Success {
		return res.Err
	}
	_, _ = fmt.Fprintln(out, "Story deleted")
	return nil
}

func signedInLine(u *story.User) string {
	if u == nil {
		return "Signed in"
	}
	return "Signed in as " + u.DisplayName()
}

func printStories(out io.Writer, feed story.FeedState) {
	_, _ = fmt.Fprintf(out, "%s · page %d\n", feed.View.Title(), feed.Page)
	if feed.Empty() {
		_, _ = fmt.Fprintln(out, "No stories on this page.")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "TAGS", "STORY")
	for _, s := range feed.Items {
		item := presenter.NewItem(s)
		t.Row(item.ID, textutil.Truncate(item.TitleText, 32), item.TagLine(), textutil.Truncate(item.Description(), 48))
	}
	_, _ = fmt.Fprintln(out, t.Render())

	var nav []string
	if feed.HasPrev() {
		nav = append(nav, fmt.Sprintf("prev: --page %d", feed.Page-1))
	}
	if feed.HasMore {
		nav = append(nav, fmt.Sprintf("next: --page %d", feed.Page+1))
	}
	if len(nav) > 0 {
		_, _ = fmt.Fprintln(out, strings.Join(nav, "  "))
	}
}
