// Package tui provides the main user interface model and view components.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/storyterm/internal/domain/apperr"
	"github.com/tesso57/storyterm/internal/domain/story"
	"github.com/tesso57/storyterm/internal/presentation/tui/components/header"
	mainview "github.com/tesso57/storyterm/internal/presentation/tui/components/main"
	"github.com/tesso57/storyterm/internal/presentation/tui/components/modal"
	"github.com/tesso57/storyterm/internal/presentation/tui/components/sidebar"
	"github.com/tesso57/storyterm/internal/presentation/tui/metrics"
	"github.com/tesso57/storyterm/internal/presentation/tui/state"
	"github.com/tesso57/storyterm/internal/presentation/tui/textutil"
	"github.com/tesso57/storyterm/internal/presentation/tui/view"
)

func (m *Model) buildProps() view.Props {
	return view.Props{
		Sidebar: m.buildSidebarProps(),
		Header:  m.buildHeaderProps(),
		Main:    m.buildMainProps(),
		Modal:   m.buildModalProps(),
		Footer:  m.buildFooterProps(),
	}
}

func (m *Model) buildSidebarProps() sidebar.Props {
	account := "Guest"
	switch {
	case m.state.Session.Resolving:
		account = "Checking session..."
	case m.state.SignedIn():
		account = m.state.Session.Identity.DisplayName()
	}
	return sidebar.Props{
		View:    m.state.NavList.View(),
		Width:   m.state.NavList.Width(),
		Height:  max(m.state.Height-m.footerHeight(), 1),
		Title:   "storyterm",
		Account: textutil.Truncate(account, max(m.state.NavList.Width()-2, 1)),
		Active:  m.state.Screen == state.FeedScreen,
		Accent:  m.color(m.settings.Theme.Accent),
		Muted:   m.color(m.settings.Theme.Muted),
	}
}

func (m *Model) buildHeaderProps() header.Props {
	feed := m.state.Feed
	title := feed.View.Title()
	subtitle := fmt.Sprintf("Page %d · %s", feed.Page, textutil.Plural(len(feed.Items), "story", "stories"))

	if m.state.Screen == state.DetailScreen {
		title = "Story"
		subtitle = "esc to go back"
	}

	availableWidth := m.state.StoryList.Width() - metrics.HeaderWidthPadding
	return header.Props{
		Visible:  true,
		Title:    textutil.Truncate(title, availableWidth),
		Subtitle: textutil.Truncate(subtitle, availableWidth),
		Accent:   m.color(m.settings.Theme.Accent),
		Muted:    m.color(m.settings.Theme.Muted),
	}
}

func (m *Model) buildMainProps() mainview.Props {
	feed := m.state.Feed
	props := mainview.Props{
		Width:      m.state.StoryList.Width(),
		Height:     max(m.state.Height-m.footerHeight(), 1),
		NoticeTint: m.color(m.settings.Theme.Error),
	}

	if m.state.Screen == state.DetailScreen {
		props.Body = m.state.Viewport.View()
		return props
	}

	if feed.LastError != nil {
		props.Notice = apperr.Message(feed.LastError, "Something went wrong") + "\npress r to retry"
	}
	props.Pagination = m.paginationLine()

	switch {
	case feed.Empty() && m.state.Loading():
		props.Body = fmt.Sprintf("\n\n   %s Loading stories...", m.state.Spinner.View())
	case feed.Empty() && feed.LastError == nil:
		props.Body = emptyState(feed.View, m.color(m.settings.Theme.Muted))
	default:
		props.Body = m.state.StoryList.View()
	}
	return props
}

func (m *Model) paginationLine() string {
	feed := m.state.Feed
	parts := make([]string, 0, 4)
	if feed.HasPrev() {
		parts = append(parts, "‹ prev")
	}
	parts = append(parts, fmt.Sprintf("Page %d", feed.Page))
	if feed.HasMore {
		parts = append(parts, "next ›")
	}
	if m.state.Loading() && !feed.Empty() {
		parts = append(parts, m.state.Spinner.View())
	}
	return lipgloss.NewStyle().Foreground(m.color(m.settings.Theme.Muted)).Render(strings.Join(parts, "  "))
}

func emptyState(v story.View, muted lipgloss.Color) string {
	headline, hint := "The floor is empty...", "Be the first to share a story!"
	if v == story.MineView {
		headline, hint = "You haven't shared anything yet.", "Ready to share your first story? Press n."
	}
	return "\n" + headline + "\n" + lipgloss.NewStyle().Foreground(muted).Render(hint)
}

func (m *Model) buildModalProps() modal.Props {
	base := modal.Props{
		Visible: true,
		Width:   m.state.Width,
		Height:  m.state.Height,
		Accent:  m.color(m.settings.Theme.Accent),
	}

	switch {
	case m.state.Screen.IsForm():
		base.Kind = modal.Form
		base.Title = m.state.Form.Title
		base.BoxWidth = metrics.ModalWidth
		base.Body = m.formBody()
	case m.state.Screen == state.QuitScreen:
		base.Kind = modal.Confirm
		base.Body = "Are you sure you want to quit?\n\n(y/n)"
	case m.state.Screen == state.DeleteScreen:
		base.Kind = modal.Confirm
		title := ""
		if m.state.DeleteTarget != nil {
			title = textutil.Truncate(m.state.DeleteTarget.Title, metrics.ModalWidth-8)
		}
		base.Body = fmt.Sprintf("Delete %q?\n\nThis cannot be undone. (y/n)", title)
	case m.state.Help.ShowAll:
		base.Kind = modal.Help
		full := m.state.Help
		full.Width = 0
		base.Body = full.View(&m.state.Keys)
	default:
		return modal.Props{Visible: false}
	}
	return base
}

func (m *Model) formBody() string {
	form := &m.state.Form
	var b strings.Builder
	if form.Err != "" {
		errStyle := lipgloss.NewStyle().Foreground(m.color(m.settings.Theme.Error))
		b.WriteString(errStyle.Render(textutil.Wrap(form.Err, metrics.ModalWidth-6)))
		b.WriteString("\n\n")
	}
	labelStyle := lipgloss.NewStyle().Foreground(m.color(m.settings.Theme.Muted))
	for i, field := range form.Fields {
		label := field.Label
		if field.Required {
			label += " *"
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(form.Inputs[i].View())
		b.WriteString("\n\n")
	}
	switch {
	case form.Submitting:
		b.WriteString(m.state.Spinner.View() + " Submitting...")
	default:
		b.WriteString("(enter to continue, tab to switch fields, esc to cancel)")
	}
	return b.String()
}

func (m *Model) buildFooterProps() string {
	m.state.Help.Width = m.state.Width
	helpText := m.state.Help.ShortHelpView(m.state.Keys.ShortHelp())
	return state.FooterText(m.state.Screen, m.state.Loading(), m.state.StatusMessage, helpText)
}

func (m *Model) footerHeight() int {
	return lipgloss.Height(m.buildFooterProps())
}

func (m *Model) color(c string) lipgloss.Color {
	return lipgloss.Color(c)
}
