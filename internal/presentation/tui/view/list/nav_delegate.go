package listview

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/storyterm/internal/presentation/tui/textutil"
)

// NavEntry is an item that can be rendered by NavDelegate.
type NavEntry interface {
	list.Item
	Title() string
	IsLocked() bool
}

// NavDelegate renders sidebar navigation entries.
type NavDelegate struct {
	Styles list.DefaultItemStyles
	Theme  lipgloss.Color
	Muted  lipgloss.Color
}

// NewNavDelegate creates a new NavDelegate.
func NewNavDelegate(themeColor, mutedColor lipgloss.Color) *NavDelegate {
	return &NavDelegate{
		Styles: list.NewDefaultItemStyles(),
		Theme:  themeColor,
		Muted:  mutedColor,
	}
}

// Height returns the height of the item.
func (d NavDelegate) Height() int {
	return 1
}

// Spacing returns the spacing between items.
func (d NavDelegate) Spacing() int {
	return 0
}

// Update handles messages for the delegate.
func (d NavDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders the item.
func (d NavDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(NavEntry)
	if !ok {
		return
	}

	title := i.Title()
	if i.IsLocked() {
		title = fmt.Sprintf("%s (sign in)", title)
	}
	style := pick(m, index, d.Styles.NormalTitle, d.Styles.SelectedTitle)
	title = textutil.Truncate(title, textWidth(m, style))
	switch {
	case index == m.Index():
		title = d.Styles.SelectedTitle.Foreground(d.Theme).BorderForeground(d.Theme).Render(title)
	case i.IsLocked():
		title = d.Styles.NormalTitle.Foreground(d.Muted).Render(title)
	default:
		title = d.Styles.NormalTitle.Render(title)
	}
	_, _ = fmt.Fprint(w, title)
}
