// Package listview provides list item delegates for the view layer.
package listview

import (
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/storyterm/internal/presentation/tui/textutil"
)

// StoryItem is an item that can be rendered by StoryDelegate.
type StoryItem interface {
	list.Item
	Title() string
	Description() string
	TagLine() string
}

// StoryDelegate renders a story as a title line followed by a preview line.
type StoryDelegate struct {
	Styles   list.DefaultItemStyles
	TagStyle lipgloss.Style
}

// NewStoryDelegate creates a new StoryDelegate.
func NewStoryDelegate(accent, tag lipgloss.Color) *StoryDelegate {
	return &StoryDelegate{
		Styles:   storyStyles(accent),
		TagStyle: lipgloss.NewStyle().Foreground(tag),
	}
}

// Height returns the height of the item.
func (d *StoryDelegate) Height() int {
	return 2
}

// Spacing returns the spacing between items.
func (d *StoryDelegate) Spacing() int {
	return 1
}

// Update handles messages for the delegate.
func (d *StoryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders the item.
func (d *StoryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(StoryItem)
	if !ok {
		return
	}

	titleStyle := pick(m, index, d.Styles.NormalTitle, d.Styles.SelectedTitle)
	descStyle := pick(m, index, d.Styles.NormalDesc, d.Styles.SelectedDesc)

	writeLine(w, titleStyle, textutil.Truncate(i.Title(), textWidth(m, titleStyle)))
	_, _ = io.WriteString(w, "\n")
	writeLine(w, descStyle, previewLine(i.TagLine(), i.Description(), textWidth(m, descStyle), d.TagStyle))
}
