// Package presenter builds view models for the TUI.
package presenter

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/tesso57/storyterm/internal/domain/story"
	"github.com/tesso57/storyterm/internal/presentation/tui/textutil"
)

// Item is a view model for one story in the list.
type Item struct {
	ID        string
	TitleText string
	Desc      string
	Tags      []string
	OwnerID   string
}

// FilterValue implements list.Item.
func (i *Item) FilterValue() string { return i.TitleText }

// Title returns the item title.
func (i *Item) Title() string { return i.TitleText }

// Description returns a one-line preview of the story body.
func (i *Item) Description() string { return textutil.SingleLine(i.Desc) }

// TagLine returns the tags formatted as "#a #b".
func (i *Item) TagLine() string {
	if len(i.Tags) == 0 {
		return ""
	}
	out := make([]string, len(i.Tags))
	for idx, tag := range i.Tags {
		out[idx] = "#" + tag
	}
	return strings.Join(out, " ")
}

// Story converts the item back into the domain type.
func (i *Item) Story() story.Story {
	return story.Story{
		ID:          i.ID,
		Title:       i.TitleText,
		Description: i.Desc,
		Tags:        append(story.Tags(nil), i.Tags...),
		OwnerID:     i.OwnerID,
	}
}

// NewItem builds a sanitized Item from a story.
func NewItem(s story.Story) *Item {
	tags := make([]string, 0, len(s.Tags))
	for _, tag := range s.Tags {
		if tag = textutil.SingleLine(Sanitize(tag)); tag != "" {
			tags = append(tags, tag)
		}
	}
	title := textutil.SingleLine(Sanitize(s.Title))
	if title == "" {
		title = "(untitled)"
	}
	return &Item{
		ID:        s.ID,
		TitleText: title,
		Desc:      Sanitize(s.Description),
		Tags:      tags,
		OwnerID:   s.OwnerID,
	}
}

// BuildStoryListItems builds list items for a page of stories.
func BuildStoryListItems(stories []story.Story) []list.Item {
	items := make([]list.Item, len(stories))
	for i, s := range stories {
		items[i] = NewItem(s)
	}
	return items
}

// ApplyStoryList replaces the list contents with the current page.
func ApplyStoryList(model *list.Model, feed story.FeedState) {
	prev := model.Index()
	model.SetItems(BuildStoryListItems(feed.Items))
	model.Title = feed.View.Title()
	if n := len(model.Items()); n > 0 && prev >= n {
		model.Select(n - 1)
	}
}

// NavItem is a sidebar navigation entry.
type NavItem struct {
	View   story.View
	Label  string
	Locked bool
}

// FilterValue implements list.Item.
func (n *NavItem) FilterValue() string { return n.Label }

// Title returns the entry label.
func (n *NavItem) Title() string { return n.Label }

// IsLocked reports whether the entry needs a signed-in user.
func (n *NavItem) IsLocked() bool { return n.Locked }

// BuildNavItems builds the sidebar entries.
func BuildNavItems(signedIn bool) []list.Item {
	return []list.Item{
		&NavItem{View: story.AllView, Label: "All Stories"},
		&NavItem{View: story.MineView, Label: "My Stories", Locked: !signedIn},
	}
}

// ApplyNavList refreshes the sidebar and selects the active view.
func ApplyNavList(model *list.Model, active story.View, signedIn bool) {
	items := BuildNavItems(signedIn)
	model.SetItems(items)
	for i, item := range items {
		if nav, ok := item.(*NavItem); ok && nav.View == active {
			model.Select(i)
		}
	}
}
