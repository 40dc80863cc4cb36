// Package state holds UI state types for the TUI.
package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/tesso57/storyterm/internal/domain/story"
)

// ModelState holds the presentation state for the TUI.
type ModelState struct {
	Screen    Screen
	Previous  Screen
	NavList   list.Model
	StoryList list.Model
	Viewport  viewport.Model
	Help      help.Model
	Spinner   spinner.Model
	Keys      KeyMap
	Width     int
	Height    int

	// Snapshots of the managers, refreshed after every completed command.
	Session story.Session
	Feed    story.FeedState

	Form          Form
	DeleteTarget  *story.Story
	Busy          bool
	StatusMessage string
}

// Loading reports whether a spinner should be shown.
func (s *ModelState) Loading() bool {
	return s.Busy || s.Feed.Loading || s.Session.Resolving
}

// SignedIn reports whether an identity is resolved.
func (s *ModelState) SignedIn() bool {
	return s.Session.SignedIn()
}
