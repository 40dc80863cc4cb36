// Package state holds UI state types for the TUI.
package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/tesso57/storyterm/internal/application/settings"
)

// Screen represents the active screen.
type Screen int

const (
	FeedScreen Screen = iota
	DetailScreen
	LoginScreen
	SignupScreen
	ComposeScreen
	DeleteScreen
	QuitScreen
)

// IsForm reports whether the screen is a text-entry form.
func (s Screen) IsForm() bool {
	return s == LoginScreen || s == SignupScreen || s == ComposeScreen
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	Open       key.Binding
	Back       key.Binding
	Quit       key.Binding
	Refresh    key.Binding
	ToggleView key.Binding
	AllView    key.Binding
	MineView   key.Binding
	Compose    key.Binding
	Delete     key.Binding
	Login      key.Binding
	Signup     key.Binding
	Logout     key.Binding
	Help       key.Binding
}

// ShortHelp returns a subset of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit, k.Open, k.PrevPage, k.NextPage, k.ToggleView}
}

// FullHelp returns all keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.Open, k.Back, k.Refresh, k.Quit},
		{k.ToggleView, k.AllView, k.MineView},
		{k.Compose, k.Delete},
		{k.Login, k.Signup, k.Logout, k.Help},
	}
}

// NewKeyMap creates a new KeyMap from the configuration.
func NewKeyMap(cfg settings.KeyMapConfig) KeyMap {
	return KeyMap{
		Up:         binding(cfg.Up, "up"),
		Down:       binding(cfg.Down, "down"),
		PrevPage:   binding(cfg.PrevPage, "prev page"),
		NextPage:   binding(cfg.NextPage, "next page"),
		Open:       binding(cfg.Open, "read"),
		Back:       binding(cfg.Back, "back"),
		Quit:       binding(cfg.Quit, "quit"),
		Refresh:    binding(cfg.Refresh, "refresh/retry"),
		ToggleView: binding(cfg.ToggleView, "all/mine"),
		AllView:    binding(cfg.AllView, "all stories"),
		MineView:   binding(cfg.MineView, "my stories"),
		Compose:    binding(cfg.Compose, "new story"),
		Delete:     binding(cfg.Delete, "delete"),
		Login:      binding(cfg.Login, "sign in"),
		Signup:     binding(cfg.Signup, "sign up"),
		Logout:     binding(cfg.Logout, "sign out"),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

func binding(keys, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(splitKeys(keys)...),
		key.WithHelp(keys, desc),
	)
}

func splitKeys(keys string) []string {
	parts := strings.Split(keys, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		keyName := strings.TrimSpace(part)
		if keyName == "" {
			continue
		}
		out = append(out, keyName)
		switch keyName {
		case "pgdn":
			out = append(out, "pgdown")
		case "pgdown":
			out = append(out, "pgdn")
		}
	}
	return out
}
