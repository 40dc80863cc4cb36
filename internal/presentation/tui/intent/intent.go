// Package intent parses user input into UI intents.
package intent

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/storyterm/internal/presentation/tui/state"
)

// Type represents a user intent.
type Type int

const (
	None Type = iota
	Quit
	ToggleHelp
	Open
	Back
	Refresh
	NextPage
	PrevPage
	ToggleView
	ShowAll
	ShowMine
	Compose
	Delete
	Login
	Signup
	Logout
)

// Intent represents a parsed user intent.
type Intent struct {
	Type Type
}

// FromKeyMsg maps a key message to an intent.
func FromKeyMsg(msg tea.KeyMsg, keys state.KeyMap) Intent {
	switch {
	case key.Matches(msg, keys.Quit):
		return Intent{Type: Quit}
	case key.Matches(msg, keys.Help):
		return Intent{Type: ToggleHelp}
	case key.Matches(msg, keys.Open):
		return Intent{Type: Open}
	case key.Matches(msg, keys.Back):
		return Intent{Type: Back}
	case key.Matches(msg, keys.Refresh):
		return Intent{Type: Refresh}
	case key.Matches(msg, keys.NextPage):
		return Intent{Type: NextPage}
	case key.Matches(msg, keys.PrevPage):
		return Intent{Type: PrevPage}
	case key.Matches(msg, keys.ToggleView):
		return Intent{Type: ToggleView}
	case key.Matches(msg, keys.AllView):
		return Intent{Type: ShowAll}
	case key.Matches(msg, keys.MineView):
		return Intent{Type: ShowMine}
	case key.Matches(msg, keys.Compose):
		return Intent{Type: Compose}
	case key.Matches(msg, keys.Delete):
		return Intent{Type: Delete}
	case key.Matches(msg, keys.Login):
		return Intent{Type: Login}
	case key.Matches(msg, keys.Signup):
		return Intent{Type: Signup}
	case key.Matches(msg, keys.Logout):
		return Intent{Type: Logout}
	default:
		return Intent{Type: None}
	}
}
