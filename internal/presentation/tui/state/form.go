package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Field describes one input of a Form.
type Field struct {
	Label       string
	Placeholder string
	Secret      bool
	Required    bool
	CharLimit   int
}

// Form is a stack of focused text inputs with an inline error banner.
type Form struct {
	Title      string
	Fields     []Field
	Inputs     []textinput.Model
	Focus      int
	Err        string
	Submitting bool
}

// NewForm builds a Form with the first field focused.
func NewForm(title string, fields ...Field) Form {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.Width = 40
		ti.CharLimit = f.CharLimit
		ti.Cursor.SetMode(cursor.CursorStatic)
		if f.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		inputs[i] = ti
	}
	form := Form{Title: title, Fields: fields, Inputs: inputs}
	form.focus(0)
	return form
}

// NewLoginForm returns the sign-in form.
func NewLoginForm() Form {
	return NewForm("Sign in",
		Field{Label: "Email", Placeholder: "you@example.com", Required: true, CharLimit: 254},
		Field{Label: "Password", Secret: true, Required: true, CharLimit: 128},
	)
}

// NewSignupForm returns the account creation form.
func NewSignupForm() Form {
	return NewForm("Create account",
		Field{Label: "First name", Required: true, CharLimit: 64},
		Field{Label: "Last name", CharLimit: 64},
		Field{Label: "Email", Placeholder: "you@example.com", Required: true, CharLimit: 254},
		Field{Label: "Password", Secret: true, Required: true, CharLimit: 128},
	)
}

// NewComposeForm returns the new-story form.
func NewComposeForm() Form {
	return NewForm("New story",
		Field{Label: "Title", Required: true, CharLimit: 120},
		Field{Label: "Story", Required: true, CharLimit: 2000},
		Field{Label: "Tags", Placeholder: "space separated"},
	)
}

// Value returns the current text of field i.
func (f *Form) Value(i int) string {
	if i < 0 || i >= len(f.Inputs) {
		return ""
	}
	return f.Inputs[i].Value()
}

// SetValue replaces the text of field i.
func (f *Form) SetValue(i int, v string) {
	if i < 0 || i >= len(f.Inputs) {
		return
	}
	f.Inputs[i].SetValue(v)
}

// Missing returns the label of the first empty required field, or "".
func (f *Form) Missing() string {
	for i, field := range f.Fields {
		if field.Required && strings.TrimSpace(f.Value(i)) == "" {
			return field.Label
		}
	}
	return ""
}

// OnLastField reports whether focus is on the final input.
func (f *Form) OnLastField() bool {
	return f.Focus == len(f.Inputs)-1
}

// Next moves focus down, wrapping around.
func (f *Form) Next() {
	if len(f.Inputs) == 0 {
		return
	}
	f.focus((f.Focus + 1) % len(f.Inputs))
}

// Prev moves focus up, wrapping around.
func (f *Form) Prev() {
	if len(f.Inputs) == 0 {
		return
	}
	f.focus((f.Focus - 1 + len(f.Inputs)) % len(f.Inputs))
}

// Update forwards a key to the focused input.
func (f *Form) Update(msg tea.KeyMsg) tea.Cmd {
	if len(f.Inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.Inputs[f.Focus], cmd = f.Inputs[f.Focus].Update(msg)
	return cmd
}

func (f *Form) focus(i int) {
	for idx := range f.Inputs {
		if idx == i {
			f.Inputs[idx].Focus()
			continue
		}
		f.Inputs[idx].Blur()
	}
	f.Focus = i
}
