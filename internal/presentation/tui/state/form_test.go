package state

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestFormFocusCycles(t *testing.T) {
	f := NewLoginForm()

	assert.Equal(t, 0, f.Focus)
	assert.True(t, f.Inputs[0].Focused())

	f.Next()
	assert.Equal(t, 1, f.Focus)
	assert.True(t, f.OnLastField())
	assert.False(t, f.Inputs[0].Focused())

	f.Next()
	assert.Equal(t, 0, f.Focus)

	f.Prev()
	assert.Equal(t, 1, f.Focus)
}

func TestFormTyping(t *testing.T) {
	f := NewComposeForm()

	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Hi")})

	assert.Equal(t, "Hi", f.Value(0))
	assert.Equal(t, "Story", f.Missing())

	f.SetValue(1, "body")
	assert.Empty(t, f.Missing())
	assert.Empty(t, f.Value(9))
}

func TestSignupFormRequiredFields(t *testing.T) {
	f := NewSignupForm()

	assert.Equal(t, "First name", f.Missing())
	f.SetValue(0, "Ada")
	f.SetValue(2, "ada@x.com")
	f.SetValue(3, "pw")
	assert.Empty(t, f.Missing(), "last name is optional")
}
