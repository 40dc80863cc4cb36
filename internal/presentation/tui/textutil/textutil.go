// Package textutil provides small formatting helpers for TUI text.
package textutil

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// SingleLine collapses whitespace into single spaces.
func SingleLine(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}

// Truncate trims a string to the given width with an ellipsis.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(text, width, "...")
}

// Wrap word-wraps text to width, breaking long words when needed.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(text, width, "")
}

// Plural returns "1 story" or "n stories" style counts.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return strconv.Itoa(n) + " " + plural
}
