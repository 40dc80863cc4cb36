package presenter

import (
	"html"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// Sanitize makes user-authored text safe for the terminal: markup is removed,
// escape sequences are stripped and control characters dropped. Newlines survive.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	text = dropControl(ansi.Strip(text))
	// Entities may decode to control characters, so filter again afterwards.
	text = dropControl(html.UnescapeString(strictPolicy.Sanitize(text)))
	return strings.TrimSpace(text)
}

func dropControl(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}
