package story

import "fmt"

// View selects the listing scope of the feed.
type View string

const (
	// AllView is the public feed.
	AllView View = "all"
	// MineView lists stories owned by the current user.
	MineView View = "mine"
)

// ParseView converts user input into a View.
func ParseView(s string) (View, error) {
	v := View(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown view %q (want all or mine)", s)
	}
	return v, nil
}

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	return v == AllView || v == MineView
}

// Toggle returns the other view.
func (v View) Toggle() View {
	if v == MineView {
		return AllView
	}
	return MineView
}

// Title returns the heading shown above the listing.
func (v View) Title() string {
	if v == MineView {
		return "Your Stories"
	}
	return "Explore Stories"
}

// DefaultView returns the view selected after an identity transition:
// signed-in users land on their own stories, guests on the public feed.
func DefaultView(identity *User) View {
	if identity != nil {
		return MineView
	}
	return AllView
}
