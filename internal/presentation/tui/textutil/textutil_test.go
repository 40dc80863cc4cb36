package textutil

import (
	"strings"
	"testing"
)

func TestSingleLine(t *testing.T) {
	if got := SingleLine("  a\n\tb   c "); got != "a b c" {
		t.Fatalf("SingleLine() = %q", got)
	}
	if got := SingleLine(""); got != "" {
		t.Fatalf("SingleLine(\"\") = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 8); got != "hello..." {
		t.Fatalf("Truncate() = %q", got)
	}
	if got := Truncate("hello", 0); got != "" {
		t.Fatalf("Truncate() with zero width = %q", got)
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("one two three four", 9)
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 9 {
			t.Fatalf("line %q exceeds width", line)
		}
	}
	if Wrap("abc", 0) != "abc" {
		t.Fatal("Wrap with zero width should be a no-op")
	}
}

func TestPlural(t *testing.T) {
	tests := map[int]string{0: "0 stories", 1: "1 story", 5: "5 stories"}
	for n, want := range tests {
		if got := Plural(n, "story", "stories"); got != want {
			t.Errorf("Plural(%d) = %q, want %q", n, got, want)
		}
	}
}
