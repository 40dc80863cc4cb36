// Package apperr defines the error taxonomy surfaced by the session and feed managers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for presentation.
type Kind int

const (
	// Unknown is an unclassified failure.
	Unknown Kind = iota
	// AuthFailure covers rejected credentials and signup conflicts.
	AuthFailure
	// FetchFailed covers any failed listing request.
	FetchFailed
	// RateLimited is reported for every HTTP 429, whichever endpoint produced it.
	RateLimited
	// MutationFailed covers rejected create and delete requests.
	MutationFailed
)

// RateLimitMessage is the single user-facing message for HTTP 429 responses.
const RateLimitMessage = "Whoa, slow down! You're moving a bit too fast. Please try again in a minute."

func (k Kind) String() string {
	switch k {
	case AuthFailure:
		return "auth_failure"
	case FetchFailed:
		return "fetch_failed"
	case RateLimited:
		return "rate_limited"
	case MutationFailed:
		return "mutation_failed"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is checks by kind.
var (
	ErrAuthFailure    = &Error{Kind: AuthFailure}
	ErrFetchFailed    = &Error{Kind: FetchFailed}
	ErrRateLimited    = &Error{Kind: RateLimited}
	ErrMutationFailed = &Error{Kind: MutationFailed}
)

// Error is a classified failure carrying the message shown to the user.
type Error struct {
	Kind    Kind
	Message string
	// Status is the HTTP status that produced the error, or 0 for transport failures.
	Status int
	Err    error
}

// New constructs an Error.
func New(kind Kind, status int, message string, cause error) *Error {
	return &Error{Kind: kind, Status: status, Message: message, Err: cause}
}

// RateLimit builds the normalized rate-limit error.
func RateLimit(cause error) *Error {
	return &Error{Kind: RateLimited, Status: http.StatusTooManyRequests, Message: RateLimitMessage, Err: cause}
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	if e.Err != nil && e.Message == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of err, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Message returns the user-facing message carried by err, or fallback.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}

// Reclassify returns err as kind unless it is already a rate-limit error,
// filling in fallback when no server message is present.
func Reclassify(err error, kind Kind, fallback string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == RateLimited {
			return e
		}
		msg := e.Message
		if msg == "" {
			msg = fallback
		}
		return &Error{Kind: kind, Status: e.Status, Message: msg, Err: e.Err}
	}
	return &Error{Kind: kind, Message: fallback, Err: err}
}
