// Package usecase contains application-level services.
package usecase

import (
	"context"

	"github.com/tesso57/storyterm/internal/domain/story"
)

// SignupRequest is the payload for account creation.
type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthGateway abstracts the remote user/auth service.
type AuthGateway interface {
	// Me resolves the identity carried by the current session cookie.
	Me(ctx context.Context) (*story.User, error)
	SignIn(ctx context.Context, email, password string) error
	SignUp(ctx context.Context, req SignupRequest) error
	SignOut(ctx context.Context) error
}

// StoryGateway abstracts the remote task/story service.
type StoryGateway interface {
	List(ctx context.Context, view story.View, page, limit int) ([]story.Story, error)
	Create(ctx context.Context, draft story.Draft) error
	Delete(ctx context.Context, id string) error
}

// Result is the outcome of a user-initiated mutation.
// Err is an *apperr.Error when Success is false.
type Result struct {
	Success bool
	Err     error
}

// Ok is the successful Result.
func Ok() Result {
	return Result{Success: true}
}

// Fail wraps err in a failed Result.
func Fail(err error) Result {
	return Result{Err: err}
}
