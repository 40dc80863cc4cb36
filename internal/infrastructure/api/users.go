package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tesso57/storyterm/internal/application/usecase"
	"github.com/tesso57/storyterm/internal/domain/apperr"
	"github.com/tesso57/storyterm/internal/domain/story"
)

// UserClient talks to the user/auth service.
type UserClient struct {
	client *Client
	base   *url.URL
}

var _ usecase.AuthGateway = (*UserClient)(nil)

// NewUserClient binds c to the user service at baseURL.
func NewUserClient(c *Client, baseURL string) (*UserClient, error) {
	base, err := parseBase(baseURL)
	if err != nil {
		return nil, err
	}
	return &UserClient{client: c, base: base}, nil
}

// Me returns the user owning the current session cookie.
func (u *UserClient) Me(ctx context.Context) (*story.User, error) {
	body, err := u.client.do(ctx, call{
		endpoint: "users.view",
		method:   http.MethodGet,
		url:      resolve(u.base, "view", nil),
		want:     http.StatusOK,
	})
	if err != nil {
		return nil, err
	}

	var user story.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, apperr.New(apperr.Unknown, http.StatusOK, "", fmt.Errorf("failed to decode user: %w", err))
	}
	if user.Email == "" {
		var wrapped struct {
			Data story.User `json:"data"`
		}
		if err := json.Unmarshal(body, &wrapped); err == nil {
			user = wrapped.Data
		}
	}
	return &user, nil
}

// SignIn posts credentials; the session cookie lands in the jar.
func (u *UserClient) SignIn(ctx context.Context, email, password string) error {
	_, err := u.client.do(ctx, call{
		endpoint: "users.signin",
		method:   http.MethodPost,
		url:      resolve(u.base, "signin", nil),
		body:     map[string]string{"email": email, "password": password},
		want:     http.StatusOK,
	})
	return err
}

// SignUp creates an account.
func (u *UserClient) SignUp(ctx context.Context, req usecase.SignupRequest) error {
	_, err := u.client.do(ctx, call{
		endpoint: "users.signup",
		method:   http.MethodPost,
		url:      resolve(u.base, "signup", nil),
		body:     req,
		want:     http.StatusCreated,
	})
	return err
}

// SignOut invalidates the session server-side.
func (u *UserClient) SignOut(ctx context.Context) error {
	_, err := u.client.do(ctx, call{
		endpoint: "users.logout",
		method:   http.MethodGet,
		url:      resolve(u.base, "logout", nil),
	})
	return err
}
