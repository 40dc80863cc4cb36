package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/tesso57/storyterm/internal/domain/apperr"
	"github.com/tesso57/storyterm/internal/domain/story"
	"github.com/tesso57/storyterm/internal/infrastructure/logx"
)

const (
	loginFallback  = "Login failed"
	signupFallback = "Signup failed"
)

// SessionManager owns the current-user identity.
// It is safe for concurrent use.
type SessionManager struct {
	Auth AuthGateway
	// OnLogout runs after every logout, whether or not the remote call succeeded.
	OnLogout func()

	mu    sync.RWMutex
	state story.Session
}

// NewSessionManager constructs a SessionManager. The identity starts unresolved.
func NewSessionManager(auth AuthGateway) *SessionManager {
	return &SessionManager{
		Auth:  auth,
		state: story.Session{Resolving: true},
	}
}

// State returns a snapshot of the session.
func (m *SessionManager) State() story.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return story.Session{Identity: cloneUser(m.state.Identity), Resolving: m.state.Resolving}
}

// Identity returns the resolved user, or nil when signed out.
func (m *SessionManager) Identity() *story.User {
	return m.State().Identity
}

// ResolveIdentity asks the user service who owns the current session.
// Any failure means "not signed in" and is absorbed.
func (m *SessionManager) ResolveIdentity(ctx context.Context) *story.User {
	m.mu.Lock()
	m.state.Resolving = true
	m.mu.Unlock()

	user, err := m.Auth.Me(ctx)
	if err != nil {
		logx.Debug("identity resolution failed", "error", err.Error())
		user = nil
	} else if user == nil || strings.TrimSpace(user.Email) == "" {
		logx.Debug("identity payload has no email, treating as signed out")
		user = nil
	}

	m.mu.Lock()
	m.state = story.Session{Identity: cloneUser(user)}
	m.mu.Unlock()
	return cloneUser(user)
}

// Login submits credentials and resolves the new identity on success.
// Identity is left untouched on failure.
func (m *SessionManager) Login(ctx context.Context, email, password string) Result {
	if err := m.Auth.SignIn(ctx, strings.TrimSpace(email), password); err != nil {
		logx.Info("login rejected", "kind", apperr.KindOf(err).String())
		return Fail(apperr.Reclassify(err, apperr.AuthFailure, loginFallback))
	}
	m.ResolveIdentity(ctx)
	return Ok()
}

// Signup creates an account and resolves the new identity on success.
func (m *SessionManager) Signup(ctx context.Context, firstName, lastName, email, password string) Result {
	req := SignupRequest{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.TrimSpace(email),
		Password:  password,
	}
	if err := m.Auth.SignUp(ctx, req); err != nil {
		logx.Info("signup rejected", "kind", apperr.KindOf(err).String())
		return Fail(apperr.Reclassify(err, apperr.AuthFailure, signupFallback))
	}
	m.ResolveIdentity(ctx)
	return Ok()
}

// Logout invalidates the remote session and always clears the local identity.
func (m *SessionManager) Logout(ctx context.Context) {
	if err := m.Auth.SignOut(ctx); err != nil {
		logx.Warn("logout request failed", "error", err.Error())
	}

	m.mu.Lock()
	m.state = story.Session{}
	m.mu.Unlock()

	if m.OnLogout != nil {
		m.OnLogout()
	}
}

func cloneUser(u *story.User) *story.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
