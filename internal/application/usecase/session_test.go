package usecase

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/storyterm/internal/domain/apperr"
	"github.com/tesso57/storyterm/internal/domain/story"
)

func TestSessionStartsResolving(t *testing.T) {
	m := NewSessionManager(&mockAuth{})

	st := m.State()
	assert.True(t, st.Resolving)
	assert.Nil(t, st.Identity)
}

func TestResolveIdentity(t *testing.T) {
	ada := &story.User{ID: "u1", FirstName: "Ada", Email: "ada@x.com"}

	tests := []struct {
		name string
		user *story.User
		err  error
		want *story.User
	}{
		{name: "success", user: ada, want: ada},
		{name: "unauthorized", err: apperr.New(apperr.Unknown, http.StatusUnauthorized, "", nil)},
		{name: "network failure", err: errors.New("dial tcp: connection refused")},
		{name: "payload without email", user: &story.User{ID: "u1"}},
		{name: "empty payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockAuth{}
			auth.On("Me", mock.Anything).Return(tt.user, tt.err).Once()
			m := NewSessionManager(auth)

			got := m.ResolveIdentity(t.Context())

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, m.Identity())
			assert.False(t, m.State().Resolving)
			auth.AssertExpectations(t)
		})
	}
}

func TestLoginSuccessResolvesIdentity(t *testing.T) {
	auth := &mockAuth{}
	user := &story.User{ID: "u1", Email: "a@x.com"}
	auth.On("SignIn", mock.Anything, "a@x.com", "secret").Return(nil).Once()
	auth.On("Me", mock.Anything).Return(user, nil).Once()
	m := NewSessionManager(auth)

	res := m.Login(t.Context(), " a@x.com ", "secret")

	require.True(t, res.Success)
	assert.NoError(t, res.Err)
	assert.Equal(t, user, m.Identity())
	auth.AssertExpectations(t)
}

func TestLoginFailureKeepsIdentityAbsent(t *testing.T) {
	auth := &mockAuth{}
	auth.On("SignIn", mock.Anything, "a@x.com", "wrong").
		Return(apperr.New(apperr.Unknown, http.StatusBadRequest, "Invalid email or password", nil)).Once()
	m := NewSessionManager(auth)

	res := m.Login(t.Context(), "a@x.com", "wrong")

	require.False(t, res.Success)
	assert.True(t, errors.Is(res.Err, apperr.ErrAuthFailure))
	assert.Equal(t, "Invalid email or password", apperr.Message(res.Err, ""))
	assert.Nil(t, m.Identity())
	auth.AssertNotCalled(t, "Me", mock.Anything)
}

func TestLoginFailureFallbackAndRateLimit(t *testing.T) {
	auth := &mockAuth{}
	auth.On("SignIn", mock.Anything, "a@x.com", "pw").Return(errors.New("timeout")).Once()
	auth.On("SignIn", mock.Anything, "b@x.com", "pw").Return(apperr.RateLimit(nil)).Once()
	m := NewSessionManager(auth)

	res := m.Login(t.Context(), "a@x.com", "pw")
	assert.Equal(t, "Login failed", apperr.Message(res.Err, ""))

	res = m.Login(t.Context(), "b@x.com", "pw")
	assert.True(t, errors.Is(res.Err, apperr.ErrRateLimited))
	assert.Equal(t, apperr.RateLimitMessage, apperr.Message(res.Err, ""))
}

func TestSignup(t *testing.T) {
	auth := &mockAuth{}
	req := SignupRequest{FirstName: "Ada", LastName: "L", Email: "ada@x.com", Password: "pw"}
	user := &story.User{ID: "u1", FirstName: "Ada", Email: "ada@x.com"}
	auth.On("SignUp", mock.Anything, req).Return(nil).Once()
	auth.On("Me", mock.Anything).Return(user, nil).Once()
	m := NewSessionManager(auth)

	res := m.Signup(t.Context(), " Ada ", "L", "ada@x.com", "pw")

	require.True(t, res.Success)
	assert.Equal(t, user, m.Identity())
}

func TestSignupFailure(t *testing.T) {
	auth := &mockAuth{}
	auth.On("SignUp", mock.Anything, mock.Anything).
		Return(apperr.New(apperr.Unknown, http.StatusConflict, "", nil)).Once()
	m := NewSessionManager(auth)

	res := m.Signup(t.Context(), "Ada", "L", "ada@x.com", "pw")

	require.False(t, res.Success)
	assert.Equal(t, "Signup failed", apperr.Message(res.Err, ""))
	assert.Equal(t, apperr.AuthFailure, apperr.KindOf(res.Err))
}

func TestLogoutClearsIdentityEvenOnFailure(t *testing.T) {
	for _, signOutErr := range []error{nil, errors.New("network down")} {
		auth := &mockAuth{}
		auth.On("Me", mock.Anything).Return(&story.User{Email: "a@x.com"}, nil).Once()
		auth.On("SignOut", mock.Anything).Return(signOutErr).Once()
		m := NewSessionManager(auth)
		hookRan := false
		m.OnLogout = func() { hookRan = true }

		require.NotNil(t, m.ResolveIdentity(t.Context()))
		m.Logout(t.Context())

		assert.Nil(t, m.Identity())
		assert.False(t, m.State().Resolving)
		assert.True(t, hookRan)
	}
}

func TestStateReturnsCopy(t *testing.T) {
	auth := &mockAuth{}
	auth.On("Me", mock.Anything).Return(&story.User{FirstName: "Ada", Email: "a@x.com"}, nil).Once()
	m := NewSessionManager(auth)
	m.ResolveIdentity(t.Context())

	snapshot := m.Identity()
	snapshot.FirstName = "Mallory"

	assert.Equal(t, "Ada", m.Identity().FirstName)
}
