package app

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tesso57/storyterm/internal/application/usecase"
	"github.com/tesso57/storyterm/internal/domain/story"
)

type stubAuth struct {
	mock.Mock
	user *story.User
}

func (s *stubAuth) Me(context.Context) (*story.User, error) {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called()
		u, _ := args.Get(0).(*story.User)
		return u, args.Error(1)
	}
	if s.user == nil {
		return nil, errors.New("unauthorized")
	}
	return s.user, nil
}

func (s *stubAuth) SignIn(_ context.Context, email, _ string) error {
	if email == "bad@x.com" {
		return errors.New("rejected")
	}
	s.user = &story.User{ID: "u1", Email: email}
	return nil
}

func (s *stubAuth) SignUp(_ context.Context, req usecase.SignupRequest) error {
	s.user = &story.User{ID: "u2", FirstName: req.FirstName, Email: req.Email}
	return nil
}

func (s *stubAuth) SignOut(context.Context) error {
	s.user = nil
	return errors.New("network down")
}

type stubStories struct {
	views []story.View
}

func (s *stubStories) List(_ context.Context, view story.View, _, _ int) ([]story.Story, error) {
	s.views = append(s.views, view)
	return []story.Story{{ID: string(view), Title: "t", Description: "d"}}, nil
}

func (s *stubStories) Create(context.Context, story.Draft) error { return nil }

func (s *stubStories) Delete(context.Context, string) error { return nil }

func newTestApp(auth *stubAuth, stories *stubStories, closers ...closerFunc) *App {
	cs := make([]io.Closer, 0, len(closers))
	for _, c := range closers {
		cs = append(cs, c)
	}
	return New(usecase.NewSessionManager(auth), usecase.NewFeedManager(stories), cs...)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestInitAppliesDefaultView(t *testing.T) {
	tests := []struct {
		name string
		user *story.User
		want story.View
	}{
		{name: "guest", user: nil, want: story.AllView},
		{name: "signed in", user: &story.User{Email: "a@x.com"}, want: story.MineView},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stories := &stubStories{}
			a := newTestApp(&stubAuth{user: tt.user}, stories)

			user, err := a.Init(t.Context())

			require.NoError(t, err)
			assert.Equal(t, tt.user, user)
			assert.Equal(t, tt.want, a.Feed.State().View)
			assert.False(t, a.Session.State().Resolving)
		})
	}
}

func TestLoginSwitchesToMine(t *testing.T) {
	stories := &stubStories{}
	a := newTestApp(&stubAuth{}, stories)
	_, err := a.Init(t.Context())
	require.NoError(t, err)

	res := a.Login(t.Context(), "a@x.com", "pw")

	require.True(t, res.Success)
	assert.Equal(t, story.MineView, a.Feed.State().View)
	assert.Equal(t, []story.View{story.AllView, story.MineView}, stories.views)
}

func TestLoginFailureLeavesFeed(t *testing.T) {
	stories := &stubStories{}
	a := newTestApp(&stubAuth{}, stories)
	_, err := a.Init(t.Context())
	require.NoError(t, err)

	res := a.Login(t.Context(), "bad@x.com", "pw")

	require.False(t, res.Success)
	assert.Equal(t, story.AllView, a.Feed.State().View)
	assert.Len(t, stories.views, 1)
}

func TestSignupSwitchesToMine(t *testing.T) {
	a := newTestApp(&stubAuth{}, &stubStories{})

	res := a.Signup(t.Context(), "Ada", "L", "ada@x.com", "pw")

	require.True(t, res.Success)
	assert.Equal(t, "Ada", a.Session.Identity().FirstName)
	assert.Equal(t, story.MineView, a.Feed.State().View)
}

func TestLogoutReturnsToAll(t *testing.T) {
	a := newTestApp(&stubAuth{user: &story.User{Email: "a@x.com"}}, &stubStories{})
	_, err := a.Init(t.Context())
	require.NoError(t, err)
	require.Equal(t, story.MineView, a.Feed.State().View)

	a.Logout(t.Context())

	assert.Nil(t, a.Session.Identity())
	assert.Equal(t, story.AllView, a.Feed.State().View)
	assert.Equal(t, 1, a.Feed.State().Page)
}

func TestInitUsesMockedIdentity(t *testing.T) {
	auth := &stubAuth{}
	auth.On("Me").Return(&story.User{ID: "u9", Email: "m@x.com"}, nil).Once()
	a := newTestApp(auth, &stubStories{})

	user, err := a.Init(t.Context())

	require.NoError(t, err)
	assert.Equal(t, "u9", user.ID)
	auth.AssertExpectations(t)
}

func TestTeardownRunsClosersOnceInReverse(t *testing.T) {
	var order []string
	first := closerFunc(func() error { order = append(order, "first"); return nil })
	second := closerFunc(func() error { order = append(order, "second"); return errors.New("close failed") })
	a := newTestApp(&stubAuth{}, &stubStories{}, first, second)

	err := a.Teardown()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close failed")

	assert.Equal(t, err, a.Teardown())
	assert.Equal(t, []string{"second", "first"}, order)
}
