// Package teststack wires a complete App against the fake services.
package teststack

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tesso57/storyterm/internal/application/app"
	"github.com/tesso57/storyterm/internal/application/usecase"
	"github.com/tesso57/storyterm/internal/infrastructure/api"
	"github.com/tesso57/storyterm/internal/infrastructure/cookiestore"
	"github.com/tesso57/storyterm/internal/testutil/fakeservice"
)

// Stack is an App plus the fake backend it talks to.
type Stack struct {
	App     *app.App
	Service *fakeservice.Service
	Store   *cookiestore.Store
}

// New starts the fake services and builds an App with an in-memory cookie store.
// The App is torn down when the test ends.
func New(tb testing.TB) *Stack {
	tb.Helper()
	svc, srv := fakeservice.Start(tb)

	store, err := cookiestore.Open("")
	require.NoError(tb, err)

	client := api.NewClient(api.Options{Timeout: 5 * time.Second, Jar: store})
	users, err := api.NewUserClient(client, fakeservice.UserURL(srv))
	require.NoError(tb, err)
	tasks, err := api.NewTaskClient(client, fakeservice.TaskURL(srv))
	require.NoError(tb, err)

	session := usecase.NewSessionManager(users)
	session.OnLogout = func() { _ = store.Clear() }
	a := app.New(session, usecase.NewFeedManager(tasks), store)
	tb.Cleanup(func() { _ = a.Teardown() })

	return &Stack{App: a, Service: svc, Store: store}
}

// SeedUser registers an account and publishes n stories for it.
// Story titles are prefix followed by a number; the highest number is newest.
func (s *Stack) SeedUser(first, email, password, prefix string, n int) string {
	id := s.Service.AddUser(first, "", email, password)
	for i := range n {
		s.Service.AddStory(id, prefix+" "+strconv.Itoa(i+1), "Body of "+prefix, "go tui")
	}
	return id
}
