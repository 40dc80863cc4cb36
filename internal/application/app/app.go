// Package app ties the session and feed managers together and owns the
// resources they share.
package app

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/tesso57/storyterm/internal/application/usecase"
	"github.com/tesso57/storyterm/internal/domain/story"
	"github.com/tesso57/storyterm/internal/infrastructure/logx"
)

// App is the explicit lifecycle container for one client session.
type App struct {
	Session *usecase.SessionManager
	Feed    *usecase.FeedManager

	closers  []io.Closer
	tearOnce sync.Once
	tearErr  error
}

// New constructs an App. Closers are released in reverse order by Teardown.
func New(session *usecase.SessionManager, feed *usecase.FeedManager, closers ...io.Closer) *App {
	return &App{
		Session: session,
		Feed:    feed,
		closers: closers,
	}
}

// Init resolves the current identity and loads the default view for it.
func (a *App) Init(ctx context.Context) (*story.User, error) {
	user := a.Session.ResolveIdentity(ctx)
	return user, a.Feed.Reset(ctx, user)
}

// Login signs in and, on success, resets the feed to the signed-in default view.
func (a *App) Login(ctx context.Context, email, password string) usecase.Result {
	res := a.Session.Login(ctx, email, password)
	if res.Success {
		a.resetFeed(ctx)
	}
	return res
}

// Signup creates an account and, on success, resets the feed like Login.
func (a *App) Signup(ctx context.Context, firstName, lastName, email, password string) usecase.Result {
	res := a.Session.Signup(ctx, firstName, lastName, email, password)
	if res.Success {
		a.resetFeed(ctx)
	}
	return res
}

// Logout ends the session and returns the feed to the public view.
func (a *App) Logout(ctx context.Context) {
	a.Session.Logout(ctx)
	a.resetFeed(ctx)
}

// Teardown releases every closer once. Later calls return the first result.
func (a *App) Teardown() error {
	a.tearOnce.Do(func() {
		var errs []error
		for i := len(a.closers) - 1; i >= 0; i-- {
			if a.closers[i] == nil {
				continue
			}
			if err := a.closers[i].Close(); err != nil {
				errs = append(errs, err)
			}
		}
		a.tearErr = errors.Join(errs...)
	})
	return a.tearErr
}

func (a *App) resetFeed(ctx context.Context) {
	err := a.Feed.Reset(ctx, a.Session.Identity())
	if err != nil && !errors.Is(err, usecase.ErrSuperseded) {
		logx.Debug("feed reset failed", "error", err.Error())
	}
}
