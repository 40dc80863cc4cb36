package main

import (
	"errors"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/tesso57/storyterm/internal/application/app"
	"github.com/tesso57/storyterm/internal/application/settings"
	"github.com/tesso57/storyterm/internal/application/usecase"
	"github.com/tesso57/storyterm/internal/infrastructure/api"
	"github.com/tesso57/storyterm/internal/infrastructure/config"
	"github.com/tesso57/storyterm/internal/infrastructure/cookiestore"
	"github.com/tesso57/storyterm/internal/infrastructure/logx"
	"github.com/tesso57/storyterm/internal/infrastructure/metrics"
)

var errNotSignedIn = errors.New("not signed in; run `storyterm login` first")

// Globals are the flags shared by every command.
type Globals struct {
	Config string `help:"Path to the config file." type:"path" placeholder:"FILE"`
	Debug  bool   `help:"Log at debug level."`
}

type runtime struct {
	settings settings.Settings
	app      *app.App
}

// open loads configuration and wires the App. Interactive sessions log to the
// configured file; one-shot commands log to stderr.
func (g *Globals) open(interactive bool) (*runtime, error) {
	store, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	cfg := store.Settings

	level := cfg.LogLevel
	if g.Debug {
		level = "debug"
	}
	var closers []io.Closer
	if interactive {
		logFile, err := logx.OpenFile(cfg.LogFile, level)
		if err != nil {
			return nil, err
		}
		closers = append(closers, logFile)
	} else {
		if !g.Debug {
			level = "warn"
		}
		logx.InitConsole(os.Stderr, level)
	}
	logx.Debug("configuration loaded", "path", store.Path())

	cookies, err := cookiestore.Open(cfg.SessionFile)
	if err != nil {
		closeAll(closers)
		return nil, err
	}
	closers = append(closers, cookies)

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	if cfg.MetricsAddr != "" {
		srv, err := metrics.Serve(cfg.MetricsAddr, registry)
		if err != nil {
			closeAll(closers)
			return nil, err
		}
		closers = append(closers, srv)
	}

	client := api.NewClient(api.Options{
		Timeout:   cfg.Timeout(),
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
		Jar:       cookies,
		Metrics:   collector,
	})
	users, err := api.NewUserClient(client, cfg.UserServiceURL)
	if err != nil {
		closeAll(closers)
		return nil, err
	}
	tasks, err := api.NewTaskClient(client, cfg.TaskServiceURL)
	if err != nil {
		closeAll(closers)
		return nil, err
	}

	session := usecase.NewSessionManager(users)
	session.OnLogout = func() {
		if err := cookies.Clear(); err != nil {
			logx.Error(err, "failed to clear stored session")
		}
	}

	return &runtime{
		settings: cfg,
		app:      app.New(session, usecase.NewFeedManager(tasks), closers...),
	}, nil
}

func (r *runtime) close() {
	if err := r.app.Teardown(); err != nil {
		logx.Warn("teardown failed", "error", err.Error())
	}
}

func closeAll(closers []io.Closer) {
	for i := len(closers) - 1; i >= 0; i-- {
		_ = closers[i].Close()
	}
}
