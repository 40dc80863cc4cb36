// Package config handles configuration loading and saving.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/tesso57/storyterm/internal/application/settings"
	"gopkg.in/yaml.v3"
)

const appName = "storyterm"

// Store manages persisted application settings.
type Store struct {
	Settings   settings.Settings
	configPath string
}

// Load loads the configuration from the specified path or default location.
func Load(customPath ...string) (*Store, error) {
	var configPath string
	if len(customPath) > 0 && customPath[0] != "" {
		configPath = customPath[0]
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(home, ".config", appName, "config.yaml")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := settings.Settings{}
	store := &Store{Settings: cfg, configPath: configPath}

	var options []kong.Option

	// Only add configuration loader if file exists
	if _, err := os.Stat(configPath); err == nil {
		options = append(options, kong.Configuration(yamlKongLoader, configPath))
	}

	parser, err := kong.New(&cfg, options...)
	if err != nil {
		return nil, err
	}

	_, err = parser.Parse([]string{})
	if err != nil {
		return nil, err
	}

	store.Settings = cfg
	store.Settings.UserServiceURL = normalizeBaseURL(store.Settings.UserServiceURL)
	store.Settings.TaskServiceURL = normalizeBaseURL(store.Settings.TaskServiceURL)
	store.Settings.LogLevel = strings.ToLower(strings.TrimSpace(store.Settings.LogLevel))

	// Save defaults if new file
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := store.Save(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	// Derived paths are filled in after saving so they follow XDG changes.
	if strings.TrimSpace(store.Settings.SessionFile) == "" {
		store.Settings.SessionFile = filepath.Join(defaultDataHome(), appName, "session.db")
	}
	if strings.TrimSpace(store.Settings.LogFile) == "" {
		store.Settings.LogFile = filepath.Join(defaultStateHome(), appName, appName+".log")
	}

	return store, nil
}

// Path returns the file the settings were loaded from.
func (s *Store) Path() string {
	return s.configPath
}

// normalizeBaseURL trims whitespace and guarantees a trailing slash so that
// relative endpoint paths resolve under the service prefix.
func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasSuffix(raw, "/") {
		return raw
	}
	return raw + "/"
}

func defaultDataHome() string {
	return xdgHome("XDG_DATA_HOME", ".local", "share")
}

func defaultStateHome() string {
	return xdgHome("XDG_STATE_HOME", ".local", "state")
}

func xdgHome(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

func yamlKongLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if err == io.EOF {
			return nil, nil // Return nil resolver (no op)
		}
		return nil, err
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		// Try various naming conventions
		names := []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")}
		for _, name := range names {
			if v, ok := values[name]; ok {
				return v, nil
			}
			if v, ok := lookupNested(values, strings.Split(name, ".")); ok {
				return v, nil
			}
		}
		return nil, nil
	}
	return f, nil
}

func lookupNested(values map[string]any, parts []string) (any, bool) {
	if len(parts) < 2 {
		return nil, false
	}
	curr := values
	for i, part := range parts {
		if i == len(parts)-1 {
			v, ok := curr[part]
			return v, ok
		}
		next, ok := curr[part].(map[string]any)
		if !ok {
			return nil, false
		}
		curr = next
	}
	return nil, false
}

// Save writes the current settings to the config file.
func (s *Store) Save() error {
	f, err := os.Create(s.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return yaml.NewEncoder(f).Encode(s.Settings)
}
