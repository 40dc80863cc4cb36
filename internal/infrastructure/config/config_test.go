package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmpDir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmpDir, "state"))

	configPath := filepath.Join(tmpDir, "config.yaml")
	store, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if store.Settings.UserServiceURL != "https://sharestories.in/api/v1/users/" {
		t.Errorf("unexpected default user service url %q", store.Settings.UserServiceURL)
	}
	if store.Settings.TaskServiceURL != "https://sharestories.in/api/v1/tasks/" {
		t.Errorf("unexpected default task service url %q", store.Settings.TaskServiceURL)
	}
	if store.Settings.TimeoutSeconds != 15 {
		t.Errorf("Expected default TimeoutSeconds 15, got %d", store.Settings.TimeoutSeconds)
	}
	if store.Settings.RateBurst != 10 {
		t.Errorf("Expected default RateBurst 10, got %d", store.Settings.RateBurst)
	}
	if store.Settings.KeyMap.Compose != "n" {
		t.Errorf("Expected default KeyMap.Compose 'n', got %q", store.Settings.KeyMap.Compose)
	}
	if store.Settings.KeyMap.NextPage != "l,right" {
		t.Errorf("Expected default KeyMap.NextPage 'l,right', got %q", store.Settings.KeyMap.NextPage)
	}
	if store.Settings.Theme.Accent != "205" {
		t.Errorf("Expected default Theme.Accent '205', got %q", store.Settings.Theme.Accent)
	}
	if want := filepath.Join(tmpDir, "data", "storyterm", "session.db"); store.Settings.SessionFile != want {
		t.Errorf("SessionFile = %q, want %q", store.Settings.SessionFile, want)
	}
	if want := filepath.Join(tmpDir, "state", "storyterm", "storyterm.log"); store.Settings.LogFile != want {
		t.Errorf("LogFile = %q, want %q", store.Settings.LogFile, want)
	}
	if store.Path() != configPath {
		t.Errorf("Path() = %q, want %q", store.Path(), configPath)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file not created")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := `user_service_url: " http://localhost:3000/users "
task_service_url: http://localhost:3001/tasks/
timeout_seconds: 3
log_level: DEBUG
session_file: ` + filepath.Join(tmpDir, "s.db") + `
keymap:
  compose: c
theme:
  accent: "99"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	store, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if store.Settings.UserServiceURL != "http://localhost:3000/users/" {
		t.Errorf("UserServiceURL = %q", store.Settings.UserServiceURL)
	}
	if store.Settings.TaskServiceURL != "http://localhost:3001/tasks/" {
		t.Errorf("TaskServiceURL = %q", store.Settings.TaskServiceURL)
	}
	if store.Settings.TimeoutSeconds != 3 {
		t.Errorf("TimeoutSeconds = %d, want 3", store.Settings.TimeoutSeconds)
	}
	if store.Settings.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", store.Settings.LogLevel)
	}
	if store.Settings.SessionFile != filepath.Join(tmpDir, "s.db") {
		t.Errorf("SessionFile = %q", store.Settings.SessionFile)
	}
	if store.Settings.KeyMap.Compose != "c" {
		t.Errorf("KeyMap.Compose = %q, want c", store.Settings.KeyMap.Compose)
	}
	if store.Settings.KeyMap.Delete != "x" {
		t.Errorf("KeyMap.Delete = %q, want default x", store.Settings.KeyMap.Delete)
	}
	if store.Settings.Theme.Accent != "99" {
		t.Errorf("Theme.Accent = %q, want 99", store.Settings.Theme.Accent)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	_ = os.WriteFile(configPath, []byte("invalid_yaml: ["), 0600)

	if _, err := Load(configPath); err == nil {
		t.Error("Expected error for corrupt config read, got nil")
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct{ in, want string }{
		{in: "", want: ""},
		{in: "http://a/users", want: "http://a/users/"},
		{in: "http://a/users/", want: "http://a/users/"},
		{in: "  http://a/tasks  ", want: "http://a/tasks/"},
	}
	for _, tt := range tests {
		if got := normalizeBaseURL(tt.in); got != tt.want {
			t.Errorf("normalizeBaseURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
