// Package settings defines application-level configuration data.
package settings

import "time"

// KeyMapConfig defines the configuration for keybindings.
type KeyMapConfig struct {
	Up         string `yaml:"up" kong:"help='Up key',default='k'"`
	Down       string `yaml:"down" kong:"help='Down key',default='j'"`
	PrevPage   string `yaml:"prev_page" kong:"help='Previous page key',default='h,left'"`
	NextPage   string `yaml:"next_page" kong:"help='Next page key',default='l,right'"`
	Open       string `yaml:"open" kong:"help='Open story key',default='enter'"`
	Back       string `yaml:"back" kong:"help='Back key',default='esc'"`
	Quit       string `yaml:"quit" kong:"help='Quit key',default='q'"`
	Refresh    string `yaml:"refresh" kong:"help='Refresh key',default='r'"`
	ToggleView string `yaml:"toggle_view" kong:"help='Toggle all/mine view key',default='tab'"`
	AllView    string `yaml:"all_view" kong:"help='Show all stories key',default='a'"`
	MineView   string `yaml:"mine_view" kong:"help='Show my stories key',default='m'"`
	Compose    string `yaml:"compose" kong:"help='New story key',default='n'"`
	Delete     string `yaml:"delete" kong:"help='Delete story key',default='x'"`
	Login      string `yaml:"login" kong:"help='Sign in key',default='L'"`
	Signup     string `yaml:"signup" kong:"help='Sign up key',default='U'"`
	Logout     string `yaml:"logout" kong:"help='Sign out key',default='O'"`
}

// ThemeConfig defines the color theme configuration.
type ThemeConfig struct {
	Accent string `yaml:"accent" kong:"help='Accent color',default='205'"`
	Muted  string `yaml:"muted" kong:"help='Muted text color',default='244'"`
	Tag    string `yaml:"tag" kong:"help='Tag color',default='39'"`
	Error  string `yaml:"error" kong:"help='Error color',default='203'"`
}

// Settings represents the application configuration.
type Settings struct {
	UserServiceURL string       `yaml:"user_service_url" kong:"help='User service base URL',default='https://sharestories.in/api/v1/users/'"`
	TaskServiceURL string       `yaml:"task_service_url" kong:"help='Story service base URL',default='https://sharestories.in/api/v1/tasks/'"`
	TimeoutSeconds int          `yaml:"timeout_seconds" kong:"help='HTTP timeout in seconds',default='15'"`
	RateLimit      float64      `yaml:"rate_limit" kong:"help='Maximum requests per second (0 disables pacing)',default='5'"`
	RateBurst      int          `yaml:"rate_burst" kong:"help='Request burst size',default='10'"`
	SessionFile    string       `yaml:"session_file" kong:"help='Session cookie database path'"`
	LogFile        string       `yaml:"log_file" kong:"help='Log file path'"`
	LogLevel       string       `yaml:"log_level" kong:"help='Log level (debug/info/warn/error)',default='info'"`
	MetricsAddr    string       `yaml:"metrics_addr" kong:"help='Listen address for Prometheus metrics (empty disables)'"`
	KeyMap         KeyMapConfig `yaml:"keymap" kong:"embed,prefix='keymap.'"`
	Theme          ThemeConfig  `yaml:"theme" kong:"embed,prefix='theme.'"`
}

// Timeout returns the HTTP timeout as a duration.
func (s Settings) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}
