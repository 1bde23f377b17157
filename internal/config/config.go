// Package config defines the taskmon configuration schema and its viper
// bindings. Values resolve in the usual order: explicit flags, environment
// (TASKMON_ prefix), config file, then the defaults registered here.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete taskmon configuration
type Config struct {
	Display Display `mapstructure:"display"`
	Session Session `mapstructure:"session"`
	Logging Logging `mapstructure:"logging"`
}

// Display controls the panel titles and refresh behavior of the monitor
type Display struct {
	// LiveTitle is the title of the live status panel
	LiveTitle string `mapstructure:"live_title"`
	// HistoryTitle is the title of the scrolling history panel
	HistoryTitle string `mapstructure:"history_title"`
	// HistorySize caps the number of history lines kept in memory
	HistorySize int `mapstructure:"history_size"`
	// RefreshIntervalMs is the repaint cadence in milliseconds
	RefreshIntervalMs int `mapstructure:"refresh_interval_ms"`
	// Theme is an optional path to a YAML color theme file
	Theme string `mapstructure:"theme"`
	// Plain forces the line-oriented renderer even on a terminal
	Plain bool `mapstructure:"plain"`
}

// Session controls where session logs are written
type Session struct {
	// LogDir is the directory for session log files
	LogDir string `mapstructure:"log_dir"`
	// LogFilename names the session log file; empty derives a name from
	// the session start time
	LogFilename string `mapstructure:"log_filename"`
}

// Logging controls debug logging behavior
type Logging struct {
	// Enabled controls whether debug logging is enabled (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is the debug log directory; empty logs to stderr
	Dir string `mapstructure:"dir"`
	// MaxSizeMB is the maximum debug log size in megabytes before rotation
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated debug logs to keep
	MaxBackups int `mapstructure:"max_backups"`
}

// RefreshInterval returns the repaint cadence as a time.Duration
func (d *Display) RefreshInterval() time.Duration {
	return time.Duration(d.RefreshIntervalMs) * time.Millisecond
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Display: Display{
			LiveTitle:         "Current Status",
			HistoryTitle:      "History Log",
			HistorySize:       1000,
			RefreshIntervalMs: 100,
			Theme:             "",
			Plain:             false,
		},
		Session: Session{
			LogDir:      ".",
			LogFilename: "", // Empty means derive from the start time
		},
		Logging: Logging{
			Enabled:    false,
			Level:      "info",
			Dir:        "",
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Display defaults
	viper.SetDefault("display.live_title", defaults.Display.LiveTitle)
	viper.SetDefault("display.history_title", defaults.Display.HistoryTitle)
	viper.SetDefault("display.history_size", defaults.Display.HistorySize)
	viper.SetDefault("display.refresh_interval_ms", defaults.Display.RefreshIntervalMs)
	viper.SetDefault("display.theme", defaults.Display.Theme)
	viper.SetDefault("display.plain", defaults.Display.Plain)

	// Session defaults
	viper.SetDefault("session.log_dir", defaults.Session.LogDir)
	viper.SetDefault("session.log_filename", defaults.Session.LogFilename)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taskmon")
	}
	// Fall back to ~/.config/taskmon
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskmon"
	}
	return filepath.Join(home, ".config", "taskmon")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
