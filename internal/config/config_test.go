package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Display.LiveTitle != "Current Status" {
		t.Errorf("Expected live title 'Current Status', got %q", cfg.Display.LiveTitle)
	}
	if cfg.Display.HistoryTitle != "History Log" {
		t.Errorf("Expected history title 'History Log', got %q", cfg.Display.HistoryTitle)
	}
	if cfg.Display.HistorySize != 1000 {
		t.Errorf("Expected history size 1000, got %d", cfg.Display.HistorySize)
	}
	if cfg.Display.RefreshIntervalMs != 100 {
		t.Errorf("Expected refresh interval 100ms, got %d", cfg.Display.RefreshIntervalMs)
	}
	if cfg.Session.LogDir != "." {
		t.Errorf("Expected log dir '.', got %q", cfg.Session.LogDir)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected log level 'info', got %q", cfg.Logging.Level)
	}
}

func TestSetDefaults_LoadRoundTrip(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}

	want := Default()
	if cfg.Display.HistorySize != want.Display.HistorySize {
		t.Errorf("Expected history size %d, got %d", want.Display.HistorySize, cfg.Display.HistorySize)
	}
	if cfg.Logging.MaxSizeMB != want.Logging.MaxSizeMB {
		t.Errorf("Expected max size %d, got %d", want.Logging.MaxSizeMB, cfg.Logging.MaxSizeMB)
	}
}

func TestLoad_FromConfigFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `display:
  live_title: "Deploy Progress"
  history_size: 50
logging:
  enabled: true
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	SetDefaults()
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Display.LiveTitle != "Deploy Progress" {
		t.Errorf("Expected live title from file, got %q", cfg.Display.LiveTitle)
	}
	if cfg.Display.HistorySize != 50 {
		t.Errorf("Expected history size 50 from file, got %d", cfg.Display.HistorySize)
	}
	// Values not in the file keep their defaults.
	if cfg.Display.HistoryTitle != "History Log" {
		t.Errorf("Expected default history title, got %q", cfg.Display.HistoryTitle)
	}
	if !cfg.Logging.Enabled {
		t.Error("Expected logging enabled from file")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected log level 'debug' from file, got %q", cfg.Logging.Level)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	SetDefaults()
	viper.Set("display.history_size", -1)
	viper.Set("logging.level", "verbose")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(err.Error(), "display.history_size") {
		t.Errorf("Expected history_size in error, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("Expected logging.level in error, got %q", err.Error())
	}
}

func TestGet_FallsBackToDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	SetDefaults()
	viper.Set("display.refresh_interval_ms", -5)

	cfg := Get()
	if cfg.Display.RefreshIntervalMs != 100 {
		t.Errorf("Expected fallback to default refresh interval, got %d", cfg.Display.RefreshIntervalMs)
	}
}

func TestDisplay_RefreshInterval(t *testing.T) {
	d := Display{RefreshIntervalMs: 250}
	if got := d.RefreshInterval().Milliseconds(); got != 250 {
		t.Errorf("Expected 250ms, got %dms", got)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	tests := []struct {
		name string
		errs ValidationErrors
		want string
	}{
		{"empty", ValidationErrors{}, ""},
		{
			"single",
			ValidationErrors{{Field: "a.b", Value: -1, Message: "must be non-negative"}},
			"a.b: must be non-negative (got: -1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.errs.Error(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValidationErrors_Multiple(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: 2, Message: "worse"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("Expected error count header, got %q", msg)
	}
	if !strings.Contains(msg, "a: bad") || !strings.Contains(msg, "b: worse") {
		t.Errorf("Expected both errors listed, got %q", msg)
	}
}
