package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/snapdoc/internal/policy"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapdoc.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.OutputDir != "output" {
		t.Errorf("OutputDir = %q, want output", cfg.OutputDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true by default")
	}
}

func TestLoadConfig_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() returned error for missing file: %v", err)
	}
	if cfg.OutputDir != "output" {
		t.Errorf("missing file should yield defaults, got OutputDir %q", cfg.OutputDir)
	}
}

func TestLoadConfig_ParsesProjectSettings(t *testing.T) {
	path := writeConfig(t, `
path: ./src
extension: py
title: My Service
exclude_dir:
  - generated
  - migrations
output_dir: snapshots
log_level: debug
history:
  enabled: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}

	if cfg.Path != "./src" {
		t.Errorf("Path = %q, want ./src", cfg.Path)
	}
	if cfg.Extension != "py" {
		t.Errorf("Extension = %q, want py", cfg.Extension)
	}
	if cfg.Title != "My Service" {
		t.Errorf("Title = %q, want My Service", cfg.Title)
	}
	if len(cfg.ExcludeDir) != 2 || cfg.ExcludeDir[0] != "generated" {
		t.Errorf("ExcludeDir = %v, want [generated migrations]", cfg.ExcludeDir)
	}
	if cfg.OutputDir != "snapshots" {
		t.Errorf("OutputDir = %q, want snapshots", cfg.OutputDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false from file")
	}
}

func TestLoadConfig_HistorySectionWithoutEnabledKeepsDefault(t *testing.T) {
	path := writeConfig(t, `
path: ./src
extension: py
history:
  db_path: /tmp/custom-history.db
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if !cfg.History.Enabled {
		t.Error("history.enabled omitted should keep the default (true)")
	}
	if cfg.History.DBPath != "/tmp/custom-history.db" {
		t.Errorf("History.DBPath = %q", cfg.History.DBPath)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "path: [unclosed\n")

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should fail on malformed YAML")
	}
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = "./from-config"
	cfg.Extension = "dart"
	cfg.ExcludeDir = []string{"generated"}

	path := "./from-flag"
	ext := "py"
	extra := []string{"vendor"}
	noHistory := true
	cfg.MergeWithFlags(&path, &ext, nil, nil, &extra, &noHistory)

	if cfg.Path != "./from-flag" {
		t.Errorf("Path = %q, flags should override config", cfg.Path)
	}
	if cfg.Extension != "py" {
		t.Errorf("Extension = %q, flags should override config", cfg.Extension)
	}
	if len(cfg.ExcludeDir) != 2 {
		t.Errorf("ExcludeDir = %v, flags should union with config", cfg.ExcludeDir)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, --no-history should disable it")
	}
}

func TestHistoryDBPath(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.HistoryDBPath(); got != filepath.Join("output", "history.db") {
		t.Errorf("HistoryDBPath() = %q", got)
	}

	cfg.History.DBPath = "/tmp/h.db"
	if got := cfg.HistoryDBPath(); got != "/tmp/h.db" {
		t.Errorf("HistoryDBPath() = %q, explicit path should win", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		wantIs  error
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing path",
			mutate:  func(c *Config) { c.Path = "" },
			wantErr: true,
		},
		{
			name:    "unsupported extension",
			mutate:  func(c *Config) { c.Extension = "go" },
			wantErr: true,
			wantIs:  policy.ErrUnsupportedExtension,
		},
		{
			name:    "empty extension",
			mutate:  func(c *Config) { c.Extension = "" },
			wantErr: true,
			wantIs:  policy.ErrUnsupportedExtension,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
		},
		{
			name:    "empty output dir",
			mutate:  func(c *Config) { c.OutputDir = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Path = "."
			cfg.Extension = "py"
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("Validate() error = %v, want errors.Is %v", err, tt.wantIs)
			}
		})
	}
}
