// Package config loads snapdoc project configuration from YAML. A project
// can pin its snapshot settings (root path, extension, title, extra excluded
// directories) in a config file; CLI flags override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/harrison/snapdoc/internal/policy"
)

// HistoryConfig controls the snapshot-run history store.
type HistoryConfig struct {
	// Enabled records every successful run in the history database.
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database. Empty means
	// {output_dir}/history.db.
	DBPath string `yaml:"db_path"`
}

// Config holds snapdoc configuration options.
type Config struct {
	// Path is the directory to snapshot.
	Path string `yaml:"path"`

	// Extension selects the file category (py, dart, sql).
	Extension string `yaml:"extension"`

	// Title overrides the document title (default: last path segment).
	Title string `yaml:"title"`

	// ExcludeDir lists extra directory names to prune, unioned with the
	// built-in excluded directories for the category.
	ExcludeDir []string `yaml:"exclude_dir"`

	// OutputDir is where snapshot files are written.
	OutputDir string `yaml:"output_dir"`

	// LogLevel sets console verbosity (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// History contains history store configuration.
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "output",
		LogLevel:  "info",
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from the file over the defaults.
	if fileCfg.Path != "" {
		cfg.Path = fileCfg.Path
	}
	if fileCfg.Extension != "" {
		cfg.Extension = fileCfg.Extension
	}
	if fileCfg.Title != "" {
		cfg.Title = fileCfg.Title
	}
	if len(fileCfg.ExcludeDir) > 0 {
		cfg.ExcludeDir = fileCfg.ExcludeDir
	}
	if fileCfg.OutputDir != "" {
		cfg.OutputDir = fileCfg.OutputDir
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}

	// The history section needs presence detection: a bare `history:` block
	// with enabled omitted must not silently disable recording.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if section, exists := rawMap["history"]; exists && section != nil {
			historyMap, _ := section.(map[string]interface{})
			if _, exists := historyMap["enabled"]; exists {
				cfg.History.Enabled = fileCfg.History.Enabled
			}
			if _, exists := historyMap["db_path"]; exists {
				cfg.History.DBPath = fileCfg.History.DBPath
			}
		}
	}

	return cfg, nil
}

// MergeWithFlags merges CLI flags into the configuration. Non-nil flag
// values override configuration values.
func (c *Config) MergeWithFlags(path, extension, title, outputDir *string, excludeDirs *[]string, noHistory *bool) {
	if path != nil {
		c.Path = *path
	}
	if extension != nil {
		c.Extension = *extension
	}
	if title != nil {
		c.Title = *title
	}
	if outputDir != nil {
		c.OutputDir = *outputDir
	}
	if excludeDirs != nil {
		// Flag extras union with config extras rather than replace, matching
		// how extras union with the built-in policy.
		c.ExcludeDir = append(c.ExcludeDir, *excludeDirs...)
	}
	if noHistory != nil && *noHistory {
		c.History.Enabled = false
	}
}

// HistoryDBPath returns the effective history database path.
func (c *Config) HistoryDBPath() string {
	if c.History.DBPath != "" {
		return c.History.DBPath
	}
	return filepath.Join(c.OutputDir, "history.db")
}

// Validate validates the configuration values.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("path is required (positional argument or config file)")
	}

	if !policy.IsSupported(c.Extension) {
		return fmt.Errorf("%w: %q", policy.ErrUnsupportedExtension, c.Extension)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}

	return nil
}
