// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default values applied by MergeWithDefaults when neither the file nor the
// flags provide one.
const (
	DefaultPageWidth  = 595.28
	DefaultPageHeight = 841.89
	DefaultZoom       = 1.0
	DefaultPort       = 8080
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Storage
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	SQLitePath  string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`   // Local SQLite file for documents

	// Export
	Template string `json:"template,omitempty" yaml:"template,omitempty"` // Path to LaTeX template

	// Page geometry
	PageWidth  float64 `json:"page_width,omitempty" yaml:"page_width,omitempty"`   // Logical page width in points
	PageHeight float64 `json:"page_height,omitempty" yaml:"page_height,omitempty"` // Logical page height in points
	Zoom       float64 `json:"zoom,omitempty" yaml:"zoom,omitempty"`               // Default viewport zoom

	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension
// (.yaml/.yml are YAML, anything else is JSON).
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.DatabaseURL != "" && c.SQLitePath != "" {
		return fmt.Errorf("config error: 'database_url' and 'sqlite_path' are mutually exclusive")
	}

	if c.PageWidth < 0 {
		return fmt.Errorf("config error: 'page_width' must be non-negative")
	}
	if c.PageHeight < 0 {
		return fmt.Errorf("config error: 'page_height' must be non-negative")
	}
	if c.Zoom < 0 {
		return fmt.Errorf("config error: 'zoom' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// falling back to the package defaults for page geometry, zoom and port.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" && result.SQLitePath == "" {
		result.DatabaseURL = defaults.DatabaseURL
		result.SQLitePath = defaults.SQLitePath
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}

	result.PageWidth = firstPositive(result.PageWidth, defaults.PageWidth, DefaultPageWidth)
	result.PageHeight = firstPositive(result.PageHeight, defaults.PageHeight, DefaultPageHeight)
	result.Zoom = firstPositive(result.Zoom, defaults.Zoom, DefaultZoom)

	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
