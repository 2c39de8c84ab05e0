package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"database_url": "postgres://localhost/resumes",
		"page_width": 612,
		"page_height": 792,
		"port": 9090,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "postgres://localhost/resumes", cfg.DatabaseURL)
	assert.Equal(t, 612.0, cfg.PageWidth)
	assert.Equal(t, 792.0, cfg.PageHeight)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	content := "sqlite_path: ./resumes.db\nzoom: 1.5\ntemplate: resume.tex\n"

	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, "./resumes.db", cfg.SQLitePath)
	assert.Equal(t, 1.5, cfg.Zoom)
	assert.Equal(t, "resume.tex", cfg.Template)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("port: [not, a, number"), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_MutuallyExclusive(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost/resumes",
		SQLitePath:  "resumes.db",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		field string
	}{
		{"negative width", Config{PageWidth: -1}, "page_width"},
		{"negative height", Config{PageHeight: -1}, "page_height"},
		{"negative zoom", Config{Zoom: -0.5}, "zoom"},
		{"port out of range", Config{Port: 70000}, "port"},
		{"missing template", Config{Template: "/nonexistent/resume.tex"}, "template file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		SQLitePath: "resumes.db",
		Zoom:       2,
		Port:       8080,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		DatabaseURL: "postgres://default",
		Template:    "default.tex",
		Zoom:        1.25,
		Port:        9000,
	}

	partial := Config{
		PageWidth: 612,
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, 612.0, merged.PageWidth)

	// Default values should fill in empty fields
	assert.Equal(t, "postgres://default", merged.DatabaseURL)
	assert.Equal(t, "default.tex", merged.Template)
	assert.Equal(t, 1.25, merged.Zoom)
	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, DefaultPageHeight, merged.PageHeight)
}

func TestMergeWithDefaults_StoreNotOverridden(t *testing.T) {
	cfg := Config{SQLitePath: "local.db"}

	merged := cfg.MergeWithDefaults(Config{DatabaseURL: "postgres://default"})

	assert.Equal(t, "local.db", merged.SQLitePath)
	assert.Empty(t, merged.DatabaseURL)
	assert.NoError(t, merged.Validate())
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	merged := (&Config{}).MergeWithDefaults(Config{})

	assert.Equal(t, DefaultPageWidth, merged.PageWidth)
	assert.Equal(t, DefaultPageHeight, merged.PageHeight)
	assert.Equal(t, DefaultZoom, merged.Zoom)
	assert.Equal(t, DefaultPort, merged.Port)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvDatabaseURL, "postgres://env")
	t.Setenv(EnvSQLitePath, "")
	t.Setenv(EnvPort, "7070")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, 7070, cfg.Port)
}

func TestFromEnv_InvalidPort(t *testing.T) {
	t.Setenv(EnvPort, "eighty")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PORT")
}
