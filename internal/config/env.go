package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by FromEnv
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvSQLitePath  = "RESUME_EDITOR_DB"
	EnvTemplate    = "RESUME_EDITOR_TEMPLATE"
	EnvPort        = "PORT"
)

// FromEnv builds a Config from environment variables. Unset variables leave
// their fields empty so the result can be used as MergeWithDefaults input.
func FromEnv() (Config, error) {
	cfg := Config{
		DatabaseURL: os.Getenv(EnvDatabaseURL),
		SQLitePath:  os.Getenv(EnvSQLitePath),
		Template:    os.Getenv(EnvTemplate),
	}

	if portStr := os.Getenv(EnvPort); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %v", EnvPort, err)
		}
		cfg.Port = port
	}

	return cfg, nil
}
