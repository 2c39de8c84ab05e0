package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/spf13/cobra"
)

// loadSettings resolves the effective configuration. The config file wins
// over the environment, which wins over the built-in defaults.
func loadSettings() (config.Config, error) {
	envCfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}

	fileCfg := &config.Config{}
	if configFile != "" {
		fileCfg, err = config.LoadConfig(configFile)
		if err != nil {
			return config.Config{}, err
		}
	}

	cfg := fileCfg.MergeWithDefaults(envCfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	cfg.Verbose = cfg.Verbose || verbose
	return cfg, nil
}

// readDocument loads a document file, checking it against the document
// schema and the field constraints before returning it
func readDocument(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	return schemas.ParseDocument(data)
}

// writeOutput writes data to path, or to the command's stdout when path is empty
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// marshalIndent encodes v as indented JSON with a trailing newline
func marshalIndent(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// statusOut is where progress messages go: stderr when the result itself
// is written to stdout, so pipes stay clean
func statusOut(cmd *cobra.Command, outputPath string) io.Writer {
	if outputPath == "" {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}
