package main

import (
	"fmt"
	"time"

	"github.com/jonathan/resume-editor/internal/geometry"
	"github.com/jonathan/resume-editor/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort        int
	serveIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the block editing API server",
	Long: "Start an HTTP server that opens documents into editing sessions and exposes block operations, " +
		"hit testing and LaTeX export. Documents are stored in Postgres (DATABASE_URL) or SQLite (RESUME_EDITOR_DB).",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, PORT, or 8080)")
	serveCmd.Flags().DurationVar(&serveIdleTimeout, "idle-timeout", server.DefaultSessionIdleTimeout, "Close sessions idle for this long")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if cfg.DatabaseURL == "" && cfg.SQLitePath == "" {
		return fmt.Errorf("a document store is required: set DATABASE_URL, RESUME_EDITOR_DB or sqlite_path in the config")
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
		SQLitePath:  cfg.SQLitePath,
		Template:    cfg.Template,
		Page:        geometry.PageSize{Width: cfg.PageWidth, Height: cfg.PageHeight},
		Zoom:        cfg.Zoom,
		IdleTimeout: serveIdleTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
