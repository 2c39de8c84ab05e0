// Package server provides the HTTP API for editing resume documents block by block.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-editor/internal/db"
	"github.com/jonathan/resume-editor/internal/geometry"
)

// DefaultSessionIdleTimeout closes sessions nobody has touched for this long
const DefaultSessionIdleTimeout = 30 * time.Minute

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      db.Store
	sessions   *Sessions
	measurer   geometry.Measurer
	page       geometry.PageSize
	zoom       float64
	template   string
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	SQLitePath  string
	Template    string
	Page        geometry.PageSize
	Zoom        float64
	IdleTimeout time.Duration
}

// New creates a new server instance backed by the configured store
func New(cfg Config) (*Server, error) {
	store, err := db.Open(context.Background(), cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}
	if pg, ok := store.(*db.DB); ok {
		if err := pg.Migrate(context.Background()); err != nil {
			store.Close()
			return nil, err
		}
	}
	return NewWithStore(cfg, store), nil
}

// NewWithStore creates a server around an existing store
func NewWithStore(cfg Config, store db.Store) *Server {
	page := cfg.Page
	if page.Width <= 0 || page.Height <= 0 {
		page = geometry.A4
	}
	zoom := cfg.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	idle := cfg.IdleTimeout
	if idle == 0 {
		idle = DefaultSessionIdleTimeout
	}

	s := &Server{
		store:    store,
		sessions: NewSessions(idle),
		page:     page,
		zoom:     zoom,
		template: cfg.Template,
	}
	s.sessions.SaveOnEvict(s.saveIdleSession)

	// Fall back to the heuristic when the bundled font cannot be parsed
	if m, err := geometry.NewFontMeasurer(); err == nil {
		s.measurer = m
	} else {
		log.Printf("Text measurement falls back to estimates: %v", err)
	}

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     s.withLogging(s.withCORS(s.routes())),
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 60 * time.Second,
		// No WriteTimeout: event streams stay open for the life of a session
	}

	return s
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /measure", s.handleMeasure)

	// Documents
	mux.HandleFunc("GET /documents", s.handleListDocuments)
	mux.HandleFunc("POST /documents", s.handleCreateDocument)
	mux.HandleFunc("POST /documents/{id}/open", s.handleOpenDocument)
	mux.HandleFunc("GET /documents/{id}", s.handleGetDocument)
	mux.HandleFunc("DELETE /documents/{id}", s.handleCloseDocument)
	mux.HandleFunc("POST /documents/{id}/save", s.handleSaveDocument)
	mux.HandleFunc("GET /documents/{id}/resume.tex", s.handleResumeTex)
	mux.HandleFunc("GET /documents/{id}/events", s.handleEvents)

	// Blocks
	mux.HandleFunc("GET /documents/{id}/blocks", s.handleListBlocks)
	mux.HandleFunc("POST /documents/{id}/blocks", s.handleAddBlock)
	mux.HandleFunc("PATCH /documents/{id}/blocks/{block_id}", s.handleUpdateBlock)
	mux.HandleFunc("DELETE /documents/{id}/blocks/{block_id}", s.handleDeleteBlock)
	mux.HandleFunc("PUT /documents/{id}/blocks/{block_id}/style", s.handleSetStyle)
	mux.HandleFunc("POST /documents/{id}/blocks/{block_id}/duplicate", s.handleDuplicateBlock)
	mux.HandleFunc("PUT /documents/{id}/order", s.handleReorder)
	mux.HandleFunc("PUT /documents/{id}/selection", s.handleSelection)
	mux.HandleFunc("POST /documents/{id}/hit-test", s.handleHitTest)
	return mux
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	// Closing sessions ends open event streams so Shutdown does not wait on them
	s.sessions.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	log.Println("Server stopped")
	return nil
}

// Close releases the store, the sessions and the font measurer
func (s *Server) Close() {
	s.sessions.Stop()
	if closer, ok := s.measurer.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps event streams working through the logging wrapper
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d completed in %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errResponse maps err to its status and writes it
func (s *Server) errResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
	}
	s.errorResponse(w, status, err.Error())
}
