package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-editor/internal/types"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLite stores documents in a local SQLite file
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the SQLite file at path and applies the schema.
// Use ":memory:" for a throwaway store.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	// Pragmas are per connection and ":memory:" is per connection too
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := conn.ExecContext(ctx, p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to apply %s: %w", p, err)
		}
	}

	if _, err := conn.ExecContext(ctx, SQLiteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLite{db: conn}, nil
}

// Close closes the database handle
func (s *SQLite) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

// SaveDocument inserts the document or replaces the stored copy
func (s *SQLite) SaveDocument(ctx context.Context, doc *types.Document) error {
	rec, err := NewDocumentRecord(doc)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, title, template, content, version, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   title = excluded.title, template = excluded.template, content = excluded.content,
		   version = excluded.version, updated_at = excluded.updated_at`,
		rec.ID, rec.Title, rec.Template, string(rec.Content), rec.Version,
		formatTime(rec.CreatedAt), formatTime(rec.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", rec.ID, err)
	}
	return nil
}

// GetDocument loads a document by id; returns nil, nil when it does not exist
func (s *SQLite) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	var content string
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM documents WHERE id = ?`, id,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	return decodeContent(id, []byte(content))
}

// ListDocuments returns summaries of all stored documents, most recently updated first
func (s *SQLite) ListDocuments(ctx context.Context) ([]DocumentSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, template, version, updated_at
		 FROM documents ORDER BY updated_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	summaries := []DocumentSummary{}
	for rows.Next() {
		var (
			sum     DocumentSummary
			updated string
		)
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Template, &sum.Version, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		if sum.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
			return nil, fmt.Errorf("document %s has invalid updated_at %q: %w", sum.ID, updated, err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return summaries, nil
}

// DeleteDocument removes a stored document
func (s *SQLite) DeleteDocument(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	if n == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// formatTime uses a fixed-width layout so text ordering matches time ordering
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
}
