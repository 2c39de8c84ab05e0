// Package db provides document storage backed by PostgreSQL or a local SQLite file.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/resume-editor/internal/types"
)

// ErrDocumentNotFound is returned by DeleteDocument when no row matches the id
var ErrDocumentNotFound = errors.New("document not found")

// Store is implemented by every document backend
type Store interface {
	SaveDocument(ctx context.Context, doc *types.Document) error
	GetDocument(ctx context.Context, id string) (*types.Document, error)
	ListDocuments(ctx context.Context) ([]DocumentSummary, error)
	DeleteDocument(ctx context.Context, id string) error
	Close()
}

// Open connects to PostgreSQL when databaseURL is set, otherwise opens the SQLite file.
func Open(ctx context.Context, databaseURL, sqlitePath string) (Store, error) {
	switch {
	case databaseURL != "" && sqlitePath != "":
		return nil, fmt.Errorf("database URL and SQLite path are mutually exclusive")
	case databaseURL != "":
		return Connect(ctx, databaseURL)
	case sqlitePath != "":
		return OpenSQLite(ctx, sqlitePath)
	default:
		return nil, fmt.Errorf("no document store configured")
	}
}

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the documents table if it does not exist
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, PostgresSchema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// SaveDocument inserts the document or replaces the stored copy
func (db *DB) SaveDocument(ctx context.Context, doc *types.Document) error {
	rec, err := NewDocumentRecord(doc)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO documents (id, title, template, content, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   title = $2, template = $3, content = $4, version = $5, updated_at = $7`,
		rec.ID, rec.Title, rec.Template, rec.Content, rec.Version, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", rec.ID, err)
	}
	return nil
}

// GetDocument loads a document by id; returns nil, nil when it does not exist
func (db *DB) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM documents WHERE id = $1`,
		id,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	return decodeContent(id, content)
}

// ListDocuments returns summaries of all stored documents, most recently updated first
func (db *DB) ListDocuments(ctx context.Context) ([]DocumentSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, template, version, updated_at
		 FROM documents ORDER BY updated_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	summaries := []DocumentSummary{}
	for rows.Next() {
		var s DocumentSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Template, &s.Version, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return summaries, nil
}

// DeleteDocument removes a stored document
func (db *DB) DeleteDocument(ctx context.Context, id string) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
