package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/resume-editor/internal/types"
)

// DocumentRecord is the stored row for a document
type DocumentRecord struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	Content   []byte    `json:"content"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentSummary is a listing entry without the document body
type DocumentSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Template  string    `json:"template"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDocumentRecord serializes doc into a row. Zero timestamps are filled with
// the current time so NOT NULL columns always receive a value.
func NewDocumentRecord(doc *types.Document) (*DocumentRecord, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}
	if doc.ID == "" {
		return nil, fmt.Errorf("document id is required")
	}

	content, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document %s: %w", doc.ID, err)
	}

	now := time.Now().UTC()
	created := doc.Metadata.CreatedAt
	if created.IsZero() {
		created = now
	}
	updated := doc.Metadata.UpdatedAt
	if updated.IsZero() {
		updated = created
	}

	return &DocumentRecord{
		ID:        doc.ID,
		Title:     doc.Title,
		Template:  doc.Template,
		Content:   content,
		Version:   doc.Metadata.Version,
		CreatedAt: created.UTC(),
		UpdatedAt: updated.UTC(),
	}, nil
}

func decodeContent(id string, content []byte) (*types.Document, error) {
	var doc types.Document
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	return &doc, nil
}
