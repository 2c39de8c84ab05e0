// Package editor owns the live block list of one document together with the
// transient selection and edit targets, and exposes the editing actions.
//
// An Editor assumes a single owner issuing one action at a time and does no
// locking. Callers sharing an Editor across goroutines must serialize access.
package editor

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-editor/internal/blocks"
	"github.com/jonathan/resume-editor/internal/transcode"
	"github.com/jonathan/resume-editor/internal/types"
)

// State is a snapshot of the editor. Empty ids mean nothing is selected or
// being edited.
type State struct {
	Blocks     []blocks.Block `json:"blocks"`
	SelectedID string         `json:"selectedId,omitempty"`
	EditingID  string         `json:"editingId,omitempty"`
}

// Editor is the state controller for one document
type Editor struct {
	blocks     []blocks.Block
	index      map[string]int
	selectedID string
	editingID  string

	doc   transcode.DocumentContext
	newID transcode.IDFunc
	now   func() time.Time
}

// Option configures an Editor
type Option func(*Editor)

// WithIDFunc sets the id generator for new and duplicated blocks
func WithIDFunc(fn transcode.IDFunc) Option {
	return func(e *Editor) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithClock sets the time source used when committing a document
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an editor over list. The list is copied and sorted.
func New(list []blocks.Block, doc transcode.DocumentContext, opts ...Option) *Editor {
	e := &Editor{
		doc:   doc,
		newID: uuid.NewString,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.blocks = blocks.Sorted(list)
	e.reindex()
	return e
}

// Load decomposes doc and returns an editor over its blocks
func Load(doc *types.Document, opts ...Option) *Editor {
	e := New(nil, transcode.ContextOf(doc), opts...)
	e.blocks = transcode.Decompose(doc, transcode.WithIDFunc(e.newID))
	blocks.SortBlocks(e.blocks)
	e.reindex()
	return e
}

// Reload replaces the block list with a fresh decomposition of doc.
// Selection and edit targets are cleared.
func (e *Editor) Reload(doc *types.Document) {
	e.doc = transcode.ContextOf(doc)
	e.blocks = transcode.Decompose(doc, transcode.WithIDFunc(e.newID))
	blocks.SortBlocks(e.blocks)
	e.selectedID = ""
	e.editingID = ""
	e.reindex()
}

// Context returns the document fields the editor carries alongside its blocks
func (e *Editor) Context() transcode.DocumentContext {
	return e.doc
}

// State returns a snapshot of the editor
func (e *Editor) State() State {
	return State{
		Blocks:     e.Blocks(),
		SelectedID: e.selectedID,
		EditingID:  e.editingID,
	}
}

// Blocks returns the blocks in order
func (e *Editor) Blocks() []blocks.Block {
	out := make([]blocks.Block, len(e.blocks))
	copy(out, e.blocks)
	return out
}

// Block looks up a block by id
func (e *Editor) Block(id string) (blocks.Block, bool) {
	i, ok := e.index[id]
	if !ok {
		return blocks.Block{}, false
	}
	return e.blocks[i], true
}

// Len returns the number of blocks
func (e *Editor) Len() int {
	return len(e.blocks)
}

// SelectedID returns the selected block id, or "" when none
func (e *Editor) SelectedID() string {
	return e.selectedID
}

// EditingID returns the block being edited, or "" when none
func (e *Editor) EditingID() string {
	return e.editingID
}

// Compose builds the document from the current blocks
func (e *Editor) Compose() (*types.Document, error) {
	return transcode.Compose(e.blocks, e.doc)
}

// Commit composes the document and records a new version of it: UpdatedAt is
// set to now, Version is incremented, and CreatedAt is filled in when unset.
// Use it at save time; Compose leaves the metadata alone.
func (e *Editor) Commit() (*types.Document, error) {
	now := e.now().UTC()
	meta := e.doc.Metadata
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = now
	}
	meta.UpdatedAt = now
	meta.Version++

	doc, err := transcode.Compose(e.blocks, transcode.DocumentContext{
		ID:       e.doc.ID,
		Template: e.doc.Template,
		Metadata: meta,
	})
	if err != nil {
		return nil, err
	}
	e.doc.Metadata = meta
	return doc, nil
}

func (e *Editor) reindex() {
	e.index = make(map[string]int, len(e.blocks))
	for i, b := range e.blocks {
		e.index[b.ID] = i
	}
}
