package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/jonathan/resume-editor/internal/blocks"
	"github.com/jonathan/resume-editor/internal/db"
	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/types"
)

// maxDocumentBytes bounds request bodies carrying a whole document
const maxDocumentBytes = 5 << 20

// StateResponse is the editor state of one session
type StateResponse struct {
	DocumentID string         `json:"document_id"`
	Version    int            `json:"version"`
	Blocks     []blocks.Block `json:"blocks"`
	SelectedID string         `json:"selected_id,omitempty"`
	EditingID  string         `json:"editing_id,omitempty"`
}

func newStateResponse(documentID string, e *editor.Editor) StateResponse {
	return stateFrom(documentID, e.Context().Metadata.Version, e.State())
}

func stateFrom(documentID string, version int, state editor.State) StateResponse {
	list := state.Blocks
	if list == nil {
		list = []blocks.Block{}
	}
	return StateResponse{
		DocumentID: documentID,
		Version:    version,
		Blocks:     list,
		SelectedID: state.SelectedID,
		EditingID:  state.EditingID,
	}
}

// handleListDocuments lists stored documents
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.ListDocuments(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"documents": summaries,
		"count":     len(summaries),
	})
}

// handleCreateDocument opens a session for a document sent in the request body
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, err := parseDocument(body)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	sess := s.sessions.Open(doc)
	log.Printf("Opened session for document %s", doc.ID)

	var resp StateResponse
	_ = sess.View(func(e *editor.Editor) error {
		resp = newStateResponse(doc.ID, e)
		return nil
	})
	s.jsonResponse(w, http.StatusCreated, resp)
}

// parseDocument decodes a request body into a document. A body that is not
// JSON at all is reported as a bad request body rather than a schema problem.
func parseDocument(body []byte) (*types.Document, error) {
	doc, err := schemas.ParseDocument(body)
	var loadErr *schemas.SchemaLoadError
	if errors.As(err, &loadErr) {
		return nil, &ErrValidation{Field: "body", Message: "malformed JSON document"}
	}
	return doc, err
}

// handleOpenDocument loads a stored document into a new session
func (s *Server) handleOpenDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if doc == nil {
		s.errResponse(w, &ErrDocumentNotFound{DocumentID: id})
		return
	}

	sess := s.sessions.Open(doc)
	var resp StateResponse
	_ = sess.View(func(e *editor.Editor) error {
		resp = newStateResponse(id, e)
		return nil
	})
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGetDocument composes the session's blocks into a document
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.errResponse(w, err)
		return
	}

	var doc *types.Document
	err = sess.View(func(e *editor.Editor) error {
		var cerr error
		doc, cerr = e.Compose()
		return cerr
	})
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleSaveDocument commits the session and writes the document to the store
func (s *Server) handleSaveDocument(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.errResponse(w, err)
		return
	}

	doc, err := s.saveSession(r.Context(), sess)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	log.Printf("Saved document %s at version %d", doc.ID, doc.Metadata.Version)
	s.jsonResponse(w, http.StatusOK, doc)
}

// saveSession commits the session's document and writes it to the store
func (s *Server) saveSession(ctx context.Context, sess *Session) (*types.Document, error) {
	var doc *types.Document
	err := sess.Save(func(e *editor.Editor) error {
		var cerr error
		if doc, cerr = e.Commit(); cerr != nil {
			return cerr
		}
		return s.store.SaveDocument(ctx, doc)
	})
	return doc, err
}

// saveIdleSession persists a changed session before the idle sweep closes it
func (s *Server) saveIdleSession(sess *Session) error {
	doc, err := s.saveSession(context.Background(), sess)
	if err != nil {
		return err
	}
	log.Printf("Saved idle document %s at version %d", doc.ID, doc.Metadata.Version)
	return nil
}

// handleCloseDocument ends the session and deletes the stored copy
func (s *Server) handleCloseDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	closed := s.sessions.Close(id)

	err := s.store.DeleteDocument(r.Context(), id)
	switch {
	case errors.Is(err, db.ErrDocumentNotFound):
		if !closed {
			s.errResponse(w, &ErrDocumentNotFound{DocumentID: id})
			return
		}
	case err != nil:
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleResumeTex renders the session's document as LaTeX
func (s *Server) handleResumeTex(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.errResponse(w, err)
		return
	}

	var doc *types.Document
	err = sess.View(func(e *editor.Editor) error {
		var cerr error
		doc, cerr = e.Compose()
		return cerr
	})
	if err != nil {
		s.errResponse(w, err)
		return
	}

	tex, err := rendering.RenderLaTeX(doc, s.template)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Render error: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=resume.tex")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(tex))
}

// handleEvents streams the session state after every change
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, err := s.sessions.Get(id)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	states, cancel := sess.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case state, ok := <-states:
			if !ok {
				sse.WriteClosed(id)
				return
			}
			var version int
			_ = sess.View(func(e *editor.Editor) error {
				version = e.Context().Metadata.Version
				return nil
			})
			if err := sse.WriteEvent(EventState, stateFrom(id, version, state)); err != nil {
				log.Printf("Event stream for %s ended: %v", id, err)
				return
			}
		}
	}
}
