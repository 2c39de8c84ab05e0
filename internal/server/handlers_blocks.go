package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/resume-editor/internal/blocks"
	"github.com/jonathan/resume-editor/internal/editor"
	"github.com/jonathan/resume-editor/internal/geometry"
)

// AddBlockRequest is the body of POST /documents/{id}/blocks
type AddBlockRequest struct {
	Type    blocks.Type `json:"type"`
	AfterID string      `json:"after_id,omitempty"`
}

// ReorderRequest is the body of PUT /documents/{id}/order
type ReorderRequest struct {
	IDs []string `json:"ids"`
}

// SelectionRequest is the body of PUT /documents/{id}/selection.
// An empty SelectedID clears the selection.
type SelectionRequest struct {
	SelectedID string `json:"selected_id"`
	Editing    bool   `json:"editing"`
}

// HitTestRequest is the body of POST /documents/{id}/hit-test. Page defaults
// to the server's page size and a zero viewport zoom to the configured zoom;
// Select moves the selection to the hit block.
type HitTestRequest struct {
	Point    geometry.Point     `json:"point"`
	Viewport geometry.Viewport  `json:"viewport"`
	Page     *geometry.PageSize `json:"page,omitempty"`
	Regions  []geometry.Region  `json:"regions"`
	Select   bool               `json:"select,omitempty"`
}

// HitTestResponse reports the region under the point, if any
type HitTestResponse struct {
	Hit       bool           `json:"hit"`
	BlockID   string         `json:"block_id,omitempty"`
	FieldPath string         `json:"field_path,omitempty"`
	Logical   geometry.Point `json:"logical"`
}

// MeasureRequest is the body of POST /measure
type MeasureRequest struct {
	Text     string  `json:"text"`
	FontSize float64 `json:"font_size"`
	MaxWidth float64 `json:"max_width,omitempty"`
}

// decodeJSON decodes a request body, rejecting unknown fields
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

// handleListBlocks returns the session's blocks and selection
func (s *Server) handleListBlocks(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, err := s.sessions.Get(id)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	var resp StateResponse
	_ = sess.View(func(e *editor.Editor) error {
		resp = newStateResponse(id, e)
		return nil
	})
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAddBlock inserts a default block of the requested type
func (s *Server) handleAddBlock(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.errResponse(w, err)
		return
	}

	var req AddBlockRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errResponse(w, err)
		return
	}
	if !req.Type.Valid() {
		s.errResponse(w, &ErrValidation{Field: "type", Message: "unknown block type: " + string(req.Type)})
		return
	}

	var added blocks.Block
	_ = sess.Update(func(e *editor.Editor) error {
		added = e.AddBlock(req.Type, req.AfterID)
		return nil
	})
	s.jsonResponse(w, http.StatusCreated, added)
}

// handleUpdateBlock merges a partial payload into a block
func (s *Server) handleUpdateBlock(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.errResponse(w, err)
		return
	}
	blockID := r.PathValue("block_id")

	var patch blocks.Patch
	if err := decodeJSON(r, &patch); err != nil {
		s.errResponse(w, err)
		return
	}

	var updated blocks.Block
	err = sess.Update(func(e *editor.Editor) error {
		if _, ok := e.Block(blockID); !ok {
			return &ErrBlockNotFound{BlockID: blockID}
		}
		if err := e.UpdateBlock(blockID, patch); err != nil {
			return err
		}
		updated, _ = e.Block(blockID)
		return nil
	})
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleSetStyle replaces a block's style; a null body clears it
func (s *Server) handleSetStyle(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.errResponse(w, err)
		return
	}
	blockID := r.PathValue("block_id")

	var style *blocks.Style
	if err := decodeJSON(r, &style); err != nil {
		s.errResponse(w, err)
		return
	}

	var updated blocks.Block
	err = sess.Update(func(e *editor.Editor) error {
		if _, ok := e.Block(blockID); !ok {
			return &ErrBlockNotFound{BlockID: blockID}
		}
		e.SetStyle(blockID, style)
		updated, _ = e.Block(blockID)
		return nil
	})
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteBlock removes a block
func (s *Server) handleDeleteBlock(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, err := s.sessions.Get(id)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	blockID := r.PathValue("block_id")

	var resp StateResponse
	err = sess.Update(func(e *editor.Editor) error {
		if _, ok := e.Block(blockID); !ok {
			return &ErrBlockNotFound{BlockID: blockID}
		}
		e.DeleteBlock(blockID)
		resp = newStateResponse(id, e)
		return nil
	})
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleDuplicateBlock copies a block to just after itself
func (s *Server) handleDuplicateBlock(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.errResponse(w, err)
		return
	}
	blockID := r.PathValue("block_id")

	var dup blocks.Block
	err = sess.Update(func(e *editor.Editor) error {
		var ok bool
		if dup, ok = e.DuplicateBlock(blockID); !ok {
			return &ErrBlockNotFound{BlockID: blockID}
		}
		return nil
	})
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, dup)
}

// handleReorder applies a drag-and-drop ordering
func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, err := s.sessions.Get(id)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	var req ReorderRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errResponse(w, err)
		return
	}
	if req.IDs == nil {
		s.errResponse(w, &ErrValidation{Field: "ids", Message: "ids is required"})
		return
	}

	var resp StateResponse
	_ = sess.Update(func(e *editor.Editor) error {
		e.ReorderBlocks(req.IDs)
		resp = newStateResponse(id, e)
		return nil
	})
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleSelection sets the selected block and whether it is being edited
func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sess, err := s.sessions.Get(id)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	var req SelectionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errResponse(w, err)
		return
	}
	if req.Editing && req.SelectedID == "" {
		s.errResponse(w, &ErrValidation{Field: "selected_id", Message: "required when editing"})
		return
	}

	var resp StateResponse
	err = sess.Update(func(e *editor.Editor) error {
		if req.SelectedID != "" {
			if _, ok := e.Block(req.SelectedID); !ok {
				return &ErrBlockNotFound{BlockID: req.SelectedID}
			}
		}
		if req.Editing {
			e.StartEditing(req.SelectedID)
		} else {
			e.StopEditing()
			e.SelectBlock(req.SelectedID)
		}
		resp = newStateResponse(id, e)
		return nil
	})
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleHitTest resolves a screen point to the block region under it.
// Regions naming blocks that no longer exist are ignored.
func (s *Server) handleHitTest(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.errResponse(w, err)
		return
	}

	var req HitTestRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errResponse(w, err)
		return
	}
	page := s.page
	if req.Page != nil {
		page = *req.Page
	}
	if req.Viewport.Zoom == 0 {
		req.Viewport.Zoom = s.zoom
	}
	if !geometry.TransformFor(page, req.Viewport).Valid() {
		s.errResponse(w, &ErrValidation{Field: "viewport", Message: "viewport and page must have positive size and zoom"})
		return
	}

	resp := HitTestResponse{Logical: geometry.PointToLogical(req.Point, page, req.Viewport)}
	update := func(e *editor.Editor) error {
		live := make([]geometry.Region, 0, len(req.Regions))
		for _, region := range req.Regions {
			if _, ok := e.Block(region.BlockID); ok {
				live = append(live, region)
			}
		}
		hit, ok := geometry.HitTest(live, req.Point, page, req.Viewport)
		if !ok {
			return nil
		}
		resp.Hit = true
		resp.BlockID = hit.BlockID
		resp.FieldPath = hit.FieldPath
		if req.Select {
			e.SelectBlock(hit.BlockID)
		}
		return nil
	}

	if req.Select {
		_ = sess.Update(update)
	} else {
		_ = sess.View(update)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleMeasure wraps text to a width and reports its logical size
func (s *Server) handleMeasure(w http.ResponseWriter, r *http.Request) {
	var req MeasureRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errResponse(w, err)
		return
	}
	if req.FontSize <= 0 {
		s.errResponse(w, &ErrValidation{Field: "font_size", Message: "must be positive"})
		return
	}

	s.jsonResponse(w, http.StatusOK, geometry.MultilineTextBounds(s.measurer, req.Text, req.FontSize, req.MaxWidth))
}
