package editor

import (
	"github.com/jonathan/resume-editor/internal/blocks"
	"github.com/jonathan/resume-editor/internal/ordering"
)

// AddBlock creates a default block of type t. It goes right after afterID
// when that block exists, otherwise at the end.
func (e *Editor) AddBlock(t blocks.Type, afterID string) blocks.Block {
	order, ok := 0.0, false
	if afterID != "" {
		order, ok = ordering.InsertAfter(e.blocks, afterID)
	}
	if !ok {
		order = ordering.Append(e.blocks)
	}

	b := blocks.NewDefaultWithID(e.newID(), t, order)
	return e.insert(b)
}

// UpdateBlock shallow-merges patch into the payload of block id. Unknown ids
// are a no-op. A patch that does not fit the payload returns a
// *blocks.PatchError and leaves the block unchanged.
func (e *Editor) UpdateBlock(id string, patch blocks.Patch) error {
	i, ok := e.index[id]
	if !ok {
		return nil
	}
	payload, err := blocks.ApplyPatch(e.blocks[i].Payload, patch)
	if err != nil {
		return err
	}
	e.blocks[i].Payload = payload
	return nil
}

// SetStyle replaces the presentation hints of block id. Unknown ids are a no-op.
func (e *Editor) SetStyle(id string, style *blocks.Style) {
	if i, ok := e.index[id]; ok {
		e.blocks[i].Style = style
	}
}

// DeleteBlock removes block id, clearing the selection and edit target when
// they point at it. Unknown ids are a no-op.
func (e *Editor) DeleteBlock(id string) {
	i, ok := e.index[id]
	if !ok {
		return
	}
	e.blocks = append(e.blocks[:i], e.blocks[i+1:]...)
	if e.selectedID == id {
		e.selectedID = ""
	}
	if e.editingID == id {
		e.editingID = ""
	}
	e.reindex()
}

// DuplicateBlock copies block id under a fresh id, placed right after the
// original. It reports false when id is unknown.
func (e *Editor) DuplicateBlock(id string) (blocks.Block, bool) {
	i, ok := e.index[id]
	if !ok {
		return blocks.Block{}, false
	}
	order, ok := ordering.Duplicate(e.blocks, id)
	if !ok {
		return blocks.Block{}, false
	}

	dup := blocks.Clone(e.blocks[i], e.newID())
	dup.Order = order
	return e.insert(dup), true
}

// ReorderBlocks puts the named blocks in the given sequence. Naming every
// block also respaces the keys.
func (e *Editor) ReorderBlocks(orderedIDs []string) {
	e.blocks = ordering.Reorder(e.blocks, orderedIDs)
	e.reindex()
}

// SelectBlock sets the selection. An empty id clears it; unknown ids are ignored.
func (e *Editor) SelectBlock(id string) {
	if id == "" {
		e.selectedID = ""
		return
	}
	if _, ok := e.index[id]; ok {
		e.selectedID = id
	}
}

// StartEditing makes id the edit target and selects it. Unknown ids are ignored.
func (e *Editor) StartEditing(id string) {
	if _, ok := e.index[id]; !ok {
		return
	}
	e.editingID = id
	e.selectedID = id
}

// StopEditing clears the edit target and keeps the selection
func (e *Editor) StopEditing() {
	e.editingID = ""
}

// insert adds b, keeps the list sorted, and respaces keys when midpoint
// insertion has exhausted the gap. It returns b as stored.
func (e *Editor) insert(b blocks.Block) blocks.Block {
	e.blocks = append(e.blocks, b)
	blocks.SortBlocks(e.blocks)
	if ordering.NeedsRenormalization(e.blocks) {
		e.blocks = ordering.Renormalize(e.blocks)
	}
	e.reindex()
	return e.blocks[e.index[b.ID]]
}
