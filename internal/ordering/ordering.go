// Package ordering assigns and maintains the total order of a block list
// using fractional order keys.
//
// New keys are midpoints between neighbours, so repeated insertion into the
// same gap halves it each time. Reorder is the only operation that restores
// even spacing, and only when given the whole list; Renormalize does that.
package ordering

import (
	"math"
	"sort"

	"github.com/jonathan/resume-editor/internal/blocks"
)

// Step is the spacing between keys assigned by a full Reorder
const Step = 100.0

// MinSafeGap is the smallest gap between adjacent keys that is still
// considered safe to split. A 100-wide gap falls below it after about 37
// consecutive midpoint splits (100/2^37 < 1e-9).
const MinSafeGap = 1e-9

// Append returns an order key after every block in list, or 1 when empty
func Append(list []blocks.Block) float64 {
	if len(list) == 0 {
		return 1
	}
	highest := math.Inf(-1)
	for _, b := range list {
		if b.Order > highest {
			highest = b.Order
		}
	}
	return highest + 1
}

// InsertAfter returns a key placing a new block immediately after targetID:
// the midpoint between the target and its sorted successor, or target+1 when
// the target is last. It reports false when targetID is not in list.
func InsertAfter(list []blocks.Block, targetID string) (float64, bool) {
	sorted := blocks.Sorted(list)
	for i, b := range sorted {
		if b.ID != targetID {
			continue
		}
		if i+1 < len(sorted) {
			next := sorted[i+1]
			return b.Order + (next.Order-b.Order)/2, true
		}
		return b.Order + 1, true
	}
	return 0, false
}

// Duplicate returns a key for a copy of sourceID, placed right after the
// source and before whatever followed it.
func Duplicate(list []blocks.Block, sourceID string) (float64, bool) {
	return InsertAfter(list, sourceID)
}

// Reorder places the blocks named in orderedIDs in the given sequence.
//
// When every block is named, keys are reassigned evenly (Step, 2*Step, ...);
// this is the renormalization path. Otherwise the named blocks trade the key
// slots they already hold: the first named id takes the smallest of those
// keys, the next one the second smallest, and so on. Named blocks never move
// past an unnamed block, so a partial reorder cannot carry an item out of
// its section. A list whose keys have run out of headroom is renormalized
// first so the slots are distinct.
//
// Unknown ids and repeats are ignored; the first occurrence of an id wins.
// The input is not modified; the result is sorted.
func Reorder(list []blocks.Block, orderedIDs []string) []blocks.Block {
	named := namedIndexes(list, orderedIDs)
	if len(named) == len(list) {
		out := make([]blocks.Block, len(list))
		copy(out, list)
		for slot, i := range named {
			out[i].Order = float64(slot+1) * Step
		}
		blocks.SortBlocks(out)
		return out
	}

	out := blocks.Sorted(list)
	if NeedsRenormalization(out) {
		out = Renormalize(out)
	}
	named = namedIndexes(out, orderedIDs)

	slots := make([]float64, len(named))
	for k, i := range named {
		slots[k] = out[i].Order
	}
	sort.Float64s(slots)
	for k, i := range named {
		out[i].Order = slots[k]
	}

	blocks.SortBlocks(out)
	return out
}

// namedIndexes returns the positions in list of the known ids in orderedIDs,
// in request order with repeats dropped.
func namedIndexes(list []blocks.Block, orderedIDs []string) []int {
	index := make(map[string]int, len(list))
	for i, b := range list {
		index[b.ID] = i
	}

	seen := make(map[string]bool, len(orderedIDs))
	named := make([]int, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		i, ok := index[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		named = append(named, i)
	}
	return named
}

// Renormalize respaces every block in its current order
func Renormalize(list []blocks.Block) []blocks.Block {
	sorted := blocks.Sorted(list)
	ids := make([]string, len(sorted))
	for i, b := range sorted {
		ids[i] = b.ID
	}
	return Reorder(sorted, ids)
}

// MinGap returns the smallest positive difference between adjacent keys in
// sorted order, or +Inf when fewer than two distinct keys exist.
func MinGap(list []blocks.Block) float64 {
	sorted := blocks.Sorted(list)
	gap := math.Inf(1)
	for i := 1; i < len(sorted); i++ {
		d := sorted[i].Order - sorted[i-1].Order
		if d > 0 && d < gap {
			gap = d
		}
	}
	return gap
}

// NeedsRenormalization reports whether adjacent keys have run out of
// precision headroom: a gap below MinSafeGap, or two blocks sharing a key.
func NeedsRenormalization(list []blocks.Block) bool {
	sorted := blocks.Sorted(list)
	for i := 1; i < len(sorted); i++ {
		d := sorted[i].Order - sorted[i-1].Order
		if d < MinSafeGap {
			return true
		}
	}
	return false
}
