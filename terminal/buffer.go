package terminal

import (
	"github.com/bits-and-blooms/bitset"
)

// CellBuffer is a row-major grid of styled cells with per-cell change
// tracking. The dirty set records every cell mutated since the last
// successful flush; paint code only ever touches cells through Set-style
// mutators, so tracking stays O(1) per cell.
//
// The buffer assumes a single writer during a paint phase and a single
// reader (the renderer) during a flush phase. It performs no internal
// locking.
type CellBuffer struct {
	cells  []Cell
	width  int
	height int
	dirty  *bitset.BitSet
}

// NewCellBuffer creates a buffer with the given dimensions, every cell
// blank and clean
func NewCellBuffer(width, height int) *CellBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	cells := make([]Cell, size)
	for i := range cells {
		cells[i] = blankCell
	}
	return &CellBuffer{
		cells:  cells,
		width:  width,
		height: height,
		dirty:  bitset.New(uint(size)),
	}
}

// Width returns the buffer width in columns
func (b *CellBuffer) Width() int {
	return b.width
}

// Height returns the buffer height in rows
func (b *CellBuffer) Height() int {
	return b.height
}

// Size returns the buffer dimensions
func (b *CellBuffer) Size() (width, height int) {
	return b.width, b.height
}

// Len returns the total cell count
func (b *CellBuffer) Len() int {
	return len(b.cells)
}

// InBounds returns true if the given coordinates are within the buffer
func (b *CellBuffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Index converts (x, y) to a linear cell index
func (b *CellBuffer) Index(x, y int) int {
	return y*b.width + x
}

// Coords converts a linear cell index back to (x, y)
func (b *CellBuffer) Coords(idx int) (x, y int) {
	return idx % b.width, idx / b.width
}

// Get returns the cell at the given coordinates, or a blank cell when out
// of bounds
func (b *CellBuffer) Get(x, y int) Cell {
	if !b.InBounds(x, y) {
		return blankCell
	}
	return b.cells[b.Index(x, y)]
}

// Set writes a grapheme cluster with the given style at (x, y) and marks
// the touched cells changed. Out-of-bounds coordinates are silently
// clipped. Width-2 content claims the adjacent cell as a continuation; at
// the last column, where no room remains, a single space with the
// requested colors is written instead. Content wider than one cluster is
// truncated to its first cluster; a standalone zero-width cluster occupies
// one column (text drawing merges zero-width clusters into their
// predecessor before they reach the buffer).
func (b *CellBuffer) Set(x, y int, content string, st Style) {
	if !b.InBounds(x, y) {
		return
	}

	cluster := content
	if cluster == "" {
		cluster = " "
	} else {
		graphemes(cluster, func(c string, _ int) bool {
			cluster = c
			return false
		})
	}

	w := ClusterWidth(cluster)
	if w == 0 {
		w = 1
	}

	if w == 2 {
		if x+1 >= b.width {
			// No room for the trailing column: clip to a plain space
			// carrying the requested colors.
			b.repairWide(x, y)
			idx := b.Index(x, y)
			b.cells[idx].makeBlank(st.Fg, st.Bg)
			b.dirty.Set(uint(idx))
			return
		}
		b.repairWide(x, y)
		b.repairWide(x+1, y)
		idx := b.Index(x, y)
		b.cells[idx] = newCell(cluster, st, 2)
		b.cells[idx+1].makeContinuation(st)
		b.dirty.Set(uint(idx))
		b.dirty.Set(uint(idx + 1))
		return
	}

	b.repairWide(x, y)
	idx := b.Index(x, y)
	b.cells[idx] = newCell(cluster, st, 1)
	b.dirty.Set(uint(idx))
}

// appendCluster merges a zero-width grapheme cluster into the cell at
// (x, y). Continuation cells and out-of-bounds coordinates are ignored.
func (b *CellBuffer) appendCluster(x, y int, cluster string) {
	if !b.InBounds(x, y) {
		return
	}
	idx := b.Index(x, y)
	if b.cells[idx].IsContinuation() {
		return
	}
	b.cells[idx].Content += cluster
	b.dirty.Set(uint(idx))
}

// repairWide restores invariants before (x, y) is overwritten: a wide glyph
// losing either of its columns leaves no orphaned halves behind.
func (b *CellBuffer) repairWide(x, y int) {
	idx := b.Index(x, y)
	c := &b.cells[idx]

	if c.IsContinuation() && x > 0 {
		// Overwriting the trailing column: blank the wide glyph to the left.
		prev := &b.cells[idx-1]
		if prev.Width() == 2 {
			prev.makeBlank(prev.Fg, prev.Bg)
			b.dirty.Set(uint(idx - 1))
		}
	}

	if c.Width() == 2 && x+1 < b.width {
		// Overwriting the leading column: release the continuation.
		next := &b.cells[idx+1]
		if next.IsContinuation() {
			next.makeBlank(next.Fg, next.Bg)
			b.dirty.Set(uint(idx + 1))
		}
	}
}

// FillRect sets every covered cell to a blank cell of the given colors.
// Cells outside buffer bounds are silently clipped.
func (b *CellBuffer) FillRect(x, y, w, h int, fg, bg Color) {
	x0 := max(x, 0)
	y0 := max(y, 0)
	x1 := min(x+w, b.width)
	y1 := min(y+h, b.height)

	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			b.repairWide(cx, cy)
			idx := b.Index(cx, cy)
			b.cells[idx].makeBlank(fg, bg)
			b.dirty.Set(uint(idx))
		}
	}
}

// Clear resets every cell to a blank default cell and marks the whole
// buffer changed
func (b *CellBuffer) Clear() {
	for i := range b.cells {
		b.cells[i] = blankCell
	}
	b.MarkAllDirty()
}

// Resize reallocates the buffer at the new dimensions. Prior content is
// discarded and the whole buffer is marked changed to force a full redraw.
func (b *CellBuffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	for i := range b.cells {
		b.cells[i] = blankCell
	}
	b.width = width
	b.height = height
	b.dirty = bitset.New(uint(size))
	b.MarkAllDirty()
}

// MarkAllDirty flags every cell as changed (used after resize and on the
// first frame)
func (b *CellBuffer) MarkAllDirty() {
	b.dirty.SetAll()
}

// ClearDirty clears the whole change set
func (b *CellBuffer) ClearDirty() {
	b.dirty.ClearAll()
}

// DirtyCount returns the number of cells awaiting flush
func (b *CellBuffer) DirtyCount() int {
	return int(b.dirty.Count())
}

// IsDirty reports whether the cell at (x, y) awaits flush
func (b *CellBuffer) IsDirty(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.dirty.Test(uint(b.Index(x, y)))
}
