package terminal

import (
	"testing"
)

func TestCellBufferNew(t *testing.T) {
	b := NewCellBuffer(10, 5)

	if w, h := b.Size(); w != 10 || h != 5 {
		t.Errorf("Size() = (%d,%d), want (10,5)", w, h)
	}
	if b.Len() != 50 {
		t.Errorf("Len() = %d, want 50", b.Len())
	}
	if b.DirtyCount() != 0 {
		t.Errorf("new buffer should be clean, got %d dirty cells", b.DirtyCount())
	}

	c := b.Get(3, 2)
	if c.Content != " " || c.Width() != 1 {
		t.Errorf("unpainted cell = %+v, want blank", c)
	}
}

func TestCellBufferSetGet(t *testing.T) {
	b := NewCellBuffer(10, 5)
	st := Style{Fg: ColorRGB(255, 0, 0), Attrs: AttrBold}

	b.Set(3, 2, "A", st)

	c := b.Get(3, 2)
	if c.Content != "A" {
		t.Errorf("Content = %q, want %q", c.Content, "A")
	}
	if c.Width() != 1 {
		t.Errorf("Width() = %d, want 1", c.Width())
	}
	if c.Style() != st {
		t.Errorf("Style() = %+v, want %+v", c.Style(), st)
	}
	if !b.IsDirty(3, 2) {
		t.Error("set cell should be dirty")
	}
	if b.DirtyCount() != 1 {
		t.Errorf("DirtyCount() = %d, want 1", b.DirtyCount())
	}
}

func TestCellBufferSetOutOfBounds(t *testing.T) {
	b := NewCellBuffer(10, 5)

	b.Set(-1, 0, "A", StyleDefault)
	b.Set(10, 0, "A", StyleDefault)
	b.Set(0, -1, "A", StyleDefault)
	b.Set(0, 5, "A", StyleDefault)

	if b.DirtyCount() != 0 {
		t.Errorf("out-of-bounds writes dirtied %d cells", b.DirtyCount())
	}
}

func TestCellBufferSetTruncatesToFirstCluster(t *testing.T) {
	b := NewCellBuffer(10, 5)

	b.Set(0, 0, "abc", StyleDefault)

	if c := b.Get(0, 0); c.Content != "a" {
		t.Errorf("Content = %q, want %q", c.Content, "a")
	}
	if c := b.Get(1, 0); c.Content != " " {
		t.Errorf("adjacent cell touched: %q", c.Content)
	}
}

func TestCellBufferSetWide(t *testing.T) {
	b := NewCellBuffer(10, 5)
	st := Style{Bg: ColorIndexed(4)}

	b.Set(2, 1, "日", st)

	head := b.Get(2, 1)
	if head.Content != "日" || head.Width() != 2 {
		t.Errorf("head = %+v, want width-2 glyph", head)
	}
	tail := b.Get(3, 1)
	if !tail.IsContinuation() {
		t.Errorf("tail = %+v, want continuation", tail)
	}
	if tail.Style() != st {
		t.Errorf("continuation style = %+v, want %+v", tail.Style(), st)
	}
	if !b.IsDirty(2, 1) || !b.IsDirty(3, 1) {
		t.Error("both columns of a wide glyph should be dirty")
	}
}

func TestCellBufferWideAtLastColumn(t *testing.T) {
	b := NewCellBuffer(10, 5)
	st := Style{Fg: ColorIndexed(1), Bg: ColorIndexed(2)}

	b.Set(9, 0, "日", st)

	c := b.Get(9, 0)
	if c.Content != " " || c.Width() != 1 {
		t.Errorf("clipped wide glyph = %+v, want blank", c)
	}
	if c.Fg != st.Fg || c.Bg != st.Bg {
		t.Errorf("clipped cell lost colors: %+v", c)
	}
	// The row below must be untouched
	if b.IsDirty(0, 1) {
		t.Error("clip leaked into the next row")
	}
}

func TestCellBufferOverwriteWideHead(t *testing.T) {
	b := NewCellBuffer(10, 5)
	b.Set(2, 0, "日", StyleDefault)
	b.ClearDirty()

	b.Set(2, 0, "A", StyleDefault)

	if c := b.Get(2, 0); c.Content != "A" {
		t.Errorf("head = %q, want %q", c.Content, "A")
	}
	tail := b.Get(3, 0)
	if tail.IsContinuation() || tail.Content != " " {
		t.Errorf("orphaned continuation not repaired: %+v", tail)
	}
	if !b.IsDirty(3, 0) {
		t.Error("repaired continuation should be dirty")
	}
}

func TestCellBufferOverwriteWideTail(t *testing.T) {
	b := NewCellBuffer(10, 5)
	b.Set(2, 0, "日", StyleDefault)
	b.ClearDirty()

	b.Set(3, 0, "x", StyleDefault)

	head := b.Get(2, 0)
	if head.Width() != 1 || head.Content != " " {
		t.Errorf("orphaned wide head not repaired: %+v", head)
	}
	if !b.IsDirty(2, 0) {
		t.Error("repaired head should be dirty")
	}
	if c := b.Get(3, 0); c.Content != "x" {
		t.Errorf("tail = %q, want %q", c.Content, "x")
	}
}

func TestCellBufferWideOverWide(t *testing.T) {
	b := NewCellBuffer(10, 5)
	b.Set(0, 0, "日", StyleDefault)

	// Overlapping placement one column to the right
	b.Set(1, 0, "本", StyleDefault)

	if c := b.Get(0, 0); c.Width() != 1 || c.Content != " " {
		t.Errorf("cell 0 = %+v, want blank", c)
	}
	if c := b.Get(1, 0); c.Content != "本" || c.Width() != 2 {
		t.Errorf("cell 1 = %+v, want wide glyph", c)
	}
	if c := b.Get(2, 0); !c.IsContinuation() {
		t.Errorf("cell 2 = %+v, want continuation", c)
	}
}

func TestCellBufferFillRect(t *testing.T) {
	b := NewCellBuffer(10, 5)
	fg, bg := ColorIndexed(7), ColorIndexed(4)

	b.FillRect(2, 1, 3, 2, fg, bg)

	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			c := b.Get(x, y)
			inside := x >= 2 && x < 5 && y >= 1 && y < 3
			if inside {
				if c.Content != " " || c.Fg != fg || c.Bg != bg {
					t.Errorf("cell (%d,%d) = %+v, want filled blank", x, y, c)
				}
				if !b.IsDirty(x, y) {
					t.Errorf("filled cell (%d,%d) not dirty", x, y)
				}
			} else if b.IsDirty(x, y) {
				t.Errorf("cell (%d,%d) outside rect is dirty", x, y)
			}
		}
	}
}

func TestCellBufferFillRectClipped(t *testing.T) {
	b := NewCellBuffer(10, 5)

	b.FillRect(8, 3, 5, 5, ColorDefault, ColorIndexed(1))

	if b.DirtyCount() != 4 {
		t.Errorf("clipped fill dirtied %d cells, want 4", b.DirtyCount())
	}

	b.ClearDirty()
	b.FillRect(-2, -2, 3, 3, ColorDefault, ColorIndexed(1))
	if b.DirtyCount() != 1 {
		t.Errorf("negative-origin fill dirtied %d cells, want 1", b.DirtyCount())
	}
}

func TestCellBufferFillRectSplitsWide(t *testing.T) {
	b := NewCellBuffer(10, 5)
	b.Set(1, 0, "日", StyleDefault)

	// Fill covering only the trailing column
	b.FillRect(2, 0, 1, 1, ColorDefault, ColorDefault)

	if c := b.Get(1, 0); c.Width() != 1 || c.Content != " " {
		t.Errorf("wide head not repaired by fill: %+v", c)
	}
}

func TestCellBufferClear(t *testing.T) {
	b := NewCellBuffer(4, 3)
	b.Set(1, 1, "X", Style{Fg: ColorIndexed(9)})

	b.Clear()

	if c := b.Get(1, 1); c != blankCell {
		t.Errorf("cell after Clear = %+v, want blank", c)
	}
	if b.DirtyCount() != 12 {
		t.Errorf("Clear should dirty every cell, got %d", b.DirtyCount())
	}
}

func TestCellBufferResize(t *testing.T) {
	b := NewCellBuffer(10, 5)
	b.Set(0, 0, "X", StyleDefault)

	b.Resize(6, 4)

	if w, h := b.Size(); w != 6 || h != 4 {
		t.Errorf("Size() after resize = (%d,%d), want (6,4)", w, h)
	}
	if b.Len() != 24 {
		t.Errorf("Len() after resize = %d, want 24", b.Len())
	}
	if b.DirtyCount() != 24 {
		t.Errorf("resize should dirty every cell, got %d", b.DirtyCount())
	}
	if c := b.Get(0, 0); c.Content != " " {
		t.Errorf("resize should discard content, got %q", c.Content)
	}

	// Growing past the original capacity
	b.Resize(20, 10)
	if b.Len() != 200 || b.DirtyCount() != 200 {
		t.Errorf("grow: Len=%d dirty=%d, want 200/200", b.Len(), b.DirtyCount())
	}
}

func TestCellBufferIndexCoords(t *testing.T) {
	b := NewCellBuffer(10, 5)
	for _, pos := range [][2]int{{0, 0}, {9, 0}, {0, 4}, {9, 4}, {3, 2}} {
		idx := b.Index(pos[0], pos[1])
		x, y := b.Coords(idx)
		if x != pos[0] || y != pos[1] {
			t.Errorf("Coords(Index(%d,%d)) = (%d,%d)", pos[0], pos[1], x, y)
		}
	}
}

func TestCellAccessorsOnReturnedValue(t *testing.T) {
	b := NewCellBuffer(10, 5)
	st := Style{Fg: ColorIndexed(3), Attrs: AttrUnderline}
	b.Set(0, 0, "日", st)

	// Accessors chain directly off Get's return value
	if w := b.Get(0, 0).Width(); w != 2 {
		t.Errorf("Width() = %d, want 2", w)
	}
	if !b.Get(1, 0).IsContinuation() {
		t.Error("cell (1,0) should be a continuation")
	}
	if got := b.Get(0, 0).Style(); got != st {
		t.Errorf("Style() = %+v, want %+v", got, st)
	}
}

func TestCellBufferZeroWidthClampsToOne(t *testing.T) {
	b := NewCellBuffer(10, 5)

	// A lone combining mark still occupies its column
	b.Set(0, 0, "́", StyleDefault)

	if c := b.Get(0, 0); c.Width() != 1 {
		t.Errorf("zero-width set produced width %d, want 1", c.Width())
	}
}
