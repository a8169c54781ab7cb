package terminal

// Canvas is the drawing capability consumed by widget code. Implementations
// mutate a cell buffer only; nothing here performs I/O, and every effect
// becomes visible through a later renderer flush.
type Canvas interface {
	// SetCell writes one grapheme cluster at (x, y)
	SetCell(x, y int, content string, st Style)
	// FillRect blanks a rectangle with the given colors
	FillRect(x, y, w, h int, fg, bg Color)
	// DrawText writes text left-to-right from (x, y), clipping at the row
	// bound
	DrawText(x, y int, text string, st Style)
}

// clipRect is a clip region in buffer coordinates
type clipRect struct {
	x, y, w, h int
}

func (r clipRect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (r clipRect) intersect(o clipRect) clipRect {
	x0 := max(r.x, o.x)
	y0 := max(r.y, o.y)
	x1 := min(r.x+r.w, o.x+o.w)
	y1 := min(r.y+r.h, o.y+o.h)
	if x1 <= x0 || y1 <= y0 {
		return clipRect{}
	}
	return clipRect{x: x0, y: y0, w: x1 - x0, h: y1 - y0}
}

// BufferCanvas implements Canvas over a CellBuffer, adding a clip-region
// stack. The root clip is the full buffer.
type BufferCanvas struct {
	buf   *CellBuffer
	clips []clipRect
}

// NewCanvas creates a canvas drawing into buf
func NewCanvas(buf *CellBuffer) *BufferCanvas {
	return &BufferCanvas{
		buf:   buf,
		clips: []clipRect{{w: buf.Width(), h: buf.Height()}},
	}
}

// Buffer returns the underlying cell buffer
func (c *BufferCanvas) Buffer() *CellBuffer {
	return c.buf
}

// clip returns the active clip region
func (c *BufferCanvas) clip() clipRect {
	return c.clips[len(c.clips)-1]
}

// PushClip restricts subsequent drawing to the intersection of the current
// clip region and the given rectangle
func (c *BufferCanvas) PushClip(x, y, w, h int) {
	c.clips = append(c.clips, c.clip().intersect(clipRect{x: x, y: y, w: w, h: h}))
}

// PopClip restores the previous clip region. The root region is never
// popped.
func (c *BufferCanvas) PopClip() {
	if len(c.clips) > 1 {
		c.clips = c.clips[:len(c.clips)-1]
	}
}

// resetClip rebinds the root clip after a buffer resize
func (c *BufferCanvas) resetClip() {
	c.clips = c.clips[:1]
	c.clips[0] = clipRect{w: c.buf.Width(), h: c.buf.Height()}
}

// SetCell writes one grapheme cluster at (x, y). Positions outside the clip
// region or the buffer are silently dropped.
func (c *BufferCanvas) SetCell(x, y int, content string, st Style) {
	if !c.clip().contains(x, y) {
		return
	}
	c.buf.Set(x, y, content, st)
}

// FillRect blanks a rectangle with the given colors, clipped to the active
// region
func (c *BufferCanvas) FillRect(x, y, w, h int, fg, bg Color) {
	r := c.clip().intersect(clipRect{x: x, y: y, w: w, h: h})
	if r.w == 0 || r.h == 0 {
		return
	}
	c.buf.FillRect(r.x, r.y, r.w, r.h, fg, bg)
}

// DrawText walks text as grapheme clusters, advancing by each cluster's
// display width and clipping once the row bound or clip edge is exceeded.
// Zero-width clusters merge into the previously drawn cell instead of
// occupying a column of their own.
func (c *BufferCanvas) DrawText(x, y int, text string, st Style) {
	clip := c.clip()
	if y < clip.y || y >= clip.y+clip.h {
		return
	}

	lastDrawn := -1
	graphemes(text, func(cluster string, w int) bool {
		if w == 0 {
			// Combining/zero-width content attaches to the cell before it.
			if lastDrawn >= 0 {
				c.buf.appendCluster(lastDrawn, y, cluster)
			}
			return true
		}

		if x >= clip.x+clip.w || x+w > c.buf.Width() {
			return false
		}
		if x < clip.x {
			x += w
			return true
		}

		c.buf.Set(x, y, cluster, st)
		lastDrawn = x
		x += w
		return true
	})
}
