package terminal

import (
	"bytes"
	"fmt"
	"io"
)

// DiffRenderer reconciles a terminal with a CellBuffer by emitting only the
// control codes the changed cells require. It caches the terminal's cursor
// position and the last emitted style across flushes so adjacent dirty
// cells need no cursor moves and same-styled runs need no SGR churn.
//
// The color mode is resolved once at construction; the renderer degrades
// cell colors to that tier at emission time and never reads the
// environment.
type DiffRenderer struct {
	mode ColorMode

	cursorX     int
	cursorY     int
	cursorValid bool

	lastStyle Style
	lastValid bool

	// Scratch buffer reused across flushes; the sink sees exactly one
	// write per flush.
	out bytes.Buffer

	cellsWritten int
	cursorMoves  int
	styleChanges int
}

// NewDiffRenderer creates a renderer emitting for the given color tier
func NewDiffRenderer(mode ColorMode) *DiffRenderer {
	return &DiffRenderer{mode: mode}
}

// Mode returns the renderer's color tier
func (r *DiffRenderer) Mode() ColorMode {
	return r.mode
}

// Reset marks cursor position and style state unknown. Call after anything
// else wrote to the terminal (clear, resize, cursor moves outside the
// renderer).
func (r *DiffRenderer) Reset() {
	r.cursorValid = false
	r.lastValid = false
}

// CellsWritten returns the number of content writes in the last flush
func (r *DiffRenderer) CellsWritten() int {
	return r.cellsWritten
}

// CursorMoves returns the number of cursor instructions in the last flush
func (r *DiffRenderer) CursorMoves() int {
	return r.cursorMoves
}

// StyleChanges returns the number of SGR emissions in the last flush
func (r *DiffRenderer) StyleChanges() int {
	return r.styleChanges
}

// Flush emits the minimal byte stream reconciling the terminal with buf and
// writes it to sink in a single call, returning the bytes written.
//
// Changed cells are visited in ascending row-major order; continuation
// cells are skipped (the preceding wide glyph already paints their column).
// On success the buffer's change set is cleared. On a sink error no bits
// are cleared and the cached cursor/style state is rolled back, so a retry
// with no intervening mutation reproduces the same output. A flush with no
// pending changes writes nothing.
func (r *DiffRenderer) Flush(buf *CellBuffer, sink io.Writer) (int, error) {
	savedX, savedY, savedCursorValid := r.cursorX, r.cursorY, r.cursorValid
	savedStyle, savedStyleValid := r.lastStyle, r.lastValid

	r.cellsWritten = 0
	r.cursorMoves = 0
	r.styleChanges = 0
	r.out.Reset()

	width := buf.Width()

	for idx, ok := buf.dirty.NextSet(0); ok; idx, ok = buf.dirty.NextSet(idx + 1) {
		i := int(idx)
		if i >= len(buf.cells) {
			break
		}
		cell := &buf.cells[i]
		if cell.IsContinuation() {
			continue
		}
		x, y := buf.Coords(i)

		if !r.cursorValid || y != r.cursorY || x != r.cursorX {
			// Non-destructive forward movement within the row, absolute
			// positioning otherwise.
			if r.cursorValid && y == r.cursorY && x > r.cursorX {
				writeCursorForward(&r.out, x-r.cursorX)
			} else {
				writeCursorPos(&r.out, x, y)
			}
			r.cursorX = x
			r.cursorY = y
			r.cursorValid = true
			r.cursorMoves++
		}

		st := Style{
			Fg:    Degrade(cell.Fg, r.mode),
			Bg:    Degrade(cell.Bg, r.mode),
			Attrs: cell.Attrs,
		}
		if !r.lastValid || st != r.lastStyle {
			r.writeStyle(st)
			r.lastStyle = st
			r.lastValid = true
			r.styleChanges++
		}

		r.out.WriteString(cell.Content)

		r.cursorX += cell.Width()
		if r.cursorX >= width {
			// Position after a row-end write depends on the terminal's
			// wrap state; treat it as unknown.
			r.cursorValid = false
		}
		r.cellsWritten++
	}

	if r.out.Len() == 0 {
		// Nothing to emit (clean buffer, or only continuation bits set).
		buf.ClearDirty()
		return 0, nil
	}

	n, err := sink.Write(r.out.Bytes())
	if err == nil && n < r.out.Len() {
		err = io.ErrShortWrite
	}
	if err != nil {
		r.cursorX, r.cursorY, r.cursorValid = savedX, savedY, savedCursorValid
		r.lastStyle, r.lastValid = savedStyle, savedStyleValid
		return n, fmt.Errorf("flush: %w", err)
	}

	buf.ClearDirty()
	return n, nil
}

// RenderFull marks the whole buffer changed and flushes it
func (r *DiffRenderer) RenderFull(buf *CellBuffer, sink io.Writer) (int, error) {
	buf.MarkAllDirty()
	return r.Flush(buf, sink)
}

// writeStyle emits the SGR output moving the terminal from the cached style
// to st. An attribute change forces a reset-and-rebuild in one combined
// sequence; color-only changes emit just the changed color.
func (r *DiffRenderer) writeStyle(st Style) {
	w := &r.out

	attrsChanged := !r.lastValid || st.Attrs != r.lastStyle.Attrs
	fgChanged := !r.lastValid || st.Fg != r.lastStyle.Fg
	bgChanged := !r.lastValid || st.Bg != r.lastStyle.Bg

	if attrsChanged {
		w.Write(csi)
		w.WriteByte('0')
		for _, ac := range attrCodes {
			if st.Attrs&ac.attr != 0 {
				w.WriteByte(';')
				w.WriteByte(ac.code)
			}
		}
		writeFgParams(w, st.Fg)
		writeBgParams(w, st.Bg)
		w.WriteByte('m')
		return
	}
	if fgChanged {
		writeFgFull(w, st.Fg)
	}
	if bgChanged {
		writeBgFull(w, st.Bg)
	}
}

// writeFgParams writes foreground parameters with a leading ';' (for use
// inside a combined SGR sequence)
func writeFgParams(w *bytes.Buffer, c Color) {
	w.WriteByte(';')
	switch {
	case c.IsDefault():
		w.WriteString("39")
	default:
		if idx, ok := c.Index(); ok {
			if idx < 8 {
				writeInt(w, 30+int(idx))
			} else if idx < 16 {
				writeInt(w, 90+int(idx-8))
			} else {
				w.WriteString("38;5;")
				writeInt(w, int(idx))
			}
			return
		}
		rr, g, b, _ := c.RGB()
		w.WriteString("38;2;")
		writeInt(w, int(rr))
		w.WriteByte(';')
		writeInt(w, int(g))
		w.WriteByte(';')
		writeInt(w, int(b))
	}
}

// writeBgParams writes background parameters with a leading ';'
func writeBgParams(w *bytes.Buffer, c Color) {
	w.WriteByte(';')
	switch {
	case c.IsDefault():
		w.WriteString("49")
	default:
		if idx, ok := c.Index(); ok {
			if idx < 8 {
				writeInt(w, 40+int(idx))
			} else if idx < 16 {
				writeInt(w, 100+int(idx-8))
			} else {
				w.WriteString("48;5;")
				writeInt(w, int(idx))
			}
			return
		}
		rr, g, b, _ := c.RGB()
		w.WriteString("48;2;")
		writeInt(w, int(rr))
		w.WriteByte(';')
		writeInt(w, int(g))
		w.WriteByte(';')
		writeInt(w, int(b))
	}
}

// writeFgFull writes a complete foreground SGR sequence
func writeFgFull(w *bytes.Buffer, c Color) {
	switch {
	case c.IsDefault():
		w.Write(csiDefaultFg)
	default:
		if idx, ok := c.Index(); ok {
			if idx < 16 {
				w.Write(csi)
				if idx < 8 {
					writeInt(w, 30+int(idx))
				} else {
					writeInt(w, 90+int(idx-8))
				}
				w.WriteByte('m')
				return
			}
			w.Write(csiFg256)
			writeInt(w, int(idx))
			w.WriteByte('m')
			return
		}
		rr, g, b, _ := c.RGB()
		w.Write(csiFgRGB)
		writeInt(w, int(rr))
		w.WriteByte(';')
		writeInt(w, int(g))
		w.WriteByte(';')
		writeInt(w, int(b))
		w.WriteByte('m')
	}
}

// writeBgFull writes a complete background SGR sequence
func writeBgFull(w *bytes.Buffer, c Color) {
	switch {
	case c.IsDefault():
		w.Write(csiDefaultBg)
	default:
		if idx, ok := c.Index(); ok {
			if idx < 16 {
				w.Write(csi)
				if idx < 8 {
					writeInt(w, 40+int(idx))
				} else {
					writeInt(w, 100+int(idx-8))
				}
				w.WriteByte('m')
				return
			}
			w.Write(csiBg256)
			writeInt(w, int(idx))
			w.WriteByte('m')
			return
		}
		rr, g, b, _ := c.RGB()
		w.Write(csiBgRGB)
		writeInt(w, int(rr))
		w.WriteByte(';')
		writeInt(w, int(g))
		w.WriteByte(';')
		writeInt(w, int(b))
		w.WriteByte('m')
	}
}
