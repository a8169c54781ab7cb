package terminal

import (
	"io"
)

// ResizeEvent represents a terminal resize
type ResizeEvent struct {
	Width  int
	Height int
}

// Session ties the lifecycle guard, cell buffer, canvas, and diff renderer
// into the paint/flush tick model: one owner paints through the canvas,
// then hands control to Flush. Resize events are queued and applied only
// between ticks, so an in-flight flush always completes against the
// geometry it started with.
type Session struct {
	guard    *Guard
	buf      *CellBuffer
	canvas   *BufferCanvas
	renderer *DiffRenderer
	sink     io.Writer
	mode     ColorMode

	resizeCh chan ResizeEvent
	started  bool
}

// NewSession creates a session over the platform backend. The color mode
// is detected from the environment once, here, unless one is supplied.
func NewSession(colorMode ...ColorMode) *Session {
	return NewSessionWithBackend(newBackend(), colorMode...)
}

// NewSessionWithBackend creates a session over a caller-supplied backend
func NewSessionWithBackend(b Backend, colorMode ...ColorMode) *Session {
	mode := DetectColorMode()
	if len(colorMode) > 0 {
		mode = colorMode[0]
	}
	return &Session{
		guard:    NewGuardWithBackend(b),
		sink:     backendWriter{b: b},
		mode:     mode,
		resizeCh: make(chan ResizeEvent, 1),
	}
}

// Start enters the terminal session: raw mode, alternate screen, a buffer
// sized to the terminal, and resize tracking. The first tick repaints the
// full screen.
func (s *Session) Start() error {
	if s.started {
		return nil
	}
	if err := s.guard.Enter(); err != nil {
		return err
	}

	b := s.guard.Backend()
	w, h := b.Size()
	s.buf = NewCellBuffer(w, h)
	s.buf.MarkAllDirty()
	s.canvas = NewCanvas(s.buf)
	s.renderer = NewDiffRenderer(s.mode)

	b.Write(csiClear)

	b.SetResizeHandler(func(w, h int) {
		ev := ResizeEvent{Width: w, Height: h}
		// Non-blocking latest-wins send; an unconsumed stale size is
		// replaced rather than queued behind.
		select {
		case s.resizeCh <- ev:
		default:
			select {
			case <-s.resizeCh:
			default:
			}
			select {
			case s.resizeCh <- ev:
			default:
			}
		}
	})

	s.started = true
	return nil
}

// Stop restores the terminal. Idempotent.
func (s *Session) Stop() {
	s.guard.Shutdown()
}

// Canvas returns the drawing surface for paint code
func (s *Session) Canvas() Canvas {
	return s.canvas
}

// Buffer returns the session's cell buffer
func (s *Session) Buffer() *CellBuffer {
	return s.buf
}

// ColorMode returns the session's resolved color tier
func (s *Session) ColorMode() ColorMode {
	return s.mode
}

// Guard returns the session's lifecycle guard
func (s *Session) Guard() *Guard {
	return s.guard
}

// Size returns the current buffer dimensions
func (s *Session) Size() (width, height int) {
	return s.buf.Size()
}

// Tick runs one paint/flush cycle: any pending resize is applied first
// (reallocating the buffer and forcing a full redraw), then paint draws
// through the canvas, then the diff is flushed to the terminal in a single
// write. A flush error leaves the change set intact for the next tick.
func (s *Session) Tick(paint func(Canvas)) error {
	s.applyPendingResize()

	if paint != nil {
		paint(s.canvas)
	}

	_, err := s.renderer.Flush(s.buf, s.sink)
	return err
}

// applyPendingResize consumes the latest queued resize, if any
func (s *Session) applyPendingResize() {
	select {
	case ev := <-s.resizeCh:
		s.buf.Resize(ev.Width, ev.Height)
		s.canvas.resetClip()
		// The terminal repainted itself on resize; our cached state no
		// longer matches it.
		s.guard.Backend().Write(csiClear)
		s.renderer.Reset()
	default:
	}
}
