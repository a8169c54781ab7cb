package terminal

// Backend abstracts platform-specific terminal operations so the buffer,
// renderer, and lifecycle guard stay platform-independent.
type Backend interface {
	// Lifecycle
	// Init enters raw input mode.
	Init() error
	// Fini restores the original input mode. Safe to call multiple times.
	Fini()

	// Capabilities
	Size() (width, height int)

	// I/O
	// Write writes raw bytes to the terminal output.
	Write(p []byte) error

	// Callbacks
	// SetResizeHandler registers a callback for terminal resize events.
	SetResizeHandler(handler func(width, height int))
}

// backendWriter adapts a Backend to io.Writer for the renderer's sink
type backendWriter struct {
	b Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
