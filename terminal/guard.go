package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// GuardState tracks the lifecycle guard's one-way state machine
type GuardState uint8

const (
	GuardUninitialized GuardState = iota
	GuardActive
	GuardRestored
)

// Guard owns the terminal mode transitions for a session: raw input mode
// and the alternate screen on Enter, guaranteed restoration on Shutdown.
// The state machine is one-way (Uninitialized -> Active -> Restored);
// Shutdown is idempotent so every teardown path (normal return, error
// propagation, panic hook) can call it without coordination.
type Guard struct {
	backend Backend

	mu    sync.Mutex
	state GuardState
}

// NewGuard creates a guard over the platform backend
func NewGuard() *Guard {
	return &Guard{backend: newBackend()}
}

// NewGuardWithBackend creates a guard over a caller-supplied backend
// (used by tests and alternate transports)
func NewGuardWithBackend(b Backend) *Guard {
	return &Guard{backend: b}
}

// State returns the guard's current lifecycle state
func (g *Guard) State() GuardState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Backend returns the guarded backend
func (g *Guard) Backend() Backend {
	return g.backend
}

// Enter enables raw input mode, switches to the alternate screen, hides
// the cursor, and disables auto-wrap. Calling Enter while already Active
// is a no-op; a restored guard cannot be re-entered.
func (g *Guard) Enter() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case GuardActive:
		return nil
	case GuardRestored:
		return fmt.Errorf("terminal: guard already restored")
	}

	if err := g.backend.Init(); err != nil {
		return fmt.Errorf("terminal enter: %w", err)
	}

	g.backend.Write(csiAltScreenEnter)
	g.backend.Write(csiCursorHide)
	// Prevents terminal scroll/wrap on bottom-right corner write
	g.backend.Write(csiAutoWrapOff)

	g.state = GuardActive
	return nil
}

// Shutdown restores the terminal: shows the cursor, leaves the alternate
// screen, re-enables auto-wrap, resets attributes, and restores the
// original input mode. Exactly-once: repeated calls and calls on a guard
// that never entered are no-ops.
func (g *Guard) Shutdown() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != GuardActive {
		g.state = GuardRestored
		return
	}

	g.backend.Write(csiCursorShow)
	g.backend.Write(csiAltScreenExit)
	// Re-enable auto-wrap AFTER exiting the alt screen so the main buffer
	// has wrap enabled
	g.backend.Write(csiAutoWrapOn)
	g.backend.Write(csiSGR0)

	g.backend.Fini()
	g.state = GuardRestored
}

// Go runs fn in a new goroutine with panic recovery wired to terminal
// restoration. Use this instead of the 'go' keyword inside a session to
// ensure terminal cleanup on crash.
func (g *Guard) Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				g.handleCrash(r)
			}
		}()
		fn()
	}()
}

// handleCrash restores the terminal and prints the stack trace before
// exiting
func (g *Guard) handleCrash(r any) {
	g.Shutdown()
	EmergencyReset(os.Stdout)

	os.Stdout.Sync()
	os.Stderr.Sync()

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// EmergencyReset attempts to restore the terminal to a sane state.
// Call from panic recovery when a Guard is not reachable; escape sequences
// alone don't restore termios, so cooked mode is re-applied best-effort.
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	resetTerminalMode()
}
