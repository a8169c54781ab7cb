//go:build !unix

package terminal

import "fmt"

// stubBackend keeps the package buildable on unsupported platforms; the
// buffer/renderer core has no platform dependency, only the lifecycle side
// does.
type stubBackend struct{}

func newBackend() Backend {
	return stubBackend{}
}

func (stubBackend) Init() error {
	return fmt.Errorf("terminal: platform not supported")
}

func (stubBackend) Fini() {}

func (stubBackend) Size() (int, int) {
	return 80, 24
}

func (stubBackend) Write(p []byte) error {
	return fmt.Errorf("terminal: platform not supported")
}

func (stubBackend) SetResizeHandler(func(width, height int)) {}

func resetTerminalMode() {}
