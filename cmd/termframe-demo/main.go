// Demo binary: paints a moving color gradient and mixed-width text through
// the diff renderer until interrupted.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/termframe/terminal"
)

func main() {
	sess := terminal.NewSession()
	if err := sess.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "termframe-demo:", err)
		os.Exit(1)
	}
	defer sess.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-sigCh:
			return
		case <-ticker.C:
			elapsed := time.Since(start)
			err := sess.Tick(func(c terminal.Canvas) {
				paint(c, sess, elapsed)
			})
			if err != nil {
				sess.Stop()
				fmt.Fprintln(os.Stderr, "termframe-demo:", err)
				os.Exit(1)
			}
		}
	}
}

func paint(c terminal.Canvas, sess *terminal.Session, elapsed time.Duration) {
	w, h := sess.Size()
	phase := int(elapsed / (50 * time.Millisecond))

	title := terminal.Style{
		Fg:    terminal.ColorRGB(255, 215, 0),
		Attrs: terminal.AttrBold,
	}
	c.DrawText(2, 1, "termframe — 日本語も描ける diff renderer", title)
	c.DrawText(2, 2, fmt.Sprintf("%dx%d %s mode, tick %d", w, h, sess.ColorMode(), phase),
		terminal.Style{Fg: terminal.ColorIndexed(245)})

	// Scrolling gradient bar
	barY := h / 2
	for x := 0; x < w; x++ {
		t := (x + phase) % 256
		bg := terminal.ColorRGB(uint8(t), uint8(255-t), uint8((t*2)%256))
		c.FillRect(x, barY, 1, 1, terminal.ColorDefault, bg)
	}

	c.DrawText(2, h-2, "ctrl-c to quit", terminal.Style{Fg: terminal.ColorIndexed(8)})
}
