package game

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/swarms/config"
	"github.com/pthm-cable/swarms/renderer"
)

// RunTerminal renders into the terminal with half-block cells until the
// user quits or MaxFrames is reached.
func RunTerminal(opts Options) error {
	cfg := config.Cfg()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	canvas := renderer.NewTerminal(screen, float64(cfg.Screen.Width), float64(cfg.Screen.Height))
	g, err := NewGameWithOptions(opts, canvas)
	if err != nil {
		return err
	}
	defer g.Unload()

	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for !g.Done() {
		select {
		case ev := <-events:
			if !g.handleTerminalEvent(ev, canvas, screen) {
				return nil
			}
		case <-ticker.C:
			g.Step()
			canvas.Flush()
			g.driver.Perf().RecordPresent()
		}
	}
	return nil
}

// handleTerminalEvent reacts to keys and resizes. It returns false to quit.
func (g *Game) handleTerminalEvent(ev tcell.Event, canvas *renderer.Terminal, screen tcell.Screen) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ', 'p':
				g.TogglePause()
			case 'r':
				g.Reseed()
			case 's':
				g.SaveSnapshot()
			}
		}
	case *tcell.EventResize:
		canvas.Resize()
		screen.Sync()
		// The pixel buffer was reset; restart from a clean surface.
		g.Reseed()
	}
	return true
}
