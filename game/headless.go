package game

import (
	"log/slog"

	"github.com/pthm-cable/swarms/config"
	"github.com/pthm-cable/swarms/renderer"
)

// RunHeadless runs on an in-memory image until MaxFrames is reached, then
// writes the final frame if FrameOut is set. With MaxFrames 0 it runs until
// the process is stopped.
func RunHeadless(opts Options) error {
	cfg := config.Cfg()
	canvas := renderer.NewImage(cfg.Screen.Width, cfg.Screen.Height)

	g, err := NewGameWithOptions(opts, canvas)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"width", cfg.Screen.Width,
		"height", cfg.Screen.Height,
		"max_frames", opts.MaxFrames,
	)

	for !g.Done() {
		g.Step()
	}
	slog.Info("max frames reached", "frame", g.Frames(), "particles", g.driver.Particles())

	if opts.FrameOut != "" {
		if err := canvas.WritePNG(opts.FrameOut); err != nil {
			return err
		}
		slog.Info("frame written", "path", opts.FrameOut)
	}
	return nil
}
