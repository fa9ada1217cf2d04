// Package game hosts the simulation driver on a surface: it feeds it
// snapshots, runs one frame per display refresh and handles telemetry.
package game

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/pthm-cable/swarms/config"
	"github.com/pthm-cable/swarms/region"
	"github.com/pthm-cable/swarms/settings"
	"github.com/pthm-cable/swarms/sim"
	"github.com/pthm-cable/swarms/telemetry"
)

// Options configure a run.
type Options struct {
	Seed          int64
	SettingsPath  string    // initial snapshot file (empty = demo)
	Stdin         io.Reader // NDJSON snapshot stream, nil to disable
	OutputDir     string
	LogStats      bool
	StatsInterval int    // frames between stats (0 = config)
	MaxFrames     uint64 // stop after N frames (0 = unlimited)
	FrameOut      string // headless: PNG written on exit
}

// Game ties the driver to its snapshot sources and telemetry.
type Game struct {
	cfg    *config.Config
	opts   Options
	driver *sim.Driver
	output *telemetry.OutputManager

	cancel context.CancelFunc
	paused bool
}

// NewGameWithOptions builds the driver on surface and queues the initial
// snapshot. A stdin stream, if any, starts reading immediately.
func NewGameWithOptions(opts Options, surface region.Surface) (*Game, error) {
	cfg := config.Cfg()
	if opts.StatsInterval == 0 {
		opts.StatsInterval = cfg.Telemetry.StatsInterval
	}

	loop := sim.NewFrameLoop()
	driver, err := sim.New(surface, loop, sim.Options{
		Seed:             opts.Seed,
		DegreesOfFreedom: cfg.Simulation.DegreesOfFreedom,
		FlowJitter:       cfg.Simulation.FlowJitter,
		PerfWindow:       cfg.Telemetry.PerfWindow,
	})
	if err != nil {
		return nil, fmt.Errorf("creating driver: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config", "error", err)
	}

	g := &Game{
		cfg:    cfg,
		opts:   opts,
		driver: driver,
		output: output,
	}

	initial, err := g.initialSnapshot()
	if err != nil {
		output.Close()
		return nil, err
	}
	driver.Submit(initial)

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	if opts.Stdin != nil {
		go g.stream(ctx, opts.Stdin)
	}
	return g, nil
}

func (g *Game) initialSnapshot() (settings.Snapshot, error) {
	d := g.cfg.Derived.Defaults
	if g.opts.SettingsPath == "" {
		return DemoSnapshot(d, float64(g.cfg.Screen.Width), float64(g.cfg.Screen.Height)), nil
	}
	snap, err := settings.Load(g.opts.SettingsPath, d)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded settings", "path", g.opts.SettingsPath, "regions", len(snap))
	return snap, nil
}

func (g *Game) stream(ctx context.Context, r io.Reader) {
	err := settings.Stream(ctx, r, g.cfg.Derived.Defaults, g.driver.Submit)
	if err != nil && ctx.Err() == nil {
		slog.Error("settings stream failed", "error", err)
		return
	}
	slog.Debug("settings stream ended")
}

// Step runs one host iteration unless paused.
func (g *Game) Step() {
	if g.paused {
		g.driver.Drain()
		return
	}
	if g.driver.Step() {
		g.afterFrame()
	}
}

// TogglePause pauses or resumes the frame cycle. Snapshots are still
// applied while paused.
func (g *Game) TogglePause() {
	g.paused = !g.paused
	slog.Info("pause toggled", "paused", g.paused)
}

// Reseed rebuilds every region from the current snapshot.
func (g *Game) Reseed() {
	g.driver.Reseed()
}

// SaveSnapshot writes the applied snapshot next to the run output, or to
// the working directory when output is disabled.
func (g *Game) SaveSnapshot() {
	snap := g.driver.Current()
	if g.output != nil {
		if err := g.output.WriteSnapshot(snap); err != nil {
			slog.Error("failed to save settings", "error", err)
		}
		return
	}
	path := filepath.Join(".", "settings.json")
	if err := settings.Save(path, snap); err != nil {
		slog.Error("failed to save settings", "error", err)
		return
	}
	slog.Info("settings saved", "path", path)
}

// Done reports whether MaxFrames has been reached.
func (g *Game) Done() bool {
	return g.opts.MaxFrames > 0 && g.driver.Frames() >= g.opts.MaxFrames
}

// Frames returns the number of frames run.
func (g *Game) Frames() uint64 { return g.driver.Frames() }

// Driver exposes the simulation driver.
func (g *Game) Driver() *sim.Driver { return g.driver }

// Unload stops the driver and flushes output.
func (g *Game) Unload() {
	g.cancel()
	g.driver.Close()
	if err := g.output.Close(); err != nil {
		slog.Warn("failed to close output", "error", err)
	}
}
