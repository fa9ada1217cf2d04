package main

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/swarms/config"
	"github.com/pthm-cable/swarms/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	settingsPath := flag.String("settings", "", "Initial region settings JSON (empty = demo layout)")
	stdin := flag.Bool("stdin", false, "Read settings snapshots from stdin, one JSON array per line")
	headless := flag.Bool("headless", false, "Render to an in-memory image instead of a window")
	tui := flag.Bool("tui", false, "Render in the terminal")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config, then time-based)")
	maxFrames := flag.Uint64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	frameOut := flag.String("frame-out", "", "Write the last frame to this PNG on exit")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsInterval := flag.Int("stats-interval", 0, "Frames between stats (0 = use config)")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog. The terminal renderer owns stdout.
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}
	if *tui {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, hopts)))
	} else {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, hopts)))
	}

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Simulation.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var in io.Reader
	if *stdin {
		in = os.Stdin
	}

	opts := game.Options{
		Seed:          rngSeed,
		SettingsPath:  *settingsPath,
		Stdin:         in,
		OutputDir:     *outputDir,
		LogStats:      *logStats,
		StatsInterval: *statsInterval,
		MaxFrames:     *maxFrames,
		FrameOut:      *frameOut,
	}

	var err error
	switch {
	case *headless:
		err = game.RunHeadless(opts)
	case *tui:
		err = game.RunTerminal(opts)
	default:
		err = game.RunWindow(opts)
	}
	if err != nil {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}
