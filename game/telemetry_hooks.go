package game

import "log/slog"

// afterFrame flushes stats every StatsInterval frames.
func (g *Game) afterFrame() {
	interval := uint64(g.opts.StatsInterval)
	frame := g.driver.Frames()
	if interval == 0 || frame%interval != 0 {
		return
	}

	perfStats := g.driver.Perf().Stats()
	regionStats := g.driver.RegionStats()

	if g.opts.LogStats {
		slog.Info("perf", "frame", frame, "particles", g.driver.Particles(), "stats", perfStats)
		for _, rs := range regionStats {
			slog.Info("region", "frame", frame, "stats", rs)
		}
	}

	if err := g.output.WritePerf(perfStats, frame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	if err := g.output.WriteRegions(regionStats); err != nil {
		slog.Error("failed to write regions", "error", err)
	}
}
