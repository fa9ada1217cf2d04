package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/swarms/vec"
)

// RegionStats summarises one region's particle cloud at a point in time.
type RegionStats struct {
	Frame       uint64 `csv:"frame"`
	Slot        int    `csv:"slot"`
	Motion      string `csv:"motion"`
	Count       int    `csv:"count"`
	RegionFrame uint64 `csv:"region_frame"`

	// Centroid and spread of positions
	MeanX float64 `csv:"mean_x"`
	MeanY float64 `csv:"mean_y"`
	StdX  float64 `csv:"std_x"`
	StdY  float64 `csv:"std_y"`

	// Distance from the centroid
	SpreadP50 float64 `csv:"spread_p50"`
	SpreadP90 float64 `csv:"spread_p90"`
}

// ComputeRegionStats builds the summary for positions. An empty cloud gives
// zero moments.
func ComputeRegionStats(frame uint64, slot int, motion string, regionFrame uint64, positions []vec.Vec) RegionStats {
	s := RegionStats{
		Frame:       frame,
		Slot:        slot,
		Motion:      motion,
		Count:       len(positions),
		RegionFrame: regionFrame,
	}
	if len(positions) == 0 {
		return s
	}

	xs := make([]float64, len(positions))
	ys := make([]float64, len(positions))
	for i, p := range positions {
		xs[i], ys[i] = p.X, p.Y
	}
	s.MeanX, s.StdX = stat.PopMeanStdDev(xs, nil)
	s.MeanY, s.StdY = stat.PopMeanStdDev(ys, nil)

	centroid := vec.New(s.MeanX, s.MeanY)
	dist := make([]float64, len(positions))
	for i, p := range positions {
		dist[i] = p.Distance(centroid)
	}
	sort.Float64s(dist)
	s.SpreadP50 = stat.Quantile(0.5, stat.Empirical, dist, nil)
	s.SpreadP90 = stat.Quantile(0.9, stat.Empirical, dist, nil)
	return s
}

// LogValue implements slog.LogValuer.
func (s RegionStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("slot", s.Slot),
		slog.String("motion", s.Motion),
		slog.Int("count", s.Count),
		slog.Uint64("region_frame", s.RegionFrame),
		slog.Float64("mean_x", s.MeanX),
		slog.Float64("mean_y", s.MeanY),
		slog.Float64("std_x", s.StdX),
		slog.Float64("std_y", s.StdY),
		slog.Float64("spread_p90", s.SpreadP90),
	)
}
