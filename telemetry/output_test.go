package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/swarms/config"
	"github.com/pthm-cable/swarms/settings"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager, got %v %v", om, err)
	}
	if err := om.WritePerf(PerfStats{}, 1); err != nil {
		t.Errorf("expected nil-safe WritePerf, got %v", err)
	}
	if err := om.WriteRegions([]RegionStats{{}}); err != nil {
		t.Errorf("expected nil-safe WriteRegions, got %v", err)
	}
	if om.Dir() != "" || om.Close() != nil {
		t.Error("expected nil-safe Dir and Close")
	}
}

func TestOutputManager_CSVHeaders(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	stats := PerfStats{AvgFrame: time.Millisecond, PhasePct: map[string]float64{PhaseUpdate: 40}}
	for _, frame := range []uint64{60, 120} {
		if err := om.WritePerf(stats, frame); err != nil {
			t.Fatalf("WritePerf: %v", err)
		}
	}
	rows := []RegionStats{{Frame: 60, Slot: 0, Count: 3}, {Frame: 60, Slot: 2, Count: 5}}
	if err := om.WriteRegions(rows); err != nil {
		t.Fatalf("WriteRegions: %v", err)
	}
	if err := om.WriteRegions(rows[:1]); err != nil {
		t.Fatalf("WriteRegions: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	perf := readLines(t, filepath.Join(dir, "perf.csv"))
	if len(perf) != 3 {
		t.Fatalf("expected header + 2 perf rows, got %d", len(perf))
	}
	if !strings.HasPrefix(perf[0], "frame,avg_frame_us") || !strings.Contains(perf[0], "update_pct") {
		t.Errorf("unexpected perf header %q", perf[0])
	}
	if !strings.HasPrefix(perf[2], "120,1000,") {
		t.Errorf("unexpected perf row %q", perf[2])
	}

	regions := readLines(t, filepath.Join(dir, "regions.csv"))
	if len(regions) != 4 {
		t.Fatalf("expected header + 3 region rows, got %d", len(regions))
	}
	if !strings.HasPrefix(regions[0], "frame,slot,motion,count") {
		t.Errorf("unexpected regions header %q", regions[0])
	}
}

func TestOutputManager_ConfigAndSnapshot(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	defer om.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	snap := settings.DefaultSnapshot(settings.DefaultDefaults())
	if err := om.WriteSnapshot(snap); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected written config to load: %v", err)
	}
	back, err := settings.Load(filepath.Join(dir, "settings.json"), settings.DefaultDefaults())
	if err != nil || len(back) != len(snap) {
		t.Errorf("expected written snapshot to load, got %d entries (%v)", len(back), err)
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}
