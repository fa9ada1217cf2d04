package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/swarms/config"
	"github.com/pthm-cable/swarms/settings"
)

// OutputManager writes run output: perf.csv, regions.csv, the effective
// config and the last applied snapshot.
type OutputManager struct {
	dir         string
	perfFile    *os.File
	regionsFile *os.File

	perfHeaderWritten    bool
	regionsHeaderWritten bool
}

// NewOutputManager creates dir and opens the CSV files. It returns nil if
// dir is empty (output disabled); every method is safe on a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	f, err = os.Create(filepath.Join(dir, "regions.csv"))
	if err != nil {
		om.perfFile.Close()
		return nil, fmt.Errorf("creating regions.csv: %w", err)
	}
	om.regionsFile = f

	return om, nil
}

// WriteConfig saves cfg as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteSnapshot saves s as settings.json.
func (om *OutputManager) WriteSnapshot(s settings.Snapshot) error {
	if om == nil {
		return nil
	}
	return settings.Save(filepath.Join(om.dir, "settings.json"), s)
}

// WritePerf appends a row to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, frame uint64) error {
	if om == nil {
		return nil
	}
	records := []PerfStatsCSV{stats.ToCSV(frame)}
	if err := writeRows(om.perfFile, records, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteRegions appends one row per region to regions.csv.
func (om *OutputManager) WriteRegions(stats []RegionStats) error {
	if om == nil || len(stats) == 0 {
		return nil
	}
	if err := writeRows(om.regionsFile, stats, &om.regionsHeaderWritten); err != nil {
		return fmt.Errorf("writing regions: %w", err)
	}
	return nil
}

// writeRows marshals records, including the header only on the first call.
func writeRows(w io.Writer, records any, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, w); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, w)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, f := range []*os.File{om.perfFile, om.regionsFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
