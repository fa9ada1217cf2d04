// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/swarms/motion"
	"github.com/pthm-cable/swarms/settings"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Defaults   DefaultsConfig   `yaml:"defaults"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimulationConfig holds the random stream and noise parameters.
type SimulationConfig struct {
	Seed             int64   `yaml:"seed"`
	DegreesOfFreedom float64 `yaml:"degrees_of_freedom"` // heavy-tailed walk
	FlowJitter       float64 `yaml:"flow_jitter"`        // gradient-flow-B time jitter width
}

// DefaultsConfig holds the values substituted for missing or malformed
// region settings.
type DefaultsConfig struct {
	Width  float64 `yaml:"sizew"`
	Height float64 `yaml:"sizeh"`
	Radius float64 `yaml:"radius"`
	Count  int     `yaml:"count"`
	PosFn  string  `yaml:"posFn"`
	DirX   float64 `yaml:"dirx"`
	DirY   float64 `yaml:"diry"`
	Color  string  `yaml:"color"`
	Tail   float64 `yaml:"tail"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow    int `yaml:"perf_window"`    // frames averaged by the perf collector
	StatsInterval int `yaml:"stats_interval"` // frames between stats rows (0 = off)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Defaults settings.Defaults
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only fields present in the file are overwritten
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived resolves the settings defaults. Unusable values fall back
// to the stock defaults so a bad config file never yields a bad region.
func (c *Config) computeDerived() {
	stock := settings.DefaultDefaults()
	d := c.Defaults
	out := stock

	if d.Width >= 0 {
		out.Width = d.Width
	}
	if d.Height >= 0 {
		out.Height = d.Height
	}
	if d.Radius >= 0 {
		out.Radius = min(d.Radius, settings.MaxRadius)
	}
	if d.Count >= 0 {
		out.Count = min(d.Count, settings.MaxCount)
	}
	out.DirX, out.DirY = d.DirX, d.DirY
	if d.Tail >= 0 && d.Tail <= 100 {
		out.Trail = d.Tail
	}
	if k, ok := motion.ParseKind(d.PosFn); ok {
		out.Motion = k
	} else if d.PosFn != "" {
		slog.Warn("unknown default posFn", "posFn", d.PosFn)
	}
	if d.Color != "" {
		if col, err := settings.ParseColor(d.Color); err == nil {
			out.Color = col
		} else {
			slog.Warn("bad default color", "color", d.Color, "error", err)
		}
	}

	c.Derived.Defaults = out
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
