// Package settings holds the per-region configuration that arrives from
// outside the simulation, and the coercion that turns malformed input into
// usable values.
package settings

import (
	"image/color"

	"github.com/pthm-cable/swarms/motion"
)

// MaxRegions is the number of region slots in a snapshot.
const MaxRegions = 16

// MaxCount caps the particles of one region.
const MaxCount = 9999

// MaxRadius caps the particle radius.
const MaxRadius = 500

// RegionSettings configures one region.
type RegionSettings struct {
	Visible bool
	X, Y    float64 // top-left corner
	Width   float64
	Height  float64
	Radius  float64
	Count   int
	Motion  motion.Kind
	DirX    float64
	DirY    float64
	Color   color.RGBA
	Trail   float64 // trail decay in [0, 100]
}

// Rule resolves the motion rule these settings select.
func (s RegionSettings) Rule() motion.Rule {
	return motion.FromKind(s.Motion, s.DirX, s.DirY)
}

// Snapshot is one complete configuration: at most MaxRegions entries in
// slot order.
type Snapshot []RegionSettings

// Defaults are substituted for missing or malformed fields.
type Defaults struct {
	Width  float64
	Height float64
	Radius float64
	Count  int
	DirX   float64
	DirY   float64
	Color  color.RGBA
	Trail  float64
	Motion motion.Kind
}

// DefaultDefaults returns the stock defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		Width:  500,
		Height: 500,
		Radius: 1,
		Count:  1000,
		DirX:   1,
		DirY:   0,
		Color:  White,
		Trail:  50,
		Motion: motion.KindStill,
	}
}

// Settings returns an invisible region built entirely from defaults.
func (d Defaults) Settings() RegionSettings {
	return RegionSettings{
		Width:  d.Width,
		Height: d.Height,
		Radius: d.Radius,
		Count:  d.Count,
		Motion: d.Motion,
		DirX:   d.DirX,
		DirY:   d.DirY,
		Color:  d.Color,
		Trail:  d.Trail,
	}
}

// DefaultSnapshot returns MaxRegions invisible slots.
func DefaultSnapshot(d Defaults) Snapshot {
	s := make(Snapshot, MaxRegions)
	for i := range s {
		s[i] = d.Settings()
		s[i].Motion = motion.KindRandomWalk
	}
	return s
}
