// Package region implements one independently configured particle swarm:
// its rectangle, its particles, their per-frame update with wraparound, and
// the trail-fading draw.
package region

import (
	"image/color"

	"github.com/pthm-cable/swarms/motion"
	"github.com/pthm-cable/swarms/noise"
	"github.com/pthm-cable/swarms/settings"
	"github.com/pthm-cable/swarms/vec"
)

// Bounds is the region rectangle in screen space, where y grows downward:
// TopRight.Y is numerically smaller than BottomLeft.Y.
type Bounds struct {
	BottomLeft vec.Vec
	TopRight   vec.Vec
	Radius     float64
}

// Left returns the smallest x.
func (b *Bounds) Left() float64 { return b.BottomLeft.X }

// Right returns the largest x.
func (b *Bounds) Right() float64 { return b.TopRight.X }

// Top returns the smallest y.
func (b *Bounds) Top() float64 { return b.TopRight.Y }

// Bottom returns the largest y.
func (b *Bounds) Bottom() float64 { return b.BottomLeft.Y }

// Width returns TopRight.X - BottomLeft.X.
func (b *Bounds) Width() float64 { return b.TopRight.X - b.BottomLeft.X }

// Height returns BottomLeft.Y - TopRight.Y.
func (b *Bounds) Height() float64 { return b.BottomLeft.Y - b.TopRight.Y }

// Swarm holds the particle positions and the frame counter. The length of
// Positions is fixed at construction.
type Swarm struct {
	Positions []vec.Vec
	Frame     uint64
}

// Motion is the resolved rule.
type Motion struct {
	Rule motion.Rule
}

// Style holds the rendering parameters.
type Style struct {
	Color color.RGBA
	Trail float64
}

// Region is a complete swarm. The driver stores the same four parts as ECS
// components and calls Advance and Render on them directly.
type Region struct {
	Bounds Bounds
	Swarm  Swarm
	Motion Motion
	Style  Style
}

// NewBounds converts a top-left corner and size into the rectangle.
func NewBounds(x, y, w, h, radius float64) Bounds {
	return Bounds{
		BottomLeft: vec.New(x, y+h),
		TopRight:   vec.New(x+w, y),
		Radius:     radius,
	}
}

// New builds a region from settings, seeding every particle uniformly inside
// the rectangle from src. Invisible settings produce Empty().
func New(s settings.RegionSettings, src noise.Source) Region {
	if !s.Visible {
		return Empty()
	}

	b := NewBounds(s.X, s.Y, s.Width, s.Height, s.Radius)
	return Region{
		Bounds: b,
		Swarm:  Seed(&b, s.Count, src),
		Motion: Motion{Rule: s.Rule()},
		Style:  Style{Color: s.Color, Trail: s.Trail},
	}
}

// Empty returns the canonical zero-particle, zero-size region.
func Empty() Region {
	return Region{
		Motion: Motion{Rule: motion.Still{}},
		Style:  Style{Color: color.RGBA{A: 255}},
	}
}

// Seed places count particles uniformly inside the area Wrap keeps them in,
// so a still swarm never moves. An axis narrower than two radii collapses
// onto its wrap line.
func Seed(b *Bounds, count int, src noise.Source) Swarm {
	if count < 0 {
		count = 0
	}
	r := b.Radius
	x0, xSpan := seedAxis(b.Left()+r, b.Right()-r)
	y0, ySpan := seedAxis(b.Top()+r, b.Bottom()-r)
	positions := make([]vec.Vec, count)
	for i := range positions {
		positions[i] = vec.New(
			x0+xSpan*src.Float64(),
			y0+ySpan*src.Float64(),
		)
	}
	return Swarm{Positions: positions}
}

// seedAxis returns the start and length of [lo, hi]. An inverted range
// yields hi, which Wrap leaves in place.
func seedAxis(lo, hi float64) (start, span float64) {
	if hi < lo {
		return hi, 0
	}
	return lo, hi - lo
}

// Len returns the number of particles.
func (r *Region) Len() int { return len(r.Swarm.Positions) }

// Update advances the region by one frame.
func (r *Region) Update(f *motion.Field) {
	Advance(&r.Bounds, &r.Swarm, &r.Motion, f)
}

// Draw renders the region onto s.
func (r *Region) Draw(s Surface) {
	Render(&r.Bounds, &r.Swarm, &r.Style, s)
}

// Advance increments the frame counter and steps every particle in order,
// wrapping it back inside b. A swarm without particles is left untouched.
func Advance(b *Bounds, s *Swarm, m *Motion, f *motion.Field) {
	if len(s.Positions) == 0 {
		return
	}
	s.Frame++
	for i, p := range s.Positions {
		s.Positions[i] = b.Wrap(f.Step(m.Rule, p, s.Frame))
	}
}

// Wrap teleports p to the opposite edge on each axis it has left. The
// usable area is the rectangle shrunk by the radius on every side. Axes are
// checked independently and each check runs once, so degenerate rectangles
// resolve in constant time.
func (b *Bounds) Wrap(p vec.Vec) vec.Vec {
	r := b.Radius
	left, right := b.Left()+r, b.Right()-r
	top, bottom := b.Top()+r, b.Bottom()-r

	if p.X < left {
		p.X = right
	}
	if p.X > right {
		p.X = left
	}
	if p.Y > bottom {
		p.Y = top
	}
	if p.Y < top {
		p.Y = bottom
	}
	return p
}
