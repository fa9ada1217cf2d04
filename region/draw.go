package region

import (
	"image/color"
	"math"
)

// Surface is the drawing target. FillRect and FillCircle blend with what is
// already there using the colour's alpha.
type Surface interface {
	Clear(c color.RGBA)
	FillRect(x, y, w, h float64, c color.RGBA)
	FillCircle(cx, cy, r float64, c color.RGBA)
}

// TrailAlpha is the opacity of the black overlay painted over a region each
// frame. Lower trail values give a more opaque overlay, so older frames fade
// faster.
func TrailAlpha(trail float64) uint8 {
	a := math.Exp(-trail / 20)
	return uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
}

// Render partially erases the region's rectangle and then draws every
// particle. A swarm without particles draws nothing.
func Render(b *Bounds, s *Swarm, st *Style, surf Surface) {
	if len(s.Positions) == 0 {
		return
	}
	surf.FillRect(b.Left(), b.Top(), b.Width(), b.Height(), color.RGBA{A: TrailAlpha(st.Trail)})
	for _, p := range s.Positions {
		surf.FillCircle(p.X, p.Y, b.Radius, st.Color)
	}
}
