package game

import (
	"image/color"

	"github.com/pthm-cable/swarms/motion"
	"github.com/pthm-cable/swarms/settings"
)

// DemoSnapshot lays out a 2x2 grid of visible regions over a width x
// height surface, each with a different rule. The remaining slots are
// invisible defaults.
func DemoSnapshot(d settings.Defaults, width, height float64) settings.Snapshot {
	s := settings.DefaultSnapshot(d)

	cells := []struct {
		kind  motion.Kind
		color color.RGBA
		trail float64
	}{
		{motion.KindHeavyTailedWalk, color.RGBA{R: 255, G: 200, B: 120, A: 255}, 40},
		{motion.KindGradientFlowA, color.RGBA{R: 120, G: 200, B: 255, A: 255}, 70},
		{motion.KindGradientFlowB, color.RGBA{R: 200, G: 255, B: 160, A: 255}, 80},
		{motion.KindSinusoidBoth, color.RGBA{R: 255, G: 140, B: 200, A: 255}, 60},
	}

	w, h := width/2, height/2
	for i, c := range cells {
		r := &s[i]
		r.Visible = true
		r.X = float64(i%2) * w
		r.Y = float64(i/2) * h
		r.Width, r.Height = w, h
		r.Motion = c.kind
		r.Color = c.color
		r.Trail = c.trail
	}
	return s
}
