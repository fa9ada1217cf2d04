package region

import (
	"image/color"
	"math"
	"testing"

	"github.com/pthm-cable/swarms/motion"
	"github.com/pthm-cable/swarms/noise"
	"github.com/pthm-cable/swarms/settings"
	"github.com/pthm-cable/swarms/vec"
)

// recorder is a Surface that remembers every call.
type recorder struct {
	clears  []color.RGBA
	rects   [][4]float64
	rectCol []color.RGBA
	circles [][3]float64
	circCol []color.RGBA
}

func (r *recorder) Clear(c color.RGBA) { r.clears = append(r.clears, c) }

func (r *recorder) FillRect(x, y, w, h float64, c color.RGBA) {
	r.rects = append(r.rects, [4]float64{x, y, w, h})
	r.rectCol = append(r.rectCol, c)
}

func (r *recorder) FillCircle(cx, cy, rad float64, c color.RGBA) {
	r.circles = append(r.circles, [3]float64{cx, cy, rad})
	r.circCol = append(r.circCol, c)
}

func (r *recorder) calls() int { return len(r.clears) + len(r.rects) + len(r.circles) }

func newField(t *testing.T, seed int64) *motion.Field {
	t.Helper()
	f, err := motion.NewField(noise.NewSource(seed), noise.DefaultDegreesOfFreedom, 0.01)
	if err != nil {
		t.Fatalf("NewField: %v", err)
	}
	return f
}

func visible(kind motion.Kind, x, y, w, h, radius float64, count int) settings.RegionSettings {
	s := settings.DefaultDefaults().Settings()
	s.Visible = true
	s.X, s.Y, s.Width, s.Height = x, y, w, h
	s.Radius = radius
	s.Count = count
	s.Motion = kind
	return s
}

func TestNewBounds_Convention(t *testing.T) {
	b := NewBounds(10, 20, 300, 200, 1)
	if b.TopRight.Y >= b.BottomLeft.Y {
		t.Errorf("expected TopRight.Y < BottomLeft.Y, got %f >= %f", b.TopRight.Y, b.BottomLeft.Y)
	}
	if b.BottomLeft != vec.New(10, 220) || b.TopRight != vec.New(310, 20) {
		t.Errorf("unexpected corners %v %v", b.BottomLeft, b.TopRight)
	}
	if b.Width() != 300 || b.Height() != 200 {
		t.Errorf("expected 300x200, got %fx%f", b.Width(), b.Height())
	}
}

func TestNew_SeedsInside(t *testing.T) {
	r := New(visible(motion.KindRandomWalk, 50, 60, 100, 40, 1, 500), noise.NewSource(1))
	if r.Len() != 500 {
		t.Fatalf("expected 500 particles, got %d", r.Len())
	}
	for i, p := range r.Swarm.Positions {
		if p.X < 50 || p.X > 150 || p.Y < 60 || p.Y > 100 {
			t.Fatalf("particle %d seeded outside: %v", i, p)
		}
	}
	if r.Swarm.Frame != 0 {
		t.Errorf("expected frame 0, got %d", r.Swarm.Frame)
	}
}

func TestSeed_StillNeverMoves(t *testing.T) {
	f := newField(t, 1)
	for seed := int64(1); seed <= 100; seed++ {
		r := New(visible(motion.KindStill, 0, 0, 100, 100, 1, 10), noise.NewSource(seed))
		initial := append([]vec.Vec(nil), r.Swarm.Positions...)
		for i := 0; i < 5; i++ {
			r.Update(f)
		}
		for i, p := range r.Swarm.Positions {
			if p != initial[i] {
				t.Fatalf("seed %d particle %d: seeded %v, after updates %v", seed, i, initial[i], p)
			}
		}
	}
}

func TestSeed_NarrowAxisCollapsesOntoWrapLine(t *testing.T) {
	b := NewBounds(0, 0, 1, 100, 5)
	sw := Seed(&b, 20, noise.NewSource(2))
	for i, p := range sw.Positions {
		if p.X != -4 {
			t.Errorf("particle %d: expected x on wrap line -4, got %v", i, p.X)
		}
		if p.Y < 5 || p.Y > 95 {
			t.Errorf("particle %d: expected y in [5, 95], got %v", i, p.Y)
		}
		if got := b.Wrap(p); got != p {
			t.Errorf("particle %d moved on wrap: %v -> %v", i, p, got)
		}
	}
}

func TestNew_InvisibleIsEmpty(t *testing.T) {
	s := visible(motion.KindRandomWalk, 0, 0, 100, 100, 1, 100)
	s.Visible = false
	r := New(s, noise.NewSource(1))
	if r.Len() != 0 || r.Bounds.Width() != 0 || r.Bounds.Height() != 0 {
		t.Errorf("expected empty region, got %d particles %fx%f", r.Len(), r.Bounds.Width(), r.Bounds.Height())
	}
}

func TestUpdate_Containment(t *testing.T) {
	kinds := []motion.Kind{
		motion.KindRandomWalk,
		motion.KindHeavyTailedWalk,
		motion.KindSinusoidHorizontal,
		motion.KindSinusoidVertical,
		motion.KindSinusoidBoth,
		motion.KindConstantDirection,
		motion.KindGradientFlowA,
		motion.KindGradientFlowB,
	}
	f := newField(t, 2)

	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			s := visible(k, 100, 100, 80, 60, 2, 200)
			s.DirX, s.DirY = 7, -3
			r := New(s, noise.NewSource(3))
			for frame := 0; frame < 200; frame++ {
				r.Update(f)
				for i, p := range r.Swarm.Positions {
					if p.X < 102 || p.X > 178 || p.Y < 102 || p.Y > 158 {
						t.Fatalf("frame %d particle %d escaped: %v", frame, i, p)
					}
				}
			}
		})
	}
}

func TestUpdate_StillIsBitIdentical(t *testing.T) {
	r := New(visible(motion.KindStill, 0, 0, 100, 100, 1, 10), noise.NewSource(4))
	initial := append([]vec.Vec(nil), r.Swarm.Positions...)

	f := newField(t, 5)
	for i := 0; i < 5; i++ {
		r.Update(f)
	}

	if r.Len() != 10 {
		t.Fatalf("expected 10 particles, got %d", r.Len())
	}
	for i, p := range r.Swarm.Positions {
		if p != initial[i] {
			t.Errorf("particle %d moved: %v -> %v", i, initial[i], p)
		}
		if p.X < 1 || p.X > 99 || p.Y < 1 || p.Y > 99 {
			t.Errorf("particle %d out of bounds: %v", i, p)
		}
	}
	if r.Swarm.Frame != 5 {
		t.Errorf("expected frame 5, got %d", r.Swarm.Frame)
	}
}

func TestUpdate_ConstantDirectionDisplacement(t *testing.T) {
	s := visible(motion.KindConstantDirection, 0, 0, 1000, 1000, 1, 50)
	s.DirX, s.DirY = 0.75, -0.25
	r := New(s, noise.NewSource(6))
	// Keep particles well away from the edges so no wrap happens.
	for i := range r.Swarm.Positions {
		r.Swarm.Positions[i] = vec.New(400+float64(i), 500)
	}
	before := append([]vec.Vec(nil), r.Swarm.Positions...)

	r.Update(newField(t, 7))

	for i, p := range r.Swarm.Positions {
		want := before[i].Add(vec.New(0.75, -0.25))
		if p != want {
			t.Errorf("particle %d: expected %v, got %v", i, want, p)
		}
	}
}

func TestWrap_Teleports(t *testing.T) {
	b := NewBounds(0, 0, 100, 100, 1)
	tests := []struct {
		name string
		in   vec.Vec
		want vec.Vec
	}{
		{"left", vec.New(-5, 50), vec.New(99, 50)},
		{"just inside left", vec.New(1, 50), vec.New(1, 50)},
		{"right", vec.New(100.5, 50), vec.New(1, 50)},
		{"bottom", vec.New(50, 130), vec.New(50, 1)},
		{"top", vec.New(50, 0.5), vec.New(50, 99)},
		{"both axes", vec.New(-3, 200), vec.New(99, 1)},
		{"inside", vec.New(42, 17), vec.New(42, 17)},
	}
	for _, tc := range tests {
		if got := b.Wrap(tc.in); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestWrap_LeftCrossingDoesNotReflect(t *testing.T) {
	b := NewBounds(0, 0, 100, 100, 1)
	for _, d := range []float64{0.01, 1, 30, 99} {
		got := b.Wrap(vec.New(1-d, 50))
		if got.X != 99 {
			t.Errorf("crossing by %f: expected x=99, got %f", d, got.X)
		}
	}
}

func TestWrap_DegenerateRectangle(t *testing.T) {
	b := NewBounds(10, 10, 0, 0, 0)
	got := b.Wrap(vec.New(500, -500))
	if got != vec.New(10, 10) {
		t.Errorf("expected collapse onto (10, 10), got %v", got)
	}

	// Radius larger than half the span must still terminate.
	b = NewBounds(0, 0, 1, 1, 5)
	got = b.Wrap(vec.New(-1, 3))
	if math.IsNaN(got.X) || math.IsNaN(got.Y) {
		t.Errorf("expected finite result, got %v", got)
	}
}

func TestZeroCount_NoOp(t *testing.T) {
	r := New(visible(motion.KindRandomWalk, 0, 0, 100, 100, 1, 0), noise.NewSource(1))
	if r.Len() != 0 {
		t.Fatalf("expected no particles, got %d", r.Len())
	}
	r.Update(newField(t, 1))
	if r.Swarm.Frame != 0 {
		t.Errorf("expected update to be a no-op, frame=%d", r.Swarm.Frame)
	}
	rec := &recorder{}
	r.Draw(rec)
	if rec.calls() != 0 {
		t.Errorf("expected no draw calls, got %d", rec.calls())
	}
}

func TestEmpty_Idempotent(t *testing.T) {
	a := Empty()
	f := newField(t, 1)
	rec := &recorder{}
	for i := 0; i < 3; i++ {
		a.Update(f)
		a.Draw(rec)
	}
	b := Empty()
	if a.Len() != 0 || a.Swarm.Frame != b.Swarm.Frame || a.Bounds != b.Bounds || a.Style != b.Style {
		t.Errorf("empty region changed: %+v vs %+v", a, b)
	}
	if rec.calls() != 0 {
		t.Errorf("expected no draw calls, got %d", rec.calls())
	}
}

func TestDraw_OverlayThenParticles(t *testing.T) {
	s := visible(motion.KindStill, 10, 20, 30, 40, 3, 5)
	s.Color = color.RGBA{R: 200, G: 100, B: 50, A: 255}
	s.Trail = 20
	r := New(s, noise.NewSource(1))

	rec := &recorder{}
	r.Draw(rec)

	if len(rec.rects) != 1 {
		t.Fatalf("expected 1 overlay, got %d", len(rec.rects))
	}
	if rec.rects[0] != [4]float64{10, 20, 30, 40} {
		t.Errorf("unexpected overlay rect %v", rec.rects[0])
	}
	wantAlpha := uint8(math.Round(math.Exp(-1) * 255))
	if rec.rectCol[0] != (color.RGBA{A: wantAlpha}) {
		t.Errorf("expected black overlay alpha %d, got %v", wantAlpha, rec.rectCol[0])
	}
	if len(rec.circles) != 5 {
		t.Fatalf("expected 5 circles, got %d", len(rec.circles))
	}
	for i, c := range rec.circles {
		p := r.Swarm.Positions[i]
		if c != [3]float64{p.X, p.Y, 3} {
			t.Errorf("circle %d: expected %v r=3, got %v", i, p, c)
		}
		if rec.circCol[i] != s.Color {
			t.Errorf("circle %d: expected colour %v, got %v", i, s.Color, rec.circCol[i])
		}
	}
}

func TestTrailAlpha(t *testing.T) {
	if TrailAlpha(0) != 255 {
		t.Errorf("expected opaque overlay at trail 0, got %d", TrailAlpha(0))
	}
	if a := TrailAlpha(100); a != 2 {
		t.Errorf("expected alpha 2 at trail 100, got %d", a)
	}
	if TrailAlpha(10) <= TrailAlpha(60) {
		t.Error("expected overlay opacity to fall as trail grows")
	}
	if TrailAlpha(-50) != 255 {
		t.Errorf("expected clamp to opaque, got %d", TrailAlpha(-50))
	}
}

func TestScenario_StillRegion(t *testing.T) {
	r := Region{
		Bounds: Bounds{BottomLeft: vec.New(0, 100), TopRight: vec.New(100, 0), Radius: 1},
		Motion: Motion{Rule: motion.Still{}},
		Style:  Style{Color: settings.White, Trail: 50},
	}
	r.Swarm = Seed(&r.Bounds, 10, noise.NewSource(8))
	initial := append([]vec.Vec(nil), r.Swarm.Positions...)

	f := newField(t, 9)
	for i := 0; i < 5; i++ {
		r.Update(f)
	}
	for i, p := range r.Swarm.Positions {
		if p != initial[i] {
			t.Errorf("particle %d moved: %v -> %v", i, initial[i], p)
		}
		if p.X < 1 || p.X > 99 || p.Y < 1 || p.Y > 99 {
			t.Errorf("particle %d out of bounds: %v", i, p)
		}
	}
}

func BenchmarkAdvance(b *testing.B) {
	f, _ := motion.NewField(noise.NewSource(1), noise.DefaultDegreesOfFreedom, 0.01)
	s := settings.DefaultDefaults().Settings()
	s.Visible = true
	s.Count = 10000
	s.Motion = motion.KindGradientFlowA
	r := New(s, noise.NewSource(2))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Update(f)
	}
}
