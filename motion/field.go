package motion

import (
	"fmt"
	"math"

	"github.com/pthm-cable/swarms/noise"
	"github.com/pthm-cable/swarms/vec"
)

// Step constants.
const (
	walkSpan = 3.0 // random-walk step is walkSpan*(0.5-u)

	waveLength = 100.0

	flowScale   = 0.02
	flowMag     = 1.5
	jumpChance  = 0.1
	jumpSpan    = 40.0 // jump is jumpSpan*(u-0.5), so at most ±20
	flowOffsetX = 3.117
	flowOffsetY = 2.713

	flowTimeScale = 49.37
)

// Field bundles the random stream and noise generators every rule draws
// from. It is shared by all regions, so stepping a stochastic rule advances
// the stream for everyone.
type Field struct {
	Rand  noise.Source
	T     *noise.StudentT
	FlowA *noise.Simplex2
	FlowB *noise.Perlin3

	// Jitter is the width of the uniform time offset added to the
	// gradient-flow-B lookup.
	Jitter float64
}

// NewField builds all generators from src. The noise tables are shuffled
// with src before any particle is seeded.
func NewField(src noise.Source, nu, jitter float64) (*Field, error) {
	t, err := noise.NewStudentT(nu, src)
	if err != nil {
		return nil, fmt.Errorf("building motion field: %w", err)
	}
	return &Field{
		Rand:   src,
		T:      t,
		FlowA:  noise.NewSimplex2(src),
		FlowB:  noise.NewPerlin3(src),
		Jitter: jitter,
	}, nil
}

// Step applies rule r to position p. frame is the owning region's frame
// counter.
func (f *Field) Step(r Rule, p vec.Vec, frame uint64) vec.Vec {
	switch r := r.(type) {
	case Still:
		return p
	case RandomWalk:
		dx := walkSpan * (0.5 - f.Rand.Float64())
		dy := walkSpan * (0.5 - f.Rand.Float64())
		return p.Add(vec.New(dx, dy))
	case HeavyTailedWalk:
		dx := f.T.Sample()
		return p.Add(vec.New(dx, f.T.Sample()))
	case SinusoidHorizontal:
		return p.Add(vec.New(1, math.Cos(p.X/waveLength)))
	case SinusoidVertical:
		return p.Add(vec.New(math.Cos(p.Y/waveLength), 1))
	case SinusoidBoth:
		return p.Add(vec.New(math.Cos(p.Y/waveLength), math.Cos(p.X/waveLength)))
	case ConstantDirection:
		return p.Add(vec.New(r.DX, r.DY))
	case GradientFlowA:
		return p.Add(f.flowA(p))
	case GradientFlowB:
		return p.Add(f.flowB(p, frame))
	default:
		return p
	}
}

// flowA samples the simplex field. One draw decides whether this step
// jumps; when it does both axes jump.
func (f *Field) flowA(p vec.Vec) vec.Vec {
	var jx, jy float64
	if f.Rand.Float64() < jumpChance {
		jx = jumpSpan * (f.Rand.Float64() - 0.5)
		jy = jumpSpan * (f.Rand.Float64() - 0.5)
	}
	sx, sy := flowScale*p.X, flowScale*p.Y
	nx := f.FlowA.Noise2D(sx, sy)
	ny := f.FlowA.Noise2D(sx+flowOffsetX, sy+flowOffsetY)
	return vec.New(jx+flowMag*nx, jy+flowMag*ny)
}

func (f *Field) flowB(p vec.Vec, frame uint64) vec.Vec {
	z := float64(frame) / flowTimeScale
	if f.Jitter > 0 {
		z += f.Jitter * (f.Rand.Float64() - 0.5)
	}
	theta := math.Pi * f.FlowB.Noise3D(flowScale*p.X, flowScale*p.Y, z)
	return vec.New(math.Cos(theta), math.Sin(theta))
}
