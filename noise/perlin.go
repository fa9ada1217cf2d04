package noise

import "math"

// Perlin3 is classic 3D gradient noise. The z axis serves as time, so a 2D
// slice drifts smoothly as z advances.
type Perlin3 struct {
	perm [512]uint8
}

// NewPerlin3 shuffles the permutation table with src, top down.
func NewPerlin3(src Source) *Perlin3 {
	p := &Perlin3{}
	for i := 0; i < 256; i++ {
		p.perm[i] = uint8(i)
	}
	for i := 255; i > 0; i-- {
		r := int(src.Float64() * float64(i+1))
		p.perm[i], p.perm[r] = p.perm[r], p.perm[i]
	}
	copy(p.perm[256:], p.perm[:256])
	return p
}

// hash folds a lattice corner into a table entry. Corners reach index 256
// on each axis, which the doubled table absorbs.
func (p *Perlin3) hash(i, j, k int) uint8 {
	return p.perm[int(p.perm[int(p.perm[i])+j])+k]
}

// Noise3D evaluates the field at (x, y, z). Output lies roughly in [-1, 1].
func (p *Perlin3) Noise3D(x, y, z float64) float64 {
	// Lattice cell and the offset inside it
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	i, j, k := int(fx)&255, int(fy)&255, int(fz)&255
	x, y, z = x-fx, y-fy, z-fz
	u, v, w := smootherstep(x), smootherstep(y), smootherstep(z)

	// Blend the eight corners along x, then y, then z
	var plane [2]float64
	for dz := 0; dz < 2; dz++ {
		oz := z - float64(dz)
		var row [2]float64
		for dy := 0; dy < 2; dy++ {
			oy := y - float64(dy)
			c0 := gradDot(p.hash(i, j+dy, k+dz), x, oy, oz)
			c1 := gradDot(p.hash(i+1, j+dy, k+dz), x-1, oy, oz)
			row[dy] = mix(c0, c1, u)
		}
		plane[dz] = mix(row[0], row[1], v)
	}
	return mix(plane[0], plane[1], w)
}

// Noise2D samples the z = 0 slice.
func (p *Perlin3) Noise2D(x, y float64) float64 {
	return p.Noise3D(x, y, 0)
}

// smootherstep is 6t⁵ - 15t⁴ + 10t³.
func smootherstep(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func mix(a, b, t float64) float64 {
	return a + t*(b-a)
}

// gradDot picks one of twelve edge gradients (padded to sixteen) from h and
// dots it with the offset.
func gradDot(h uint8, x, y, z float64) float64 {
	h &= 15
	a := x
	if h >= 8 {
		a = y
	}
	b := y
	if h >= 4 {
		b = z
		if h == 12 || h == 14 {
			b = x
		}
	}
	if h&1 != 0 {
		a = -a
	}
	if h&2 != 0 {
		b = -b
	}
	return a + b
}
