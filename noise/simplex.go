package noise

import "math"

var (
	skew2   = 0.5 * (math.Sqrt(3) - 1)
	unskew2 = (3 - math.Sqrt(3)) / 6
)

// grad2 holds the 12 gradient directions as interleaved x, y pairs.
var grad2 = [24]float64{
	1, 1, -1, 1, 1, -1, -1, -1,
	1, 0, -1, 0, 1, 0, -1, 0,
	0, 1, 0, -1, 0, 1, 0, -1,
}

// Simplex2 is a 2D simplex noise field. It tiles every 256 lattice units and
// is deterministic for a fixed permutation table.
type Simplex2 struct {
	perm  [512]uint8
	gradX [512]float64
	gradY [512]float64
}

// NewSimplex2 builds the permutation table by shuffling with src.
func NewSimplex2(src Source) *Simplex2 {
	s := &Simplex2{}
	for i := 0; i < 256; i++ {
		s.perm[i] = uint8(i)
	}
	for i := 0; i < 255; i++ {
		r := i + int(src.Float64()*float64(256-i))
		s.perm[i], s.perm[r] = s.perm[r], s.perm[i]
	}
	for i := 256; i < 512; i++ {
		s.perm[i] = s.perm[i-256]
	}
	for i, p := range s.perm {
		g := int(p%12) * 2
		s.gradX[i] = grad2[g]
		s.gradY[i] = grad2[g+1]
	}
	return s
}

// Noise2D evaluates the field at (x, y). Output lies roughly in [-1, 1].
func (s *Simplex2) Noise2D(x, y float64) float64 {
	// Skew into simplex cell space
	k := (x + y) * skew2
	i := int(math.Floor(x + k))
	j := int(math.Floor(y + k))
	t := float64(i+j) * unskew2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	// Pick the triangle containing the point
	i1, j1 := 0, 1
	if x0 > y0 {
		i1, j1 = 1, 0
	}

	x1 := x0 - float64(i1) + unskew2
	y1 := y0 - float64(j1) + unskew2
	x2 := x0 - 1 + 2*unskew2
	y2 := y0 - 1 + 2*unskew2

	ii := i & 255
	jj := j & 255

	n0 := s.corner(ii+int(s.perm[jj]), x0, y0)
	n1 := s.corner(ii+i1+int(s.perm[jj+j1]), x1, y1)
	n2 := s.corner(ii+1+int(s.perm[jj+1]), x2, y2)

	return 70 * (n0 + n1 + n2)
}

func (s *Simplex2) corner(gi int, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t < 0 {
		return 0
	}
	t *= t
	return t * t * (s.gradX[gi]*x + s.gradY[gi]*y)
}
