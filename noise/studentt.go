package noise

import (
	"fmt"
	"math"
)

// DefaultDegreesOfFreedom gives fat tails with occasional large jumps.
const DefaultDegreesOfFreedom = 1.25

// StudentT samples Student's t-distribution. It keeps no memory between
// samples; all state lives in the source.
type StudentT struct {
	nu  float64
	src Source
}

// NewStudentT creates a sampler with nu degrees of freedom.
func NewStudentT(nu float64, src Source) (*StudentT, error) {
	if !(nu > 0) || math.IsInf(nu, 1) {
		return nil, fmt.Errorf("student-t degrees of freedom %v: %w", nu, ErrInvalidParameter)
	}
	return &StudentT{nu: nu, src: src}, nil
}

// DegreesOfFreedom returns nu.
func (s *StudentT) DegreesOfFreedom() float64 { return s.nu }

// standardNormal draws N(0,1) with the Box-Muller transform.
func (s *StudentT) standardNormal() float64 {
	var u, v float64
	for u == 0 {
		u = s.src.Float64()
	}
	for v == 0 {
		v = s.src.Float64()
	}
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}

// chiSquare sums squared normals for i < nu, so a fractional nu rounds the
// term count up.
func (s *StudentT) chiSquare() float64 {
	var sum float64
	for i := 0; float64(i) < s.nu; i++ {
		n := s.standardNormal()
		sum += n * n
	}
	return sum
}

// Sample draws one value.
func (s *StudentT) Sample() float64 {
	z := s.standardNormal()
	chi := s.chiSquare()
	return z / math.Sqrt(chi/s.nu)
}

// SampleMany draws n values.
func (s *StudentT) SampleMany(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Sample()
	}
	return out
}
