// Package vec provides the 2D vector used for particle positions.
package vec

import "gonum.org/v1/gonum/spatial/r2"

// Vec is an immutable 2D vector. Every operation returns a new value.
type Vec struct {
	X, Y float64
}

// New returns the vector (x, y).
func New(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

func (v Vec) r2() r2.Vec   { return r2.Vec{X: v.X, Y: v.Y} }
func from(p r2.Vec) Vec    { return Vec{X: p.X, Y: p.Y} }
func (v Vec) isZero() bool { return v.X == 0 && v.Y == 0 }

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return from(r2.Add(v.r2(), o.r2())) }

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return from(r2.Sub(v.r2(), o.r2())) }

// Mul scales v by s.
func (v Vec) Mul(s float64) Vec { return from(r2.Scale(s, v.r2())) }

// Dot returns the dot product of v and o.
func (v Vec) Dot(o Vec) float64 { return r2.Dot(v.r2(), o.r2()) }

// Mag returns the Euclidean length of v.
func (v Vec) Mag() float64 { return r2.Norm(v.r2()) }

// Normalize returns v scaled to unit length. The zero vector normalizes to
// itself.
func (v Vec) Normalize() Vec {
	if v.isZero() {
		return v
	}
	return from(r2.Unit(v.r2()))
}

// WithMag returns a vector with the direction of v and length mag.
func (v Vec) WithMag(mag float64) Vec {
	return v.Normalize().Mul(mag)
}

// Distance returns the Euclidean distance between v and o.
func (v Vec) Distance(o Vec) float64 { return v.Sub(o).Mag() }

// Reverse returns -v.
func (v Vec) Reverse() Vec { return Vec{X: -v.X, Y: -v.Y} }
