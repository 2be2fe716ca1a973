package uvmend

import "math"

// UV represents a 2D texture coordinate attached to a single face corner.
// UVs are per corner, not per vertex: the same mesh vertex may carry
// different UVs in different faces.
type UV struct {
	U, V float64
}

// UVxy is a convenience function to create a UV.
func UVxy(u, v float64) UV {
	return UV{U: u, V: v}
}

// Add returns the sum of two UV coordinates.
func (a UV) Add(b UV) UV {
	return UV{U: a.U + b.U, V: a.V + b.V}
}

// Sub returns the difference of two UV coordinates.
func (a UV) Sub(b UV) UV {
	return UV{U: a.U - b.U, V: a.V - b.V}
}

// Mul returns the coordinate scaled by a scalar.
func (a UV) Mul(s float64) UV {
	return UV{U: a.U * s, V: a.V * s}
}

// Length returns the distance of the coordinate from the UV origin.
func (a UV) Length() float64 {
	return math.Sqrt(a.U*a.U + a.V*a.V)
}

// Distance returns the distance between two UV coordinates.
func (a UV) Distance(b UV) float64 {
	return a.Sub(b).Length()
}

// Approx reports whether two UV coordinates are within tol of each other.
func (a UV) Approx(b UV, tol float64) bool {
	return a.Distance(b) <= tol
}
