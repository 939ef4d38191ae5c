package geom

import "gonum.org/v1/gonum/floats/scalar"

// Epsilon is the default comparison tolerance in plane units. Callers
// working in coarser unit scales (feet, pixels) should pass their own
// value; every kernel function takes the tolerance explicitly.
const Epsilon = 1e-9

// NearlyEqual reports whether a and b differ by less than eps.
// Floating point values in the kernel are never compared exactly.
func NearlyEqual(a, b, eps float64) bool {
	return scalar.EqualWithinAbs(a, b, eps)
}

// PointsEqual reports whether both coordinates of a and b agree within eps.
func PointsEqual(a, b Point, eps float64) bool {
	return NearlyEqual(a.X, b.X, eps) && NearlyEqual(a.Y, b.Y, eps)
}
