package geom

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Point is a location in the drawing plane.
type Point struct {
	X, Y float64
}

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Vec converts the point to an sdfx 2D vector for arithmetic.
func (p Point) Vec() v2.Vec { return v2.Vec{X: p.X, Y: p.Y} }

// FromVec converts an sdfx 2D vector back to a Point.
func FromVec(v v2.Vec) Point { return Point{X: v.X, Y: v.Y} }

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return b.Vec().Sub(a.Vec()).Length()
}

// Cross returns the z component of the cross product of two plane vectors.
// Its sign tells which side of a lies b.
func Cross(a, b v2.Vec) float64 {
	return a.X*b.Y - a.Y*b.X
}
