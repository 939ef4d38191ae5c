package geom

import (
	"fmt"
	"math"
)

// Circle is a full circle with a strictly positive radius.
type Circle struct {
	Center Point
	Radius float64
}

// NewCircle constructs a Circle, rejecting non-positive radii.
func NewCircle(center Point, radius, eps float64) (Circle, error) {
	if radius <= eps {
		return Circle{}, fmt.Errorf("%w: circle radius %g", ErrDegenerate, radius)
	}
	return Circle{Center: center, Radius: radius}, nil
}

func (c Circle) Kind() Kind { return KindCircle }
func (c Circle) geometry()  {}

// Bounds returns the axis-aligned bounding box of the circle.
func (c Circle) Bounds() (min, max Point) {
	min = Pt(c.Center.X-c.Radius, c.Center.Y-c.Radius)
	max = Pt(c.Center.X+c.Radius, c.Center.Y+c.Radius)
	return min, max
}

// PointAtAngle returns the point on the circle at angle theta, measured
// counter-clockwise from the +X axis.
func (c Circle) PointAtAngle(theta float64) Point {
	return Pt(c.Center.X+c.Radius*math.Cos(theta), c.Center.Y+c.Radius*math.Sin(theta))
}

// AngleOf returns the angle of p as seen from the center, normalized to
// [0, 2π). p need not lie on the circle.
func (c Circle) AngleOf(p Point) float64 {
	return NormalizeAngle(math.Atan2(p.Y-c.Center.Y, p.X-c.Center.X))
}
