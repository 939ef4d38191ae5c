package geom

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Segment is a straight line segment between two distinct endpoints.
// Many operations (intersection, extend) treat it as a stand-in for the
// infinite line through A and B; the parametric form is A + t*(B-A), with
// t=0 at A and t=1 at B.
type Segment struct {
	A, B Point
}

// NewSegment constructs a Segment. A segment collapsing to a point is a
// construction error, rejected here so no algorithm ever sees one.
func NewSegment(a, b Point, eps float64) (Segment, error) {
	if Distance(a, b) <= eps {
		return Segment{}, fmt.Errorf("%w: segment endpoints coincide at (%g, %g)", ErrDegenerate, a.X, a.Y)
	}
	return Segment{A: a, B: b}, nil
}

func (s Segment) Kind() Kind { return KindSegment }
func (s Segment) geometry()  {}

// Bounds returns the axis-aligned bounding box of the segment.
func (s Segment) Bounds() (min, max Point) {
	min = Pt(math.Min(s.A.X, s.B.X), math.Min(s.A.Y, s.B.Y))
	max = Pt(math.Max(s.A.X, s.B.X), math.Max(s.A.Y, s.B.Y))
	return min, max
}

// Length returns the segment length.
func (s Segment) Length() float64 { return Distance(s.A, s.B) }

// Delta returns the un-normalized direction vector B-A.
func (s Segment) Delta() v2.Vec { return s.B.Vec().Sub(s.A.Vec()) }

// Dir returns the unit direction vector from A toward B.
func (s Segment) Dir() v2.Vec { return s.Delta().Normalize() }

// PointAt returns the point at parameter t on the infinite line through
// the segment.
func (s Segment) PointAt(t float64) Point {
	return FromVec(s.A.Vec().Add(s.Delta().MulScalar(t)))
}

// Midpoint returns the point halfway between the endpoints.
func (s Segment) Midpoint() Point { return s.PointAt(0.5) }

// ParamOf projects p onto the infinite line through the segment and
// returns the projection parameter. The result is not clamped to [0,1].
func (s Segment) ParamOf(p Point) float64 {
	d := s.Delta()
	return p.Vec().Sub(s.A.Vec()).Dot(d) / d.Dot(d)
}

// PerpDistance returns the perpendicular distance from p to the infinite
// line through the segment.
func (s Segment) PerpDistance(p Point) float64 {
	return math.Abs(Cross(s.Dir(), p.Vec().Sub(s.A.Vec())))
}

// PerpFoot returns the perpendicular foot of p on the infinite line
// through the segment, plus its projection parameter.
func (s Segment) PerpFoot(p Point) (Point, float64) {
	t := s.ParamOf(p)
	return s.PointAt(t), t
}

// PointOnSegment reports whether p lies on the segment itself: the
// projection parameter must fall in [0,1] (inclusive, within eps scaled to
// parameter space) and the perpendicular distance must be below eps.
func PointOnSegment(p Point, s Segment, eps float64) bool {
	t := s.ParamOf(p)
	slack := eps / s.Length()
	if t < -slack || t > 1+slack {
		return false
	}
	return s.PerpDistance(p) < eps
}
