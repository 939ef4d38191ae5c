// Package intersect computes pairwise intersections between the kernel's
// 2D primitives. Segment cases are computed on the infinite line through
// the segment; restricting results to the segment's span is the caller's
// job (extend depends on the unbounded form). Arc cases reuse the circle
// math and discard points outside the swept range.
package intersect

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/draft2d/pkg/geom"
)

// Points intersects any two geometries and returns 0, 1 or 2 points.
// A clean miss is an empty result with a nil error; coincident lines and
// identical circles return geom.ErrDegenerate instead of an unbounded
// point set.
func Points(a, b geom.Geometry, eps float64) ([]geom.Point, error) {
	switch ga := a.(type) {
	case geom.Segment:
		switch gb := b.(type) {
		case geom.Segment:
			return Lines(ga, gb, eps)
		case geom.Circle:
			return LineCircle(ga, gb, eps), nil
		case geom.Arc:
			return onArc(LineCircle(ga, gb.Circle(), eps), gb, eps), nil
		}
	case geom.Circle:
		switch gb := b.(type) {
		case geom.Segment:
			return LineCircle(gb, ga, eps), nil
		case geom.Circle:
			return Circles(ga, gb, eps)
		case geom.Arc:
			pts, err := Circles(ga, gb.Circle(), eps)
			if err != nil {
				return nil, err
			}
			return onArc(pts, gb, eps), nil
		}
	case geom.Arc:
		switch gb := b.(type) {
		case geom.Segment:
			return onArc(LineCircle(gb, ga.Circle(), eps), ga, eps), nil
		case geom.Circle:
			pts, err := Circles(ga.Circle(), gb, eps)
			if err != nil {
				return nil, err
			}
			return onArc(pts, ga, eps), nil
		case geom.Arc:
			pts, err := Circles(ga.Circle(), gb.Circle(), eps)
			if err != nil {
				return nil, err
			}
			return onArc(onArc(pts, ga, eps), gb, eps), nil
		}
	}
	return nil, fmt.Errorf("%w: %s-%s", geom.ErrUnsupported, a.Kind(), b.Kind())
}

// Lines intersects the infinite lines through two segments. Parallel
// distinct lines miss cleanly; coincident lines are degenerate.
func Lines(a, b geom.Segment, eps float64) ([]geom.Point, error) {
	da := a.Delta()
	db := b.Delta()

	// The determinant of the 2x2 system is the cross product of the
	// directions. Unit directions keep the parallel test independent of
	// segment lengths.
	if math.Abs(geom.Cross(da.Normalize(), db.Normalize())) < eps {
		if a.PerpDistance(b.A) < eps {
			return nil, fmt.Errorf("%w: coincident lines", geom.ErrDegenerate)
		}
		return nil, nil
	}

	// Solve a.A + t*da = b.A + u*db for t.
	diff := b.A.Vec().Sub(a.A.Vec())
	t := geom.Cross(diff, db) / geom.Cross(da, db)
	return []geom.Point{a.PointAt(t)}, nil
}

// LineCircle intersects the infinite line through s with circle c,
// returning zero, one (tangent) or two points ordered by ascending line
// parameter.
func LineCircle(s geom.Segment, c geom.Circle, eps float64) []geom.Point {
	foot, t0 := s.PerpFoot(c.Center)
	dist := geom.Distance(foot, c.Center)

	switch {
	case dist > c.Radius+eps:
		return nil
	case geom.NearlyEqual(dist, c.Radius, eps):
		return []geom.Point{foot}
	}

	// Half-chord length, converted into the segment's parameter space.
	half := math.Sqrt(c.Radius*c.Radius-dist*dist) / s.Length()
	return []geom.Point{s.PointAt(t0 - half), s.PointAt(t0 + half)}
}

// Circles intersects two circles via the radical line. Separate or
// contained circles miss cleanly; identical circles are degenerate.
func Circles(c1, c2 geom.Circle, eps float64) ([]geom.Point, error) {
	d := geom.Distance(c1.Center, c2.Center)

	if d < eps && geom.NearlyEqual(c1.Radius, c2.Radius, eps) {
		return nil, fmt.Errorf("%w: identical circles", geom.ErrDegenerate)
	}
	if d > c1.Radius+c2.Radius+eps || d < math.Abs(c1.Radius-c2.Radius)-eps {
		return nil, nil
	}

	// a is the distance from c1's center to the radical line, from the
	// law of cosines on the triangle (center1, center2, crossing point).
	u := c2.Center.Vec().Sub(c1.Center.Vec()).MulScalar(1 / d)
	a := (c1.Radius*c1.Radius - c2.Radius*c2.Radius + d*d) / (2 * d)
	mid := c1.Center.Vec().Add(u.MulScalar(a))

	if geom.NearlyEqual(d, c1.Radius+c2.Radius, eps) ||
		geom.NearlyEqual(d, math.Abs(c1.Radius-c2.Radius), eps) {
		return []geom.Point{geom.FromVec(mid)}, nil
	}

	h2 := c1.Radius*c1.Radius - a*a
	if h2 <= 0 {
		// Range checks passed but rounding ate the chord; tangent.
		return []geom.Point{geom.FromVec(mid)}, nil
	}
	h := math.Sqrt(h2)
	n := v2.Vec{X: -u.Y, Y: u.X}
	return []geom.Point{
		geom.FromVec(mid.Add(n.MulScalar(h))),
		geom.FromVec(mid.Sub(n.MulScalar(h))),
	}, nil
}

// onArc keeps only the points whose angle lies on the arc's swept range.
func onArc(pts []geom.Point, a geom.Arc, eps float64) []geom.Point {
	var kept []geom.Point
	angTol := eps / a.Radius
	c := a.Circle()
	for _, p := range pts {
		if a.ContainsAngle(c.AngleOf(p), angTol) {
			kept = append(kept, p)
		}
	}
	return kept
}
