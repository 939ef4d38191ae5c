package edit

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/draft2d/pkg/geom"
	"github.com/chazu/draft2d/pkg/intersect"
)

// FilletResult carries the two trimmed inputs and the tangent arc that
// now connects them. A circle input passes through untrimmed: a closed
// curve has no piece to discard.
type FilletResult struct {
	A, B   geom.Geometry
	Fillet geom.Arc
}

// Fillet rounds the corner region nearest to pick with an arc of the
// given radius tangent to both inputs. Candidate arc centers are found by
// intersecting the center loci (lines offset by the radius for a segment,
// concentric circles for a circle; up to four solutions for two lines);
// the candidate whose tangent points lie nearest to pick wins, and the
// inputs are trimmed back to their tangent points. Defined for segments
// and circles.
func Fillet(a, b geom.Geometry, radius float64, pick geom.Point, eps float64) (FilletResult, error) {
	if radius <= eps {
		return FilletResult{}, fmt.Errorf("%w: fillet radius %g", geom.ErrInfeasibleRadius, radius)
	}
	if err := filletable(a); err != nil {
		return FilletResult{}, err
	}
	if err := filletable(b); err != nil {
		return FilletResult{}, err
	}

	type candidate struct {
		center geom.Point
		ta, tb geom.Point
		score  float64
	}
	var best *candidate

	for _, la := range centerLoci(a, radius, eps) {
		for _, lb := range centerLoci(b, radius, eps) {
			pts, err := intersect.Points(la, lb, eps)
			if err != nil {
				// Coincident loci (e.g. parallel inputs a diameter
				// apart) yield no usable discrete center.
				continue
			}
			for _, o := range pts {
				ta, ok := tangentOn(a, o, eps)
				if !ok {
					continue
				}
				tb, ok := tangentOn(b, o, eps)
				if !ok {
					continue
				}
				c := candidate{
					center: o,
					ta:     ta,
					tb:     tb,
					score:  geom.Distance(ta, pick) + geom.Distance(tb, pick),
				}
				if best == nil || c.score < best.score {
					best = &c
				}
			}
		}
	}
	if best == nil {
		return FilletResult{}, fmt.Errorf("%w: no tangent circle of radius %g fits both inputs", geom.ErrInfeasibleRadius, radius)
	}

	trimmedA, err := trimToTangent(a, best.ta, pick, eps)
	if err != nil {
		return FilletResult{}, err
	}
	trimmedB, err := trimToTangent(b, best.tb, pick, eps)
	if err != nil {
		return FilletResult{}, err
	}

	return FilletResult{
		A:      trimmedA,
		B:      trimmedB,
		Fillet: connectingArc(best.center, radius, best.ta, best.tb),
	}, nil
}

// filletable rejects geometry kinds fillet is not defined for.
func filletable(g geom.Geometry) error {
	switch g.(type) {
	case geom.Segment, geom.Circle:
		return nil
	}
	return fmt.Errorf("%w: fillet of %s", geom.ErrUnsupported, g.Kind())
}

// centerLoci returns the loci of points at distance r from g: the two
// parallel offset lines of a segment, or the concentric circles of radius
// R±r of a circle (the inner one only when it stays positive).
func centerLoci(g geom.Geometry, r, eps float64) []geom.Geometry {
	switch s := g.(type) {
	case geom.Segment:
		n := perp(s.Dir()).MulScalar(r)
		return []geom.Geometry{
			geom.Segment{A: geom.FromVec(s.A.Vec().Add(n)), B: geom.FromVec(s.B.Vec().Add(n))},
			geom.Segment{A: geom.FromVec(s.A.Vec().Sub(n)), B: geom.FromVec(s.B.Vec().Sub(n))},
		}
	case geom.Circle:
		out := []geom.Geometry{geom.Circle{Center: s.Center, Radius: s.Radius + r}}
		if s.Radius-r > eps {
			out = append(out, geom.Circle{Center: s.Center, Radius: s.Radius - r})
		}
		return out
	}
	return nil
}

// tangentOn returns the point where a fillet circle centered at o touches
// g: the perpendicular foot for a segment (usable only if it falls within
// the segment), or the point on a circle along the ray between the
// centers.
func tangentOn(g geom.Geometry, o geom.Point, eps float64) (geom.Point, bool) {
	switch s := g.(type) {
	case geom.Segment:
		p, t := s.PerpFoot(o)
		slack := eps / s.Length()
		if t < -slack || t > 1+slack {
			return geom.Point{}, false
		}
		return p, true
	case geom.Circle:
		d := o.Vec().Sub(s.Center.Vec())
		if d.Length() < eps {
			return geom.Point{}, false
		}
		return geom.FromVec(s.Center.Vec().Add(d.Normalize().MulScalar(s.Radius))), true
	}
	return geom.Point{}, false
}

// trimToTangent cuts a segment input back to its tangent point, keeping
// the side away from the pick. Circles pass through whole.
func trimToTangent(g geom.Geometry, tangent, pick geom.Point, eps float64) (geom.Geometry, error) {
	s, ok := g.(geom.Segment)
	if !ok {
		return g, nil
	}

	tCut := s.ParamOf(tangent)
	tPick := s.ParamOf(pick)

	var kept geom.Segment
	var err error
	if tPick <= tCut {
		kept, err = geom.NewSegment(tangent, s.B, eps)
	} else {
		kept, err = geom.NewSegment(s.A, tangent, eps)
	}
	if err != nil && errors.Is(err, geom.ErrDegenerate) {
		return nil, fmt.Errorf("%w: tangency at a segment end leaves nothing to keep", geom.ErrInfeasibleRadius)
	}
	if err != nil {
		return nil, err
	}
	return kept, nil
}

// connectingArc builds the fillet arc from one tangent point to the
// other. Of the two sweeps around the fillet circle the shorter is the
// tangent one; ties go counter-clockwise.
func connectingArc(center geom.Point, radius float64, ta, tb geom.Point) geom.Arc {
	c := geom.Circle{Center: center, Radius: radius}
	start := c.AngleOf(ta)
	end := c.AngleOf(tb)
	dir := geom.CCW
	if geom.NormalizeAngle(end-start) > math.Pi {
		dir = geom.CW
	}
	return geom.Arc{Center: center, Radius: radius, Start: start, End: end, Dir: dir}
}
