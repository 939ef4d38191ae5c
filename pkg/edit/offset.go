package edit

import (
	"fmt"

	"github.com/chazu/draft2d/pkg/geom"
)

// Offset displaces g by distance toward side. A segment is translated
// along its perpendicular, choosing the sign that moves it toward side; a
// circle becomes a concentric circle grown or shrunk depending on whether
// side lies outside or inside it. Defined for segments and circles.
func Offset(g geom.Geometry, distance float64, side geom.Point, eps float64) (geom.Geometry, error) {
	if distance <= eps {
		return nil, fmt.Errorf("%w: offset distance %g", geom.ErrInfeasibleRadius, distance)
	}

	switch s := g.(type) {
	case geom.Segment:
		n := perp(s.Dir())
		if side.Vec().Sub(s.A.Vec()).Dot(n) < 0 {
			n = n.MulScalar(-1)
		}
		d := n.MulScalar(distance)
		return geom.Segment{
			A: geom.FromVec(s.A.Vec().Add(d)),
			B: geom.FromVec(s.B.Vec().Add(d)),
		}, nil

	case geom.Circle:
		r := s.Radius + distance
		if geom.Distance(side, s.Center) < s.Radius {
			r = s.Radius - distance
		}
		if r <= eps {
			return nil, fmt.Errorf("%w: inward offset collapses the circle (radius %g)", geom.ErrInfeasibleRadius, r)
		}
		return geom.Circle{Center: s.Center, Radius: r}, nil
	}

	return nil, fmt.Errorf("%w: offset of %s", geom.ErrUnsupported, g.Kind())
}
