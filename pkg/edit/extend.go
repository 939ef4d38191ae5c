package edit

import (
	"fmt"

	"github.com/chazu/draft2d/pkg/geom"
	"github.com/chazu/draft2d/pkg/intersect"
)

// Extend lengthens target so the chosen endpoint lands on boundary. The
// intersection is computed on the infinite line through the target; a
// candidate only qualifies if it lies at or beyond the chosen end, so the
// segment never shrinks: a boundary already touching the endpoint is a
// valid no-op extension, while one strictly behind it is
// ErrInfeasibleDirection, never silently accepted. When the boundary
// crosses the line more than once the nearest qualifying point wins.
func Extend(target geom.Segment, boundary geom.Geometry, end End, eps float64) (geom.Segment, error) {
	pts, err := intersect.Points(target, boundary, eps)
	if err != nil {
		return geom.Segment{}, err
	}
	if len(pts) == 0 {
		return geom.Segment{}, fmt.Errorf("%w: boundary never meets the target's line", geom.ErrNoIntersection)
	}

	slack := eps / target.Length()
	var bestT float64
	found := false
	for _, p := range pts {
		t := target.ParamOf(p)
		switch end {
		case EndB:
			if t >= 1-slack && (!found || t < bestT) {
				bestT, found = t, true
			}
		case EndA:
			if t <= slack && (!found || t > bestT) {
				bestT, found = t, true
			}
		}
	}
	if !found {
		return geom.Segment{}, fmt.Errorf("%w: boundary lies behind the %s end", geom.ErrInfeasibleDirection, end)
	}

	p := target.PointAt(bestT)
	if end == EndA {
		return geom.Segment{A: p, B: target.B}, nil
	}
	return geom.Segment{A: target.A, B: p}, nil
}
