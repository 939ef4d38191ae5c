package edit

import (
	"fmt"

	"github.com/chazu/draft2d/pkg/geom"
	"github.com/chazu/draft2d/pkg/intersect"
)

// ChamferResult carries the two trimmed inputs and the straight segment
// that now connects them.
type ChamferResult struct {
	A, B    geom.Geometry
	Chamfer geom.Segment
}

// Chamfer bevels the corner nearest to pick with a straight segment whose
// ends sit distA and distB along each input, measured from the shared
// corner. The two distances need not be equal. Both offset points must
// land on their segments; of the up-to-four corner quadrants the one
// nearest to pick is beveled. Defined for segment pairs only; chamfer
// distances are measured from a corner, which circles do not have.
func Chamfer(a, b geom.Geometry, distA, distB float64, pick geom.Point, eps float64) (ChamferResult, error) {
	sa, okA := a.(geom.Segment)
	sb, okB := b.(geom.Segment)
	if !okA || !okB {
		return ChamferResult{}, fmt.Errorf("%w: chamfer of %s-%s", geom.ErrUnsupported, a.Kind(), b.Kind())
	}
	if distA <= eps || distB <= eps {
		return ChamferResult{}, fmt.Errorf("%w: chamfer distances %g, %g", geom.ErrInfeasibleRadius, distA, distB)
	}

	pts, err := intersect.Lines(sa, sb, eps)
	if err != nil {
		return ChamferResult{}, err
	}
	if len(pts) == 0 {
		return ChamferResult{}, fmt.Errorf("%w: parallel segments have no corner", geom.ErrNoIntersection)
	}
	corner := pts[0]

	// Walk each of the four quadrant combinations away from the corner
	// and keep the pair of offset points nearest to the pick.
	type candidate struct {
		pa, pb geom.Point
		score  float64
	}
	var best *candidate
	da := sa.Dir()
	db := sb.Dir()
	for _, fa := range []float64{1, -1} {
		pa := geom.FromVec(corner.Vec().Add(da.MulScalar(fa * distA)))
		if !geom.PointOnSegment(pa, sa, eps) {
			continue
		}
		for _, fb := range []float64{1, -1} {
			pb := geom.FromVec(corner.Vec().Add(db.MulScalar(fb * distB)))
			if !geom.PointOnSegment(pb, sb, eps) {
				continue
			}
			c := candidate{
				pa:    pa,
				pb:    pb,
				score: geom.Distance(pa, pick) + geom.Distance(pb, pick),
			}
			if best == nil || c.score < best.score {
				best = &c
			}
		}
	}
	if best == nil {
		return ChamferResult{}, fmt.Errorf("%w: chamfer distances overrun the segments", geom.ErrInfeasibleRadius)
	}

	connector, err := geom.NewSegment(best.pa, best.pb, eps)
	if err != nil {
		return ChamferResult{}, fmt.Errorf("%w: chamfer connector collapses", geom.ErrInfeasibleRadius)
	}

	trimmedA, err := trimToTangent(sa, best.pa, pick, eps)
	if err != nil {
		return ChamferResult{}, err
	}
	trimmedB, err := trimToTangent(sb, best.pb, pick, eps)
	if err != nil {
		return ChamferResult{}, err
	}

	return ChamferResult{A: trimmedA, B: trimmedB, Chamfer: connector}, nil
}
