package edit

import (
	"fmt"

	"github.com/chazu/draft2d/pkg/geom"
	"github.com/chazu/draft2d/pkg/intersect"
)

// Trim cuts target against cutter at the intersection nearest to pick and
// returns the sub-segment containing the pick; the piece on the far side
// of the cut is discarded. Only intersections lying on the target segment
// itself count as cuts. A single cutter produces a single cut; trimming
// against several cutters is the caller's loop.
func Trim(target geom.Segment, cutter geom.Geometry, pick geom.Point, eps float64) (geom.Segment, error) {
	pts, err := intersect.Points(target, cutter, eps)
	if err != nil {
		return geom.Segment{}, err
	}

	var cuts []geom.Point
	for _, p := range pts {
		if geom.PointOnSegment(p, target, eps) {
			cuts = append(cuts, p)
		}
	}
	if len(cuts) == 0 {
		return geom.Segment{}, fmt.Errorf("%w: cutter does not cross the target", geom.ErrNoIntersection)
	}

	return splitKeep(target, nearest(cuts, pick), pick, eps)
}

// splitKeep splits target at cut and keeps the side the pick is on,
// comparing positions along the segment's parameter axis. A pick exactly
// at the cut keeps the A side; the rule is arbitrary but fixed, so
// repeated interactive trims behave deterministically.
func splitKeep(target geom.Segment, cut, pick geom.Point, eps float64) (geom.Segment, error) {
	tCut := target.ParamOf(cut)
	tPick := target.ParamOf(pick)
	slack := eps / target.Length()

	var kept geom.Segment
	var err error
	if tPick <= tCut+slack {
		kept, err = geom.NewSegment(target.A, cut, eps)
	} else {
		kept, err = geom.NewSegment(cut, target.B, eps)
	}
	if err != nil {
		// Cut lands on the kept endpoint; nothing of the segment remains.
		return geom.Segment{}, fmt.Errorf("%w: trim leaves no segment", geom.ErrDegenerate)
	}
	return kept, nil
}
