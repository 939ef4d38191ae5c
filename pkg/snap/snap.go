// Package snap implements object snapping (OSNAP): given a cursor
// position and a set of candidate geometries, it finds the best precise
// point within the pick radius: an endpoint, an intersection, a center,
// a midpoint, or the perpendicular foot from the cursor onto a segment.
//
// Selection is by a fixed priority order, and within a tier by cursor
// distance. Ties are common when geometry is drawn exactly on grid
// points, so the tie-break is fully deterministic.
package snap

import (
	"fmt"

	"github.com/chazu/draft2d/pkg/geom"
	"github.com/chazu/draft2d/pkg/intersect"
)

// Kind classifies a snap candidate. Declaration order is priority order:
// a lower value always beats a higher one.
type Kind int

const (
	Endpoint Kind = iota
	Intersection
	Center
	Midpoint
	PerpFoot
)

func (k Kind) String() string {
	switch k {
	case Endpoint:
		return "endpoint"
	case Intersection:
		return "intersection"
	case Center:
		return "center"
	case Midpoint:
		return "midpoint"
	case PerpFoot:
		return "perpendicular"
	default:
		return "unknown"
	}
}

// Result is a chosen snap point.
type Result struct {
	Point geom.Point
	Kind  Kind
	Dist  float64 // distance from the cursor
}

// Find searches candidates for the best snap point within pickRadius of
// the cursor. It builds a throwaway spatial index; interactive callers
// that query on every mouse move should build an Index once instead.
// Returns geom.ErrOutOfTolerance when nothing qualifies.
func Find(cursor geom.Point, candidates []geom.Geometry, pickRadius, eps float64) (Result, error) {
	return NewIndex(candidates).Find(cursor, pickRadius, eps)
}

// Find returns the best snap point within pickRadius of the cursor.
func (ix *Index) Find(cursor geom.Point, pickRadius, eps float64) (Result, error) {
	near := ix.Near(cursor, pickRadius)

	var best Result
	found := false
	consider := func(p geom.Point, kind Kind) {
		d := geom.Distance(p, cursor)
		if d > pickRadius {
			return
		}
		r := Result{Point: p, Kind: kind, Dist: d}
		if !found || better(r, best) {
			best, found = r, true
		}
	}

	for _, g := range near {
		switch s := g.(type) {
		case geom.Segment:
			consider(s.A, Endpoint)
			consider(s.B, Endpoint)
			consider(s.Midpoint(), Midpoint)
			slack := eps / s.Length()
			if foot, t := s.PerpFoot(cursor); t >= -slack && t <= 1+slack {
				consider(foot, PerpFoot)
			}
		case geom.Circle:
			consider(s.Center, Center)
		case geom.Arc:
			consider(s.Center, Center)
		}
	}

	// Mutual intersections of every nearby pair.
	for i := 0; i < len(near); i++ {
		for j := i + 1; j < len(near); j++ {
			pts, err := intersect.Points(near[i], near[j], eps)
			if err != nil {
				continue // degenerate pairs have no discrete point
			}
			for _, p := range pts {
				consider(p, Intersection)
			}
		}
	}

	if !found {
		return Result{}, fmt.Errorf("%w: pick radius %g", geom.ErrOutOfTolerance, pickRadius)
	}
	return best, nil
}

// better orders candidates by priority tier, then cursor distance, then
// coordinates, so the winner never depends on traversal order.
func better(a, b Result) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.Dist != b.Dist {
		return a.Dist < b.Dist
	}
	if a.Point.X != b.Point.X {
		return a.Point.X < b.Point.X
	}
	return a.Point.Y < b.Point.Y
}
