// Package edit implements the drafting editing operations: trim, extend,
// fillet, chamfer and offset. Every operation takes geometry by value and
// returns a new value; inputs are never modified. Expected negative
// outcomes are reported through the sentinel errors in pkg/geom, never by
// panicking, and the package does no logging; the interactive caller
// decides how to surface a failure.
package edit

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/draft2d/pkg/geom"
)

// End selects which endpoint of a segment an operation applies to.
type End int

const (
	EndA End = iota
	EndB
)

func (e End) String() string {
	switch e {
	case EndA:
		return "a"
	case EndB:
		return "b"
	default:
		return "unknown"
	}
}

// perp returns the counter-clockwise perpendicular of v.
func perp(v v2.Vec) v2.Vec { return v2.Vec{X: -v.Y, Y: v.X} }

// nearest returns the point in pts closest to ref. pts must be non-empty.
func nearest(pts []geom.Point, ref geom.Point) geom.Point {
	best := pts[0]
	bestD := geom.Distance(best, ref)
	for _, p := range pts[1:] {
		if d := geom.Distance(p, ref); d < bestD {
			best, bestD = p, d
		}
	}
	return best
}
