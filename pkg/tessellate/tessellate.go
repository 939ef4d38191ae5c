// Package tessellate flattens sketch entities into polylines for
// display. Segments pass through unchanged; circles and arcs become
// chord sequences whose deviation from the true curve stays below a
// caller-chosen sagitta bound.
package tessellate

import (
	"fmt"
	"math"

	"github.com/chazu/draft2d/pkg/geom"
	"github.com/chazu/draft2d/pkg/sketch"
)

// DefaultDeviation is the sagitta bound used when the caller passes a
// non-positive one: the largest distance, in drawing units, a chord may
// stray from the true curve.
const DefaultDeviation = 0.05

// minCircleChords keeps tiny circles from degenerating into visible
// polygons even when the deviation bound would allow it.
const minCircleChords = 8

// Polyline is one tessellated entity: a flat x,y vertex buffer ready
// for a renderer, tagged with its origin.
type Polyline struct {
	Entity sketch.EntityID
	Layer  string
	Closed bool
	Verts  []float32 // x0 y0 x1 y1 ...
}

// VertexCount returns the number of 2D vertices in the buffer.
func (p *Polyline) VertexCount() int { return len(p.Verts) / 2 }

// Tessellate flattens every entity in the sketch, in insertion order.
// dev is the maximum chord deviation; non-positive means
// DefaultDeviation.
func Tessellate(s *sketch.Sketch, dev float64) ([]*Polyline, error) {
	if s == nil {
		return nil, nil
	}
	if dev <= 0 {
		dev = DefaultDeviation
	}

	out := make([]*Polyline, 0, s.Len())
	for _, e := range s.Entities {
		pl, err := tessellateEntity(e, dev)
		if err != nil {
			return nil, fmt.Errorf("tessellate: entity %s: %w", e.ID.Short(), err)
		}
		out = append(out, pl)
	}
	return out, nil
}

func tessellateEntity(e *sketch.Entity, dev float64) (*Polyline, error) {
	pl := &Polyline{Entity: e.ID, Layer: e.Layer}

	switch g := e.Geom.(type) {
	case geom.Segment:
		pl.Verts = appendVert(pl.Verts, g.A)
		pl.Verts = appendVert(pl.Verts, g.B)

	case geom.Circle:
		pl.Closed = true
		n := chordCount(2*math.Pi, g.Radius, dev)
		if n < minCircleChords {
			n = minCircleChords
		}
		// Closed polyline: the renderer joins the last vertex back to
		// the first, so the start angle is not repeated.
		for i := 0; i < n; i++ {
			theta := 2 * math.Pi * float64(i) / float64(n)
			pl.Verts = appendVert(pl.Verts, g.PointAtAngle(theta))
		}

	case geom.Arc:
		sweep := g.Sweep()
		n := chordCount(sweep, g.Radius, dev)
		step := sweep / float64(n)
		if g.Dir == geom.CW {
			step = -step
		}
		for i := 0; i <= n; i++ {
			theta := g.Start + step*float64(i)
			pl.Verts = appendVert(pl.Verts, g.Circle().PointAtAngle(theta))
		}

	default:
		return nil, fmt.Errorf("unsupported geometry kind %s", e.Geom.Kind())
	}

	return pl, nil
}

// chordCount returns how many equal chords cover an angular span of
// sweep on a circle of the given radius without any chord's sagitta
// exceeding dev. For a chord spanning angle a the sagitta is
// r*(1-cos(a/2)), so the largest admissible span is 2*acos(1-dev/r).
func chordCount(sweep, radius, dev float64) int {
	c := 1 - dev/radius
	if c < -1 {
		c = -1
	}
	maxSpan := 2 * math.Acos(c)
	n := int(math.Ceil(sweep / maxSpan))
	if n < 1 {
		n = 1
	}
	return n
}

func appendVert(verts []float32, p geom.Point) []float32 {
	return append(verts, float32(p.X), float32(p.Y))
}
