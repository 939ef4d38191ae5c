// Package geom defines the immutable 2D primitives of the drafting kernel:
// points, line segments, circles and arcs, together with the tolerance
// policy used by every comparison in the kernel. All types are plain
// values; kernel functions never mutate an input, they return new values.
//
// Coordinates are abstract plane units. Unit and scale conversion (drawing
// feet vs. screen pixels) is the caller's concern, which is why every
// tolerance is an explicit parameter rather than a package constant baked
// into the math.
package geom

// Kind enumerates the concrete geometry types.
type Kind int

const (
	KindSegment Kind = iota
	KindCircle
	KindArc
)

func (k Kind) String() string {
	switch k {
	case KindSegment:
		return "segment"
	case KindCircle:
		return "circle"
	case KindArc:
		return "arc"
	default:
		return "unknown"
	}
}

// Geometry is the closed sum of primitives the kernel dispatches over.
// The implementations are Segment, Circle and Arc; operations defined only
// for some pairings fail explicitly on the rest rather than coercing.
type Geometry interface {
	Kind() Kind

	// Bounds returns the axis-aligned bounding box as (min, max) corners.
	Bounds() (min, max Point)

	geometry() // marker method restricting implementations to this package
}
