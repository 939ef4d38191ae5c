package snap

import (
	"errors"
	"testing"

	"github.com/chazu/draft2d/pkg/geom"
)

const eps = geom.Epsilon

func seg(x1, y1, x2, y2 float64) geom.Segment {
	return geom.Segment{A: geom.Pt(x1, y1), B: geom.Pt(x2, y2)}
}

func TestFindEndpoint(t *testing.T) {
	geoms := []geom.Geometry{seg(0, 0, 10, 0)}

	got, err := Find(geom.Pt(9.8, 0.1), geoms, 0.5, eps)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if got.Kind != Endpoint || !geom.PointsEqual(got.Point, geom.Pt(10, 0), eps) {
		t.Fatalf("Find() = %v %v, want endpoint (10, 0)", got.Kind, got.Point)
	}
}

func TestFindMidpoint(t *testing.T) {
	geoms := []geom.Geometry{seg(0, 0, 10, 0)}

	got, err := Find(geom.Pt(5.1, 0.2), geoms, 0.5, eps)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if got.Kind != Midpoint || !geom.PointsEqual(got.Point, geom.Pt(5, 0), eps) {
		t.Fatalf("Find() = %v %v, want midpoint (5, 0)", got.Kind, got.Point)
	}
}

func TestFindCenter(t *testing.T) {
	geoms := []geom.Geometry{geom.Circle{Center: geom.Pt(3, 3), Radius: 2}}

	got, err := Find(geom.Pt(3.2, 2.9), geoms, 0.5, eps)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if got.Kind != Center || !geom.PointsEqual(got.Point, geom.Pt(3, 3), eps) {
		t.Fatalf("Find() = %v %v, want center (3, 3)", got.Kind, got.Point)
	}
}

func TestFindIntersection(t *testing.T) {
	geoms := []geom.Geometry{
		seg(0, 0, 10, 0),
		seg(5, -5, 5, 5),
	}

	got, err := Find(geom.Pt(5.1, 0.1), geoms, 0.3, eps)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if got.Kind != Intersection || !geom.PointsEqual(got.Point, geom.Pt(5, 0), eps) {
		t.Fatalf("Find() = %v %v, want intersection (5, 0)", got.Kind, got.Point)
	}
}

func TestFindPerpendicularFoot(t *testing.T) {
	geoms := []geom.Geometry{seg(0, 0, 10, 0)}

	// Near the segment interior but away from endpoints and midpoint.
	got, err := Find(geom.Pt(7.3, 0.2), geoms, 0.3, eps)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if got.Kind != PerpFoot || !geom.PointsEqual(got.Point, geom.Pt(7.3, 0), eps) {
		t.Fatalf("Find() = %v %v, want perpendicular foot (7.3, 0)", got.Kind, got.Point)
	}
}

func TestEndpointBeatsIntersection(t *testing.T) {
	// The cursor sits exactly where one segment's endpoint meets another
	// segment: the same point qualifies as both endpoint and
	// intersection, and the endpoint tier must win.
	geoms := []geom.Geometry{
		seg(0, 0, 5, 0),
		seg(5, -5, 5, 5),
	}

	got, err := Find(geom.Pt(5, 0), geoms, 0.5, eps)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if got.Kind != Endpoint {
		t.Fatalf("Find().Kind = %v, want endpoint", got.Kind)
	}
	if !geom.PointsEqual(got.Point, geom.Pt(5, 0), eps) {
		t.Fatalf("Find().Point = %v, want (5, 0)", got.Point)
	}
}

func TestPerpFootGate(t *testing.T) {
	geoms := []geom.Geometry{seg(0, 0, 10, 0)}

	t.Run("foot beyond the span is not offered", func(t *testing.T) {
		// The foot of (11, 0.1) lies at (11, 0), well past end b; only
		// the endpoint remains and it sits outside the pick radius.
		_, err := Find(geom.Pt(11, 0.1), geoms, 0.5, eps)
		if !errors.Is(err, geom.ErrOutOfTolerance) {
			t.Fatalf("Find() error = %v, want ErrOutOfTolerance", err)
		}
	})

	t.Run("foot within tolerance of the end still snaps", func(t *testing.T) {
		// A cursor a hair past end b feet down within the parameter
		// slack; the snap must not lose the point to the gate.
		got, err := Find(geom.Pt(10+eps/2, 0.1), geoms, 0.2, eps)
		if err != nil {
			t.Fatalf("Find() error: %v", err)
		}
		if !geom.PointsEqual(got.Point, geom.Pt(10, 0), eps) {
			t.Fatalf("Find().Point = %v, want (10, 0)", got.Point)
		}
	})
}

func TestOutOfTolerance(t *testing.T) {
	geoms := []geom.Geometry{seg(0, 0, 10, 0)}

	_, err := Find(geom.Pt(50, 50), geoms, 0.5, eps)
	if !errors.Is(err, geom.ErrOutOfTolerance) {
		t.Fatalf("Find() error = %v, want ErrOutOfTolerance", err)
	}
}

func TestIndexReuse(t *testing.T) {
	geoms := []geom.Geometry{
		seg(0, 0, 10, 0),
		seg(0, 5, 10, 5),
		geom.Circle{Center: geom.Pt(20, 20), Radius: 1},
	}
	ix := NewIndex(geoms)

	t.Run("prunes distant geometry", func(t *testing.T) {
		near := ix.Near(geom.Pt(0, 0), 1)
		for _, g := range near {
			if g.Kind() == geom.KindCircle {
				t.Error("circle at (20, 20) survived a radius-1 query at the origin")
			}
		}
	})

	t.Run("repeated queries agree", func(t *testing.T) {
		first, err := ix.Find(geom.Pt(0.1, 0.1), 0.5, eps)
		if err != nil {
			t.Fatalf("Find() error: %v", err)
		}
		second, err := ix.Find(geom.Pt(0.1, 0.1), 0.5, eps)
		if err != nil {
			t.Fatalf("Find() error: %v", err)
		}
		if first != second {
			t.Fatalf("repeated Find() disagreed: %v vs %v", first, second)
		}
	})
}

func TestDeterministicTieBreak(t *testing.T) {
	// Two endpoints equidistant from the cursor; the smaller coordinates
	// must win regardless of insertion order.
	forward := []geom.Geometry{seg(0, 0, 2, 0), seg(4, 0, 6, 0)}
	reverse := []geom.Geometry{seg(4, 0, 6, 0), seg(0, 0, 2, 0)}

	a, err := Find(geom.Pt(3, 0), forward, 1.5, eps)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	b, err := Find(geom.Pt(3, 0), reverse, 1.5, eps)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if a != b {
		t.Fatalf("tie-break depends on order: %v vs %v", a, b)
	}
	if !geom.PointsEqual(a.Point, geom.Pt(2, 0), eps) {
		t.Fatalf("Find().Point = %v, want (2, 0)", a.Point)
	}
}
