package intersect

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/draft2d/pkg/geom"
)

const eps = geom.Epsilon

func seg(x1, y1, x2, y2 float64) geom.Segment {
	return geom.Segment{A: geom.Pt(x1, y1), B: geom.Pt(x2, y2)}
}

func circ(x, y, r float64) geom.Circle {
	return geom.Circle{Center: geom.Pt(x, y), Radius: r}
}

func TestLines(t *testing.T) {
	t.Run("perpendicular crossing", func(t *testing.T) {
		pts, err := Lines(seg(0, 0, 10, 0), seg(5, -5, 5, 5), eps)
		if err != nil {
			t.Fatalf("Lines() error: %v", err)
		}
		if len(pts) != 1 || !geom.PointsEqual(pts[0], geom.Pt(5, 0), eps) {
			t.Fatalf("Lines() = %v, want [(5, 0)]", pts)
		}
	})

	t.Run("intersection beyond segment span", func(t *testing.T) {
		// The lines cross at (20, 0), outside both segments. The engine
		// works on infinite lines, so the point is still returned.
		pts, err := Lines(seg(0, 0, 10, 0), seg(20, -1, 20, 1), eps)
		if err != nil {
			t.Fatalf("Lines() error: %v", err)
		}
		if len(pts) != 1 || !geom.PointsEqual(pts[0], geom.Pt(20, 0), eps) {
			t.Fatalf("Lines() = %v, want [(20, 0)]", pts)
		}
	})

	t.Run("parallel", func(t *testing.T) {
		pts, err := Lines(seg(0, 0, 10, 0), seg(0, 1, 10, 1), eps)
		if err != nil {
			t.Fatalf("Lines() error: %v", err)
		}
		if len(pts) != 0 {
			t.Fatalf("Lines() = %v, want empty", pts)
		}
	})

	t.Run("coincident", func(t *testing.T) {
		_, err := Lines(seg(0, 0, 10, 0), seg(2, 0, 8, 0), eps)
		if !errors.Is(err, geom.ErrDegenerate) {
			t.Fatalf("Lines() error = %v, want ErrDegenerate", err)
		}
	})

	t.Run("skew", func(t *testing.T) {
		pts, err := Lines(seg(0, 0, 4, 4), seg(0, 4, 4, 0), eps)
		if err != nil {
			t.Fatalf("Lines() error: %v", err)
		}
		if len(pts) != 1 || !geom.PointsEqual(pts[0], geom.Pt(2, 2), eps) {
			t.Fatalf("Lines() = %v, want [(2, 2)]", pts)
		}
	})
}

func TestLineCircle(t *testing.T) {
	t.Run("secant through center", func(t *testing.T) {
		pts := LineCircle(seg(-10, 0, 10, 0), circ(0, 0, 5), eps)
		if len(pts) != 2 {
			t.Fatalf("LineCircle() = %v, want 2 points", pts)
		}
		// Ordered by ascending parameter along the line.
		if !geom.PointsEqual(pts[0], geom.Pt(-5, 0), eps) || !geom.PointsEqual(pts[1], geom.Pt(5, 0), eps) {
			t.Fatalf("LineCircle() = %v, want [(-5, 0), (5, 0)]", pts)
		}
	})

	t.Run("tangent", func(t *testing.T) {
		pts := LineCircle(seg(-10, 5, 10, 5), circ(0, 0, 5), eps)
		if len(pts) != 1 || !geom.PointsEqual(pts[0], geom.Pt(0, 5), eps) {
			t.Fatalf("LineCircle() = %v, want [(0, 5)]", pts)
		}
	})

	t.Run("miss", func(t *testing.T) {
		if pts := LineCircle(seg(-10, 6, 10, 6), circ(0, 0, 5), eps); len(pts) != 0 {
			t.Fatalf("LineCircle() = %v, want empty", pts)
		}
	})

	t.Run("secant off segment span", func(t *testing.T) {
		// Segment stops well short of the circle; infinite-line semantics
		// still produce both crossings.
		pts := LineCircle(seg(-100, 0, -90, 0), circ(0, 0, 5), eps)
		if len(pts) != 2 {
			t.Fatalf("LineCircle() = %v, want 2 points", pts)
		}
	})
}

func TestCircles(t *testing.T) {
	t.Run("separate", func(t *testing.T) {
		pts, err := Circles(circ(0, 0, 1), circ(10, 0, 1), eps)
		if err != nil || len(pts) != 0 {
			t.Fatalf("Circles() = %v, %v, want empty", pts, err)
		}
	})

	t.Run("contained", func(t *testing.T) {
		pts, err := Circles(circ(0, 0, 10), circ(1, 0, 2), eps)
		if err != nil || len(pts) != 0 {
			t.Fatalf("Circles() = %v, %v, want empty", pts, err)
		}
	})

	t.Run("crossing", func(t *testing.T) {
		c1 := circ(0, 0, 5)
		c2 := circ(8, 0, 5)
		pts, err := Circles(c1, c2, eps)
		if err != nil {
			t.Fatalf("Circles() error: %v", err)
		}
		if len(pts) != 2 {
			t.Fatalf("Circles() = %v, want 2 points", pts)
		}
		for _, p := range pts {
			if !geom.NearlyEqual(geom.Distance(p, c1.Center), 5, 1e-9) {
				t.Errorf("point %v not on first circle", p)
			}
			if !geom.NearlyEqual(geom.Distance(p, c2.Center), 5, 1e-9) {
				t.Errorf("point %v not on second circle", p)
			}
		}
	})

	t.Run("externally tangent", func(t *testing.T) {
		pts, err := Circles(circ(0, 0, 3), circ(5, 0, 2), eps)
		if err != nil {
			t.Fatalf("Circles() error: %v", err)
		}
		if len(pts) != 1 || !geom.PointsEqual(pts[0], geom.Pt(3, 0), eps) {
			t.Fatalf("Circles() = %v, want [(3, 0)]", pts)
		}
	})

	t.Run("internally tangent", func(t *testing.T) {
		pts, err := Circles(circ(0, 0, 5), circ(2, 0, 3), eps)
		if err != nil {
			t.Fatalf("Circles() error: %v", err)
		}
		if len(pts) != 1 || !geom.PointsEqual(pts[0], geom.Pt(5, 0), eps) {
			t.Fatalf("Circles() = %v, want [(5, 0)]", pts)
		}
	})

	t.Run("identical", func(t *testing.T) {
		_, err := Circles(circ(0, 0, 5), circ(0, 0, 5), eps)
		if !errors.Is(err, geom.ErrDegenerate) {
			t.Fatalf("Circles() error = %v, want ErrDegenerate", err)
		}
	})

	t.Run("concentric distinct radii", func(t *testing.T) {
		pts, err := Circles(circ(0, 0, 5), circ(0, 0, 3), eps)
		if err != nil || len(pts) != 0 {
			t.Fatalf("Circles() = %v, %v, want empty", pts, err)
		}
	})
}

func TestArcFiltering(t *testing.T) {
	// Upper half of the unit-5 circle, swept CCW from 0 to π.
	upper := geom.Arc{Center: geom.Pt(0, 0), Radius: 5, Start: 0, End: math.Pi, Dir: geom.CCW}

	t.Run("segment-arc keeps swept side only", func(t *testing.T) {
		pts, err := Points(seg(0, -10, 0, 10), upper, eps)
		if err != nil {
			t.Fatalf("Points() error: %v", err)
		}
		if len(pts) != 1 || !geom.PointsEqual(pts[0], geom.Pt(0, 5), eps) {
			t.Fatalf("Points() = %v, want [(0, 5)]", pts)
		}
	})

	t.Run("arc endpoint counts as on the arc", func(t *testing.T) {
		pts, err := Points(seg(-10, 0, 10, 0), upper, eps)
		if err != nil {
			t.Fatalf("Points() error: %v", err)
		}
		if len(pts) != 2 {
			t.Fatalf("Points() = %v, want both endpoints", pts)
		}
	})

	t.Run("arc-arc on opposite halves misses", func(t *testing.T) {
		lower := geom.Arc{Center: geom.Pt(8, 0), Radius: 5, Start: math.Pi, End: 2 * math.Pi - 0.2, Dir: geom.CCW}
		pts, err := Points(upper, lower, eps)
		if err != nil {
			t.Fatalf("Points() error: %v", err)
		}
		// The two full circles cross at (4, ±3); the upper arc holds
		// (4, 3), the second arc's sweep holds neither of its images.
		for _, p := range pts {
			if p.Y < 0 {
				t.Errorf("point %v below axis survived upper-arc filter", p)
			}
		}
	})
}

func TestPointsDispatch(t *testing.T) {
	// Circle-segment order must behave the same as segment-circle.
	s := seg(-10, 0, 10, 0)
	c := circ(0, 0, 5)

	fromSeg, err := Points(s, c, eps)
	if err != nil {
		t.Fatalf("Points(seg, circ) error: %v", err)
	}
	fromCirc, err := Points(c, s, eps)
	if err != nil {
		t.Fatalf("Points(circ, seg) error: %v", err)
	}
	if len(fromSeg) != 2 || len(fromCirc) != 2 {
		t.Fatalf("Points() lengths = %d, %d, want 2, 2", len(fromSeg), len(fromCirc))
	}
	for i := range fromSeg {
		if !geom.PointsEqual(fromSeg[i], fromCirc[i], eps) {
			t.Errorf("order-dependent result: %v vs %v", fromSeg[i], fromCirc[i])
		}
	}
}
