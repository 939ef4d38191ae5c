package geom

import (
	"fmt"
	"math"
)

// Direction is the sweep sense of an arc.
type Direction int

const (
	CCW Direction = iota // counter-clockwise, increasing angle
	CW                   // clockwise, decreasing angle
)

func (d Direction) String() string {
	switch d {
	case CCW:
		return "ccw"
	case CW:
		return "cw"
	default:
		return "unknown"
	}
}

// Arc is the portion of a circle swept from Start to End in the given
// direction. Angles are radians, normalized to [0, 2π) at construction.
// Start == End denotes a full-circle sweep.
type Arc struct {
	Center     Point
	Radius     float64
	Start, End float64
	Dir        Direction
}

// NewArc constructs an Arc, rejecting non-positive radii and normalizing
// both angles into [0, 2π).
func NewArc(center Point, radius, start, end float64, dir Direction, eps float64) (Arc, error) {
	if radius <= eps {
		return Arc{}, fmt.Errorf("%w: arc radius %g", ErrDegenerate, radius)
	}
	return Arc{
		Center: center,
		Radius: radius,
		Start:  NormalizeAngle(start),
		End:    NormalizeAngle(end),
		Dir:    dir,
	}, nil
}

func (a Arc) Kind() Kind { return KindArc }
func (a Arc) geometry()  {}

// Bounds returns the bounding box of the arc's full circle. The box is
// conservative, which is all the snap index needs for pruning.
func (a Arc) Bounds() (min, max Point) {
	return a.Circle().Bounds()
}

// Circle returns the full circle the arc lies on.
func (a Arc) Circle() Circle {
	return Circle{Center: a.Center, Radius: a.Radius}
}

// StartPoint returns the point at the start angle.
func (a Arc) StartPoint() Point { return a.Circle().PointAtAngle(a.Start) }

// EndPoint returns the point at the end angle.
func (a Arc) EndPoint() Point { return a.Circle().PointAtAngle(a.End) }

// Sweep returns the swept angle measured along Dir, in (0, 2π].
func (a Arc) Sweep() float64 {
	var sweep float64
	if a.Dir == CCW {
		sweep = NormalizeAngle(a.End - a.Start)
	} else {
		sweep = NormalizeAngle(a.Start - a.End)
	}
	if sweep == 0 {
		sweep = 2 * math.Pi
	}
	return sweep
}

// ContainsAngle reports whether theta lies on the swept portion of the
// arc, handling wraparound at 0/2π. angTol is an angular tolerance in
// radians; callers converting a linear tolerance should pass eps/Radius.
func (a Arc) ContainsAngle(theta, angTol float64) bool {
	theta = NormalizeAngle(theta)
	var off float64
	if a.Dir == CCW {
		off = NormalizeAngle(theta - a.Start)
	} else {
		off = NormalizeAngle(a.Start - theta)
	}
	// Angles just "before" the start wrap to values near 2π.
	if off >= 2*math.Pi-angTol {
		return true
	}
	return off <= a.Sweep()+angTol
}

// NormalizeAngle maps theta into [0, 2π).
func NormalizeAngle(theta float64) float64 {
	t := math.Mod(theta, 2*math.Pi)
	if t < 0 {
		t += 2 * math.Pi
	}
	return t
}
