package geom

import "errors"

// Kernel failure conditions. All are recoverable by the caller (re-prompt,
// status message); the kernel never logs and never retries. An intersection
// query that finds nothing is a normal empty result, not an error; these
// sentinels mark the cases where a requested construction has no valid
// answer.
var (
	// ErrDegenerate marks coincident or parallel-overlapping lines,
	// identical circles, and zero-extent input.
	ErrDegenerate = errors.New("degenerate geometry")

	// ErrNoIntersection means trim or extend found no cut point.
	ErrNoIntersection = errors.New("no intersection")

	// ErrInfeasibleDirection means extend would move the chosen endpoint
	// backward along the segment instead of lengthening it.
	ErrInfeasibleDirection = errors.New("extension direction infeasible")

	// ErrInfeasibleRadius means fillet, chamfer or offset has no
	// geometrically valid solution at the requested radius or distance.
	ErrInfeasibleRadius = errors.New("infeasible radius")

	// ErrOutOfTolerance means no snap candidate lies within the pick radius.
	ErrOutOfTolerance = errors.New("no candidate within pick radius")

	// ErrUnsupported marks a geometry pairing an operation does not define.
	ErrUnsupported = errors.New("unsupported geometry pairing")
)
