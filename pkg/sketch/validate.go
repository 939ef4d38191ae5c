package sketch

import (
	"fmt"

	"github.com/chazu/draft2d/pkg/geom"
)

// Severity indicates whether a validation finding blocks downstream use
// of the sketch or is merely advisory.
type Severity int

const (
	SeverityError   Severity = iota // blocking
	SeverityWarning                 // advisory
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// ValidationError describes a single blocking finding.
type ValidationError struct {
	Entity   EntityID
	Message  string
	Severity Severity
}

func (e ValidationError) Error() string {
	if e.Entity.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] entity %s: %s", e.Severity, e.Entity.Short(), e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Entity  EntityID
	Message string
}

// ValidationResult bundles findings from all tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// hairlineFactor scales the drawing tolerance into the advisory
// threshold for suspiciously short segments. Such slivers are usually
// leftover trim debris rather than intended geometry.
const hairlineFactor = 1000

// Validate runs all validation tiers over the sketch: blocking geometric
// checks first, then advisory checks. It is read-only and never mutates
// the sketch.
func Validate(s *Sketch, eps float64) ValidationResult {
	var res ValidationResult
	res.Errors = append(res.Errors, validateGeometry(s, eps)...)
	res.Warnings = append(res.Warnings, validateDuplicates(s, eps)...)
	res.Warnings = append(res.Warnings, validateHairlines(s, eps)...)
	return res
}

// ---------------------------------------------------------------------------
// Tier 1: blocking geometric checks
// ---------------------------------------------------------------------------

// validateGeometry checks that every entity carries well-formed geometry.
// Constructors reject degenerate values, but entities can also arrive via
// imports that bypass them.
func validateGeometry(s *Sketch, eps float64) []ValidationError {
	var errs []ValidationError

	for _, e := range s.Entities {
		switch g := e.Geom.(type) {
		case geom.Segment:
			if g.Length() <= eps {
				errs = append(errs, ValidationError{
					Entity:   e.ID,
					Message:  fmt.Sprintf("segment length %.3g is below tolerance", g.Length()),
					Severity: SeverityError,
				})
			}
		case geom.Circle:
			if g.Radius <= eps {
				errs = append(errs, ValidationError{
					Entity:   e.ID,
					Message:  fmt.Sprintf("circle radius %.3g is below tolerance", g.Radius),
					Severity: SeverityError,
				})
			}
		case geom.Arc:
			if g.Radius <= eps {
				errs = append(errs, ValidationError{
					Entity:   e.ID,
					Message:  fmt.Sprintf("arc radius %.3g is below tolerance", g.Radius),
					Severity: SeverityError,
				})
			}
		default:
			errs = append(errs, ValidationError{
				Entity:   e.ID,
				Message:  fmt.Sprintf("unknown geometry kind %T", e.Geom),
				Severity: SeverityError,
			})
		}

		if e.Layer == "" {
			errs = append(errs, ValidationError{
				Entity:   e.ID,
				Message:  "entity has no layer",
				Severity: SeverityError,
			})
		}
	}

	return errs
}

// ---------------------------------------------------------------------------
// Tier 2: advisory checks
// ---------------------------------------------------------------------------

// validateDuplicates warns about coincident entities on the same layer.
// Duplicate geometry is legal but usually a drafting mistake, and it
// doubles every snap and intersection candidate.
func validateDuplicates(s *Sketch, eps float64) []ValidationWarning {
	var warnings []ValidationWarning

	for i := 0; i < len(s.Entities); i++ {
		for j := i + 1; j < len(s.Entities); j++ {
			a, b := s.Entities[i], s.Entities[j]
			if a.Layer != b.Layer {
				continue
			}
			if sameGeometry(a.Geom, b.Geom, eps) {
				warnings = append(warnings, ValidationWarning{
					Entity:  b.ID,
					Message: fmt.Sprintf("coincides with entity %s on layer %q", a.ID.Short(), a.Layer),
				})
			}
		}
	}

	return warnings
}

// validateHairlines warns about segments so short relative to the
// tolerance that later edits are likely to collapse them.
func validateHairlines(s *Sketch, eps float64) []ValidationWarning {
	var warnings []ValidationWarning
	threshold := eps * hairlineFactor

	for _, e := range s.Entities {
		g, ok := e.Geom.(geom.Segment)
		if !ok {
			continue
		}
		if l := g.Length(); l > eps && l < threshold {
			warnings = append(warnings, ValidationWarning{
				Entity:  e.ID,
				Message: fmt.Sprintf("hairline segment of length %.3g", l),
			})
		}
	}

	return warnings
}

// sameGeometry reports whether two geometries coincide within eps.
// Segments also match when reversed.
func sameGeometry(a, b geom.Geometry, eps float64) bool {
	switch ga := a.(type) {
	case geom.Segment:
		gb, ok := b.(geom.Segment)
		if !ok {
			return false
		}
		forward := geom.PointsEqual(ga.A, gb.A, eps) && geom.PointsEqual(ga.B, gb.B, eps)
		reversed := geom.PointsEqual(ga.A, gb.B, eps) && geom.PointsEqual(ga.B, gb.A, eps)
		return forward || reversed
	case geom.Circle:
		gb, ok := b.(geom.Circle)
		if !ok {
			return false
		}
		return geom.PointsEqual(ga.Center, gb.Center, eps) && geom.NearlyEqual(ga.Radius, gb.Radius, eps)
	case geom.Arc:
		gb, ok := b.(geom.Arc)
		if !ok {
			return false
		}
		return geom.PointsEqual(ga.Center, gb.Center, eps) &&
			geom.NearlyEqual(ga.Radius, gb.Radius, eps) &&
			geom.NearlyEqual(ga.Start, gb.Start, eps) &&
			geom.NearlyEqual(ga.End, gb.End, eps) &&
			ga.Dir == gb.Dir
	}
	return false
}
