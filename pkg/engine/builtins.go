package engine

import (
	"errors"
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/draft2d/pkg/edit"
	"github.com/chazu/draft2d/pkg/geom"
	"github.com/chazu/draft2d/pkg/intersect"
	"github.com/chazu/draft2d/pkg/sketch"
	"github.com/chazu/draft2d/pkg/snap"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms drafting Lisp source before it reaches
// zygomys. Three rewrites, all respecting string literals:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal).
//     Avoids registering keyword symbols as globals, which would collide
//     with user variables of the same name.
//
//  2. ; line comments -> // line comments. zygomys only knows //.
//
//  3. Kebab-case identifiers -> underscore form (snap-radius ->
//     snap_radius). zygomys reads an interior hyphen as subtraction.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Pass double-quoted string literals through untouched.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Same for backtick-quoted literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// ; comments become // comments.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// :keyword -> "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, b[i+1:j]...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Interior hyphen between identifier characters is kebab-case,
		// not subtraction.
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing kernel values through the environment
// ---------------------------------------------------------------------------

// sexpPoint wraps a geom.Point so it can flow between builtins.
type sexpPoint struct {
	p geom.Point
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(point %g %g)", p.p.X, p.p.Y)
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpGeom wraps an undrawn geometry value, as returned by `segment`,
// `circle`, `arc` and `offset`.
type sexpGeom struct {
	g geom.Geometry
}

func (g *sexpGeom) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s)", g.g.Kind())
}
func (g *sexpGeom) Type() *zygo.RegisteredType { return nil }

// sexpEntityRef wraps the ID of an entity that `draw` (or an editing
// verb) placed in the sketch.
type sexpEntityRef struct {
	id sketch.EntityID
}

func (r *sexpEntityRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(entity %s)", r.id.Short())
}
func (r *sexpEntityRef) Type() *zygo.RegisteredType { return nil }

// sexpPoints wraps an intersection result.
type sexpPoints struct {
	pts []geom.Point
}

func (p *sexpPoints) SexpString(ps *zygo.PrintState) string {
	var sb strings.Builder
	sb.WriteString("(points")
	for _, pt := range p.pts {
		fmt.Fprintf(&sb, " (%g %g)", pt.X, pt.Y)
	}
	sb.WriteString(")")
	return sb.String()
}
func (p *sexpPoints) Type() *zygo.RegisteredType { return nil }

// sexpSnap wraps a snap result so the snapped point can feed a pick
// argument directly.
type sexpSnap struct {
	res snap.Result
}

func (s *sexpSnap) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(snap %s (%g %g))", s.res.Kind, s.res.Point.X, s.res.Point.Y)
}
func (s *sexpSnap) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Trailing keyword with no value acts as a nil flag.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_cw) and plain strings ("cw").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toPoint extracts a geom.Point from a point or snap-result Sexp.
func toPoint(s zygo.Sexp) (geom.Point, error) {
	switch v := s.(type) {
	case *sexpPoint:
		return v.p, nil
	case *sexpSnap:
		return v.res.Point, nil
	}
	return geom.Point{}, fmt.Errorf("expected point, got %T (%s)", s, s.SexpString(nil))
}

// toEntityRef extracts an entity reference.
func toEntityRef(s zygo.Sexp) (*sexpEntityRef, error) {
	if r, ok := s.(*sexpEntityRef); ok {
		return r, nil
	}
	return nil, fmt.Errorf("expected drawn entity, got %T (%s)", s, s.SexpString(nil))
}

// toDirection converts a :ccw/:cw keyword to a geom.Direction.
func toDirection(s zygo.Sexp) (geom.Direction, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected direction keyword (:ccw, :cw): %w", err)
	}
	switch name {
	case "ccw":
		return geom.CCW, nil
	case "cw":
		return geom.CW, nil
	}
	return 0, fmt.Errorf("invalid direction %q, expected ccw or cw", name)
}

// toEnd converts an :a/:b keyword to an edit.End.
func toEnd(s zygo.Sexp) (edit.End, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected end keyword (:a, :b): %w", err)
	}
	switch name {
	case "a":
		return edit.EndA, nil
	case "b":
		return edit.EndB, nil
	}
	return 0, fmt.Errorf("invalid end %q, expected a or b", name)
}

// resolveGeom turns an argument into a geometry value. Both undrawn
// geometry and references to drawn entities are accepted; editing verbs
// resolve references against the sketch being built.
func resolveGeom(sk *sketch.Sketch, s zygo.Sexp) (geom.Geometry, error) {
	switch v := s.(type) {
	case *sexpGeom:
		return v.g, nil
	case *sexpEntityRef:
		e := sk.Get(v.id)
		if e == nil {
			return nil, fmt.Errorf("entity %s no longer exists (edited away?)", v.id.Short())
		}
		return e.Geom, nil
	}
	return nil, fmt.Errorf("expected geometry or drawn entity, got %T (%s)", s, s.SexpString(nil))
}

// resolveSegment is resolveGeom narrowed to segments, for verbs whose
// target must be a segment.
func resolveSegment(sk *sketch.Sketch, s zygo.Sexp) (geom.Segment, error) {
	g, err := resolveGeom(sk, s)
	if err != nil {
		return geom.Segment{}, err
	}
	seg, ok := g.(geom.Segment)
	if !ok {
		return geom.Segment{}, fmt.Errorf("expected segment, got %s", g.Kind())
	}
	return seg, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the drafting DSL builtins into a zygomys
// environment. Construction verbs return geometry values; `draw` places
// them in the sketch; editing verbs replace drawn entities in place.
//
// Source must be preprocessed with preprocessSource() first so that
// :keyword tokens arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, sk *sketch.Sketch) {

	// -----------------------------------------------------------------------
	// (point 10 20)
	// -----------------------------------------------------------------------
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("point requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: y: %w", err)
		}
		return &sexpPoint{p: geom.Pt(x, y)}, nil
	})

	// -----------------------------------------------------------------------
	// (segment (point 0 0) (point 100 0))   or   (segment 0 0 100 0)
	// -----------------------------------------------------------------------
	env.AddFunction("segment", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		var a, b geom.Point
		switch len(args) {
		case 2:
			var err error
			if a, err = toPoint(args[0]); err != nil {
				return zygo.SexpNull, fmt.Errorf("segment: start: %w", err)
			}
			if b, err = toPoint(args[1]); err != nil {
				return zygo.SexpNull, fmt.Errorf("segment: end: %w", err)
			}
		case 4:
			coords, err := floatArgs("segment", args)
			if err != nil {
				return zygo.SexpNull, err
			}
			a, b = geom.Pt(coords[0], coords[1]), geom.Pt(coords[2], coords[3])
		default:
			return zygo.SexpNull, fmt.Errorf("segment requires 2 points or 4 coordinates, got %d arguments", len(args))
		}

		s, err := geom.NewSegment(a, b, geom.Epsilon)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("segment: %w", err)
		}
		return &sexpGeom{g: s}, nil
	})

	// -----------------------------------------------------------------------
	// (circle (point 50 50) 20)   or   (circle 50 50 20)
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		var center geom.Point
		var radius float64
		switch len(args) {
		case 2:
			var err error
			if center, err = toPoint(args[0]); err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: center: %w", err)
			}
			if radius, err = toFloat64(args[1]); err != nil {
				return zygo.SexpNull, fmt.Errorf("circle: radius: %w", err)
			}
		case 3:
			coords, err := floatArgs("circle", args)
			if err != nil {
				return zygo.SexpNull, err
			}
			center, radius = geom.Pt(coords[0], coords[1]), coords[2]
		default:
			return zygo.SexpNull, fmt.Errorf("circle requires a center and radius, got %d arguments", len(args))
		}

		c, err := geom.NewCircle(center, radius, geom.Epsilon)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		return &sexpGeom{g: c}, nil
	})

	// -----------------------------------------------------------------------
	// (arc (point 0 0) 10 0 1.5708 :dir :cw)
	//
	// Angles are radians; direction defaults to counter-clockwise.
	// -----------------------------------------------------------------------
	env.AddFunction("arc", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 4 {
			return zygo.SexpNull, fmt.Errorf("arc requires center, radius, start and end, got %d arguments", len(pa.positional))
		}

		center, err := toPoint(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("arc: center: %w", err)
		}
		radius, err := toFloat64(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("arc: radius: %w", err)
		}
		start, err := toFloat64(pa.positional[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("arc: start: %w", err)
		}
		end, err := toFloat64(pa.positional[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("arc: end: %w", err)
		}

		dir := geom.CCW
		if v, ok := pa.kw["dir"]; ok {
			if dir, err = toDirection(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("arc: dir: %w", err)
			}
		}

		a, err := geom.NewArc(center, radius, start, end, dir, geom.Epsilon)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("arc: %w", err)
		}
		return &sexpGeom{g: a}, nil
	})

	// -----------------------------------------------------------------------
	// (draw (segment 0 0 100 0) :layer "walls")
	// -----------------------------------------------------------------------
	env.AddFunction("draw", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("draw requires exactly 1 geometry, got %d arguments", len(pa.positional))
		}

		gv, ok := pa.positional[0].(*sexpGeom)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("draw: expected geometry, got %T (%s)",
				pa.positional[0], pa.positional[0].SexpString(nil))
		}

		layer := ""
		if v, ok := pa.kw["layer"]; ok {
			var err error
			if layer, err = toString(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("draw: layer: %w", err)
			}
		}

		e := sk.Add(gv.g, layer)
		return &sexpEntityRef{id: e.ID}, nil
	})

	// -----------------------------------------------------------------------
	// (intersect a b)
	//
	// Returns the intersection points; an empty result when the pair does
	// not meet. Degenerate pairs (coincident lines, identical circles)
	// error out.
	// -----------------------------------------------------------------------
	env.AddFunction("intersect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("intersect requires exactly 2 geometries, got %d", len(args))
		}
		a, err := resolveGeom(sk, args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
		}
		b, err := resolveGeom(sk, args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
		}

		pts, err := intersect.Points(a, b, geom.Epsilon)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
		}
		return &sexpPoints{pts: pts}, nil
	})

	// -----------------------------------------------------------------------
	// (trim target cutter (point 30 0))
	//
	// Target must be a drawn segment; it is replaced in the sketch by the
	// kept piece, and the new reference is returned.
	// -----------------------------------------------------------------------
	env.AddFunction("trim", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("trim requires target, cutter and pick, got %d arguments", len(args))
		}
		ref, err := toEntityRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("trim: target: %w", err)
		}
		target, err := resolveSegment(sk, args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("trim: target: %w", err)
		}
		cutter, err := resolveGeom(sk, args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("trim: cutter: %w", err)
		}
		pick, err := toPoint(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("trim: pick: %w", err)
		}

		trimmed, err := edit.Trim(target, cutter, pick, geom.Epsilon)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("trim: %w", err)
		}
		e, err := sk.Replace(ref.id, trimmed)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("trim: %w", err)
		}
		return &sexpEntityRef{id: e.ID}, nil
	})

	// -----------------------------------------------------------------------
	// (extend target boundary :end :b)
	//
	// Extends the chosen end of a drawn segment to the boundary geometry.
	// The end defaults to :b.
	// -----------------------------------------------------------------------
	env.AddFunction("extend", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("extend requires target and boundary, got %d arguments", len(pa.positional))
		}
		ref, err := toEntityRef(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extend: target: %w", err)
		}
		target, err := resolveSegment(sk, pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extend: target: %w", err)
		}
		boundary, err := resolveGeom(sk, pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extend: boundary: %w", err)
		}

		end := edit.EndB
		if v, ok := pa.kw["end"]; ok {
			if end, err = toEnd(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("extend: end: %w", err)
			}
		}

		extended, err := edit.Extend(target, boundary, end, geom.Epsilon)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extend: %w", err)
		}
		e, err := sk.Replace(ref.id, extended)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extend: %w", err)
		}
		return &sexpEntityRef{id: e.ID}, nil
	})

	// -----------------------------------------------------------------------
	// (fillet a b 5 (point 95 5))
	//
	// Both inputs must be drawn entities. They are replaced by their
	// trimmed forms, the fillet arc is drawn on the first input's layer,
	// and the arc's reference is returned.
	// -----------------------------------------------------------------------
	env.AddFunction("fillet", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		refA, refB, radius, pick, err := editPairArgs("fillet", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		ga, gb, layer, err := resolvePair(sk, refA, refB)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fillet: %w", err)
		}

		res, err := edit.Fillet(ga, gb, radius, pick, geom.Epsilon)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fillet: %w", err)
		}
		if _, err := sk.Replace(refA.id, res.A); err != nil {
			return zygo.SexpNull, fmt.Errorf("fillet: %w", err)
		}
		if _, err := sk.Replace(refB.id, res.B); err != nil {
			return zygo.SexpNull, fmt.Errorf("fillet: %w", err)
		}
		e := sk.Add(res.Fillet, layer)
		return &sexpEntityRef{id: e.ID}, nil
	})

	// -----------------------------------------------------------------------
	// (chamfer a b 3 (point 95 5))
	//
	// Same contract as fillet, with a straight connector instead of an
	// arc. Both inputs must be drawn segments.
	// -----------------------------------------------------------------------
	env.AddFunction("chamfer", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		refA, refB, dist, pick, err := editPairArgs("chamfer", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		ga, gb, layer, err := resolvePair(sk, refA, refB)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("chamfer: %w", err)
		}

		res, err := edit.Chamfer(ga, gb, dist, dist, pick, geom.Epsilon)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("chamfer: %w", err)
		}
		if _, err := sk.Replace(refA.id, res.A); err != nil {
			return zygo.SexpNull, fmt.Errorf("chamfer: %w", err)
		}
		if _, err := sk.Replace(refB.id, res.B); err != nil {
			return zygo.SexpNull, fmt.Errorf("chamfer: %w", err)
		}
		e := sk.Add(res.Chamfer, layer)
		return &sexpEntityRef{id: e.ID}, nil
	})

	// -----------------------------------------------------------------------
	// (offset g 10 (point 50 -5))
	//
	// Returns the offset geometry without drawing it; pass the result to
	// draw to place it.
	// -----------------------------------------------------------------------
	env.AddFunction("offset", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("offset requires geometry, distance and side, got %d arguments", len(args))
		}
		g, err := resolveGeom(sk, args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("offset: %w", err)
		}
		dist, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("offset: distance: %w", err)
		}
		side, err := toPoint(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("offset: side: %w", err)
		}

		out, err := edit.Offset(g, dist, side, geom.Epsilon)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("offset: %w", err)
		}
		return &sexpGeom{g: out}, nil
	})

	// -----------------------------------------------------------------------
	// (snap 49.8 50.1 0.5)
	//
	// Snaps a cursor position against everything drawn so far. Returns
	// nil when nothing is within the pick radius; the result is accepted
	// anywhere a point is.
	// -----------------------------------------------------------------------
	env.AddFunction("snap", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("snap requires x, y and radius, got %d arguments", len(args))
		}
		coords, err := floatArgs("snap", args)
		if err != nil {
			return zygo.SexpNull, err
		}

		res, err := snap.Find(geom.Pt(coords[0], coords[1]), sk.Geometries(), coords[2], geom.Epsilon)
		if err != nil {
			if errors.Is(err, geom.ErrOutOfTolerance) {
				return zygo.SexpNull, nil
			}
			return zygo.SexpNull, fmt.Errorf("snap: %w", err)
		}
		return &sexpSnap{res: res}, nil
	})
}

// floatArgs converts every argument to a float64.
func floatArgs(verb string, args []zygo.Sexp) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", verb, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// editPairArgs parses the shared argument shape of fillet and chamfer:
// two drawn entities, a distance, and a pick point.
func editPairArgs(verb string, args []zygo.Sexp) (refA, refB *sexpEntityRef, dist float64, pick geom.Point, err error) {
	if len(args) != 4 {
		return nil, nil, 0, geom.Point{}, fmt.Errorf("%s requires two entities, a distance and a pick, got %d arguments", verb, len(args))
	}
	if refA, err = toEntityRef(args[0]); err != nil {
		return nil, nil, 0, geom.Point{}, fmt.Errorf("%s: first entity: %w", verb, err)
	}
	if refB, err = toEntityRef(args[1]); err != nil {
		return nil, nil, 0, geom.Point{}, fmt.Errorf("%s: second entity: %w", verb, err)
	}
	if dist, err = toFloat64(args[2]); err != nil {
		return nil, nil, 0, geom.Point{}, fmt.Errorf("%s: distance: %w", verb, err)
	}
	if pick, err = toPoint(args[3]); err != nil {
		return nil, nil, 0, geom.Point{}, fmt.Errorf("%s: pick: %w", verb, err)
	}
	return refA, refB, dist, pick, nil
}

// resolvePair resolves two drawn entities and reports the layer the
// connector geometry should land on (the first entity's layer).
func resolvePair(sk *sketch.Sketch, refA, refB *sexpEntityRef) (ga, gb geom.Geometry, layer string, err error) {
	ea := sk.Get(refA.id)
	if ea == nil {
		return nil, nil, "", fmt.Errorf("entity %s no longer exists (edited away?)", refA.id.Short())
	}
	eb := sk.Get(refB.id)
	if eb == nil {
		return nil, nil, "", fmt.Errorf("entity %s no longer exists (edited away?)", refB.id.Short())
	}
	return ea.Geom, eb.Geom, ea.Layer, nil
}
