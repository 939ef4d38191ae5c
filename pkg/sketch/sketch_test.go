package sketch

import (
	"testing"

	"github.com/chazu/draft2d/pkg/geom"
)

const eps = geom.Epsilon

func seg(x1, y1, x2, y2 float64) geom.Segment {
	return geom.Segment{A: geom.Pt(x1, y1), B: geom.Pt(x2, y2)}
}

func TestAddAndGet(t *testing.T) {
	s := New()
	e := s.Add(seg(0, 0, 10, 0), "walls")

	if e.ID.IsZero() {
		t.Fatal("Add() assigned no ID")
	}
	if got := s.Get(e.ID); got != e {
		t.Fatalf("Get(%s) = %v, want the added entity", e.ID.Short(), got)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestDefaultLayer(t *testing.T) {
	s := New()
	e := s.Add(seg(0, 0, 1, 0), "")
	if e.Layer != DefaultLayer {
		t.Fatalf("layer = %q, want %q", e.Layer, DefaultLayer)
	}
}

func TestDistinctIDsForIdenticalGeometry(t *testing.T) {
	s := New()
	a := s.Add(seg(0, 0, 10, 0), "walls")
	b := s.Add(seg(0, 0, 10, 0), "walls")
	if a.ID == b.ID {
		t.Fatalf("identical geometries share ID %s", a.ID)
	}
}

func TestReplace(t *testing.T) {
	s := New()
	e := s.Add(seg(0, 0, 10, 0), "walls")
	oldID := e.ID

	got, err := s.Replace(oldID, seg(0, 0, 5, 0))
	if err != nil {
		t.Fatalf("Replace() error: %v", err)
	}
	if got.ID == oldID {
		t.Error("Replace() kept the old ID for new content")
	}
	if s.Get(oldID) != nil {
		t.Error("old ID still resolves after Replace()")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d after Replace(), want 1", s.Len())
	}
	if ns := got.Geom.(geom.Segment); !geom.PointsEqual(ns.B, geom.Pt(5, 0), eps) {
		t.Fatalf("replaced geometry = %v, want to end at (5, 0)", ns)
	}

	if _, err := s.Replace("missing", seg(0, 0, 1, 0)); err == nil {
		t.Error("Replace() of unknown ID succeeded")
	}
}

func TestRemove(t *testing.T) {
	s := New()
	a := s.Add(seg(0, 0, 10, 0), "walls")
	b := s.Add(seg(0, 5, 10, 5), "walls")

	if !s.Remove(a.ID) {
		t.Fatal("Remove() = false for existing entity")
	}
	if s.Remove(a.ID) {
		t.Fatal("Remove() = true for already-removed entity")
	}
	if s.Len() != 1 || s.Entities[0] != b {
		t.Fatalf("unexpected entities after Remove: %v", s.Entities)
	}
}

func TestByLayerAndLayers(t *testing.T) {
	s := New()
	s.Add(seg(0, 0, 1, 0), "walls")
	s.Add(seg(0, 1, 1, 1), "wiring")
	s.Add(seg(0, 2, 1, 2), "walls")

	if got := s.ByLayer("walls"); len(got) != 2 {
		t.Fatalf("ByLayer(walls) has %d entities, want 2", len(got))
	}
	layers := s.Layers()
	if len(layers) != 2 || layers[0] != "walls" || layers[1] != "wiring" {
		t.Fatalf("Layers() = %v, want [walls wiring]", layers)
	}
}

func TestValidateCleanSketch(t *testing.T) {
	s := New()
	s.Add(seg(0, 0, 10, 0), "walls")
	s.Add(geom.Circle{Center: geom.Pt(5, 5), Radius: 2}, "devices")

	res := Validate(s, eps)
	if len(res.Errors) != 0 {
		t.Fatalf("Validate() errors = %v, want none", res.Errors)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("Validate() warnings = %v, want none", res.Warnings)
	}
}

func TestValidateDegenerateGeometry(t *testing.T) {
	s := New()
	// Bypasses the constructors, as an importer might.
	s.Add(geom.Segment{A: geom.Pt(1, 1), B: geom.Pt(1, 1)}, "walls")
	s.Add(geom.Circle{Center: geom.Pt(0, 0), Radius: 0}, "devices")

	res := Validate(s, eps)
	if len(res.Errors) != 2 {
		t.Fatalf("Validate() errors = %v, want 2", res.Errors)
	}
	for _, e := range res.Errors {
		if e.Severity != SeverityError {
			t.Errorf("severity = %v, want error", e.Severity)
		}
	}
}

func TestValidateDuplicateWarning(t *testing.T) {
	s := New()
	s.Add(seg(0, 0, 10, 0), "walls")
	s.Add(seg(10, 0, 0, 0), "walls") // same segment, reversed

	res := Validate(s, eps)
	if len(res.Errors) != 0 {
		t.Fatalf("Validate() errors = %v, want none", res.Errors)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("Validate() warnings = %v, want 1 duplicate warning", res.Warnings)
	}
}

func TestValidateHairlineWarning(t *testing.T) {
	s := New()
	s.Add(seg(0, 0, 1e-7, 0), "walls") // above eps, below 1000*eps

	res := Validate(s, eps)
	if len(res.Errors) != 0 {
		t.Fatalf("Validate() errors = %v, want none", res.Errors)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("Validate() warnings = %v, want 1 hairline warning", res.Warnings)
	}
}

func TestValidateDuplicatesOnDifferentLayersAllowed(t *testing.T) {
	s := New()
	s.Add(seg(0, 0, 10, 0), "walls")
	s.Add(seg(0, 0, 10, 0), "wiring")

	res := Validate(s, eps)
	if len(res.Warnings) != 0 {
		t.Fatalf("Validate() warnings = %v, want none across layers", res.Warnings)
	}
}
