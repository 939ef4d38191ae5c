// Package sketch defines the flat drawing container kernel callers work
// with: an ordered list of geometry entities, each tagged with a layer
// name. The kernel itself has no awareness of layers or sketches; editing
// operations take geometry values, and the sketch replaces entities
// wholesale with the results.
package sketch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/chazu/draft2d/pkg/geom"
)

// DefaultLayer is the layer entities land on when the caller names none.
const DefaultLayer = "0"

// EntityID is a content-derived identifier for sketch entities. Two
// identical geometries still get distinct IDs: the sketch's insertion
// sequence is folded into the hash.
type EntityID string

// Short returns an abbreviated form for messages.
func (id EntityID) Short() string {
	if len(id) <= 8 {
		return string(id)
	}
	return string(id[:8])
}

// IsZero reports whether the ID is unset.
func (id EntityID) IsZero() bool { return id == "" }

// Entity is one drawable item: a geometry value on a layer.
type Entity struct {
	ID    EntityID
	Layer string
	Geom  geom.Geometry
}

// Sketch is the flat drawing: an ordered entity list with an ID index.
// It is not safe for concurrent mutation; the kernel functions it feeds
// are pure, so concurrent readers are fine.
type Sketch struct {
	Entities []*Entity
	byID     map[EntityID]*Entity
	seq      uint64
}

// New creates an empty sketch.
func New() *Sketch {
	return &Sketch{byID: make(map[EntityID]*Entity)}
}

// Add appends a geometry to the sketch on the given layer (DefaultLayer
// when empty) and returns the new entity.
func (s *Sketch) Add(g geom.Geometry, layer string) *Entity {
	if layer == "" {
		layer = DefaultLayer
	}
	s.seq++
	e := &Entity{
		ID:    newEntityID(s.seq, layer, g),
		Layer: layer,
		Geom:  g,
	}
	s.Entities = append(s.Entities, e)
	s.byID[e.ID] = e
	return e
}

// Get returns the entity with the given ID, or nil.
func (s *Sketch) Get(id EntityID) *Entity {
	return s.byID[id]
}

// Replace swaps the geometry of an existing entity for a new value,
// keeping its position and layer. The entity gets a fresh ID: content
// changed, so the old one no longer names it.
func (s *Sketch) Replace(id EntityID, g geom.Geometry) (*Entity, error) {
	old := s.byID[id]
	if old == nil {
		return nil, fmt.Errorf("sketch: no entity %s", id.Short())
	}
	s.seq++
	delete(s.byID, id)
	old.ID = newEntityID(s.seq, old.Layer, g)
	old.Geom = g
	s.byID[old.ID] = old
	return old, nil
}

// Remove deletes the entity with the given ID. Reports whether it existed.
func (s *Sketch) Remove(id EntityID) bool {
	e := s.byID[id]
	if e == nil {
		return false
	}
	delete(s.byID, id)
	for i, cur := range s.Entities {
		if cur == e {
			s.Entities = append(s.Entities[:i], s.Entities[i+1:]...)
			break
		}
	}
	return true
}

// ByLayer returns the entities on the given layer, in insertion order.
func (s *Sketch) ByLayer(layer string) []*Entity {
	var out []*Entity
	for _, e := range s.Entities {
		if e.Layer == layer {
			out = append(out, e)
		}
	}
	return out
}

// Layers returns the sorted set of layer names in use.
func (s *Sketch) Layers() []string {
	seen := make(map[string]bool)
	for _, e := range s.Entities {
		seen[e.Layer] = true
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Geometries returns every entity's geometry in insertion order, the
// form the snap engine takes as candidates.
func (s *Sketch) Geometries() []geom.Geometry {
	out := make([]geom.Geometry, len(s.Entities))
	for i, e := range s.Entities {
		out[i] = e.Geom
	}
	return out
}

// Len returns the number of entities.
func (s *Sketch) Len() int { return len(s.Entities) }

// newEntityID hashes the sequence number, layer and geometry into a
// short stable identifier.
func newEntityID(seq uint64, layer string, g geom.Geometry) EntityID {
	h := sha256.Sum256([]byte(fmt.Sprintf("%d|%s|%s|%+v", seq, layer, g.Kind(), g)))
	return EntityID(hex.EncodeToString(h[:6]))
}
