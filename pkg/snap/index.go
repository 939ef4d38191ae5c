package snap

import (
	"fmt"

	"github.com/dhconnelly/rtreego"

	"github.com/chazu/draft2d/pkg/geom"
)

// bboxPad keeps every indexed rectangle strictly positive in both
// dimensions; axis-aligned segments otherwise collapse to a zero-height
// or zero-width box, which the R-tree rejects.
const bboxPad = 1e-9

// Index is an R-tree over candidate geometries. Interactive tools build
// one per scene and query it on every mouse move; queries do not mutate
// the index, so concurrent readers need no locking.
type Index struct {
	tree *rtreego.Rtree
}

// item pairs a geometry with its precomputed bounding rectangle.
type item struct {
	g  geom.Geometry
	bb rtreego.Rect
}

func (it *item) Bounds() rtreego.Rect { return it.bb }

// NewIndex builds a spatial index over the given geometries.
func NewIndex(geoms []geom.Geometry) *Index {
	tree := rtreego.NewTree(2, 2, 8)
	for _, g := range geoms {
		min, max := g.Bounds()
		bb, err := rtreego.NewRect(
			rtreego.Point{min.X - bboxPad, min.Y - bboxPad},
			[]float64{max.X - min.X + 2*bboxPad, max.Y - min.Y + 2*bboxPad},
		)
		if err != nil {
			// Padded lengths are always positive; dimension mismatch is
			// the only remaining failure and cannot happen for 2D input.
			panic(fmt.Sprintf("snap: bounding rect: %v", err))
		}
		tree.Insert(&item{g: g, bb: bb})
	}
	return &Index{tree: tree}
}

// Near returns the geometries whose bounding boxes come within radius of
// the cursor.
func (ix *Index) Near(cursor geom.Point, radius float64) []geom.Geometry {
	bb := rtreego.Point{cursor.X, cursor.Y}.ToRect(radius)
	hits := ix.tree.SearchIntersect(bb)
	out := make([]geom.Geometry, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(*item).g)
	}
	return out
}
