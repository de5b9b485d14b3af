package arcs

import (
	"github.com/pkg/errors"

	"github.com/saidabou/mapshaper/geom"
)

// Shape is anything that can be walked as one or more paths, whether it is
// backed by a single arc or by lists of arc references.
type Shape interface {
	PathCount() int
	// PathIter returns a fresh cursor over path i, 0 <= i < PathCount().
	PathIter(i int) PointIter
}

// Arc is a view of one stored arc.
type Arc struct {
	src *Dataset
	ID  ID
}

func (d *Dataset) Arc(id ID) *Arc {
	d.checkArc(id.Unsigned())
	return &Arc{src: d, ID: id}
}

// Arcs returns a forward view of every arc.
func (d *Dataset) Arcs() []*Arc {
	out := make([]*Arc, d.Size())
	for i := range out {
		out[i] = &Arc{src: d, ID: Fwd(i)}
	}
	return out
}

func (a *Arc) PathCount() int { return 1 }

func (a *Arc) PathIter(int) PointIter {
	return a.src.ArcIter(a.ID)
}

func (a *Arc) InBounds(b geom.Bounds) bool {
	return a.src.ArcIntersectsBBox(a.ID.Unsigned(), b)
}

func (a *Arc) SmallerThan(units float64) bool {
	return a.src.ArcIsSmaller(a.ID.Unsigned(), units)
}

// Points returns the arc as [x, y] pairs in its traversal direction.
func (a *Arc) Points() [][2]float64 {
	return Points(a.src.ArcIter(a.ID))
}

// SimpleShape is a single path made of arc references, e.g. one ring.
type SimpleShape struct {
	src *Dataset
	IDs []ID
}

func (d *Dataset) SimpleShape(ids []ID) *SimpleShape {
	return &SimpleShape{src: d, IDs: ids}
}

func (s *SimpleShape) PathCount() int { return 1 }

func (s *SimpleShape) PathIter(int) PointIter {
	return s.src.ShapeIter(s.IDs)
}

// MultiShape is a shape with several parts, each a list of arc references.
type MultiShape struct {
	src   *Dataset
	Parts [][]ID
}

func (d *Dataset) MultiShape(parts [][]ID) (*MultiShape, error) {
	if len(parts) == 0 {
		return nil, errors.New("missing arc ids")
	}
	return &MultiShape{src: d, Parts: parts}, nil
}

func (m *MultiShape) PathCount() int {
	return len(m.Parts)
}

func (m *MultiShape) PathIter(i int) PointIter {
	return m.src.ShapeIter(m.Parts[i])
}

func (m *MultiShape) Path(i int) (*SimpleShape, error) {
	if i < 0 || i >= len(m.Parts) {
		return nil, errors.Errorf("invalid part id %d, shape has %d parts", i, len(m.Parts))
	}
	return m.src.SimpleShape(m.Parts[i]), nil
}

// Paths returns one SimpleShape per part.
func (m *MultiShape) Paths() []*SimpleShape {
	out := make([]*SimpleShape, len(m.Parts))
	for i, ids := range m.Parts {
		out[i] = m.src.SimpleShape(ids)
	}
	return out
}
