package arcs

import (
	"math"
	"sort"

	"github.com/Workiva/go-datastructures/augmentedtree"

	"github.com/saidabou/mapshaper/geom"
)

// Grid size used to turn float boxes into tree intervals.
const indexResolution = 1 << 30

// Index answers "which arcs touch this box" queries. It is built from the
// per-arc boxes of a dataset and must be rebuilt after the dataset changes.
//
// Boxes are snapped outwards onto an integer grid for the tree, candidates
// are then checked against the exact arc boxes.
type Index struct {
	src     *Dataset
	version uint64
	tree    augmentedtree.Tree
	grid    geom.Transform
}

type arcInterval struct {
	id     uint64
	lo, hi [2]int64
}

func dim(d uint64) int {
	if d <= 1 {
		return 0
	}
	return 1
}

func (s *arcInterval) LowAtDimension(d uint64) int64 {
	return s.lo[dim(d)]
}

func (s *arcInterval) HighAtDimension(d uint64) int64 {
	return s.hi[dim(d)]
}

func (s *arcInterval) OverlapsAtDimension(i augmentedtree.Interval, d uint64) bool {
	return s.HighAtDimension(d) > i.LowAtDimension(d) &&
		s.LowAtDimension(d) < i.HighAtDimension(d)
}

func (s *arcInterval) ID() uint64 {
	return s.id
}

func NewIndex(d *Dataset) *Index {
	idx := &Index{
		src:     d,
		version: d.version,
		tree:    augmentedtree.New(2),
		grid:    d.bounds.TransformTo(geom.NewBounds(0, 0, indexResolution, indexResolution)),
	}
	if d.Size() == 0 {
		return idx
	}

	intervals := make([]augmentedtree.Interval, 0, d.Size())
	for i := 0; i < d.Size(); i++ {
		if d.nn[i] == 0 {
			continue
		}
		intervals = append(intervals, idx.interval(uint64(i), d.ArcBounds(i)))
	}
	idx.tree.Add(intervals...)
	return idx
}

func (idx *Index) interval(id uint64, b geom.Bounds) *arcInterval {
	x0, y0 := idx.grid.Apply(b.XMin(), b.YMin())
	x1, y1 := idx.grid.Apply(b.XMax(), b.YMax())
	return &arcInterval{
		id: id,
		lo: [2]int64{snapLow(x0), snapLow(y0)},
		hi: [2]int64{snapHigh(x1), snapHigh(y1)},
	}
}

func clampGrid(v float64) float64 {
	return math.Max(-2, math.Min(indexResolution+2, v))
}

func snapLow(v float64) int64 {
	return int64(math.Floor(clampGrid(v))) - 1
}

func snapHigh(v float64) int64 {
	return int64(math.Ceil(clampGrid(v))) + 1
}

// Query returns the ids of arcs whose box intersects b, in ascending order.
func (idx *Index) Query(b geom.Bounds) []int {
	idx.src.checkVersion(idx.version)
	if b.IsEmpty() || idx.tree.Len() == 0 {
		return nil
	}

	results := idx.tree.Query(idx.interval(0, b))
	defer results.Dispose()

	ids := make([]int, 0, len(results))
	for _, r := range results {
		id := int(r.ID())
		if idx.src.ArcIntersectsBBox(id, b) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
