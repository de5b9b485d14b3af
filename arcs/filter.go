package arcs

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Removed marks a dropped arc in the remap returned by Filter.
const Removed = -1

// Filter drops the arcs for which keep returns false and re-indexes the rest
// in their original order. The returned slice maps old arc ids to new ones,
// or to Removed. When every arc is kept nothing changes and nil is returned.
//
// Callers holding arc references elsewhere must rewrite them with the remap
// before touching the dataset again.
func (d *Dataset) Filter(keep func(it *ArcIter, arcID int) bool) []int {
	remap := make([]int, d.Size())
	goodArcs, goodPoints := 0, 0
	it := &ArcIter{}
	for i := range remap {
		d.initArcIter(it, Fwd(i))
		if keep(it, i) {
			remap[i] = goodArcs
			goodArcs++
			goodPoints += d.nn[i]
		} else {
			remap[i] = Removed
		}
	}
	if goodArcs == len(remap) {
		return nil
	}

	glog.V(2).Infof("filter: keeping %d of %d arcs, %d of %d points",
		goodArcs, len(remap), goodPoints, d.PointCount())
	d.condenseArcs(remap, goodArcs, goodPoints)
	return remap
}

// condenseArcs copies the kept arcs into fresh buffers and swaps them in.
func (d *Dataset) condenseArcs(remap []int, arcCount, pointCount int) {
	nn := make([]int, arcCount)
	xx := make([]float64, pointCount)
	yy := make([]float64, pointCount)
	zz := make([]float64, pointCount)

	offs := 0
	for i, k := range remap {
		if k == Removed {
			continue
		}
		s, n := d.ii[i], d.nn[i]
		copy(xx[offs:offs+n], d.xx[s:s+n])
		copy(yy[offs:offs+n], d.yy[s:s+n])
		copy(zz[offs:offs+n], d.zz[s:s+n])
		nn[k] = n
		offs += n
	}

	err := d.init(nn, xx, yy, zz)
	if err != nil {
		// Only reachable through a counting bug above.
		panic(errors.Wrap(err, "condense arcs"))
	}
}

// Copy returns an independent dataset with the same arcs and weights. The
// copy starts without an active threshold.
func (d *Dataset) Copy() *Dataset {
	nn := append([]int(nil), d.nn...)
	xx := append([]float64(nil), d.xx...)
	yy := append([]float64(nil), d.yy...)
	zz := append([]float64(nil), d.zz...)
	c, err := FromFlatBuffers(nn, xx, yy, zz)
	if err != nil {
		panic(errors.Wrap(err, "copy dataset"))
	}
	return c
}

// FilteredCopy returns a new dataset holding only the vertices whose weight
// exceeds the active threshold. An arc left with fewer than two vertices is
// an error: endpoints carry +Inf weights and must always survive.
func (d *Dataset) FilteredCopy() (*Dataset, error) {
	len2 := d.FilteredPointCount()
	if len2 == d.PointCount() {
		return d.Copy(), nil
	}

	xx2 := make([]float64, 0, len2)
	yy2 := make([]float64, 0, len2)
	zz2 := make([]float64, 0, len2)
	nn2 := make([]int, d.Size())

	for arcID := range d.nn {
		n2 := 0
		for i, end := d.ii[arcID], d.ii[arcID]+d.nn[arcID]; i < end; i++ {
			if d.zz[i] > d.zlimit {
				xx2 = append(xx2, d.xx[i])
				yy2 = append(yy2, d.yy[i])
				zz2 = append(zz2, d.zz[i])
				n2++
			}
		}
		if n2 < 2 {
			return nil, errors.Errorf("collapsed arc %d: %d of %d vertices above threshold %v",
				arcID, n2, d.nn[arcID], d.zlimit)
		}
		nn2[arcID] = n2
	}

	return FromFlatBuffers(nn2, xx2, yy2, zz2)
}
