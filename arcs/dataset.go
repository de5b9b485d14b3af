// Package arcs stores the polylines of a map in one deduplicated set of flat
// coordinate buffers. Shapes reference arcs by ID and walk them through
// iterators that honour the active simplification threshold.
package arcs

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/saidabou/mapshaper/geom"
)

// Dataset is the shared coordinate store.
//
// The x, y and z buffers are parallel; arc i occupies [ii[i], ii[i]+nn[i]).
// z holds a removal weight per vertex: +Inf protects a vertex, any other
// value makes it removable once the threshold reaches it.
//
// Every mutation bumps the version. Cursors created before a mutation panic
// when used afterwards.
type Dataset struct {
	xx, yy, zz []float64
	ii, nn     []int
	zlimit     float64

	bb     []float64
	bounds geom.Bounds

	version uint64
}

// FromPointPairs builds a dataset from arcs given as [[x0, x1, ...], [y0, y1, ...]].
func FromPointPairs(coords [][2][]float64) (*Dataset, error) {
	nn := make([]int, len(coords))
	count := 0
	for i, arc := range coords {
		n := len(arc[0])
		if n == 0 {
			return nil, errors.Errorf("empty arc %d", i)
		}
		if len(arc[1]) != n {
			return nil, errors.Errorf("arc %d has %d x and %d y values", i, n, len(arc[1]))
		}
		nn[i] = n
		count += n
	}

	xx := make([]float64, 0, count)
	yy := make([]float64, 0, count)
	for _, arc := range coords {
		xx = append(xx, arc[0]...)
		yy = append(yy, arc[1]...)
	}
	return FromFlatBuffers(nn, xx, yy, nil)
}

// FromFlatBuffers builds a dataset from arc lengths and concatenated
// coordinates. A nil zz gives every vertex a weight of 0. The buffers are
// owned by the dataset afterwards.
func FromFlatBuffers(nn []int, xx, yy, zz []float64) (*Dataset, error) {
	d := &Dataset{}
	err := d.init(nn, xx, yy, zz)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// init validates the buffers before touching d, so a failed call leaves the
// previous state intact.
func (d *Dataset) init(nn []int, xx, yy, zz []float64) error {
	if zz == nil {
		zz = make([]float64, len(xx))
	}

	ii := make([]int, len(nn))
	idx := 0
	for j, n := range nn {
		if n < 0 {
			return errors.Errorf("arc %d has negative length %d", j, n)
		}
		ii[j] = idx
		idx += n
	}

	if idx != len(xx) || len(xx) != len(yy) || len(xx) != len(zz) {
		return errors.Errorf("counting error: arcs hold %d points, buffers hold x=%d y=%d z=%d",
			idx, len(xx), len(yy), len(zz))
	}

	d.xx, d.yy, d.zz = xx, yy, zz
	d.ii, d.nn = ii, nn
	d.initBounds()
	d.version++
	return nil
}

func (d *Dataset) initBounds() {
	bb := make([]float64, len(d.ii)*4)
	for i := range d.ii {
		if d.nn[i] == 0 {
			// never intersects anything
			nan := math.NaN()
			copy(bb[i*4:], []float64{nan, nan, nan, nan})
			continue
		}
		b := geom.CalcBounds(d.xx, d.yy, d.ii[i], d.nn[i])
		copy(bb[i*4:], b.Slice())
	}
	d.bb = bb
	if len(d.ii) > 0 {
		d.bounds = geom.CalcAllBounds(d.xx, d.yy)
	} else {
		d.bounds = geom.EmptyBounds()
	}
}

func (d *Dataset) checkArc(i int) {
	if i < 0 || i >= len(d.nn) {
		panic(fmt.Sprintf("arcs: arc %d out of range [0, %d)", i, len(d.nn)))
	}
}

// Size returns the number of arcs.
func (d *Dataset) Size() int {
	return len(d.ii)
}

func (d *Dataset) PointCount() int {
	return len(d.xx)
}

// FilteredPointCount counts the vertices that survive the active threshold.
func (d *Dataset) FilteredPointCount() int {
	if d.zlimit <= 0 {
		return d.PointCount()
	}
	count := 0
	for _, z := range d.zz {
		if z > d.zlimit {
			count++
		}
	}
	return count
}

// Bounds returns the box of all arcs.
func (d *Dataset) Bounds() geom.Bounds {
	return d.bounds
}

func (d *Dataset) ArcBounds(i int) geom.Bounds {
	d.checkArc(i)
	return geom.BoundsFromSlice(d.bb[i*4 : i*4+4])
}

func (d *Dataset) ArcLength(i int) int {
	d.checkArc(i)
	return d.nn[i]
}

func (d *Dataset) ArcOffset(i int) int {
	d.checkArc(i)
	return d.ii[i]
}

// ArcCoords returns views of the x, y and z values of arc i. The views are
// capacity-limited to the arc and become invalid after the next mutation.
func (d *Dataset) ArcCoords(i int) (xs, ys, zs []float64) {
	d.checkArc(i)
	s, e := d.ii[i], d.ii[i]+d.nn[i]
	return d.xx[s:e:e], d.yy[s:e:e], d.zz[s:e:e]
}

// Threshold returns the active simplification threshold, 0 when disabled.
func (d *Dataset) Threshold() float64 {
	return d.zlimit
}

// Version changes whenever the buffers are mutated.
func (d *Dataset) Version() uint64 {
	return d.version
}

func (d *Dataset) ArcIntersectsBBox(i int, b geom.Bounds) bool {
	d.checkArc(i)
	bb := d.bb[i*4:]
	return bb[0] <= b.XMax() && bb[2] >= b.XMin() && bb[3] >= b.YMin() && bb[1] <= b.YMax()
}

// ArcIsSmaller reports whether both sides of the box of arc i are shorter
// than units.
func (d *Dataset) ArcIsSmaller(i int, units float64) bool {
	d.checkArc(i)
	bb := d.bb[i*4:]
	return bb[2]-bb[0] < units && bb[3]-bb[1] < units
}

// ForEach calls cb with a forward iterator for every arc. The iterator is
// reused between calls.
func (d *Dataset) ForEach(cb func(it *ArcIter, arcID int)) {
	it := &ArcIter{}
	for i := 0; i < d.Size(); i++ {
		d.initArcIter(it, Fwd(i))
		cb(it, i)
	}
}

// ToArray returns every arc as a list of points, honouring the threshold.
func (d *Dataset) ToArray() [][][2]float64 {
	out := make([][][2]float64, d.Size())
	for i := range out {
		out[i] = Points(d.ArcIter(Fwd(i)))
	}
	return out
}

// AverageSegment returns the mean absolute dx and dy of all segments.
func (d *Dataset) AverageSegment() (float64, float64) {
	count := 0
	dx, dy := 0.0, 0.0
	for a := range d.ii {
		for i, end := d.ii[a], d.ii[a]+d.nn[a]-1; i < end; i++ {
			dx += math.Abs(d.xx[i+1] - d.xx[i])
			dy += math.Abs(d.yy[i+1] - d.yy[i])
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return dx / float64(count), dy / float64(count)
}
