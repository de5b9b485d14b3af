package arcs

// PointIter walks the vertices of a path:
//
//	for it.Next() {
//		x, y := it.Point()
//	}
type PointIter interface {
	Next() bool
	Point() (x, y float64)
}

// ArcIter walks a single arc in either direction. While a threshold is
// active, interior vertices with a weight at or below it are skipped; the
// first and last vertex are always produced.
//
// An ArcIter is bound to the dataset version it was created for. Using it
// after the dataset was mutated panics; call Reset to rebind it.
type ArcIter struct {
	src     *Dataset
	version uint64
	id      ID

	i, inc, stop, last int
	zlim               float64

	x, y float64
}

// ArcIter returns a cursor positioned before the first vertex of arc id.
func (d *Dataset) ArcIter(id ID) *ArcIter {
	it := &ArcIter{}
	d.initArcIter(it, id)
	return it
}

func (d *Dataset) initArcIter(it *ArcIter, id ID) {
	n := id.Unsigned()
	d.checkArc(n)
	start, length := d.ii[n], d.nn[n]

	it.src = d
	it.version = d.version
	it.id = id
	it.zlim = d.zlimit
	if id.IsReversed() {
		it.i = start + length - 1
		it.inc = -1
		it.stop = start - 1
		it.last = start
	} else {
		it.i = start
		it.inc = 1
		it.stop = start + length
		it.last = start + length - 1
	}
}

// Reset rewinds the cursor against the current state of its dataset.
func (it *ArcIter) Reset() {
	it.src.initArcIter(it, it.id)
}

// ID returns the arc reference being walked.
func (it *ArcIter) ID() ID {
	return it.id
}

func (it *ArcIter) Next() bool {
	it.src.checkVersion(it.version)
	i := it.i
	if i == it.stop {
		return false
	}
	j := i + it.inc
	if it.zlim > 0 {
		zz := it.src.zz
		for j != it.stop && j != it.last && zz[j] <= it.zlim {
			j += it.inc
		}
	}
	it.i = j
	it.x = it.src.xx[i]
	it.y = it.src.yy[i]
	return true
}

func (it *ArcIter) Point() (float64, float64) {
	return it.x, it.y
}

// ShapeIter walks a path made of one or more arcs. The first vertex of every
// arc after the first is skipped, since it repeats the junction with the
// previous arc.
type ShapeIter struct {
	src     *Dataset
	version uint64
	ids     []ID
	pos     int
	arc     ArcIter

	x, y float64
}

func (d *Dataset) ShapeIter(ids []ID) *ShapeIter {
	it := &ShapeIter{}
	d.initShapeIter(it, ids)
	return it
}

func (d *Dataset) initShapeIter(it *ShapeIter, ids []ID) {
	it.src = d
	it.version = d.version
	it.ids = ids
	it.pos = 0
	if len(ids) > 0 {
		d.initArcIter(&it.arc, ids[0])
	}
}

func (it *ShapeIter) Reset() {
	it.src.initShapeIter(it, it.ids)
}

func (it *ShapeIter) Next() bool {
	it.src.checkVersion(it.version)
	for it.pos < len(it.ids) {
		if it.arc.Next() {
			it.x, it.y = it.arc.x, it.arc.y
			return true
		}
		it.pos++
		if it.pos < len(it.ids) {
			it.src.initArcIter(&it.arc, it.ids[it.pos])
			it.arc.Next()
		}
	}
	return false
}

func (it *ShapeIter) Point() (float64, float64) {
	return it.x, it.y
}

// Points drains it into a slice.
func Points(it PointIter) [][2]float64 {
	var out [][2]float64
	for it.Next() {
		x, y := it.Point()
		out = append(out, [2]float64{x, y})
	}
	return out
}

func (d *Dataset) checkVersion(v uint64) {
	if v != d.version {
		panic("arcs: iterator used after the dataset was modified")
	}
}
