package arcs

import (
	"testing"

	"github.com/cheekybits/is"

	"github.com/saidabou/mapshaper/geom"
)

func reversed(pts [][2]float64) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func TestID(t *testing.T) {
	is := is.New(t)

	is.Equal(Rev(0), ID(-1))
	is.Equal(Rev(3), ID(-4))
	is.Equal(Rev(3).Unsigned(), 3)
	is.True(Rev(3).IsReversed())
	is.False(Fwd(0).IsReversed())
	is.Equal(Rev(3).Reverse(), Fwd(3))
	is.Equal(Fwd(7).Reverse().Reverse(), Fwd(7))
	is.Equal(Rev(2).String(), "~2")
	is.Equal(IDs([]int{0, -2}), []ID{Fwd(0), Rev(1)})
}

func TestArcIterForward(t *testing.T) {
	is := is.New(t)

	d := newTestDataset(is)
	is.Equal(Points(d.ArcIter(Fwd(1))), [][2]float64{{1, 1}, {0, 1}, {0, 0}, {1, 0}})
}

func TestArcIterReverse(t *testing.T) {
	is := is.New(t)

	d := newTestDataset(is)
	for i := 0; i < d.Size(); i++ {
		fw := Points(d.ArcIter(Fwd(i)))
		bw := Points(d.ArcIter(Rev(i)))
		is.Equal(bw, reversed(fw))
		is.Equal(bw[0], fw[len(fw)-1])
		is.Equal(bw[len(bw)-1], fw[0])
	}
}

func TestArcIterThreshold(t *testing.T) {
	is := is.New(t)

	d := newTestDataset(is)

	// arc 1 weights: inf, 3, 7, inf
	d.SetRetainedInterval(3)
	is.Equal(Points(d.ArcIter(Fwd(1))), [][2]float64{{1, 1}, {0, 0}, {1, 0}})
	is.Equal(Points(d.ArcIter(Rev(1))), [][2]float64{{1, 0}, {0, 0}, {1, 1}})

	d.SetRetainedInterval(100)
	is.Equal(Points(d.ArcIter(Fwd(1))), [][2]float64{{1, 1}, {1, 0}})
	is.Equal(Points(d.ArcIter(Rev(1))), [][2]float64{{1, 0}, {1, 1}})
}

func TestArcIterKeepsUnprotectedEndpoints(t *testing.T) {
	is := is.New(t)

	d, err := FromFlatBuffers([]int{4},
		[]float64{0, 1, 2, 3},
		[]float64{0, 1, 0, 1},
		[]float64{1, 1, 1, 1})
	is.NoErr(err)
	d.SetRetainedInterval(5)
	is.Equal(Points(d.ArcIter(Fwd(0))), [][2]float64{{0, 0}, {3, 1}})
	is.Equal(Points(d.ArcIter(Rev(0))), [][2]float64{{3, 1}, {0, 0}})
}

func TestArcIterReset(t *testing.T) {
	is := is.New(t)

	d := newTestDataset(is)
	it := d.ArcIter(Rev(2))
	first := Points(it)
	is.False(it.Next())

	it.Reset()
	is.Equal(Points(it), first)
}

func TestShapeIter(t *testing.T) {
	is := is.New(t)

	d := newTestDataset(is)

	// left triangle: shared edge walked upwards, then arc 1
	left := Points(d.ShapeIter([]ID{Fwd(0), Fwd(1)}))
	is.Equal(left, [][2]float64{{1, 0}, {1, 1}, {0, 1}, {0, 0}, {1, 0}})

	// right triangle uses the shared edge downwards
	right := Points(d.ShapeIter([]ID{Fwd(2), Rev(0)}))
	is.Equal(right, [][2]float64{{1, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 0}})
}

func TestShapeIterThreshold(t *testing.T) {
	is := is.New(t)

	d := newTestDataset(is)
	d.SetRetainedInterval(5)
	right := Points(d.ShapeIter([]ID{Fwd(2), Rev(0)}))
	is.Equal(right, [][2]float64{{1, 0}, {1, 1}, {1, 0}})

	left := Points(d.ShapeIter([]ID{Rev(1), Rev(0)}))
	is.Equal(left, [][2]float64{{1, 0}, {0, 0}, {1, 1}, {1, 0}})
}

func TestShapeIterEmpty(t *testing.T) {
	is := is.New(t)

	d := newTestDataset(is)
	it := d.ShapeIter(nil)
	is.False(it.Next())
}

func TestShapeIterReset(t *testing.T) {
	is := is.New(t)

	d := newTestDataset(is)
	it := d.ShapeIter([]ID{Fwd(0), Fwd(1)})
	n := len(Points(it))
	it.Reset()
	is.Equal(len(Points(it)), n)
}

func TestStaleIteratorPanics(t *testing.T) {
	is := is.New(t)

	d := newTestDataset(is)
	arc := d.ArcIter(Fwd(1))
	shape := d.ShapeIter([]ID{Fwd(0), Fwd(1)})
	is.True(arc.Next())
	is.True(shape.Next())

	d.Filter(func(it *ArcIter, arcID int) bool {
		return arcID != 0
	})

	is.Panic(func() {
		arc.Next()
	})
	is.Panic(func() {
		shape.Next()
	})

	// A reset cursor is bound to the new state.
	arc.Reset()
	is.Equal(Points(arc), [][2]float64{{1, 0}, {2, 0}, {2, 1}, {1, 1}})
}

func TestTransformInvalidatesIterators(t *testing.T) {
	is := is.New(t)

	d := newTestDataset(is)
	it := d.ArcIter(Fwd(0))
	d.ApplyTransform(geom.Identity(), false)
	is.Panic(func() {
		it.Next()
	})
}
