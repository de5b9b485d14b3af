package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// Bounds is an axis-aligned bounding box. The zero value is not empty, use
// EmptyBounds() for a box that contains nothing.
type Bounds struct {
	r2.Rect
}

func NewBounds(xmin, ymin, xmax, ymax float64) Bounds {
	return Bounds{r2.Rect{
		X: r1.Interval{Lo: xmin, Hi: xmax},
		Y: r1.Interval{Lo: ymin, Hi: ymax},
	}}
}

func EmptyBounds() Bounds {
	return Bounds{r2.EmptyRect()}
}

// BoundsFromSlice reads a box stored as [xmin, ymin, xmax, ymax].
func BoundsFromSlice(b []float64) Bounds {
	return NewBounds(b[0], b[1], b[2], b[3])
}

func (b Bounds) XMin() float64 { return b.X.Lo }
func (b Bounds) YMin() float64 { return b.Y.Lo }
func (b Bounds) XMax() float64 { return b.X.Hi }
func (b Bounds) YMax() float64 { return b.Y.Hi }

func (b Bounds) Width() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.X.Hi - b.X.Lo
}

func (b Bounds) Height() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Y.Hi - b.Y.Lo
}

// MergePoint returns the smallest box containing b and (x, y).
func (b Bounds) MergePoint(x, y float64) Bounds {
	return Bounds{b.AddPoint(r2.Point{X: x, Y: y})}
}

func (b Bounds) Intersects(o Bounds) bool {
	return b.Rect.Intersects(o.Rect)
}

func (b Bounds) Contains(o Bounds) bool {
	return b.Rect.Contains(o.Rect)
}

func (b Bounds) ContainsPoint(x, y float64) bool {
	return b.Rect.ContainsPoint(r2.Point{X: x, Y: y})
}

// Slice returns the box as [xmin, ymin, xmax, ymax].
func (b Bounds) Slice() []float64 {
	return []float64{b.X.Lo, b.Y.Lo, b.X.Hi, b.Y.Hi}
}

func (b Bounds) String() string {
	if b.IsEmpty() {
		return "[empty]"
	}
	return fmt.Sprintf("[%g, %g, %g, %g]", b.X.Lo, b.Y.Lo, b.X.Hi, b.Y.Hi)
}

// CalcBounds computes the box of n coordinates starting at start.
func CalcBounds(xx, yy []float64, start, n int) Bounds {
	if n <= 0 {
		return EmptyBounds()
	}
	xmin, ymin := math.Inf(1), math.Inf(1)
	xmax, ymax := math.Inf(-1), math.Inf(-1)
	for i, end := start, start+n; i < end; i++ {
		x, y := xx[i], yy[i]
		if x < xmin {
			xmin = x
		}
		if x > xmax {
			xmax = x
		}
		if y < ymin {
			ymin = y
		}
		if y > ymax {
			ymax = y
		}
	}
	return NewBounds(xmin, ymin, xmax, ymax)
}

// CalcAllBounds computes the box of a whole coordinate buffer.
func CalcAllBounds(xx, yy []float64) Bounds {
	return CalcBounds(xx, yy, 0, len(xx))
}
