package arcs

import (
	"math"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/saidabou/mapshaper/geom"
)

// ApplyTransform maps every coordinate through t in place, optionally
// rounding to the nearest integer, and recomputes all bounds.
func (d *Dataset) ApplyTransform(t geom.Transform, round bool) {
	xx, yy := d.xx, d.yy
	for i := range xx {
		x, y := t.Apply(xx[i], yy[i])
		if round {
			x = math.Round(x)
			y = math.Round(y)
		}
		xx[i] = x
		yy[i] = y
	}
	d.initBounds()
	d.version++
}

// Quantize snaps all coordinates to a grid of resolution steps per axis,
// spanning the current bounds, while keeping them in source space. Nearby
// vertices may collapse onto the same grid point.
func (d *Dataset) Quantize(resolution int) error {
	if resolution < 2 {
		return errors.Errorf("invalid quantization resolution %d", resolution)
	}
	if d.bounds.IsEmpty() {
		return nil
	}

	q := float64(resolution - 1)
	grid := geom.NewBounds(0, 0, q, q)
	t := d.bounds.TransformTo(grid)

	glog.V(2).Infof("quantizing %d points to %d steps over %v", d.PointCount(), resolution, d.bounds)
	d.ApplyTransform(t, true)
	d.ApplyTransform(t.Invert(), false)
	return nil
}
