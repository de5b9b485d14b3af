package arcs

import (
	"math"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/saidabou/mapshaper/simplify"
)

// SetThresholds replaces the removal weights, one slice per arc.
func (d *Dataset) SetThresholds(thresholds [][]float64) error {
	if len(thresholds) != d.Size() {
		return errors.Errorf("mismatched arc/threshold counts: %d arcs, %d thresholds",
			d.Size(), len(thresholds))
	}
	for i, arr := range thresholds {
		if len(arr) != d.nn[i] {
			return errors.Errorf("arc %d has %d vertices but %d thresholds", i, d.nn[i], len(arr))
		}
	}

	i := 0
	for _, arr := range thresholds {
		i += copy(d.zz[i:], arr)
	}
	d.version++
	return nil
}

// SetRetainedInterval sets the threshold directly. Vertices with a weight at
// or below z are skipped by iterators.
func (d *Dataset) SetRetainedInterval(z float64) {
	d.setThreshold(z)
}

// setThreshold counts as a mutation when z changes: live cursors captured
// the old value.
func (d *Dataset) setThreshold(z float64) {
	if z == d.zlimit {
		return
	}
	d.zlimit = z
	d.version++
}

// SetRetainedPct picks the threshold that keeps a fraction pct of the
// removable vertices. pct >= 1 disables simplification.
func (d *Dataset) SetRetainedPct(pct float64) error {
	if pct >= 1 {
		d.setThreshold(0)
		return nil
	}
	z, err := d.ThresholdByPct(pct)
	if err != nil {
		return err
	}
	d.setThreshold(z)
	return nil
}

// RemovableThresholds samples every step-th weight, skipping protected
// (+Inf) vertices. A step below 2 samples every vertex.
func (d *Dataset) RemovableThresholds(step int) []float64 {
	if step < 1 {
		step = 1
	}
	arr := make([]float64, 0, (len(d.zz)+step-1)/step)
	for i := 0; i < len(d.zz); i += step {
		z := d.zz[i]
		if !math.IsInf(z, 1) {
			arr = append(arr, z)
		}
	}
	return arr
}

// ThresholdByPct returns the weight at 1-indexed ascending rank
// floor((1-pct)*n)+1 among the n removable weights. A dataset without
// removable vertices yields 0.
func (d *Dataset) ThresholdByPct(pct float64) (float64, error) {
	if pct <= 0 || pct >= 1 || math.IsNaN(pct) {
		return 0, errors.Errorf("invalid simplification pct: %v", pct)
	}
	tmp := d.RemovableThresholds(1)
	if len(tmp) == 0 {
		return 0, nil
	}
	rank := simplify.RankForPct(pct, len(tmp))
	z, err := simplify.FindValueByRank(tmp, rank)
	if err != nil {
		return 0, errors.Wrapf(err, "threshold for pct %v", pct)
	}
	glog.V(2).Infof("pct %v -> rank %d of %d removable weights, threshold %v", pct, rank, len(tmp), z)
	return z, nil
}
