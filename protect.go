package mapshaper

import (
	"math"
	"sort"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// ProtectRetainedPoints locks the highest-weighted interior vertices of
// every arc with a non-zero RetainedPointCounts entry by raising their
// weights to +Inf. Thresholds chosen afterwards cannot collapse the small
// rings those counts were computed for.
func (ds *Dataset) ProtectRetainedPoints() error {
	n := ds.Arcs.Size()
	if len(ds.RetainedPointCounts) != n {
		return errors.Errorf("retained point counts cover %d arcs, store has %d",
			len(ds.RetainedPointCounts), n)
	}

	thresholds := make([][]float64, n)
	protected := 0
	for i := 0; i < n; i++ {
		_, _, zs := ds.Arcs.ArcCoords(i)
		z := append([]float64(nil), zs...)
		thresholds[i] = z

		k := ds.RetainedPointCounts[i]
		if k <= 0 || len(z) < 3 {
			continue
		}
		interior := z[1 : len(z)-1]
		order := make([]int, len(interior))
		for j := range order {
			order[j] = j
		}
		sort.SliceStable(order, func(a, b int) bool {
			return interior[order[a]] > interior[order[b]]
		})
		for _, j := range order[:min(k, len(order))] {
			if !math.IsInf(interior[j], 1) {
				interior[j] = math.Inf(1)
				protected++
			}
		}
	}
	if protected == 0 {
		return nil
	}

	glog.V(2).Infof("protected %d vertices against ring collapse", protected)
	return ds.Arcs.SetThresholds(thresholds)
}
