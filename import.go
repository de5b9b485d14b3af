package mapshaper

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/saidabou/mapshaper/arcs"
)

// Assemble wraps decoded arcs and layers into a Dataset and computes the arc
// usage counts of polygon layers and the point retention counts.
func Assemble(src *arcs.Dataset, layers []*Layer, format string) (*Dataset, error) {
	ds := &Dataset{
		Arcs:   src,
		Layers: layers,
		Info: Info{
			InputFormat: format,
		},
	}
	err := ds.updateArcMetadata()
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// updateArcMetadata recomputes ArcCounts and RetainedPointCounts. Layers are
// counted concurrently while the store is only read; nothing is assigned
// unless every layer validates.
func (ds *Dataset) updateArcMetadata() error {
	numArcs := ds.Arcs.Size()
	counts := make([][]int, len(ds.Layers))

	var g errgroup.Group
	for i, layer := range ds.Layers {
		i, layer := i, layer
		g.Go(func() error {
			c, err := ArcCountsInLayer(layer.Shapes, numArcs)
			if err != nil {
				return errors.Wrapf(err, "layer %q", layer.Name)
			}
			if layer.GeometryType == PolygonGeometry {
				counts[i] = c
			}
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		return err
	}

	retained := make([]int, numArcs)
	for i, layer := range ds.Layers {
		layer.ArcCounts = counts[i]
		if counts[i] != nil {
			CalcPointRetention(layer.Shapes, retained, counts[i])
		}
	}
	ds.RetainedPointCounts = retained

	glog.V(1).Infof("assembled %d layers over %d arcs, %d points",
		len(ds.Layers), numArcs, ds.Arcs.PointCount())
	return nil
}

// ArcCountsInLayer counts the (shape, part) references to every arc, in
// either direction. Null shapes are skipped.
func ArcCountsInLayer(shapes []Shape, numArcs int) ([]int, error) {
	counts := make([]int, numArcs)
	for shapeID, shape := range shapes {
		for partID, part := range shape {
			for _, id := range part {
				arcID := id.Unsigned()
				if arcID >= numArcs {
					return nil, errors.Errorf("shape %d part %d: arc %v out of range [0, %d)",
						shapeID, partID, id, numArcs)
				}
				counts[arcID]++
			}
		}
	}
	return counts, nil
}

// CalcPointRetention raises retained[arc] for arcs of rings that could
// collapse under simplification:
//
//   - a ring made of one arc keeps 2 interior points,
//   - a ring made of two arcs keeps 1 interior point in each arc not shared
//     with another ring.
//
// Rings of three or more arcs are assumed safe. That is an approximation:
// nothing guarantees such a ring keeps a non-zero area.
func CalcPointRetention(shapes []Shape, retained []int, arcCounts []int) {
	for _, shape := range shapes {
		for _, part := range shape {
			if len(part) <= 2 {
				calcRetainedCountsForRing(part, retained, arcCounts)
			}
		}
	}
}

func calcRetainedCountsForRing(ring []arcs.ID, retained []int, arcCounts []int) {
	for _, id := range ring {
		arcID := id.Unsigned()
		switch {
		case len(ring) == 1:
			retained[arcID] = max(retained[arcID], 2)
		case arcCounts[arcID] < 2:
			retained[arcID] = max(retained[arcID], 1)
		}
	}
}
