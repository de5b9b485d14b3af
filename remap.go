package mapshaper

import (
	"github.com/pkg/errors"

	"github.com/saidabou/mapshaper/arcs"
)

// RemapLayer rewrites the arc references of every shape in layer after the
// store was filtered. References to removed arcs are dropped, parts left
// empty are dropped, and shapes left without parts become null.
func RemapLayer(layer *Layer, remap []int) error {
	for i, shape := range layer.Shapes {
		if shape == nil {
			continue
		}
		out, err := remapShape(shape, remap)
		if err != nil {
			return errors.Wrapf(err, "layer %q shape %d", layer.Name, i)
		}
		layer.Shapes[i] = out
	}
	return nil
}

func remapShape(in Shape, remap []int) (Shape, error) {
	var out Shape
	for _, part := range in {
		p, err := remapPart(part, remap)
		if err != nil {
			return nil, err
		}
		if len(p) > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func remapPart(in []arcs.ID, remap []int) ([]arcs.ID, error) {
	out := make([]arcs.ID, 0, len(in))
	for _, id := range in {
		a := id.Unsigned()
		if a >= len(remap) {
			return nil, errors.Errorf("arc %v out of range [0, %d)", id, len(remap))
		}
		idx := remap[a]
		if idx == arcs.Removed {
			continue
		}
		if id.IsReversed() {
			out = append(out, arcs.Rev(idx))
		} else {
			out = append(out, arcs.Fwd(idx))
		}
	}
	return out, nil
}

// FilterArcs removes the arcs rejected by keep from the store, rewrites every
// layer to the new arc ids and recomputes the arc metadata.
//
// Layer references are checked first; on error neither the store nor the
// layers are modified.
func (ds *Dataset) FilterArcs(keep func(it *arcs.ArcIter, arcID int) bool) error {
	for _, layer := range ds.Layers {
		_, err := ArcCountsInLayer(layer.Shapes, ds.Arcs.Size())
		if err != nil {
			return errors.Wrapf(err, "layer %q", layer.Name)
		}
	}

	remap := ds.Arcs.Filter(keep)
	if remap == nil {
		return nil
	}
	for _, layer := range ds.Layers {
		err := RemapLayer(layer, remap)
		if err != nil {
			return err
		}
	}
	return ds.updateArcMetadata()
}
