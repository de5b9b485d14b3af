// Package geojson renders dataset layers as GeoJSON features.
package geojson

import (
	"github.com/paulmach/go.geojson"
	"github.com/pkg/errors"

	"github.com/saidabou/mapshaper"
	"github.com/saidabou/mapshaper/arcs"
)

// ExportLayer converts every record of layer into a feature. Coordinates are
// read through the active simplification threshold of src. Null shapes give
// features without geometry.
func ExportLayer(layer *mapshaper.Layer, src *arcs.Dataset) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for i := 0; i < layer.Size(); i++ {
		g, err := exportGeometry(layer, i, src)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %q record %d", layer.Name, i)
		}
		f := geojson.NewFeature(g)
		if i < len(layer.Properties) {
			for k, v := range layer.Properties[i] {
				f.SetProperty(k, v)
			}
		}
		fc.AddFeature(f)
	}
	return fc, nil
}

func exportGeometry(layer *mapshaper.Layer, i int, src *arcs.Dataset) (*geojson.Geometry, error) {
	if layer.GeometryType == mapshaper.PointGeometry {
		if i >= len(layer.Points) {
			return nil, nil
		}
		return pointGeometry(layer.Points[i]), nil
	}

	if i >= len(layer.Shapes) || len(layer.Shapes[i]) == 0 {
		return nil, nil
	}
	shape := layer.Shapes[i]
	ms, err := src.MultiShape(shape)
	if err != nil {
		return nil, err
	}
	paths := make([][][]float64, ms.PathCount())
	for j := range paths {
		paths[j] = coordinates(ms.PathIter(j))
	}

	switch layer.GeometryType {
	case mapshaper.LineGeometry:
		if len(paths) == 1 {
			return geojson.NewLineStringGeometry(paths[0]), nil
		}
		return geojson.NewMultiLineStringGeometry(paths...), nil
	case mapshaper.PolygonGeometry:
		groups, err := mapshaper.GroupRings(shape, src)
		if err != nil {
			return nil, err
		}
		polygons := make([][][][]float64, len(groups))
		for k, group := range groups {
			for _, j := range group {
				polygons[k] = append(polygons[k], paths[j])
			}
		}
		if len(polygons) == 1 {
			return geojson.NewPolygonGeometry(polygons[0]), nil
		}
		return geojson.NewMultiPolygonGeometry(polygons...), nil
	}
	return nil, errors.Errorf("unsupported geometry type %q", layer.GeometryType)
}

func pointGeometry(points [][2]float64) *geojson.Geometry {
	switch len(points) {
	case 0:
		return nil
	case 1:
		return geojson.NewPointGeometry([]float64{points[0][0], points[0][1]})
	}
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p[0], p[1]}
	}
	return geojson.NewMultiPointGeometry(coords...)
}

func coordinates(it arcs.PointIter) [][]float64 {
	var out [][]float64
	for it.Next() {
		x, y := it.Point()
		out = append(out, []float64{x, y})
	}
	return out
}
