package topojson

import (
	"sort"

	"github.com/paulmach/go.geojson"
	"github.com/pkg/errors"

	"github.com/saidabou/mapshaper"
	"github.com/saidabou/mapshaper/arcs"
)

// Import converts the topology into a dataset: arcs are decoded into a
// coordinate store and every named object becomes one layer, in name order.
func (t *Topology) Import() (*mapshaper.Dataset, error) {
	coords, err := t.arcCoordinates()
	if err != nil {
		return nil, err
	}
	src, err := arcs.FromPointPairs(coords)
	if err != nil {
		return nil, errors.Wrap(err, "import arcs")
	}

	names := make([]string, 0, len(t.Objects))
	for name := range t.Objects {
		names = append(names, name)
	}
	sort.Strings(names)

	layers := make([]*mapshaper.Layer, 0, len(names))
	for _, name := range names {
		layer, err := t.importObject(name, t.Objects[name])
		if err != nil {
			return nil, errors.Wrapf(err, "import object %q", name)
		}
		layers = append(layers, layer)
	}

	return mapshaper.Assemble(src, layers, "topojson")
}

// arcCoordinates returns the arcs as x and y slices, undoing delta encoding
// and quantization when the topology carries a transform.
func (t *Topology) arcCoordinates() ([][2][]float64, error) {
	out := make([][2][]float64, len(t.Arcs))
	for i, arc := range t.Arcs {
		xs := make([]float64, len(arc))
		ys := make([]float64, len(arc))
		var x, y float64
		for j, p := range arc {
			if len(p) < 2 {
				return nil, errors.Errorf("arc %d: invalid position %v", i, p)
			}
			if t.Transform == nil {
				xs[j], ys[j] = p[0], p[1]
				continue
			}
			x += p[0]
			y += p[1]
			xs[j], ys[j] = t.Transform.apply(x, y)
		}
		out[i] = [2][]float64{xs, ys}
	}
	return out, nil
}

func (tr *Transform) apply(x, y float64) (float64, float64) {
	return x*tr.Scale[0] + tr.Translate[0], y*tr.Scale[1] + tr.Translate[1]
}

func (t *Topology) position(p []float64) [2]float64 {
	if t.Transform == nil {
		return [2]float64{p[0], p[1]}
	}
	x, y := t.Transform.apply(p[0], p[1])
	return [2]float64{x, y}
}

func (t *Topology) importObject(name string, obj *Geometry) (*mapshaper.Layer, error) {
	members := []*Geometry{obj}
	if obj != nil && obj.Type == geojson.GeometryCollection {
		members = obj.Geometries
	}

	layer := &mapshaper.Layer{
		Name:       name,
		Properties: make([]map[string]interface{}, len(members)),
	}
	for _, g := range members {
		typ, err := geometryType(g)
		if err != nil {
			return nil, err
		}
		if typ == "" {
			continue
		}
		if layer.GeometryType != "" && layer.GeometryType != typ {
			return nil, errors.Errorf("mixed geometry types %s and %s", layer.GeometryType, typ)
		}
		layer.GeometryType = typ
	}

	if layer.GeometryType == mapshaper.PointGeometry {
		layer.Points = make([][][2]float64, len(members))
	} else {
		layer.Shapes = make([]mapshaper.Shape, len(members))
	}

	for i, g := range members {
		if g == nil {
			continue
		}
		layer.Properties[i] = g.Properties
		switch g.Type {
		case geojson.GeometryPoint:
			layer.Points[i] = [][2]float64{t.position(g.Point)}
		case geojson.GeometryMultiPoint:
			for _, p := range g.MultiPoint {
				layer.Points[i] = append(layer.Points[i], t.position(p))
			}
		case geojson.GeometryLineString:
			layer.Shapes[i] = mapshaper.Shape{arcs.IDs(g.LineString)}
		case geojson.GeometryMultiLineString, geojson.GeometryPolygon:
			layer.Shapes[i] = importParts(g.MultiLineString, g.Polygon)
		case geojson.GeometryMultiPolygon:
			for _, poly := range g.MultiPolygon {
				layer.Shapes[i] = append(layer.Shapes[i], importParts(poly)...)
			}
		}
	}

	return layer, nil
}

func importParts(sets ...[][]int) mapshaper.Shape {
	var shape mapshaper.Shape
	for _, set := range sets {
		for _, part := range set {
			shape = append(shape, arcs.IDs(part))
		}
	}
	return shape
}

// geometryType returns the layer type implied by g, or "" for a null
// geometry.
func geometryType(g *Geometry) (mapshaper.GeometryType, error) {
	if g == nil {
		return "", nil
	}
	switch g.Type {
	case "":
		return "", nil
	case geojson.GeometryPoint, geojson.GeometryMultiPoint:
		return mapshaper.PointGeometry, nil
	case geojson.GeometryLineString, geojson.GeometryMultiLineString:
		return mapshaper.LineGeometry, nil
	case geojson.GeometryPolygon, geojson.GeometryMultiPolygon:
		return mapshaper.PolygonGeometry, nil
	}
	return "", errors.Errorf("unsupported member geometry %s", g.Type)
}
