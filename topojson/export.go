package topojson

import (
	"fmt"

	"github.com/paulmach/go.geojson"
	"github.com/pkg/errors"

	"github.com/saidabou/mapshaper"
	"github.com/saidabou/mapshaper/arcs"
)

// Export builds a topology from ds. Arcs are written as filtered by the
// active simplification threshold; each layer becomes a GeometryCollection
// named after the layer.
func Export(ds *mapshaper.Dataset) (*Topology, error) {
	src, err := ds.Arcs.FilteredCopy()
	if err != nil {
		return nil, errors.Wrap(err, "export arcs")
	}

	t := &Topology{
		Type:    "Topology",
		Objects: make(map[string]*Geometry, len(ds.Layers)),
	}
	if b := src.Bounds(); !b.IsEmpty() {
		t.BoundingBox = b.Slice()
	}

	for _, points := range src.ToArray() {
		arc := make([][]float64, len(points))
		for i, p := range points {
			arc[i] = []float64{p[0], p[1]}
		}
		t.Arcs = append(t.Arcs, arc)
	}

	for i, layer := range ds.Layers {
		name := layer.Name
		if name == "" {
			name = defaultName(i)
		}
		if _, ok := t.Objects[name]; ok {
			return nil, errors.Errorf("export: duplicate layer name %q", name)
		}
		obj, err := exportLayer(layer, src)
		if err != nil {
			return nil, errors.Wrapf(err, "export layer %q", name)
		}
		t.Objects[name] = obj
	}

	return t, nil
}

func defaultName(i int) string {
	return fmt.Sprintf("layer%d", i+1)
}

func exportLayer(layer *mapshaper.Layer, src *arcs.Dataset) (*Geometry, error) {
	coll := &Geometry{Type: geojson.GeometryCollection}
	for i := 0; i < layer.Size(); i++ {
		g := &Geometry{}
		if i < len(layer.Properties) {
			g.Properties = layer.Properties[i]
		}

		switch layer.GeometryType {
		case mapshaper.PointGeometry:
			exportPoints(g, layer, i)
		case mapshaper.LineGeometry:
			exportLines(g, layer, i)
		case mapshaper.PolygonGeometry:
			err := exportPolygons(g, layer, i, src)
			if err != nil {
				return nil, err
			}
		}
		coll.Geometries = append(coll.Geometries, g)
	}
	return coll, nil
}

func exportPoints(g *Geometry, layer *mapshaper.Layer, i int) {
	if i >= len(layer.Points) {
		return
	}
	points := layer.Points[i]
	switch len(points) {
	case 0:
	case 1:
		g.Type = geojson.GeometryPoint
		g.Point = []float64{points[0][0], points[0][1]}
	default:
		g.Type = geojson.GeometryMultiPoint
		for _, p := range points {
			g.MultiPoint = append(g.MultiPoint, []float64{p[0], p[1]})
		}
	}
}

func shapeAt(layer *mapshaper.Layer, i int) mapshaper.Shape {
	if i >= len(layer.Shapes) {
		return nil
	}
	return layer.Shapes[i]
}

func exportLines(g *Geometry, layer *mapshaper.Layer, i int) {
	shape := shapeAt(layer, i)
	switch len(shape) {
	case 0:
	case 1:
		g.Type = geojson.GeometryLineString
		g.LineString = exportPart(shape[0])
	default:
		g.Type = geojson.GeometryMultiLineString
		for _, part := range shape {
			g.MultiLineString = append(g.MultiLineString, exportPart(part))
		}
	}
}

func exportPolygons(g *Geometry, layer *mapshaper.Layer, i int, src *arcs.Dataset) error {
	shape := shapeAt(layer, i)
	groups, err := mapshaper.GroupRings(shape, src)
	if err != nil || len(groups) == 0 {
		return err
	}

	polygons := make([][][]int, len(groups))
	for k, group := range groups {
		for _, j := range group {
			polygons[k] = append(polygons[k], exportPart(shape[j]))
		}
	}

	if len(polygons) == 1 {
		g.Type = geojson.GeometryPolygon
		g.Polygon = polygons[0]
	} else {
		g.Type = geojson.GeometryMultiPolygon
		g.MultiPolygon = polygons
	}
	return nil
}

func exportPart(part []arcs.ID) []int {
	out := make([]int, len(part))
	for i, id := range part {
		out[i] = int(id)
	}
	return out
}
