// Package shapefile writes dataset layers as ESRI Shapefiles.
package shapefile

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/jonas-p/go-shp"
	"github.com/pkg/errors"

	"github.com/saidabou/mapshaper"
	"github.com/saidabou/mapshaper/arcs"
)

const (
	maxFieldName   = 10
	maxFieldLength = 254
)

// WriteLayer writes layer to path (.shp, .shx and .dbf). Coordinates follow
// the active simplification threshold of src. Attributes are written as text
// fields, one per property key.
func WriteLayer(path string, layer *mapshaper.Layer, src *arcs.Dataset) error {
	var typ shp.ShapeType
	switch layer.GeometryType {
	case mapshaper.PolygonGeometry:
		typ = shp.POLYGON
	case mapshaper.LineGeometry:
		typ = shp.POLYLINE
	case mapshaper.PointGeometry:
		typ = shp.MULTIPOINT
	default:
		return errors.Errorf("layer %q: no geometry type", layer.Name)
	}

	shapes := make([]shp.Shape, layer.Size())
	for i := range shapes {
		s, err := buildShape(layer, i, src)
		if err != nil {
			return errors.Wrapf(err, "layer %q record %d", layer.Name, i)
		}
		shapes[i] = s
	}

	keys, fields := attributeFields(layer.Properties)

	w, err := shp.Create(path, typ)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	err = writeRecords(w, shapes, keys, fields, layer.Properties)
	w.Close()
	if err != nil {
		return errors.Wrapf(err, "layer %q", layer.Name)
	}

	// go-shp v0.1.1 names the table "<base>dbf"
	base := path
	if strings.HasSuffix(strings.ToLower(path), ".shp") {
		base = path[:len(path)-4]
	}
	err = os.Rename(base+"dbf", base+".dbf")
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "rename dbf")
	}

	glog.V(1).Infof("wrote %d records of layer %q to %s", len(shapes), layer.Name, path)
	return nil
}

func writeRecords(w *shp.Writer, shapes []shp.Shape, keys []string, fields []shp.Field, props []map[string]interface{}) error {
	err := w.SetFields(fields)
	if err != nil {
		return err
	}

	for i, s := range shapes {
		row := int(w.Write(s))
		if i >= len(props) {
			continue
		}
		for f, key := range keys {
			v, ok := props[i][key]
			if !ok || v == nil {
				continue
			}
			err := w.WriteAttribute(row, f, pad(fmt.Sprint(v), int(fields[f].Size)))
			if err != nil {
				return errors.Wrapf(err, "write attribute %q of record %d", key, i)
			}
		}
	}
	return nil
}

// buildShape converts record i. Null records are written as shapes without
// parts so readers see the layer's shape type on every record.
func buildShape(layer *mapshaper.Layer, i int, src *arcs.Dataset) (shp.Shape, error) {
	if layer.GeometryType == mapshaper.PointGeometry {
		var points []shp.Point
		if i < len(layer.Points) {
			for _, p := range layer.Points[i] {
				points = append(points, shp.Point{X: p[0], Y: p[1]})
			}
		}
		return &shp.MultiPoint{
			Box:       shp.BBoxFromPoints(points),
			NumPoints: int32(len(points)),
			Points:    points,
		}, nil
	}

	var parts [][]shp.Point
	if i < len(layer.Shapes) && len(layer.Shapes[i]) > 0 {
		ms, err := src.MultiShape(layer.Shapes[i])
		if err != nil {
			return nil, err
		}
		for j := 0; j < ms.PathCount(); j++ {
			var part []shp.Point
			it := ms.PathIter(j)
			for it.Next() {
				x, y := it.Point()
				part = append(part, shp.Point{X: x, Y: y})
			}
			parts = append(parts, part)
		}
	}

	line := shp.NewPolyLine(parts)
	if layer.GeometryType == mapshaper.PolygonGeometry {
		return (*shp.Polygon)(line), nil
	}
	return line, nil
}

// attributeFields returns the sorted property keys and a text field for
// each, sized to the longest value.
func attributeFields(props []map[string]interface{}) ([]string, []shp.Field) {
	sizes := make(map[string]int)
	for _, p := range props {
		for k, v := range p {
			n := 1
			if v != nil {
				n = max(len(fmt.Sprint(v)), 1)
			}
			if n > sizes[k] {
				sizes[k] = n
			}
		}
	}

	keys := make([]string, 0, len(sizes))
	for k := range sizes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]shp.Field, len(keys))
	for i, k := range keys {
		name := k
		if len(name) > maxFieldName {
			name = name[:maxFieldName]
		}
		size := sizes[k]
		if size > maxFieldLength {
			size = maxFieldLength
		}
		fields[i] = shp.StringField(name, uint8(size))
	}
	return keys, fields
}

// pad right-fills s with spaces, truncating it to size.
func pad(s string, size int) string {
	if len(s) >= size {
		return s[:size]
	}
	b := make([]byte, size)
	copy(b, s)
	for i := len(s); i < size; i++ {
		b[i] = ' '
	}
	return string(b)
}
