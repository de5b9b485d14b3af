package topojson

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// Geometry is a TopoJSON geometry object. Line and polygon members reference
// arcs by signed index instead of holding coordinates. An empty Type is a
// null geometry.
type Geometry struct {
	ID         string                 `json:"id,omitempty"`
	Type       geojson.GeometryType   `json:"type"`
	Properties map[string]interface{} `json:"properties,omitempty"`

	Point           []float64
	MultiPoint      [][]float64
	LineString      []int
	MultiLineString [][]int
	Polygon         [][]int
	MultiPolygon    [][][]int
	Geometries      []*Geometry
}

// MarshalJSON converts the geometry object into the correct JSON.
// This fulfills the json.Marshaler interface.
func (g *Geometry) MarshalJSON() ([]byte, error) {
	// defining a struct here lets us define the order of the JSON elements.
	type geometry struct {
		ID          string                 `json:"id,omitempty"`
		Type        interface{}            `json:"type"`
		Properties  map[string]interface{} `json:"properties,omitempty"`
		Coordinates interface{}            `json:"coordinates,omitempty"`
		Arcs        interface{}            `json:"arcs,omitempty"`
		Geometries  interface{}            `json:"geometries,omitempty"`
	}

	geo := &geometry{
		ID:         g.ID,
		Properties: g.Properties,
	}
	if g.Type != "" {
		geo.Type = g.Type
	}

	switch g.Type {
	case geojson.GeometryPoint:
		geo.Coordinates = g.Point
	case geojson.GeometryMultiPoint:
		geo.Coordinates = g.MultiPoint
	case geojson.GeometryLineString:
		geo.Arcs = g.LineString
	case geojson.GeometryMultiLineString:
		geo.Arcs = g.MultiLineString
	case geojson.GeometryPolygon:
		geo.Arcs = g.Polygon
	case geojson.GeometryMultiPolygon:
		geo.Arcs = g.MultiPolygon
	case geojson.GeometryCollection:
		geo.Geometries = g.Geometries
		if g.Geometries == nil {
			geo.Geometries = []*Geometry{}
		}
	}

	return json.Marshal(geo)
}

// UnmarshalJSON decodes the data into a TopoJSON geometry.
// This fulfills the json.Unmarshaler interface.
func (g *Geometry) UnmarshalJSON(data []byte) error {
	var object map[string]interface{}
	err := json.Unmarshal(data, &object)
	if err != nil {
		return err
	}

	return decodeGeometry(g, object)
}

func decodeGeometry(g *Geometry, object map[string]interface{}) error {
	t, ok := object["type"]
	if !ok {
		return errors.New("type property not defined")
	}

	switch v := t.(type) {
	case nil:
		g.Type = ""
	case string:
		g.Type = geojson.GeometryType(v)
	default:
		return errors.New("type property not string")
	}

	switch id := object["id"].(type) {
	case nil:
	case string:
		g.ID = id
	case float64:
		g.ID = fmt.Sprint(id)
	default:
		return errors.Errorf("not a valid id, got %v", id)
	}

	if p, ok := object["properties"].(map[string]interface{}); ok {
		g.Properties = p
	}

	var err error
	switch g.Type {
	case "":
	case geojson.GeometryPoint:
		g.Point, err = decodePosition(object["coordinates"])
	case geojson.GeometryMultiPoint:
		g.MultiPoint, err = decodePositionSet(object["coordinates"])
	case geojson.GeometryLineString:
		g.LineString, err = decodeArcs(object["arcs"])
	case geojson.GeometryMultiLineString:
		g.MultiLineString, err = decodeArcsSet(object["arcs"])
	case geojson.GeometryPolygon:
		g.Polygon, err = decodeArcsSet(object["arcs"])
	case geojson.GeometryMultiPolygon:
		g.MultiPolygon, err = decodePolygonArcs(object["arcs"])
	case geojson.GeometryCollection:
		g.Geometries, err = decodeGeometries(object["geometries"])
	default:
		err = errors.Errorf("unknown geometry type %q", g.Type)
	}

	return err
}

// decodeList decodes a JSON array item by item; what names the expected
// array in errors.
func decodeList[T any](data interface{}, what string, item func(interface{}) (T, error)) ([]T, error) {
	vs, ok := data.([]interface{})
	if !ok {
		return nil, errors.Errorf("not a valid %s, got %v", what, data)
	}
	out := make([]T, 0, len(vs))
	for _, v := range vs {
		t, err := item(v)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func decodeCoordinate(v interface{}) (float64, error) {
	f, ok := v.(float64)
	if !ok {
		return 0, errors.Errorf("not a valid coordinate, got %v", v)
	}
	return f, nil
}

func decodePosition(data interface{}) ([]float64, error) {
	p, err := decodeList(data, "position", decodeCoordinate)
	if err != nil {
		return nil, err
	}
	if len(p) < 2 {
		return nil, errors.Errorf("position needs x and y, got %v", data)
	}
	return p, nil
}

func decodePositionSet(data interface{}) ([][]float64, error) {
	return decodeList(data, "set of positions", decodePosition)
}

// decodeArcIndex accepts integral numbers only; encoding/json hands them over
// as float64.
func decodeArcIndex(v interface{}) (int, error) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("not a valid arc index, got %v", v)
	}
	return int(f), nil
}

func decodeArcs(data interface{}) ([]int, error) {
	return decodeList(data, "set of arcs", decodeArcIndex)
}

func decodeArcsSet(data interface{}) ([][]int, error) {
	return decodeList(data, "set of arcs", decodeArcs)
}

func decodePolygonArcs(data interface{}) ([][][]int, error) {
	return decodeList(data, "set of rings", decodeArcsSet)
}

func decodeMember(v interface{}) (*Geometry, error) {
	object, ok := v.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("not a valid geometry, got %v", v)
	}
	g := &Geometry{}
	err := decodeGeometry(g, object)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func decodeGeometries(data interface{}) ([]*Geometry, error) {
	return decodeList(data, "set of geometries", decodeMember)
}
