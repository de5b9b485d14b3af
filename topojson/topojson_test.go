package topojson

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cheekybits/is"
	"github.com/paulmach/go.geojson"

	"github.com/saidabou/mapshaper"
	"github.com/saidabou/mapshaper/arcs"
)

const squares = `{
  "type": "Topology",
  "objects": {
    "shapes": {
      "type": "GeometryCollection",
      "geometries": [
        {"type": "Polygon", "arcs": [[0, 1]], "properties": {"name": "left"}},
        {"type": "Polygon", "arcs": [[2, -1]], "properties": {"name": "right"}, "id": 7},
        {"type": null}
      ]
    },
    "roads": {"type": "LineString", "arcs": [1]}
  },
  "arcs": [
    [[1, 0], [1, 1]],
    [[1, 1], [0, 1], [0, 0], [1, 0]],
    [[1, 0], [2, 0], [2, 1], [1, 1]]
  ]
}`

const quantized = `{
  "type": "Topology",
  "transform": {"scale": [0.5, 2], "translate": [10, 20]},
  "objects": {
    "places": {
      "type": "GeometryCollection",
      "geometries": [
        {"type": "Point", "coordinates": [2, 3]},
        {"type": "MultiPoint", "coordinates": [[0, 0], [4, 1]]}
      ]
    },
    "line": {"type": "LineString", "arcs": [0]}
  },
  "arcs": [
    [[0, 0], [2, 0], [0, 1], [-2, -1]]
  ]
}`

func decodeString(is is.I, s string) *Topology {
	topo, err := Decode(strings.NewReader(s))
	is.NoErr(err)
	return topo
}

func TestDecode(t *testing.T) {
	is := is.New(t)

	topo := decodeString(is, squares)
	is.Equal(len(topo.Arcs), 3)
	is.Equal(len(topo.Objects), 2)

	shapes := topo.Objects["shapes"]
	is.Equal(shapes.Type, geojson.GeometryCollection)
	is.Equal(len(shapes.Geometries), 3)
	is.Equal(shapes.Geometries[1].Polygon, [][]int{{2, -1}})
	is.Equal(shapes.Geometries[1].ID, "7")
	is.Equal(shapes.Geometries[0].Properties["name"], "left")
	is.Equal(shapes.Geometries[2].Type, geojson.GeometryType(""))
	is.Equal(topo.Objects["roads"].LineString, []int{1})
}

func TestDecodeErrors(t *testing.T) {
	is := is.New(t)

	_, err := Decode(strings.NewReader(`{"type": "FeatureCollection"}`))
	is.Err(err)

	_, err = Decode(strings.NewReader(`{"type": "Topology", "objects": {"a": {"type": "LineString", "arcs": [0.5]}}, "arcs": []}`))
	is.Err(err)

	_, err = Decode(strings.NewReader(`{"type": "Topology", "objects": {"a": {"type": "Circle"}}, "arcs": []}`))
	is.Err(err)

	_, err = Decode(strings.NewReader(`{"type": "Topology", "objects": {"a": {"arcs": [0]}}, "arcs": []}`))
	is.Err(err)

	_, err = Decode(strings.NewReader(`not json`))
	is.Err(err)
}

func TestDecodeNestedErrors(t *testing.T) {
	is := is.New(t)

	for _, doc := range []string{
		`{"type": "MultiPolygon", "arcs": [[[0, 1.5]]]}`,
		`{"type": "MultiPolygon", "arcs": [[0]]}`,
		`{"type": "MultiPoint", "coordinates": [[1, 2], [3]]}`,
		`{"type": "Point", "coordinates": [1, "a"]}`,
		`{"type": "GeometryCollection", "geometries": [{"type": "LineString", "arcs": 3}]}`,
		`{"type": "GeometryCollection", "geometries": [7]}`,
	} {
		g := &Geometry{}
		is.Err(json.Unmarshal([]byte(doc), g))
	}

	g := &Geometry{}
	is.NoErr(json.Unmarshal([]byte(`{"type": "MultiPolygon", "arcs": [[[0, -2]], [[3]]]}`), g))
	is.Equal(g.MultiPolygon, [][][]int{{{0, -2}}, {{3}}})
}

func TestImport(t *testing.T) {
	is := is.New(t)

	ds, err := decodeString(is, squares).Import()
	is.NoErr(err)
	is.Equal(ds.Info.InputFormat, "topojson")
	is.Equal(ds.Arcs.Size(), 3)
	is.Equal(len(ds.Layers), 2)

	roads := ds.Layers[0]
	is.Equal(roads.Name, "roads")
	is.Equal(roads.GeometryType, mapshaper.LineGeometry)
	is.Equal(roads.Shapes, []mapshaper.Shape{{{arcs.Fwd(1)}}})
	is.Nil(roads.ArcCounts)

	shapes := ds.Layers[1]
	is.Equal(shapes.Name, "shapes")
	is.Equal(shapes.GeometryType, mapshaper.PolygonGeometry)
	is.Equal(len(shapes.Shapes), 3)
	is.Equal(shapes.Shapes[1], mapshaper.Shape{{arcs.Fwd(2), arcs.Rev(0)}})
	is.Nil(shapes.Shapes[2])
	is.Equal(shapes.Properties[1]["name"], "right")
	is.Equal(shapes.ArcCounts, []int{2, 1, 1})
	is.Equal(ds.RetainedPointCounts, []int{0, 1, 1})

	ring, err := shapes.Shape(1, ds.Arcs)
	is.NoErr(err)
	is.Equal(arcs.Points(ring.PathIter(0)), [][2]float64{{1, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 0}})
}

func TestImportTransform(t *testing.T) {
	is := is.New(t)

	ds, err := decodeString(is, quantized).Import()
	is.NoErr(err)

	is.Equal(ds.Arcs.ToArray(), [][][2]float64{{{10, 20}, {11, 20}, {11, 22}, {10, 20}}})

	line := ds.Layer("line")
	is.NotNil(line)
	is.Equal(line.GeometryType, mapshaper.LineGeometry)

	places := ds.Layer("places")
	is.NotNil(places)
	is.Equal(places.GeometryType, mapshaper.PointGeometry)
	is.Equal(places.Points, [][][2]float64{
		{{11, 26}},
		{{10, 20}, {12, 22}},
	})
}

func TestImportMixedTypes(t *testing.T) {
	is := is.New(t)

	topo := decodeString(is, `{
	  "type": "Topology",
	  "objects": {"mixed": {"type": "GeometryCollection", "geometries": [
	    {"type": "LineString", "arcs": [0]},
	    {"type": "Polygon", "arcs": [[0]]}
	  ]}},
	  "arcs": [[[0, 0], [1, 0], [0, 0]]]
	}`)
	_, err := topo.Import()
	is.Err(err)
}

func TestImportBadArcReference(t *testing.T) {
	is := is.New(t)

	topo := decodeString(is, `{
	  "type": "Topology",
	  "objects": {"a": {"type": "Polygon", "arcs": [[0, -3]]}},
	  "arcs": [[[0, 0], [1, 0], [0, 0]]]
	}`)
	_, err := topo.Import()
	is.Err(err)
}

func TestExport(t *testing.T) {
	is := is.New(t)

	ds, err := decodeString(is, squares).Import()
	is.NoErr(err)

	out, err := Export(ds)
	is.NoErr(err)
	is.Equal(out.Type, "Topology")
	is.Equal(out.BoundingBox, []float64{0, 0, 2, 1})
	is.Equal(out.Arcs[0], [][]float64{{1, 0}, {1, 1}})
	is.Equal(len(out.Arcs), 3)

	shapes := out.Objects["shapes"]
	is.Equal(shapes.Type, geojson.GeometryCollection)
	is.Equal(len(shapes.Geometries), 3)
	is.Equal(shapes.Geometries[0].Type, geojson.GeometryPolygon)
	is.Equal(shapes.Geometries[0].Polygon, [][]int{{0, 1}})
	is.Equal(shapes.Geometries[1].Properties["name"], "right")
	is.Equal(shapes.Geometries[2].Type, geojson.GeometryType(""))

	roads := out.Objects["roads"]
	is.Equal(roads.Geometries[0].Type, geojson.GeometryLineString)
	is.Equal(roads.Geometries[0].LineString, []int{1})

	// Survives a trip through JSON.
	var buf bytes.Buffer
	is.NoErr(out.Encode(&buf))
	back, err := Decode(&buf)
	is.NoErr(err)
	ds2, err := back.Import()
	is.NoErr(err)
	is.Equal(ds2.Arcs.ToArray(), ds.Arcs.ToArray())
	is.Equal(ds2.Layer("shapes").Shapes, ds.Layer("shapes").Shapes)
}

func TestExportSimplified(t *testing.T) {
	is := is.New(t)

	ds, err := decodeString(is, squares).Import()
	is.NoErr(err)
	inf := 1e300
	is.NoErr(ds.Arcs.SetThresholds([][]float64{
		{inf, inf},
		{inf, 1, 2, inf},
		{inf, 3, 4, inf},
	}))
	ds.Arcs.SetRetainedInterval(2)

	out, err := Export(ds)
	is.NoErr(err)
	is.Equal(out.Arcs[1], [][]float64{{1, 1}, {1, 0}})
	is.Equal(out.Arcs[2], [][]float64{{1, 0}, {2, 0}, {2, 1}, {1, 1}})
}

func TestExportGroupsRings(t *testing.T) {
	is := is.New(t)

	ds, err := decodeString(is, squares).Import()
	is.NoErr(err)

	layer := &mapshaper.Layer{
		Name:         "groups",
		GeometryType: mapshaper.PolygonGeometry,
		Shapes: []mapshaper.Shape{
			{{arcs.Fwd(0), arcs.Fwd(1)}, {arcs.Fwd(2), arcs.Rev(0)}},
			{{arcs.Fwd(0), arcs.Fwd(1)}, {arcs.Rev(1), arcs.Rev(0)}},
		},
	}
	ds, err = mapshaper.Assemble(ds.Arcs, []*mapshaper.Layer{layer}, "topojson")
	is.NoErr(err)

	out, err := Export(ds)
	is.NoErr(err)
	geoms := out.Objects["groups"].Geometries

	is.Equal(geoms[0].Type, geojson.GeometryMultiPolygon)
	is.Equal(geoms[0].MultiPolygon, [][][]int{{{0, 1}}, {{2, -1}}})

	is.Equal(geoms[1].Type, geojson.GeometryPolygon)
	is.Equal(geoms[1].Polygon, [][]int{{0, 1}, {-2, -1}})
}

func TestExportPoints(t *testing.T) {
	is := is.New(t)

	ds, err := decodeString(is, quantized).Import()
	is.NoErr(err)
	out, err := Export(ds)
	is.NoErr(err)

	places := out.Objects["places"].Geometries
	is.Equal(places[0].Type, geojson.GeometryPoint)
	is.Equal(places[0].Point, []float64{11, 26})
	is.Equal(places[1].Type, geojson.GeometryMultiPoint)
	is.Equal(places[1].MultiPoint, [][]float64{{10, 20}, {12, 22}})
}

func TestMarshalNullGeometry(t *testing.T) {
	is := is.New(t)

	data, err := json.Marshal(&Geometry{})
	is.NoErr(err)
	is.Equal(string(data), `{"type":null}`)

	data, err = json.Marshal(&Topology{})
	is.NoErr(err)
	is.Equal(string(data), `{"type":"Topology","objects":{},"arcs":[]}`)
}
