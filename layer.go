package mapshaper

import (
	"github.com/pkg/errors"

	"github.com/saidabou/mapshaper/arcs"
	"github.com/saidabou/mapshaper/geom"
)

type GeometryType string

const (
	PointGeometry   GeometryType = "point"
	LineGeometry    GeometryType = "line"
	PolygonGeometry GeometryType = "polygon"
)

// Shape is an ordered list of parts (rings or lines), each an ordered list of
// arc references. A nil Shape is a record without arc geometry.
type Shape [][]arcs.ID

// Layer is a table of records sharing one geometry type. Shapes and
// Properties are parallel; for point layers Points holds the coordinates and
// Shapes stays empty.
type Layer struct {
	Name         string
	GeometryType GeometryType
	Shapes       []Shape
	Points       [][][2]float64
	Properties   []map[string]interface{}

	// ArcCounts holds, for polygon layers, how many ring parts reference
	// each arc (either direction).
	ArcCounts []int
}

// Size returns the number of records.
func (l *Layer) Size() int {
	n := len(l.Shapes)
	if len(l.Points) > n {
		n = len(l.Points)
	}
	if len(l.Properties) > n {
		n = len(l.Properties)
	}
	return n
}

// Shape binds record i to src. Null shapes yield nil without error.
func (l *Layer) Shape(i int, src *arcs.Dataset) (*arcs.MultiShape, error) {
	if i < 0 || i >= len(l.Shapes) {
		return nil, errors.Errorf("layer %q: invalid shape id %d", l.Name, i)
	}
	if len(l.Shapes[i]) == 0 {
		return nil, nil
	}
	return src.MultiShape(l.Shapes[i])
}

// Info describes where a dataset came from.
type Info struct {
	InputFormat string
}

// Dataset bundles a coordinate store with the layers referencing it.
type Dataset struct {
	Arcs   *arcs.Dataset
	Layers []*Layer

	// RetainedPointCounts holds, per arc, the number of interior vertices
	// that should be protected so small rings do not collapse.
	RetainedPointCounts []int

	Info Info
}

// Layer looks up a layer by name.
func (ds *Dataset) Layer(name string) *Layer {
	for _, l := range ds.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// GroupRings splits the rings of a polygon shape into polygons. A ring
// winding like the first ring starts a new polygon; a ring winding the other
// way is a hole in the polygon before it. Each group lists part indexes.
func GroupRings(shape Shape, src *arcs.Dataset) ([][]int, error) {
	if len(shape) == 0 {
		return nil, nil
	}
	ms, err := src.MultiShape(shape)
	if err != nil {
		return nil, err
	}

	var groups [][]int
	var shellSign float64
	for j := range shape {
		area := geom.RingArea(arcs.Points(ms.PathIter(j)))
		if j == 0 {
			shellSign = area
		}
		if j == 0 || area*shellSign >= 0 {
			groups = append(groups, []int{j})
			continue
		}
		last := len(groups) - 1
		groups[last] = append(groups[last], j)
	}
	return groups, nil
}
