package topojson

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

type Topology struct {
	Type      string     `json:"type"`
	Transform *Transform `json:"transform,omitempty"`

	BoundingBox []float64            `json:"bbox,omitempty"`
	Objects     map[string]*Geometry `json:"objects"`
	Arcs        [][][]float64        `json:"arcs"`
}

// Transform maps quantized integer positions back to coordinates:
// x = qx*Scale[0] + Translate[0]. Arc positions are additionally
// delta-encoded when a transform is present.
type Transform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

// Decode reads one topology document.
func Decode(r io.Reader) (*Topology, error) {
	t := &Topology{}
	err := json.NewDecoder(r).Decode(t)
	if err != nil {
		return nil, errors.Wrap(err, "decode topology")
	}
	if t.Type != "Topology" {
		return nil, errors.Errorf("decode topology: unexpected type %q", t.Type)
	}
	return t, nil
}

// MarshalJSON converts the topology object into the proper JSON.
// It will handle the encoding of all the child geometries.
// Alternately one can call json.Marshal(t) directly for the same result.
func (t *Topology) MarshalJSON() ([]byte, error) {
	type topology Topology

	out := topology(*t)
	out.Type = "Topology"
	if out.Objects == nil {
		out.Objects = make(map[string]*Geometry) // TopoJSON requires the objects attribute to be at least {}
	}
	if out.Arcs == nil {
		out.Arcs = make([][][]float64, 0) // TopoJSON requires the arcs attribute to be at least []
	}
	return json.Marshal(out)
}

// Encode writes t as JSON to w.
func (t *Topology) Encode(w io.Writer) error {
	return errors.Wrap(json.NewEncoder(w).Encode(t), "encode topology")
}
