package cmd

import (
	"encoding/json"
	"math"
	"os"

	"github.com/pkg/errors"
)

// readWeights loads precomputed vertex weights: a JSON array holding one
// array of numbers per arc. Endpoint weights are replaced by +Inf since
// endpoints are never removed.
func readWeights(filename string) ([][]float64, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	var raw [][]*float64
	err = json.NewDecoder(fp).Decode(&raw)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to parse weights %s", filename)
	}

	out := make([][]float64, len(raw))
	for i, arc := range raw {
		out[i] = make([]float64, len(arc))
		for j, w := range arc {
			switch {
			case j == 0 || j == len(arc)-1 || w == nil:
				out[i][j] = math.Inf(1)
			default:
				out[i][j] = *w
			}
		}
	}
	return out, nil
}
