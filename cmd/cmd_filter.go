package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/saidabou/mapshaper/arcs"
	"github.com/saidabou/mapshaper/geom"
)

type CmdFilter struct {
	global *GlobalOptions

	MinSize float64  `long:"min-size" description:"Drop arcs whose bounding box is smaller than this on both sides"`
	BBox    string   `long:"bbox" description:"Keep only arcs touching xmin,ymin,xmax,ymax"`
	Format  string   `short:"f" long:"format" description:"Output format: topojson, geojson or shapefile"`
	Layers  []string `short:"l" long:"layer" description:"Only write this layer (repeatable)"`
}

func init() {
	_, err := parser.AddCommand("filter",
		"Remove arcs",
		"Drop arcs below a size or outside a box and rewrite the layers referencing them",
		&CmdFilter{global: &globalOpts})
	if err != nil {
		panic(err)
	}
}

func (cmd *CmdFilter) Usage() string {
	return "[--min-size units] [--bbox xmin,ymin,xmax,ymax] input.topojson output"
}

func (cmd *CmdFilter) Execute(args []string) error {
	job, err := cmd.global.LoadJob()
	if err != nil {
		return err
	}
	in, out, err := job.paths(args)
	if err != nil {
		return fmt.Errorf("%s, Usage: %s", err.Error(), cmd.Usage())
	}
	minSize := pickFloat(cmd.MinSize, job.MinSize)
	if minSize < 0 {
		return errors.New("Minimum size must not be negative")
	}
	box, err := parseBBox(cmd.BBox, job.BBox)
	if err != nil {
		return err
	}
	if minSize == 0 && box == nil {
		return errors.New("Nothing to filter, pass --min-size or --bbox")
	}
	layers := cmd.Layers
	if len(layers) == 0 {
		layers = job.Layers
	}

	ds, err := cmd.global.OpenDataset(in)
	if err != nil {
		return err
	}

	var inBox map[int]bool
	if box != nil {
		inBox = make(map[int]bool)
		for _, id := range arcs.NewIndex(ds.Arcs).Query(*box) {
			inBox[id] = true
		}
	}

	before := ds.Arcs.Size()
	err = ds.FilterArcs(func(it *arcs.ArcIter, arcID int) bool {
		if inBox != nil && !inBox[arcID] {
			return false
		}
		return minSize == 0 || !ds.Arcs.ArcIsSmaller(arcID, minSize)
	})
	if err != nil {
		return err
	}
	glog.V(1).Infof("removed %d of %d arcs", before-ds.Arcs.Size(), before)

	return writeOutput(ds, out, pickString(cmd.Format, job.Format), layers)
}

// parseBBox reads a box from the flag, falling back to the job file. It
// returns nil when neither sets one.
func parseBBox(flag string, job []float64) (*geom.Bounds, error) {
	vals := job
	if flag != "" {
		vals = nil
		for _, f := range strings.Split(flag, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "Bad bbox %q", flag)
			}
			vals = append(vals, v)
		}
	}
	if vals == nil {
		return nil, nil
	}
	if len(vals) != 4 || vals[0] > vals[2] || vals[1] > vals[3] {
		return nil, errors.Errorf("Bad bbox %v, expected xmin,ymin,xmax,ymax", vals)
	}
	b := geom.NewBounds(vals[0], vals[1], vals[2], vals[3])
	return &b, nil
}
