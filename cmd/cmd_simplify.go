package cmd

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/saidabou/mapshaper"
)

type CmdSimplify struct {
	global *GlobalOptions

	Percentage float64  `short:"p" long:"percentage" description:"Fraction of removable vertices to retain (0-1)"`
	Interval   float64  `short:"i" long:"interval" description:"Remove vertices weighted at or below this value"`
	Quantize   int      `short:"q" long:"quantize" description:"Snap coordinates to a grid of this many steps"`
	Weights    string   `short:"w" long:"weights" description:"JSON file with precomputed vertex weights"`
	Format     string   `short:"f" long:"format" description:"Output format: topojson, geojson or shapefile"`
	Layers     []string `short:"l" long:"layer" description:"Only write this layer (repeatable)"`
}

func init() {
	_, err := parser.AddCommand("simplify",
		"Simplify a dataset",
		"Apply precomputed vertex weights and a retention threshold, then write the result",
		&CmdSimplify{global: &globalOpts})
	if err != nil {
		panic(err)
	}
}

func (cmd *CmdSimplify) Usage() string {
	return "[-p pct|-i interval] -w weights.json input.topojson output"
}

func (cmd *CmdSimplify) Execute(args []string) error {
	job, err := cmd.global.LoadJob()
	if err != nil {
		return err
	}
	in, out, err := job.paths(args)
	if err != nil {
		return fmt.Errorf("%s, Usage: %s", err.Error(), cmd.Usage())
	}

	pct := pickFloat(cmd.Percentage, job.Percentage)
	interval := pickFloat(cmd.Interval, job.Interval)
	if pct != 0 && interval != 0 {
		return errors.New("Percentage and interval are mutually exclusive")
	}
	quantize := cmd.Quantize
	if quantize == 0 {
		quantize = job.Quantization
	}
	layers := cmd.Layers
	if len(layers) == 0 {
		layers = job.Layers
	}

	ds, err := cmd.global.OpenDataset(in)
	if err != nil {
		return err
	}

	if quantize > 0 {
		err = ds.Arcs.Quantize(quantize)
		if err != nil {
			return err
		}
	}

	err = applyWeights(ds, pickString(cmd.Weights, job.Weights), pct, interval)
	if err != nil {
		return err
	}

	glog.V(1).Infof("threshold %v keeps %d of %d points",
		ds.Arcs.Threshold(), ds.Arcs.FilteredPointCount(), ds.Arcs.PointCount())
	return writeOutput(ds, out, pickString(cmd.Format, job.Format), layers)
}

func applyWeights(ds *mapshaper.Dataset, weights string, pct, interval float64) error {
	if pct == 0 && interval == 0 {
		return nil
	}
	if weights == "" {
		return errors.New("Simplification needs a weights file")
	}

	w, err := readWeights(weights)
	if err != nil {
		return err
	}
	err = ds.Arcs.SetThresholds(w)
	if err != nil {
		return err
	}
	err = ds.ProtectRetainedPoints()
	if err != nil {
		return err
	}

	if pct != 0 {
		return ds.Arcs.SetRetainedPct(pct)
	}
	ds.Arcs.SetRetainedInterval(interval)
	return nil
}
