package cmd

import (
	"fmt"

	"github.com/kr/pretty"

	"github.com/saidabou/mapshaper"
)

type CmdInfo struct {
	global *GlobalOptions
}

func init() {
	_, err := parser.AddCommand("info",
		"Describe a dataset",
		"Print layers, arc and point counts of a TopoJSON file",
		&CmdInfo{global: &globalOpts})
	if err != nil {
		panic(err)
	}
}

func (cmd CmdInfo) Usage() string {
	return "input.topojson"
}

type LayerSummary struct {
	Name       string
	Type       mapshaper.GeometryType
	Records    int
	NullShapes int
}

type Summary struct {
	Format         string
	Arcs           int
	Points         int
	Bounds         []float64
	AverageSegment [2]float64
	RetainedPoints int
	Layers         []LayerSummary
}

func Summarize(ds *mapshaper.Dataset) *Summary {
	s := &Summary{
		Format: ds.Info.InputFormat,
		Arcs:   ds.Arcs.Size(),
		Points: ds.Arcs.PointCount(),
	}
	if b := ds.Arcs.Bounds(); !b.IsEmpty() {
		s.Bounds = b.Slice()
	}
	s.AverageSegment[0], s.AverageSegment[1] = ds.Arcs.AverageSegment()
	for _, n := range ds.RetainedPointCounts {
		s.RetainedPoints += n
	}
	for _, l := range ds.Layers {
		ls := LayerSummary{
			Name:    l.Name,
			Type:    l.GeometryType,
			Records: l.Size(),
		}
		for i := 0; i < l.Size(); i++ {
			switch {
			case l.GeometryType == mapshaper.PointGeometry:
				if i >= len(l.Points) || len(l.Points[i]) == 0 {
					ls.NullShapes++
				}
			case i >= len(l.Shapes) || len(l.Shapes[i]) == 0:
				ls.NullShapes++
			}
		}
		s.Layers = append(s.Layers, ls)
	}
	return s
}

func (cmd CmdInfo) Execute(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("Input file not specified, Usage: %s", cmd.Usage())
	}

	ds, err := cmd.global.OpenDataset(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%# v\n", pretty.Formatter(Summarize(ds)))
	return nil
}
