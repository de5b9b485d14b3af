package cmd

import (
	"flag"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/saidabou/mapshaper"
	"github.com/saidabou/mapshaper/topojson"
)

type GlobalOptions struct {
	Verbose int    `short:"v" long:"verbose" description:"Log verbosity"`
	Config  string `short:"c" long:"config" description:"YAML job file"`
}

var globalOpts = GlobalOptions{}
var parser = flags.NewParser(&globalOpts, flags.HelpFlag|flags.PassDoubleDash)

func init() {
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if command == nil {
			return nil
		}
		flag.Set("logtostderr", "true")
		flag.Set("v", strconv.Itoa(globalOpts.Verbose))
		return command.Execute(args)
	}
}

func Run() error {
	return RunArgs(os.Args[1:])
}

func RunArgs(args []string) error {
	_, err := parser.ParseArgs(args)
	if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		parser.WriteHelp(os.Stdout)
		return nil
	}
	return err
}

// LoadJob reads the job file named by -c, or returns an empty job.
func (g *GlobalOptions) LoadJob() (*Job, error) {
	if g.Config == "" {
		return &Job{}, nil
	}
	return ReadJob(g.Config)
}

// OpenDataset reads a TopoJSON file and assembles it.
func (g *GlobalOptions) OpenDataset(filename string) (*mapshaper.Dataset, error) {
	if filename == "" {
		return nil, errors.New("No input file specified")
	}

	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	topo, err := topojson.Decode(fp)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read %s", filename)
	}
	ds, err := topo.Import()
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to import %s", filename)
	}
	glog.V(1).Infof("loaded %s: %d layers, %d arcs", filename, len(ds.Layers), ds.Arcs.Size())
	return ds, nil
}
