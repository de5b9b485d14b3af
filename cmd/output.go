package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/saidabou/mapshaper"
	"github.com/saidabou/mapshaper/geojson"
	"github.com/saidabou/mapshaper/shapefile"
	"github.com/saidabou/mapshaper/topojson"
)

const (
	formatTopoJSON  = "topojson"
	formatGeoJSON   = "geojson"
	formatShapefile = "shapefile"
)

// outputFormat returns the requested format, or guesses it from the output
// file extension.
func outputFormat(format, filename string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(filename)) {
		case ".shp":
			return formatShapefile, nil
		case ".geojson":
			return formatGeoJSON, nil
		default:
			return formatTopoJSON, nil
		}
	}
	switch format {
	case formatTopoJSON, formatGeoJSON, formatShapefile:
		return format, nil
	}
	return "", errors.Errorf("Unknown output format %q", format)
}

// selectLayers keeps the named layers, in dataset order. No names keeps all.
func selectLayers(ds *mapshaper.Dataset, names []string) ([]*mapshaper.Layer, error) {
	if len(names) == 0 {
		return ds.Layers, nil
	}
	var out []*mapshaper.Layer
	for _, name := range names {
		l := ds.Layer(name)
		if l == nil {
			return nil, errors.Errorf("No such layer: %s", name)
		}
		out = append(out, l)
	}
	return out, nil
}

// layerPath derives one output file per layer when a format holds a single
// layer per file.
func layerPath(filename, layer string, count int) string {
	if count < 2 {
		return filename
	}
	ext := filepath.Ext(filename)
	return fmt.Sprintf("%s-%s%s", strings.TrimSuffix(filename, ext), layer, ext)
}

func writeOutput(ds *mapshaper.Dataset, filename, format string, names []string) error {
	format, err := outputFormat(format, filename)
	if err != nil {
		return err
	}
	layers, err := selectLayers(ds, names)
	if err != nil {
		return err
	}

	if format == formatTopoJSON {
		sub := *ds
		sub.Layers = layers
		topo, err := topojson.Export(&sub)
		if err != nil {
			return err
		}
		return writeJSON(filename, topo)
	}

	bar := pb.StartNew(len(layers))
	defer bar.Finish()
	for _, layer := range layers {
		path := layerPath(filename, layer.Name, len(layers))
		switch format {
		case formatGeoJSON:
			fc, err := geojson.ExportLayer(layer, ds.Arcs)
			if err != nil {
				return err
			}
			err = writeJSON(path, fc)
			if err != nil {
				return err
			}
		case formatShapefile:
			err := shapefile.WriteLayer(path, layer, ds.Arcs)
			if err != nil {
				return err
			}
		}
		glog.V(1).Infof("wrote layer %q to %s", layer.Name, path)
		bar.Increment()
	}
	return nil
}

func writeJSON(filename string, v interface{}) error {
	fp, err := os.Create(filename)
	if err != nil {
		return err
	}
	err = json.NewEncoder(fp).Encode(v)
	if err != nil {
		fp.Close()
		return errors.Wrapf(err, "Failed to write %s", filename)
	}
	return fp.Close()
}
