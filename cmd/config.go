package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Job describes a processing run. Command line flags take precedence over
// the values read from a job file.
type Job struct {
	Input        string    `yaml:"input"`
	Output       string    `yaml:"output"`
	Format       string    `yaml:"format"`
	Layers       []string  `yaml:"layers"`
	Weights      string    `yaml:"weights"`
	Quantization int       `yaml:"quantization"`
	Percentage   float64   `yaml:"percentage"`
	Interval     float64   `yaml:"interval"`
	MinSize      float64   `yaml:"min_size"`
	BBox         []float64 `yaml:"bbox"`
}

func ReadJob(filename string) (*Job, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	job, err := ParseJob(fp)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to parse %s", filename)
	}
	return job, nil
}

func ParseJob(in io.Reader) (*Job, error) {
	job := &Job{}
	err := yaml.NewDecoder(in).Decode(job)
	if err == io.EOF {
		return job, nil
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// paths resolves input and output from positional arguments, falling back
// to the job file.
func (j *Job) paths(args []string) (string, string, error) {
	in, out := j.Input, j.Output
	switch len(args) {
	case 0:
	case 2:
		in, out = args[0], args[1]
	default:
		return "", "", errors.New("Expected input and output paths")
	}
	if in == "" || out == "" {
		return "", "", errors.New("Input or output path not specified")
	}
	return in, out, nil
}

func pickString(flag, job string) string {
	if flag != "" {
		return flag
	}
	return job
}

func pickFloat(flag, job float64) float64 {
	if flag != 0 {
		return flag
	}
	return job
}
