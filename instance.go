package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// BenchmarkInstance mirrors one benchmark-instance JSON file. Shapes use
// the column-major convention throughout: dimension 0 varies fastest.
type BenchmarkInstance struct {
	Name         string   `json:"name"`
	FormatString string   `json:"format_string_colmajor"`
	Shapes       [][]int  `json:"shapes_colmajor"`
	DType        string   `json:"dtype"`
	NumTensors   int      `json:"num_tensors"`
	Paths        PathInfo `json:"paths"`
}

// PathInfo carries the two precomputed contraction paths of an instance,
// one per optimization strategy.
type PathInfo struct {
	OptSize  PathMeta `json:"opt_size"`
	OptFlops PathMeta `json:"opt_flops"`
}

// PathMeta is one contraction path plus its optimizer cost estimates.
type PathMeta struct {
	Path       [][2]int `json:"path"`
	Log2Size   float64  `json:"log2_size"`
	Log10Flops float64  `json:"log10_flops"`
}

// loadInstances reads every *.json file in dir, sorted by filename.
// Any unreadable or malformed file is fatal; a benchmark has no
// obligation to continue past bad input, and the error names the file.
func loadInstances(dir string) ([]*BenchmarkInstance, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read instance directory %s", dir)
	}

	var instances []*BenchmarkInstance
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
		inst := &BenchmarkInstance{}
		if err := json.Unmarshal(data, inst); err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", path)
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// createOperands allocates one randomly-initialized column-major operand
// per shape. Called once per measured run so successive runs never reuse
// a prior run's buffers.
func createOperands[T Element](shapes [][]int) []*Strided[T] {
	operands := make([]*Strided[T], len(shapes))
	for i, shape := range shapes {
		operands[i] = NewColMajorRand[T](shape)
	}
	return operands
}
