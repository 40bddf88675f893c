package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// benchConfig holds command-line options for the bench command.
type benchConfig struct {
	DataDir string
	Warmup  int
	Runs    int
}

// RunBenchCommand loads every benchmark instance, times full contraction
// evaluation under both path strategies, and prints one results table
// per strategy.
func RunBenchCommand(hints ThreadHints, args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)

	cfg := benchConfig{}
	fs.StringVar(&cfg.DataDir, "data", "data/instances", "Directory of benchmark instance JSON files")
	fs.IntVar(&cfg.Warmup, "warmup", 2, "Warmup runs per instance (discarded)")
	fs.IntVar(&cfg.Runs, "runs", 5, "Measured runs per instance")
	fs.Parse(args)

	instances, err := loadInstances(cfg.DataDir)
	if err != nil {
		return err
	}

	fmt.Printf("%s benchmark suite\n", backendName)
	fmt.Println("==================================")
	fmt.Printf("Loaded %d instances from %s\n", len(instances), cfg.DataDir)
	fmt.Printf("Backend: %s\n", backendName)
	fmt.Println(hints)
	fmt.Printf("Timing: median of %d runs (%d warmup)\n", cfg.Runs, cfg.Warmup)

	strategies := []struct {
		name string
		meta func(*PathInfo) *PathMeta
	}{
		{"opt_flops", func(p *PathInfo) *PathMeta { return &p.OptFlops }},
		{"opt_size", func(p *PathInfo) *PathMeta { return &p.OptSize }},
	}

	for _, strategy := range strategies {
		fmt.Println()
		fmt.Printf("Strategy: %s\n", strategy.name)
		fmt.Printf("%-50s %8s %10s %12s %12s\n",
			"Instance", "Tensors", "log10FLOPS", "log2SIZE", "Median (ms)")
		fmt.Println(strings.Repeat("-", 96))

		for _, inst := range instances {
			meta := strategy.meta(&inst.Paths)
			median, err := runInstance(inst, meta, cfg)
			if err != nil {
				return err
			}
			fmt.Printf("%-50s %8d %10.2f %12.2f %12.3f\n",
				inst.Name, inst.NumTensors, meta.Log10Flops, meta.Log2Size, millis(median))
		}
	}

	return nil
}

// runInstance times one instance under one path, dispatching on the
// declared element type. An unrecognized dtype is fatal and names the
// offending value.
func runInstance(inst *BenchmarkInstance, meta *PathMeta, cfg benchConfig) (time.Duration, error) {
	switch inst.DType {
	case "float64":
		return timeInstance[float64](inst, meta, cfg)
	case "complex128":
		return timeInstance[complex128](inst, meta, cfg)
	default:
		return 0, errors.Errorf("instance %s: unsupported dtype %q", inst.Name, inst.DType)
	}
}

// timeInstance compiles the instance's path into a contraction tree and
// measures full evaluation. Operands are recreated before every run,
// outside the timed region, so no run starts from another's buffers.
func timeInstance[T Element](inst *BenchmarkInstance, meta *PathMeta, cfg benchConfig) (time.Duration, error) {
	inputIDs, outIDs, err := parseFormatString(inst.FormatString)
	if err != nil {
		return 0, errors.Wrapf(err, "instance %s", inst.Name)
	}
	if len(inputIDs) != inst.NumTensors {
		return 0, errors.Errorf("instance %s: parsed %d operands but num_tensors declares %d",
			inst.Name, len(inputIDs), inst.NumTensors)
	}
	if len(inst.Shapes) != len(inputIDs) {
		return 0, errors.Errorf("instance %s: %d operands but %d shapes",
			inst.Name, len(inputIDs), len(inst.Shapes))
	}

	root, err := buildContractionTree(inputIDs, meta.Path)
	if err != nil {
		return 0, errors.Wrapf(err, "instance %s", inst.Name)
	}

	// One untimed evaluation validates the whole pipeline so the timed
	// closure cannot fail.
	operands := createOperands[T](inst.Shapes)
	if _, err := EvaluateTree(root, outIDs, operands); err != nil {
		return 0, errors.Wrapf(err, "instance %s", inst.Name)
	}

	timing := measure(
		func() { operands = createOperands[T](inst.Shapes) },
		func() {
			out, _ := EvaluateTree(root, outIDs, operands)
			benchSink = out
		},
		cfg.Warmup, cfg.Runs,
	)
	return timing.Median, nil
}
