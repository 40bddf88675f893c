package main

import (
	"fmt"
	"os"
	"runtime"
)

// backendName identifies the contraction engine and its GEMM backend in
// report headers.
const backendName = "strided-einsum(gonum)"

// ThreadHints is the process-wide thread configuration of the underlying
// compute engine, read once at startup and echoed into report headers.
// The benchmark core never interprets these values: the engine's
// parallelism is opaque to the measurement, and modeling the hints as an
// explicit value keeps the core testable without touching the process
// environment.
type ThreadHints struct {
	// GoMaxProcs bounds gonum's internal GEMM worker pool.
	GoMaxProcs int

	// GoMaxProcsEnv is the raw GOMAXPROCS variable, "unset" when absent.
	GoMaxProcsEnv string

	// OpenBLASThreads is the raw OPENBLAS_NUM_THREADS variable, relevant
	// only when a cgo BLAS is swapped in; "unset" when absent.
	OpenBLASThreads string
}

// readThreadHints snapshots the thread-count environment at startup.
func readThreadHints() ThreadHints {
	return ThreadHints{
		GoMaxProcs:      runtime.GOMAXPROCS(0),
		GoMaxProcsEnv:   envOrUnset("GOMAXPROCS"),
		OpenBLASThreads: envOrUnset("OPENBLAS_NUM_THREADS"),
	}
}

func envOrUnset(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return "unset"
}

// String renders the hints for a report header line.
func (h ThreadHints) String() string {
	return fmt.Sprintf("GOMAXPROCS=%s (effective %d), OPENBLAS_NUM_THREADS=%s",
		h.GoMaxProcsEnv, h.GoMaxProcs, h.OpenBLASThreads)
}
