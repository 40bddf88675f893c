package main

import (
	"sort"
	"time"
)

// benchSink receives every measured result so the compiler cannot
// eliminate the work being timed.
var benchSink any

// Timing summarizes repeated measurements of one operation with robust
// statistics. No outlier rejection happens beyond using median and
// interquartile range instead of mean and standard deviation.
type Timing struct {
	Median  time.Duration
	IQR     time.Duration
	Samples []time.Duration
}

// measure runs op warmup times discarding results, then runs times
// recording wall-clock duration, and reduces the samples to median and
// interquartile range.
//
// prepare, when non-nil, runs before every invocation of op, outside
// the timed region. Operations whose inputs are consumed or whose
// caches would otherwise be warmed by a previous run's transformed data
// rebuild their inputs there, so every sample measures the same work.
//
// All runs are strictly sequential; overlapping them would corrupt the
// wall-clock samples that are this tool's entire output.
func measure(prepare, op func(), warmup, runs int) Timing {
	for i := 0; i < warmup; i++ {
		if prepare != nil {
			prepare()
		}
		op()
	}

	samples := make([]time.Duration, 0, runs)
	for i := 0; i < runs; i++ {
		if prepare != nil {
			prepare()
		}
		start := time.Now()
		op()
		samples = append(samples, time.Since(start))
	}

	q1, median, q3 := quartiles(samples)
	return Timing{
		Median:  median,
		IQR:     q3 - q1,
		Samples: samples,
	}
}

// quartiles returns Q1, median and Q3 of the samples using sorted order
// and floor-division rank indexing: sorted[n/4], sorted[n/2],
// sorted[3n/4]. The input is not modified.
func quartiles(samples []time.Duration) (q1, median, q3 time.Duration) {
	sorted := make([]time.Duration, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	n := len(sorted)
	return sorted[n/4], sorted[n/2], sorted[3*n/4]
}

// millis renders a duration as fractional milliseconds for report rows.
func millis(d time.Duration) float64 {
	return d.Seconds() * 1e3
}
