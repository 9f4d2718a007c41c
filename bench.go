package main

// ===========================================================================
// WHAT'S GOING ON HERE
// ===========================================================================
//
// This file implements the single-run benchmark: the program's original and
// default surface. One size, one warm-up multiply, one timed multiply, a
// six-line report.
//
// The report format is a contract. Tooling diffs this output across
// implementations and compilers, so the field order, labels, and float
// precision (%.1f MB, %.3f seconds, %.2f GFLOPS, %.1f check values) must not
// change. The header and the Size/Memory lines print before allocation, so
// a failed allocation on a large size still shows what was being attempted.
//
// TIMING:
// time.Now carries a monotonic clock reading and time.Since subtracts it,
// so the elapsed value cannot go negative or jump under wall-clock
// adjustments. That is a requirement, not a nicety: a 2048³ run takes long
// enough for NTP slew to be visible on a wall clock.
//
// THE WARM-UP RUN:
// The first multiply faults in the freshly allocated pages and primes the
// caches; its result is overwritten in place by the timed run (both runs
// write the same output buffer). Since the kernel is a pure function of
// A and B, the timed run produces the same C.
//
// ===========================================================================

import (
	"fmt"
	"io"
	"time"
)

// BenchResult holds the measurements of a single benchmark run.
type BenchResult struct {
	N        int           `json:"n"`
	Label    string        `json:"label"`
	Elapsed  time.Duration `json:"elapsed_ns"`
	GFLOPS   float64       `json:"gflops"`
	MemoryMB float64       `json:"memory_mb"`
	Check    float32       `json:"check"`
	Expected float32       `json:"expected"`
}

// gflops converts a dimension and elapsed seconds to achieved GFLOPS:
// 2n³ floating-point operations (one multiply and one add per inner-loop
// step) per 1e9 per second.
func gflops(n int, seconds float64) float64 {
	return (2.0 * float64(n) * float64(n) * float64(n)) / (seconds * 1e9)
}

// RunBench executes one full benchmark: resolve the size class, allocate and
// initialize the three matrices, warm up, time one multiply, and write the
// report to w.
//
// label/hasLabel carry the optional CLI size-class argument. Errors are
// limited to invalid sizes and allocation failures; both abort before any
// metric is printed beyond the header lines.
func RunBench(w io.Writer, label string, hasLabel bool) error {
	n, display := ResolveSizeClass(label, hasLabel)

	fmt.Fprintf(w, "=== Optimized Matrix Multiplication ===\n")
	fmt.Fprintf(w, "Size: %dx%d (%s)\n", n, n, display)
	fmt.Fprintf(w, "Memory: %.1f MB\n", MemoryMB(n))

	a, b, c, err := allocBenchMatrices(n)
	if err != nil {
		return err
	}

	// A is all ones and B all twos, so every dot product is a sum of n
	// terms each exactly 2.0. C[0] == 2n is the spot check below.
	a.Fill(1.0)
	b.Fill(2.0)
	c.Fill(0.0)

	// Warm up
	MatMul(a, b, c)

	// Benchmark
	start := time.Now()
	MatMul(a, b, c)
	elapsed := time.Since(start)

	seconds := elapsed.Seconds()
	perf := gflops(n, seconds)
	expected := float32(n) * 2.0

	fmt.Fprintf(w, "Time: %.3f seconds\n", seconds)
	fmt.Fprintf(w, "Performance: %.2f GFLOPS\n", perf)
	fmt.Fprintf(w, "Result check: C[0] = %.1f (expected: %.1f)\n", c.Data()[0], expected)

	return nil
}

// allocBenchMatrices allocates the three n×n matrices of a benchmark run.
func allocBenchMatrices(n int) (a, b, c *Matrix, err error) {
	if a, err = NewMatrix(n); err != nil {
		return nil, nil, nil, err
	}
	if b, err = NewMatrix(n); err != nil {
		return nil, nil, nil, err
	}
	if c, err = NewMatrix(n); err != nil {
		return nil, nil, nil, err
	}
	return a, b, c, nil
}

// MeasureOnce runs a single warm-up + timed multiply at dimension n with the
// given kernel and returns the measurements without printing. It backs the
// suite runner and the dashboard's run endpoint.
func MeasureOnce(n int, label string, s Strategy, cfg ComputeConfig) (BenchResult, error) {
	a, b, c, err := allocBenchMatrices(n)
	if err != nil {
		return BenchResult{}, err
	}

	a.Fill(1.0)
	b.Fill(2.0)
	c.Fill(0.0)

	MatMulWithStrategy(a, b, c, s, cfg)

	start := time.Now()
	MatMulWithStrategy(a, b, c, s, cfg)
	elapsed := time.Since(start)

	return BenchResult{
		N:        n,
		Label:    label,
		Elapsed:  elapsed,
		GFLOPS:   gflops(n, elapsed.Seconds()),
		MemoryMB: MemoryMB(n),
		Check:    c.Data()[0],
		Expected: float32(n) * 2.0,
	}, nil
}
