package main

// ===========================================================================
// WHAT'S GOING ON HERE
// ===========================================================================
//
// The suite runner generalizes the single-run benchmark: a grid of sizes ×
// kernels, several iterations each, with the naive kernel as the per-size
// baseline for speedup figures. Results are structured (JSON tags) so they
// can be collected from multiple machines and compared.
//
// Unlike the single run, suite output is informational, not a format
// contract — only the exported JSON/CSV shapes need to stay stable.
//
// ===========================================================================

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Result is one (size, strategy) measurement within a suite.
type Result struct {
	Strategy       string        `json:"strategy"`
	Size           int           `json:"size"`
	Iterations     int           `json:"iterations"`
	TotalTime      time.Duration `json:"total_time_ns"`
	AvgTime        time.Duration `json:"avg_time_ns"`
	GFLOPS         float64       `json:"gflops"`
	SpeedupVsNaive float64       `json:"speedup_vs_naive"`
	MemoryMB       float64       `json:"memory_mb"`
	Check          float32       `json:"check"`
}

// Suite is a full benchmark run on one machine.
type Suite struct {
	Timestamp      time.Time    `json:"timestamp"`
	Hardware       HardwareInfo `json:"hardware"`
	BaselineGFLOPS float64      `json:"baseline_gflops"`
	Results        []Result     `json:"results"`
}

// SuiteOptions configures RunSuite.
type SuiteOptions struct {
	Sizes      []int
	Iterations int
	Strategies []Strategy
}

// RunSuite benchmarks every configured kernel at every configured size,
// writing progress to w. The naive kernel is forced to run first at each
// size so the speedup baseline exists before the other kernels report.
func RunSuite(opts SuiteOptions, w io.Writer) (*Suite, error) {
	suite := &Suite{
		Timestamp: time.Now(),
		Hardware:  DetectHardware(),
	}

	strategies := opts.Strategies
	if len(strategies) == 0 {
		strategies = AllStrategies
	}
	iterations := opts.Iterations
	if iterations <= 0 {
		iterations = 1
	}

	fmt.Fprintf(w, "=== Benchmark Suite ===\n")
	fmt.Fprintf(w, "Hardware: %s on %s/%s (%d cores)\n",
		suite.Hardware.CPUModel, suite.Hardware.OS, suite.Hardware.Arch, suite.Hardware.NumCPU)
	fmt.Fprintf(w, "Timestamp: %s\n", suite.Timestamp.Format(time.RFC3339))
	fmt.Fprintln(w)

	cfg := DefaultComputeConfig()

	for _, size := range opts.Sizes {
		fmt.Fprintf(w, "Benchmarking size %dx%d\n", size, size)

		a, b, c, err := allocBenchMatrices(size)
		if err != nil {
			return nil, err
		}
		a.Fill(1.0)
		b.Fill(2.0)

		totalOps := 2.0 * float64(size) * float64(size) * float64(size)
		var naiveBaseline float64

		for _, s := range orderedWithBaseline(strategies) {
			fmt.Fprintf(w, "  %s... ", s)

			c.Fill(0.0)
			MatMulWithStrategy(a, b, c, s, cfg) // warm up

			start := time.Now()
			for i := 0; i < iterations; i++ {
				MatMulWithStrategy(a, b, c, s, cfg)
			}
			totalTime := time.Since(start)
			avgTime := totalTime / time.Duration(iterations)

			perf := totalOps / avgTime.Seconds() / 1e9

			if s == StrategyNaive {
				naiveBaseline = perf
				if suite.BaselineGFLOPS == 0 {
					suite.BaselineGFLOPS = perf
				}
			}

			speedup := 0.0
			if naiveBaseline > 0 {
				speedup = perf / naiveBaseline
			}

			suite.Results = append(suite.Results, Result{
				Strategy:       s.String(),
				Size:           size,
				Iterations:     iterations,
				TotalTime:      totalTime,
				AvgTime:        avgTime,
				GFLOPS:         perf,
				SpeedupVsNaive: speedup,
				MemoryMB:       MemoryMB(size),
				Check:          c.Data()[0],
			})

			fmt.Fprintf(w, "%.2f GFLOPS (%.2fx)\n", perf, speedup)
		}

		fmt.Fprintln(w)
	}

	return suite, nil
}

// orderedWithBaseline returns the strategies with naive moved to the front.
// The speedup column needs the naive measurement before anything else runs.
func orderedWithBaseline(strategies []Strategy) []Strategy {
	ordered := make([]Strategy, 0, len(strategies)+1)
	ordered = append(ordered, StrategyNaive)
	for _, s := range strategies {
		if s != StrategyNaive {
			ordered = append(ordered, s)
		}
	}
	return ordered
}

// PrintSummary writes a per-size table of the suite's results.
func (suite *Suite) PrintSummary(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "=== Benchmark Summary ===\n")
	fmt.Fprintf(w, "Hardware: %s\n", suite.Hardware.CPUModel)
	fmt.Fprintf(w, "Baseline: %.2f GFLOPS (naive single-threaded)\n", suite.BaselineGFLOPS)
	fmt.Fprintln(w)

	// Results are appended in size order; group consecutive runs.
	lastSize := -1
	for _, r := range suite.Results {
		if r.Size != lastSize {
			if lastSize != -1 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "Size %dx%d:\n", r.Size, r.Size)
			fmt.Fprintf(w, "  %-12s %14s %12s %10s\n", "Strategy", "Avg Time", "GFLOPS", "Speedup")
			lastSize = r.Size
		}
		fmt.Fprintf(w, "  %-12s %14v %12.2f %9.2fx\n", r.Strategy, r.AvgTime, r.GFLOPS, r.SpeedupVsNaive)
	}
	fmt.Fprintln(w)
}

// WriteJSON saves the suite to filename as indented JSON.
func (suite *Suite) WriteJSON(filename string) error {
	data, err := json.MarshalIndent(suite, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal suite: %w", err)
	}
	return os.WriteFile(filename, append(data, '\n'), 0o644)
}

// WriteCSV saves one row per result to filename.
func (suite *Suite) WriteCSV(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return suite.writeCSVTo(f)
}

func (suite *Suite) writeCSVTo(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "strategy,size,iterations,avg_ns,gflops,speedup_vs_naive,memory_mb"); err != nil {
		return err
	}
	for _, r := range suite.Results {
		_, err := fmt.Fprintf(w, "%s,%d,%d,%d,%.4f,%.4f,%.4f\n",
			r.Strategy, r.Size, r.Iterations, r.AvgTime.Nanoseconds(),
			r.GFLOPS, r.SpeedupVsNaive, r.MemoryMB)
		if err != nil {
			return err
		}
	}
	return nil
}
