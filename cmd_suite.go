package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// suiteConfig holds the parsed suite command-line options.
type suiteConfig struct {
	Sizes      []int
	Iterations int
	Strategies []Strategy
	OutputJSON string
	OutputCSV  string
	QuickMode  bool
}

// RunSuiteCommand is the entry point for the suite subcommand.
func RunSuiteCommand(args []string) error {
	fs := flag.NewFlagSet("suite", flag.ExitOnError)

	var sizesStr, strategiesStr string
	config := suiteConfig{}

	fs.StringVar(&sizesStr, "sizes", "64,128,256,512", "Matrix sizes to benchmark (comma-separated)")
	fs.IntVar(&config.Iterations, "iterations", 5, "Number of iterations per benchmark")
	fs.StringVar(&strategiesStr, "strategies", "naive,parallel,blocked,blas", "Kernels to run (comma-separated)")
	fs.StringVar(&config.OutputJSON, "json", "", "Output JSON file")
	fs.StringVar(&config.OutputCSV, "csv", "", "Output CSV file")
	fs.BoolVar(&config.QuickMode, "quick", false, "Quick mode (fewer sizes and iterations)")

	fs.Parse(args)

	var err error
	if config.Sizes, err = parseSizes(sizesStr); err != nil {
		return err
	}
	if config.Strategies, err = parseStrategies(strategiesStr); err != nil {
		return err
	}

	// Quick mode overrides
	if config.QuickMode {
		config.Sizes = []int{128, 256}
		config.Iterations = 3
	}

	suite, err := RunSuite(SuiteOptions{
		Sizes:      config.Sizes,
		Iterations: config.Iterations,
		Strategies: config.Strategies,
	}, os.Stdout)
	if err != nil {
		return err
	}

	suite.PrintSummary(os.Stdout)

	if config.OutputJSON != "" {
		if err := suite.WriteJSON(config.OutputJSON); err != nil {
			return fmt.Errorf("failed to save JSON: %w", err)
		}
		fmt.Printf("Saved results to %s\n", config.OutputJSON)
	}
	if config.OutputCSV != "" {
		if err := suite.WriteCSV(config.OutputCSV); err != nil {
			return fmt.Errorf("failed to save CSV: %w", err)
		}
		fmt.Printf("Saved results to %s\n", config.OutputCSV)
	}

	return nil
}

// parseSizes parses the -sizes flag. Sizes must be positive integers; the
// suite validates here instead of falling back silently, because there is no
// label-echo mechanism to make a typo visible like the bench surface has.
func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		size, err := strconv.Atoi(tok)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("%w: size %q", ErrInvalidSize, tok)
		}
		sizes = append(sizes, size)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: no sizes given", ErrInvalidSize)
	}
	return sizes, nil
}

// parseStrategies parses the -strategies flag.
func parseStrategies(s string) ([]Strategy, error) {
	var strategies []Strategy
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		strategy, err := ParseStrategy(tok)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, strategy)
	}
	return strategies, nil
}
