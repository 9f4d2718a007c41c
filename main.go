package main

import (
	"fmt"
	"os"
)

func main() {
	args := os.Args[1:]

	// Check for command-line mode
	if len(args) > 0 {
		switch args[0] {
		case "bench":
			runOrDie(RunBenchCommand(args[1:]))
			return
		case "suite":
			runOrDie(RunSuiteCommand(args[1:]))
			return
		case "detect":
			runOrDie(RunDetectCommand(args[1:]))
			return
		case "serve":
			runOrDie(RunServeCommand(args[1:]))
			return
		case "help", "-h", "--help":
			printUsage()
			return
		}
	}

	// Default: the classic single-run benchmark. Any first argument that
	// is not a command word is a size-class label; unrecognized labels
	// fall back to the default size (see ResolveSizeClass).
	runOrDie(RunBenchCommand(args))
}

func runOrDie(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  matbench [size-class]        Run the benchmark (micro, small, medium, large)")
	fmt.Println("  matbench bench [size-class]  Same as above, explicit form")
	fmt.Println("  matbench suite [options]     Multi-size, multi-strategy benchmark suite")
	fmt.Println("  matbench detect              Detect and print hardware information")
	fmt.Println("  matbench serve [options]     Serve benchmark results over HTTP")
	fmt.Println("  matbench help                Show this help message")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  matbench micro")
	fmt.Println("  matbench suite -sizes=64,128,256 -iterations=5 -json=results.json")
	fmt.Println("  matbench suite -quick -strategies=naive,blas")
	fmt.Println("  matbench serve -addr=:8080 -results=results.json")
	fmt.Println()
}
