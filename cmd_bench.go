package main

import (
	"os"
)

// RunBenchCommand runs the single-shot benchmark. Only the first positional
// argument is read (the size-class label); anything after it is ignored.
func RunBenchCommand(args []string) error {
	var label string
	hasLabel := len(args) > 0
	if hasLabel {
		label = args[0]
	}

	return RunBench(os.Stdout, label, hasLabel)
}
