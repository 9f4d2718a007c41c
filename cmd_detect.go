package main

import (
	"fmt"
)

// RunDetectCommand prints a hardware report and exits. Useful before
// collecting suite results from a fleet of machines: the same fields end up
// embedded in every suite JSON export.
func RunDetectCommand(args []string) error {
	fmt.Println("=== Hardware Detection ===")
	fmt.Println()

	hw := DetectHardware()

	fmt.Printf("Operating System: %s\n", hw.OS)
	fmt.Printf("Architecture:     %s\n", hw.Arch)
	fmt.Printf("CPU Model:        %s\n", hw.CPUModel)
	fmt.Printf("CPU Cores:        %d\n", hw.NumCPU)

	if hw.HasNEON || hw.HasSVE {
		fmt.Println()
		fmt.Println("Features:")
		if hw.HasNEON {
			fmt.Println("  NEON (128-bit SIMD)")
		}
		if hw.HasSVE {
			fmt.Println("  SVE (Scalable Vector Extension)")
		}
	}

	return nil
}
