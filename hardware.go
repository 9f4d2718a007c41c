package main

import (
	"os"
	"runtime"
	"strings"
)

// HardwareInfo describes the host the benchmark ran on. It is embedded in
// suite exports so results collected from different machines stay
// distinguishable.
type HardwareInfo struct {
	OS       string `json:"os"`
	Arch     string `json:"arch"`
	CPUModel string `json:"cpu_model"`
	NumCPU   int    `json:"num_cpu"`
	HasNEON  bool   `json:"has_neon"`
	HasSVE   bool   `json:"has_sve"`
}

// DetectHardware gathers what can be read without cgo: GOOS/GOARCH, the
// core count, and on Linux the CPU model and SIMD feature flags from
// /proc/cpuinfo.
func DetectHardware() HardwareInfo {
	info := HardwareInfo{
		OS:     runtime.GOOS,
		Arch:   runtime.GOARCH,
		NumCPU: runtime.NumCPU(),
	}

	switch runtime.GOOS {
	case "darwin":
		if runtime.GOARCH == "arm64" {
			info.CPUModel = "Apple Silicon"
			info.HasNEON = true
		} else {
			info.CPUModel = "Unknown (darwin)"
		}
	case "linux":
		cpuinfo, err := os.ReadFile("/proc/cpuinfo")
		if err != nil {
			info.CPUModel = "Unknown (linux)"
			break
		}
		info.CPUModel = cpuModelFromCPUInfo(string(cpuinfo))
		if runtime.GOARCH == "arm64" {
			info.HasNEON = true // mandatory on ARM64
			info.HasSVE = strings.Contains(featuresLine(string(cpuinfo)), "sve")
		}
	default:
		info.CPUModel = "Unknown"
	}

	return info
}

// cpuModelFromCPUInfo extracts a human-readable CPU name from /proc/cpuinfo.
// x86 exposes "model name" directly; ARM64 only exposes implementer and part
// numbers, so the common server parts are mapped by hand.
func cpuModelFromCPUInfo(cpuinfo string) string {
	var implementer, part string

	for _, line := range strings.Split(cpuinfo, "\n") {
		switch {
		case strings.HasPrefix(line, "model name"):
			if _, value, ok := strings.Cut(line, ":"); ok {
				return strings.TrimSpace(value)
			}
		case strings.HasPrefix(line, "CPU implementer"):
			if _, value, ok := strings.Cut(line, ":"); ok {
				implementer = strings.TrimSpace(value)
			}
		case strings.HasPrefix(line, "CPU part"):
			if _, value, ok := strings.Cut(line, ":"); ok {
				part = strings.TrimSpace(value)
			}
		}
	}

	if implementer == "0x41" { // ARM Ltd.
		switch part {
		case "0xd0c":
			return "ARM Neoverse N1 (Graviton2 class)"
		case "0xd40":
			return "ARM Neoverse V1 (Graviton3 class)"
		case "0xd4f":
			return "ARM Neoverse V2 (Graviton4 class)"
		}
	}

	if implementer != "" || part != "" {
		return "ARM64 CPU (implementer: " + implementer + ", part: " + part + ")"
	}
	return "Unknown"
}

// featuresLine returns the first "Features" line from /proc/cpuinfo, or "".
func featuresLine(cpuinfo string) string {
	for _, line := range strings.Split(cpuinfo, "\n") {
		if strings.HasPrefix(line, "Features") {
			return line
		}
	}
	return ""
}
