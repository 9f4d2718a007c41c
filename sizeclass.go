package main

// Size classes map a named preset to the matrix dimension N. The table is
// part of the CLI contract: an exact, case-sensitive match selects N, and
// anything else (including no argument at all) silently falls back to the
// default. The fallback is deliberate — the label is still echoed verbatim
// in the report so a typo is visible in the output, not an error.
const (
	SizeMicro  = 64
	SizeSmall  = 512
	SizeMedium = 2048
	SizeLarge  = 8192

	// DefaultSize is used when no size class (or an unrecognized one)
	// is given.
	DefaultSize = SizeSmall

	// DefaultLabel is reported when no size class was given at all.
	DefaultLabel = "small"
)

var sizeClasses = map[string]int{
	"micro":  SizeMicro,
	"small":  SizeSmall,
	"medium": SizeMedium,
	"large":  SizeLarge,
}

// ResolveSizeClass maps a size-class label to the matrix dimension N and the
// label to report. hasLabel distinguishes "no argument" from an empty string
// argument: with no argument the default label is reported, otherwise the
// given label is reported verbatim even when it did not match the table.
func ResolveSizeClass(label string, hasLabel bool) (n int, display string) {
	if !hasLabel {
		return DefaultSize, DefaultLabel
	}
	if n, ok := sizeClasses[label]; ok {
		return n, label
	}
	return DefaultSize, label
}
