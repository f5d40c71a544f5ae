// Package core holds small numeric helpers shared by the voice effect stages.
package core

import "math"

// Clamp limits value to the inclusive range [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// IsFinitePositive reports whether x is finite and strictly greater than zero.
func IsFinitePositive(x float64) bool {
	return x > 0 && IsFinite(x)
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// SemitonesToRatio converts a pitch offset in semitones to a frequency ratio.
func SemitonesToRatio(semitones float64) float64 {
	return math.Exp2(semitones / 12)
}
