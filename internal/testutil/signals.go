// Package testutil provides deterministic test signals and tolerance
// assertions shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave starting at phase zero.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise in [-amplitude, amplitude] with a
// fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Ramp generates length samples spaced evenly over [from, to].
func Ramp(from, to float64, length int) []float64 {
	out := make([]float64, length)
	if length == 1 {
		out[0] = from
		return out
	}
	step := (to - from) / float64(length-1)
	for i := range out {
		out[i] = from + step*float64(i)
	}
	return out
}
