// Package time measures level statistics of a sample buffer.
package time

import "math"

// Level summarizes the amplitude of a buffer.
type Level struct {
	Length      int
	Peak        float64 // max |x|
	PeakDB      float64
	RMS         float64
	RMSDB       float64
	CrestFactor float64 // peak / RMS (linear)
}

// Measure computes all Level fields in one pass.
func Measure(signal []float64) Level {
	if len(signal) == 0 {
		return Level{PeakDB: math.Inf(-1), RMSDB: math.Inf(-1)}
	}

	var peak, sumSq float64
	for _, x := range signal {
		a := math.Abs(x)
		if a > peak {
			peak = a
		}

		sumSq += x * x
	}

	rms := math.Sqrt(sumSq / float64(len(signal)))

	var crest float64
	if rms > 0 {
		crest = peak / rms
	}

	return Level{
		Length:      len(signal),
		Peak:        peak,
		PeakDB:      ampTodB(peak),
		RMS:         rms,
		RMSDB:       ampTodB(rms),
		CrestFactor: crest,
	}
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		if a := math.Abs(x); a > peak {
			peak = a
		}
	}

	return peak
}

// CrestFactor returns peak / RMS, or 0 for a silent signal.
func CrestFactor(signal []float64) float64 {
	r := RMS(signal)
	if r == 0 {
		return 0
	}

	return Peak(signal) / r
}

// GainDB returns the RMS level change from before to after in dB.
// It is -Inf when after is silent and +Inf when only before is silent.
func GainDB(before, after []float64) float64 {
	return ampTodB(RMS(after)) - ampTodB(RMS(before))
}

func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}
