package design

import (
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
)

// The functions below return the zero Coefficients for parameters outside
// their domain; use Design for validated results.

// Lowpass designs a resonant RBJ low-pass at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || q <= 0 {
		return biquad.Coefficients{}
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b0 := (1 - cw) / 2
	b1 := 1 - cw
	b2 := (1 - cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// Highpass designs a resonant RBJ high-pass at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || q <= 0 {
		return biquad.Coefficients{}
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b0 := (1 + cw) / 2
	b1 := -(1 + cw)
	b2 := (1 + cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// PeakEQ designs a peaking bell with gain in dB.
func PeakEQ(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || q <= 0 {
		return biquad.Coefficients{}
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)
	a := math.Pow(10, gainDB/40)

	b0 := 1 + alpha*a
	b1 := -2 * cw
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cw
	a2 := 1 - alpha/a

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// LowShelfQ designs a low shelf with gain in dB, alpha = sin(w0)/(2q).
func LowShelfQ(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || q <= 0 {
		return biquad.Coefficients{}
	}

	return lowShelf(w0, math.Pow(10, gainDB/40), math.Sin(w0)/(2*q))
}

// HighShelfQ designs a high shelf with gain in dB, alpha = sin(w0)/(2q).
func HighShelfQ(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || q <= 0 {
		return biquad.Coefficients{}
	}

	return highShelf(w0, math.Pow(10, gainDB/40), math.Sin(w0)/(2*q))
}

// LowShelfS designs a low shelf from the cookbook shelf slope s.
// s = 1 is the steepest slope without overshoot.
func LowShelfS(freq, gainDB, s, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || s <= 0 {
		return biquad.Coefficients{}
	}

	a := math.Pow(10, gainDB/40)

	return lowShelf(w0, a, slopeAlpha(w0, a, s))
}

// HighShelfS designs a high shelf from the cookbook shelf slope s.
func HighShelfS(freq, gainDB, s, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || s <= 0 {
		return biquad.Coefficients{}
	}

	a := math.Pow(10, gainDB/40)

	return highShelf(w0, a, slopeAlpha(w0, a, s))
}

// slopeAlpha is sin(w0)/2 * sqrt((A + 1/A)(1/S - 1) + 2). The radicand is
// clamped at zero for slopes steep enough to make it negative.
func slopeAlpha(w0, a, s float64) float64 {
	r := (a+1/a)*(1/s-1) + 2
	if r < 0 {
		r = 0
	}

	return math.Sin(w0) / 2 * math.Sqrt(r)
}

func lowShelf(w0, a, alpha float64) biquad.Coefficients {
	cw := math.Cos(w0)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) - (a-1)*cw + beta)
	b1 := 2 * a * ((a - 1) - (a+1)*cw)
	b2 := a * ((a + 1) - (a-1)*cw - beta)
	a0 := (a + 1) + (a-1)*cw + beta
	a1 := -2 * ((a - 1) + (a+1)*cw)
	a2 := (a + 1) + (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func highShelf(w0, a, alpha float64) biquad.Coefficients {
	cw := math.Cos(w0)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) + (a-1)*cw + beta)
	b1 := -2 * a * ((a - 1) + (a+1)*cw)
	b2 := a * ((a + 1) + (a-1)*cw - beta)
	a0 := (a + 1) - (a-1)*cw + beta
	a1 := 2 * ((a - 1) - (a+1)*cw)
	a2 := (a + 1) - (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	if freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
