package biquad

import (
	"math"
	"math/cmplx"
)

// Response computes the complex frequency response H(e^jw) of a biquad
// at the given frequency (Hz) and sample rate (Hz).
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	ejw := cmplx.Exp(complex(0, -w))
	ej2w := cmplx.Exp(complex(0, -2*w))

	num := complex(c.B0, 0) + complex(c.B1, 0)*ejw + complex(c.B2, 0)*ej2w
	den := complex(1, 0) + complex(c.A1, 0)*ejw + complex(c.A2, 0)*ej2w

	return num / den
}

// MagnitudeDB returns the section gain in dB at freqHz.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// IsStable reports whether both poles lie strictly inside the unit circle.
func (c Coefficients) IsStable() bool {
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

// Response computes the cascade response as the product of section responses.
func (c *Cascade) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for i := range c.coeffs {
		h *= c.coeffs[i].Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns the cascaded magnitude response in dB.
func (c *Cascade) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}
