// Package window generates the analysis windows used for STFT framing.
package window

import "math"

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Hann returns Hann window coefficients.
func Hann(size int, opts ...Option) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, size)
	for i := range out {
		x := samplePosition(i, size, cfg.periodic)
		out[i] = 0.5 - 0.5*math.Cos(2*math.Pi*x)
	}

	return out, nil
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
