package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

const (
	defaultDelayMs  = 6.0
	defaultDelayMix = 0.15
)

// DelayOption mutates delay construction parameters.
type DelayOption func(*delayConfig) error

type delayConfig struct {
	timeMs float64
	mix    float64
}

func defaultDelayConfig() delayConfig {
	return delayConfig{
		timeMs: defaultDelayMs,
		mix:    defaultDelayMix,
	}
}

// WithDelayTime sets the delay time in milliseconds (>= 0).
func WithDelayTime(ms float64) DelayOption {
	return func(cfg *delayConfig) error {
		if ms < 0 || !core.IsFinite(ms) {
			return fmt.Errorf("%w: delay time must be >= 0 and finite: %f", ErrInvalidStageParameter, ms)
		}

		cfg.timeMs = ms

		return nil
	}
}

// WithDelayMix sets the delayed-copy weight in [0, 1].
func WithDelayMix(mix float64) DelayOption {
	return func(cfg *delayConfig) error {
		if err := validateMix("delay", mix); err != nil {
			return err
		}

		cfg.mix = mix

		return nil
	}
}

// Delay mixes the input with a single delayed copy of itself:
//
//	d = round(sampleRate * ms / 1000)
//	y[n] = (1 - mix)*x[n] + mix*x[n-d]
//
// with x[n-d] = 0 for n < d. There is no feedback. A delay that rounds to
// zero samples leaves the signal unchanged.
type Delay struct {
	sampleRate float64
	timeMs     float64
	mix        float64
	samples    int
}

// NewDelay creates a delay with the given sample rate and optional
// configuration overrides.
func NewDelay(sampleRate float64, opts ...DelayOption) (*Delay, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("%w: delay sample rate must be > 0 and finite: %f",
			ErrInvalidStageParameter, sampleRate)
	}

	cfg := defaultDelayConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Delay{
		sampleRate: sampleRate,
		timeMs:     cfg.timeMs,
		mix:        cfg.mix,
		samples:    int(math.Round(sampleRate * cfg.timeMs / 1000)),
	}, nil
}

// Samples returns the delay length in samples.
func (d *Delay) Samples() int { return d.samples }

// Mix returns the delayed-copy weight.
func (d *Delay) Mix() float64 { return d.mix }

// ProcessInPlace applies the delay to buf in place.
func (d *Delay) ProcessInPlace(buf []float64) {
	copy(buf, d.Process(buf))
}

// Process returns the delayed mix of in.
func (d *Delay) Process(in []float64) []float64 {
	out := make([]float64, len(in))
	if d.samples == 0 {
		copy(out, in)
		return out
	}

	vecmath.ScaleBlock(out, in, 1-d.mix)

	if d.samples >= len(in) {
		return out
	}

	n := len(in) - d.samples
	wet := make([]float64, n)
	vecmath.ScaleBlock(wet, in[:n], d.mix)
	vecmath.AddBlockInPlace(out[d.samples:], wet)

	return out
}
