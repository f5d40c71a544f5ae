package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

const (
	defaultRingModCarrierHz = 80.0
	defaultRingModMix       = 1.0
)

// RingModulatorOption mutates ring modulator construction parameters.
type RingModulatorOption func(*ringModConfig) error

type ringModConfig struct {
	carrierHz float64
	mix       float64
}

func defaultRingModConfig() ringModConfig {
	return ringModConfig{
		carrierHz: defaultRingModCarrierHz,
		mix:       defaultRingModMix,
	}
}

// WithRingModCarrierHz sets the carrier oscillator frequency in Hz.
func WithRingModCarrierHz(carrierHz float64) RingModulatorOption {
	return func(cfg *ringModConfig) error {
		if !core.IsFinitePositive(carrierHz) {
			return fmt.Errorf("%w: ring modulator carrier frequency must be > 0 and finite: %f",
				ErrInvalidStageParameter, carrierHz)
		}

		cfg.carrierHz = carrierHz

		return nil
	}
}

// WithRingModMix sets the dry/wet mix in [0, 1], where 0 is fully dry and 1 is fully wet.
func WithRingModMix(mix float64) RingModulatorOption {
	return func(cfg *ringModConfig) error {
		if err := validateMix("ring modulator", mix); err != nil {
			return err
		}

		cfg.mix = mix

		return nil
	}
}

// RingModulator multiplies the input by a sine carrier and blends the
// product with the dry signal:
//
//	wet = x[n] * sin(2π * carrierHz * n / sampleRate)
//	y[n] = (1 - mix)*x[n] + mix*wet
//
// The carrier phase starts at zero for every buffer.
type RingModulator struct {
	sampleRate float64
	carrierHz  float64
	mix        float64
}

// NewRingModulator creates a ring modulator with the given sample rate and
// optional configuration overrides.
func NewRingModulator(sampleRate float64, opts ...RingModulatorOption) (*RingModulator, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("%w: ring modulator sample rate must be > 0 and finite: %f",
			ErrInvalidStageParameter, sampleRate)
	}

	cfg := defaultRingModConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &RingModulator{
		sampleRate: sampleRate,
		carrierHz:  cfg.carrierHz,
		mix:        cfg.mix,
	}, nil
}

// CarrierHz returns the carrier frequency.
func (r *RingModulator) CarrierHz() float64 { return r.carrierHz }

// Mix returns the wet weight.
func (r *RingModulator) Mix() float64 { return r.mix }

// ProcessInPlace modulates buf in place.
func (r *RingModulator) ProcessInPlace(buf []float64) {
	if len(buf) == 0 {
		return
	}

	wet := make([]float64, len(buf))

	step := 2 * math.Pi * r.carrierHz / r.sampleRate
	for i := range wet {
		wet[i] = math.Sin(step * float64(i))
	}

	vecmath.MulBlockInPlace(wet, buf)
	vecmath.ScaleBlock(wet, wet, r.mix)
	vecmath.ScaleBlock(buf, buf, 1-r.mix)
	vecmath.AddBlockInPlace(buf, wet)
}

// Process returns a modulated copy of in.
func (r *RingModulator) Process(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	r.ProcessInPlace(out)

	return out
}

func validateMix(name string, mix float64) error {
	if mix < 0 || mix > 1 || math.IsNaN(mix) {
		return fmt.Errorf("%w: %s mix must be in [0, 1]: %f", ErrInvalidStageParameter, name, mix)
	}

	return nil
}
