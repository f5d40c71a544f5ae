package design

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
)

// Design validates spec and returns its second-order sections, to be
// applied in order.
func Design(spec Spec, sampleRate float64) ([]biquad.Coefficients, error) {
	if err := spec.Validate(sampleRate); err != nil {
		return nil, err
	}

	switch spec.Kind {
	case HighPass:
		if spec.usesCascade() {
			return ButterworthHP(spec.Freq, spec.Order, sampleRate), nil
		}

		return []biquad.Coefficients{Highpass(spec.Freq, spec.Q, sampleRate)}, nil
	case LowPass:
		if spec.usesCascade() {
			return ButterworthLP(spec.Freq, spec.Order, sampleRate), nil
		}

		return []biquad.Coefficients{Lowpass(spec.Freq, spec.Q, sampleRate)}, nil
	case Peak:
		return []biquad.Coefficients{PeakEQ(spec.Freq, spec.GainDB, spec.Q, sampleRate)}, nil
	case LowShelf:
		return []biquad.Coefficients{LowShelfQ(spec.Freq, spec.GainDB, spec.Q, sampleRate)}, nil
	case HighShelf:
		return []biquad.Coefficients{HighShelfQ(spec.Freq, spec.GainDB, spec.Q, sampleRate)}, nil
	case LowShelfSlope:
		return []biquad.Coefficients{LowShelfS(spec.Freq, spec.GainDB, spec.Slope, sampleRate)}, nil
	case HighShelfSlope:
		return []biquad.Coefficients{HighShelfS(spec.Freq, spec.GainDB, spec.Slope, sampleRate)}, nil
	case BandPass:
		order := spec.Order
		if order == 0 {
			order = 2
		}

		sections := ButterworthHP(spec.Freq, order, sampleRate)

		return append(sections, ButterworthLP(spec.FreqHigh, order, sampleRate)...), nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %v", ErrInvalidFilterParameter, spec.Kind)
	}
}

// NewCascade designs spec and wraps the sections in a biquad.Cascade.
func NewCascade(spec Spec, sampleRate float64) (*biquad.Cascade, error) {
	sections, err := Design(spec, sampleRate)
	if err != nil {
		return nil, err
	}

	return biquad.NewCascade(sections...), nil
}
