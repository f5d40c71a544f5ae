package vocoder

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/interp"
)

const maxShiftSemitones = 48

// Shifter changes the pitch of a buffer without changing its length.
type Shifter struct {
	stretcher *Stretcher
}

// NewShifter creates a pitch shifter. Options configure the underlying
// Stretcher.
func NewShifter(opts ...Option) (*Shifter, error) {
	st, err := NewStretcher(opts...)
	if err != nil {
		return nil, err
	}

	return &Shifter{stretcher: st}, nil
}

// Shift transposes in by semitones (negative is lower). The output has
// the same length as in. sampleRate is only validated; the algorithm is
// rate independent.
func (s *Shifter) Shift(in []float64, sampleRate int, semitones float64) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidArgument, sampleRate)
	}

	if !core.IsFinite(semitones) || math.Abs(semitones) > maxShiftSemitones {
		return nil, fmt.Errorf("%w: semitones must be in [-%d, %d]: %f",
			ErrInvalidArgument, maxShiftSemitones, maxShiftSemitones, semitones)
	}

	if len(in) == 0 || semitones == 0 {
		out := make([]float64, len(in))
		copy(out, in)

		return out, nil
	}

	ratio := core.SemitonesToRatio(semitones)

	stretched, err := s.stretcher.Stretch(in, 1/ratio)
	if err != nil {
		return nil, err
	}

	return interp.Resample(stretched, ratio, len(in)), nil
}
