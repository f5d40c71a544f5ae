package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// Saturator is a normalized soft clipper:
//
//	y = tanh(drive*x) / tanh(drive)
//
// Small signals pass with near-unity gain; x = ±1 maps to exactly ±1.
type Saturator struct {
	drive float64
	norm  float64
}

// NewSaturator creates a saturator. drive must be > 0 and finite.
func NewSaturator(drive float64) (*Saturator, error) {
	if !core.IsFinitePositive(drive) {
		return nil, fmt.Errorf("%w: saturator drive must be > 0 and finite: %f", ErrInvalidStageParameter, drive)
	}

	return &Saturator{drive: drive, norm: 1 / math.Tanh(drive)}, nil
}

// Drive returns the configured drive.
func (s *Saturator) Drive() float64 { return s.drive }

// ProcessSample shapes one sample.
func (s *Saturator) ProcessSample(x float64) float64 {
	return math.Tanh(s.drive*x) * s.norm
}

// ProcessInPlace shapes buf in place.
func (s *Saturator) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

// Process returns a shaped copy of in.
func (s *Saturator) Process(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	s.ProcessInPlace(out)

	return out
}
