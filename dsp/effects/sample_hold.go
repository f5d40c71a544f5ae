package effects

import "fmt"

// SampleHold keeps every Factor-th sample and repeats it for the following
// Factor-1 samples. Output length equals input length; a partial final
// block repeats its first sample.
type SampleHold struct {
	factor int
}

// NewSampleHold creates a sample-and-hold stage. factor must be >= 1;
// factor 1 is the identity.
func NewSampleHold(factor int) (*SampleHold, error) {
	if factor < 1 {
		return nil, fmt.Errorf("%w: sample-and-hold factor must be >= 1: %d", ErrInvalidStageParameter, factor)
	}

	return &SampleHold{factor: factor}, nil
}

// Factor returns the hold length in samples.
func (s *SampleHold) Factor() int { return s.factor }

// ProcessInPlace decimates buf in place.
func (s *SampleHold) ProcessInPlace(buf []float64) {
	if s.factor == 1 {
		return
	}

	var held float64
	for i := range buf {
		if i%s.factor == 0 {
			held = buf[i]
		}

		buf[i] = held
	}
}

// Process returns a decimated copy of in.
func (s *SampleHold) Process(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	s.ProcessInPlace(out)

	return out
}
