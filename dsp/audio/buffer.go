// Package audio defines the mono sample buffer passed between the voice
// effect stages.
package audio

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidBuffer is returned for a buffer with a non-positive sample rate.
var ErrInvalidBuffer = errors.New("audio: invalid buffer")

// Buffer is a mono floating-point signal. Samples are nominally in
// [-1, 1]; intermediate stages may exceed that range.
type Buffer struct {
	Samples    []float64
	SampleRate int
}

// New returns a Buffer over samples, which is not copied.
func New(samples []float64, sampleRate int) (Buffer, error) {
	b := Buffer{Samples: samples, SampleRate: sampleRate}
	if err := b.Validate(); err != nil {
		return Buffer{}, err
	}

	return b, nil
}

// Validate reports whether the buffer has a usable sample rate.
func (b Buffer) Validate() error {
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidBuffer, b.SampleRate)
	}

	return nil
}

// Clone returns a deep copy.
func (b Buffer) Clone() Buffer {
	samples := make([]float64, len(b.Samples))
	copy(samples, b.Samples)

	return Buffer{Samples: samples, SampleRate: b.SampleRate}
}

// WithSamples returns a Buffer at the same rate holding samples.
func (b Buffer) WithSamples(samples []float64) Buffer {
	return Buffer{Samples: samples, SampleRate: b.SampleRate}
}

// Len returns the number of samples.
func (b Buffer) Len() int { return len(b.Samples) }

// Duration returns the playback length.
func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(len(b.Samples)) / float64(b.SampleRate) * float64(time.Second))
}
