package effects

import (
	"fmt"
	"math"
)

// maxQuantizerBits bounds the grid so that level indices stay far inside
// float64's 53-bit mantissa, where requantizing a grid value is exact.
const maxQuantizerBits = 32

// Quantizer snaps [-1, 1] onto 2^bits - 1 evenly spaced levels:
//
//	y = round(((x+1)/2) * levels) / levels * 2 - 1
//
// Ties round to even. Quantizing an already quantized signal is a no-op.
// Inputs outside [-1, 1] are quantized on the same grid without clipping.
type Quantizer struct {
	bits   int
	levels float64
}

// NewQuantizer creates a quantizer for bits in [1, 32]. Deeper grids are
// rejected since float64 samples cannot hold them exactly.
func NewQuantizer(bits int) (*Quantizer, error) {
	if bits < 1 || bits > maxQuantizerBits {
		return nil, fmt.Errorf("%w: quantizer bits must be in [1, %d]: %d",
			ErrInvalidStageParameter, maxQuantizerBits, bits)
	}

	return &Quantizer{bits: bits, levels: math.Exp2(float64(bits)) - 1}, nil
}

// Bits returns the bit depth.
func (q *Quantizer) Bits() int { return q.bits }

// Levels returns the number of quantization steps, 2^bits - 1.
func (q *Quantizer) Levels() float64 { return q.levels }

// ProcessSample quantizes one sample.
func (q *Quantizer) ProcessSample(x float64) float64 {
	return math.RoundToEven((x+1)/2*q.levels)/q.levels*2 - 1
}

// ProcessInPlace quantizes buf in place.
func (q *Quantizer) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = q.ProcessSample(x)
	}
}

// Process returns a quantized copy of in.
func (q *Quantizer) Process(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	q.ProcessInPlace(out)

	return out
}
