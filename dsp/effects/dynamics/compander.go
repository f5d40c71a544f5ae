package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/effects"
)

// Compander is a memoryless limiter. Samples at or below Threshold pass
// unchanged; the excess above Threshold is divided by Ratio:
//
//	|x| <= T: y = x
//	|x| >  T: y = sign(x) * (T + (|x| - T)/R)
//
// There is no envelope follower, so the law applies to every sample
// independently.
type Compander struct {
	threshold float64
	ratio     float64
}

// NewCompander creates a compander with threshold in (0, 1] and ratio >= 1.
func NewCompander(threshold, ratio float64) (*Compander, error) {
	if !core.IsFinitePositive(threshold) || threshold > 1 {
		return nil, fmt.Errorf("%w: compander threshold must be in (0, 1]: %f",
			effects.ErrInvalidStageParameter, threshold)
	}

	if ratio < 1 || !core.IsFinite(ratio) {
		return nil, fmt.Errorf("%w: compander ratio must be >= 1 and finite: %f",
			effects.ErrInvalidStageParameter, ratio)
	}

	return &Compander{threshold: threshold, ratio: ratio}, nil
}

// Threshold returns the linear threshold.
func (c *Compander) Threshold() float64 { return c.threshold }

// Ratio returns the compression ratio.
func (c *Compander) Ratio() float64 { return c.ratio }

// ProcessSample applies the static curve to one sample.
func (c *Compander) ProcessSample(x float64) float64 {
	mag := math.Abs(x)
	if mag <= c.threshold {
		return x
	}

	return math.Copysign(c.threshold+(mag-c.threshold)/c.ratio, x)
}

// ProcessInPlace applies the static curve to buf in place.
func (c *Compander) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = c.ProcessSample(x)
	}
}

// Process returns a companded copy of in.
func (c *Compander) Process(in []float64) []float64 {
	out := make([]float64, len(in))
	copy(out, in)
	c.ProcessInPlace(out)

	return out
}
