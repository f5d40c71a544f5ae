package pipeline

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/effects"
	"github.com/cwbudde/algo-voicefx/dsp/effects/dynamics"
	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
)

// processor is the common shape of the internal stage implementations.
type processor interface {
	Process(in []float64) []float64
}

type processorFunc func(in []float64) []float64

func (f processorFunc) Process(in []float64) []float64 { return f(in) }

// applyInternal runs one internal stage. in is never modified.
func (r *run) applyInternal(st Stage, in []float64) ([]float64, error) {
	switch st.Kind {
	case KindParallel:
		return r.applyParallel(st.Branches, in)
	case KindGain:
		if !core.IsFinite(st.Gain) {
			return nil, fmt.Errorf("%w: gain must be finite: %f", effects.ErrInvalidStageParameter, st.Gain)
		}

		out := make([]float64, len(in))
		vecmath.ScaleBlock(out, in, st.Gain)

		return out, nil
	}

	proc, err := r.newProcessor(st)
	if err != nil {
		return nil, err
	}

	return proc.Process(in), nil
}

func (r *run) newProcessor(st Stage) (processor, error) {
	rate := float64(r.sampleRate)

	switch st.Kind {
	case KindFilter:
		c, err := design.NewCascade(st.Filter, rate)
		if err != nil {
			return nil, err
		}

		return processorFunc(c.Apply), nil
	case KindSaturate:
		return effects.NewSaturator(st.Drive)
	case KindRingMod:
		return effects.NewRingModulator(rate,
			effects.WithRingModCarrierHz(st.CarrierHz),
			effects.WithRingModMix(st.Mix))
	case KindSampleHold:
		return effects.NewSampleHold(st.HoldFactor)
	case KindQuantize:
		return effects.NewQuantizer(st.Bits)
	case KindDelay:
		return effects.NewDelay(rate,
			effects.WithDelayTime(st.DelayMs),
			effects.WithDelayMix(st.Mix))
	case KindCompander:
		return dynamics.NewCompander(st.Threshold, st.Ratio)
	default:
		return nil, fmt.Errorf("%w: unsupported stage kind %v", effects.ErrInvalidStageParameter, st.Kind)
	}
}

// applyParallel runs every branch on its own copy of in and returns the
// weighted sum. Branch outputs are fitted to len(in).
func (r *run) applyParallel(branches []Branch, in []float64) ([]float64, error) {
	if len(branches) == 0 {
		return nil, fmt.Errorf("%w: parallel stage needs at least one branch", effects.ErrInvalidStageParameter)
	}

	out := make([]float64, len(in))

	scratch := r.p.scratch.Get(len(in))
	defer r.p.scratch.Put(scratch)

	for i, b := range branches {
		if !core.IsFinite(b.Weight) {
			return nil, fmt.Errorf("%w: branch %d weight must be finite: %f",
				effects.ErrInvalidStageParameter, i, b.Weight)
		}

		path := in
		if len(b.Stages) > 0 {
			var err error

			path, err = r.applyStages(b.Stages, in)
			if err != nil {
				return nil, fmt.Errorf("branch %d: %w", i, err)
			}

			path = fitLength(path, len(in))
		}

		vecmath.ScaleBlock(scratch.Samples(), path, b.Weight)
		vecmath.AddBlockInPlace(out, scratch.Samples())
	}

	return out, nil
}

func fitLength(x []float64, n int) []float64 {
	if len(x) == n {
		return x
	}

	out := make([]float64, n)
	copy(out, x)

	return out
}
