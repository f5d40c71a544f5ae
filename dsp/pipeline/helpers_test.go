package pipeline

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/cwbudde/algo-voicefx/dsp/audio"
	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

const testRate = 22050

type copyShifter struct{}

func (copyShifter) Shift(in []float64, _ int, _ float64) ([]float64, error) {
	return append([]float64(nil), in...), nil
}

type errShifter struct{}

func (errShifter) Shift([]float64, int, float64) ([]float64, error) {
	return nil, errors.New("shifter unavailable")
}

type panicShifter struct{}

func (panicShifter) Shift([]float64, int, float64) ([]float64, error) {
	panic("boom")
}

type shortShifter struct{}

func (shortShifter) Shift(in []float64, _ int, _ float64) ([]float64, error) {
	return in[:len(in)-1], nil
}

// mutatingShifter scribbles over its input before failing.
type mutatingShifter struct{}

func (mutatingShifter) Shift(in []float64, _ int, _ float64) ([]float64, error) {
	for i := range in {
		in[i] = 7
	}

	return nil, errors.New("half done")
}

// decimatingStretcher keeps every round(rate)-th sample so the output length
// matches a real stretcher without the cost of one.
type decimatingStretcher struct{}

func (decimatingStretcher) Stretch(in []float64, rate float64) ([]float64, error) {
	n := int(math.Round(float64(len(in)) / rate))
	out := make([]float64, n)

	for i := range out {
		j := int(float64(i) * rate)
		if j < len(in) {
			out[i] = in[j]
		}
	}

	return out, nil
}

func newTestPipeline(t *testing.T, opts ...Option) (*Pipeline, *logtest.Hook) {
	t.Helper()

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	base := []Option{
		WithLogger(logger),
		WithPitchShifter(copyShifter{}),
		WithTimeStretcher(decimatingStretcher{}),
	}

	p, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return p, hook
}

func toneBuffer(t *testing.T, seconds float64) audio.Buffer {
	t.Helper()

	n := int(seconds * testRate)

	buf, err := audio.New(testutil.DeterministicSine(440, testRate, 0.5, n), testRate)
	if err != nil {
		t.Fatalf("audio.New: %v", err)
	}

	return buf
}

// applyRaw runs stages without normalization.
func applyRaw(t *testing.T, p *Pipeline, stages []Stage, in []float64) ([]float64, error) {
	t.Helper()

	r := &run{
		p:          p,
		ctx:        context.Background(),
		log:        p.logger,
		sampleRate: testRate,
	}

	return r.applyStages(stages, in)
}

func catalogWith(t *testing.T, presets ...Preset) *Catalog {
	t.Helper()

	c := NewCatalog()
	for _, p := range presets {
		if err := c.Register(p); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	return c
}
