package effects

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

func TestNewRingModulator_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rate float64
		opts []RingModulatorOption
	}{
		{"zero rate", 0, nil},
		{"zero carrier", 48000, []RingModulatorOption{WithRingModCarrierHz(0)}},
		{"nan carrier", 48000, []RingModulatorOption{WithRingModCarrierHz(math.NaN())}},
		{"negative mix", 48000, []RingModulatorOption{WithRingModMix(-0.1)}},
		{"mix above one", 48000, []RingModulatorOption{WithRingModMix(1.1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewRingModulator(tt.rate, tt.opts...); !errors.Is(err, ErrInvalidStageParameter) {
				t.Fatalf("err = %v, want ErrInvalidStageParameter", err)
			}
		})
	}
}

func TestRingModulator_Formula(t *testing.T) {
	t.Parallel()

	const (
		sr  = 22050.0
		fc  = 80.0
		mix = 0.1
	)

	r, err := NewRingModulator(sr, WithRingModCarrierHz(fc), WithRingModMix(mix))
	if err != nil {
		t.Fatalf("NewRingModulator: %v", err)
	}

	in := testutil.DeterministicNoise(2, 0.8, 512)
	out := r.Process(in)

	for n, x := range in {
		want := (1-mix)*x + mix*x*math.Sin(2*math.Pi*fc*float64(n)/sr)
		if math.Abs(out[n]-want) > 1e-12 {
			t.Fatalf("n=%d: got %v, want %v", n, out[n], want)
		}
	}
}

func TestRingModulator_ZeroMixIsIdentity(t *testing.T) {
	t.Parallel()

	r, _ := NewRingModulator(48000, WithRingModMix(0))
	in := testutil.DeterministicNoise(4, 1, 300)
	testutil.RequireSliceNearlyEqual(t, r.Process(in), in, 0)
}

func TestRingModulator_NoStateAcrossCalls(t *testing.T) {
	t.Parallel()

	r, _ := NewRingModulator(48000, WithRingModCarrierHz(70))
	in := testutil.DeterministicNoise(8, 1, 100)
	testutil.RequireSliceNearlyEqual(t, r.Process(in), r.Process(in), 0)
}
