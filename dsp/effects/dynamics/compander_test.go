package dynamics

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/effects"
	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

func TestNewCompander_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		threshold, ratio float64
	}{
		{"zero threshold", 0, 2},
		{"negative threshold", -0.5, 2},
		{"threshold above one", 1.01, 2},
		{"nan threshold", math.NaN(), 2},
		{"ratio below one", 0.5, 0.99},
		{"inf ratio", 0.5, math.Inf(1)},
		{"nan ratio", 0.5, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewCompander(tt.threshold, tt.ratio); !errors.Is(err, effects.ErrInvalidStageParameter) {
				t.Fatalf("err = %v, want ErrInvalidStageParameter", err)
			}
		})
	}
}

func TestCompander_ThresholdPassThrough(t *testing.T) {
	t.Parallel()

	c, err := NewCompander(0.6, 1.6)
	if err != nil {
		t.Fatalf("NewCompander: %v", err)
	}

	for _, x := range testutil.Ramp(-0.6, 0.6, 121) {
		if y := c.ProcessSample(x); y != x {
			t.Fatalf("f(%v) = %v, want unchanged", x, y)
		}
	}
}

func TestCompander_AboveThreshold(t *testing.T) {
	t.Parallel()

	tests := []struct{ threshold, ratio float64 }{
		{0.6, 1.6},
		{0.5, 2.0},
		{0.45, 2.8},
		{0.68, 1.4},
		{1, 4},
	}

	xs := testutil.DeterministicNoise(5, 2, 500)

	for _, tt := range tests {
		c, err := NewCompander(tt.threshold, tt.ratio)
		if err != nil {
			t.Fatalf("NewCompander: %v", err)
		}

		for _, x := range xs {
			y := c.ProcessSample(x)
			if math.Abs(x) <= tt.threshold {
				if y != x {
					t.Fatalf("below threshold changed: %v -> %v", x, y)
				}

				continue
			}

			want := tt.threshold + (math.Abs(x)-tt.threshold)/tt.ratio
			if math.Abs(math.Abs(y)-want) > 1e-15 {
				t.Fatalf("|f(%v)| = %v, want %v", x, math.Abs(y), want)
			}

			if math.Signbit(y) != math.Signbit(x) {
				t.Fatalf("sign flipped: %v -> %v", x, y)
			}
		}
	}
}

func TestCompander_RatioOneIsIdentity(t *testing.T) {
	t.Parallel()

	c, _ := NewCompander(0.3, 1)
	in := testutil.DeterministicNoise(9, 1.5, 256)
	testutil.RequireSliceNearlyEqual(t, c.Process(in), in, 1e-15)
}
