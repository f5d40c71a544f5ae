package effects

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

func TestNewQuantizer_Validation(t *testing.T) {
	t.Parallel()

	for _, bits := range []int{0, -1, 33} {
		if _, err := NewQuantizer(bits); !errors.Is(err, ErrInvalidStageParameter) {
			t.Fatalf("bits %d: err = %v", bits, err)
		}
	}
}

func TestQuantizer_Idempotent(t *testing.T) {
	t.Parallel()

	xs := append(testutil.Ramp(-1, 1, 1001), testutil.DeterministicNoise(21, 1, 1000)...)

	for bits := 1; bits <= maxQuantizerBits; bits++ {
		q, err := NewQuantizer(bits)
		if err != nil {
			t.Fatalf("NewQuantizer(%d): %v", bits, err)
		}

		once := q.Process(xs)
		twice := q.Process(once)
		testutil.RequireSliceNearlyEqual(t, twice, once, 0)
	}
}

func TestQuantizer_Levels(t *testing.T) {
	t.Parallel()

	q, _ := NewQuantizer(2)
	if q.Levels() != 3 {
		t.Fatalf("levels = %v, want 3", q.Levels())
	}

	// Grid for 2 bits: -1, -1/3, 1/3, 1.
	tests := []struct{ in, want float64 }{
		{-1, -1},
		{1, 1},
		{-0.5, -1.0 / 3},
		{0.2, 1.0 / 3},
		{0.9, 1},
	}

	for _, tt := range tests {
		if got := q.ProcessSample(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("q(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestQuantizer_OneBitIsSign(t *testing.T) {
	t.Parallel()

	q, _ := NewQuantizer(1)
	for _, x := range []float64{-0.9, -0.1, 0.1, 0.7} {
		want := 1.0
		if x < 0 {
			want = -1
		}

		if got := q.ProcessSample(x); got != want {
			t.Fatalf("q(%v) = %v, want %v", x, got, want)
		}
	}
}
