package effects

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

func TestNewSaturator_Validation(t *testing.T) {
	t.Parallel()

	for _, drive := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewSaturator(drive); !errors.Is(err, ErrInvalidStageParameter) {
			t.Fatalf("drive %v: err = %v, want ErrInvalidStageParameter", drive, err)
		}
	}
}

func TestSaturator_UnitEndpointsAndBound(t *testing.T) {
	t.Parallel()

	for _, drive := range []float64{0.1, 1, 1.8, 2.8, 10} {
		s, err := NewSaturator(drive)
		if err != nil {
			t.Fatalf("NewSaturator(%v): %v", drive, err)
		}

		if y := s.ProcessSample(1); math.Abs(y-1) > 1e-12 {
			t.Fatalf("drive %v: f(1) = %v, want 1", drive, y)
		}

		if y := s.ProcessSample(-1); math.Abs(y+1) > 1e-12 {
			t.Fatalf("drive %v: f(-1) = %v, want -1", drive, y)
		}

		for _, x := range testutil.Ramp(-1, 1, 201) {
			if y := s.ProcessSample(x); math.Abs(y) > 1+1e-12 {
				t.Fatalf("drive %v: |f(%v)| = %v > 1", drive, x, y)
			}
		}
	}
}

func TestSaturator_OddAndMonotonic(t *testing.T) {
	t.Parallel()

	s, _ := NewSaturator(2.2)
	prev := math.Inf(-1)

	for _, x := range testutil.Ramp(-1, 1, 101) {
		y := s.ProcessSample(x)
		if y < prev {
			t.Fatalf("not monotonic at %v", x)
		}

		prev = y

		if math.Abs(y+s.ProcessSample(-x)) > 1e-15 {
			t.Fatalf("not odd at %v", x)
		}
	}
}

func TestSaturator_ProcessDoesNotMutate(t *testing.T) {
	t.Parallel()

	s, _ := NewSaturator(1.6)
	in := testutil.DeterministicSine(220, 22050, 0.9, 128)
	orig := append([]float64(nil), in...)

	out := s.Process(in)
	testutil.RequireSliceNearlyEqual(t, in, orig, 0)

	for i := range in {
		if out[i] != s.ProcessSample(in[i]) {
			t.Fatalf("index %d mismatch", i)
		}
	}
}
