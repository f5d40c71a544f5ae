package interp

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	t.Parallel()

	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestLinear2(t *testing.T) {
	t.Parallel()

	if got := Linear2(0.25, 2, 4); got != 2.5 {
		t.Fatalf("got %v want 2.5", got)
	}
}

func TestResample(t *testing.T) {
	t.Parallel()

	ramp := testutil.Ramp(0, 99, 100)

	// Unit step reproduces the input exactly.
	testutil.RequireSliceNearlyEqual(t, Resample(ramp, 1, 100), ramp, 0)

	// Cubic Hermite reproduces a linear ramp away from the edges.
	half := Resample(ramp, 0.5, 150)
	for i := 2; i < 150; i++ {
		if want := float64(i) * 0.5; math.Abs(half[i]-want) > 1e-12 {
			t.Fatalf("index %d: got %v, want %v", i, half[i], want)
		}
	}

	// Reading past the end holds the last sample.
	if got := Resample(ramp, 2, 60); got[59] != 99 {
		t.Fatalf("tail = %v, want 99", got[59])
	}

	if got := Resample(nil, 2, 3); len(got) != 3 {
		t.Fatalf("empty source: len %d", len(got))
	}
}
