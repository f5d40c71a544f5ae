package window

import (
	"errors"
	"math"
	"testing"
)

func TestHann_Forms(t *testing.T) {
	t.Parallel()

	sym, err := Hann(5)
	if err != nil {
		t.Fatalf("Hann: %v", err)
	}

	if sym[0] != 0 || math.Abs(sym[4]) > 1e-15 || math.Abs(sym[2]-1) > 1e-15 {
		t.Fatalf("symmetric = %v", sym)
	}

	per, err := Hann(4, WithPeriodic())
	if err != nil {
		t.Fatalf("Hann: %v", err)
	}

	want := []float64{0, 0.5, 1, 0.5}
	for i := range want {
		if math.Abs(per[i]-want[i]) > 1e-15 {
			t.Fatalf("periodic[%d] = %v, want %v", i, per[i], want[i])
		}
	}
}

func TestHann_InvalidLength(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, -3} {
		if _, err := Hann(n); !errors.Is(err, ErrInvalidLength) {
			t.Fatalf("Hann(%d) err = %v, want ErrInvalidLength", n, err)
		}
	}

	if w, err := Hann(1); err != nil || len(w) != 1 || w[0] != 0 {
		t.Fatalf("Hann(1) = %v, %v", w, err)
	}
}
