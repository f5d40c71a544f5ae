package time

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestRMS(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"dc", []float64{1, 1, 1, 1}, 1},
		{"single", []float64{4}, 4},
		{"square", []float64{1, -1, 1, -1}, 1},
		{"sine", testutil.DeterministicSine(100, 8000, 1, 8000), 1 / math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMS(tt.signal); !almostEqual(got, tt.want, 1e-10) {
				t.Errorf("RMS(%s): got %g, want %g", tt.name, got, tt.want)
			}
		})
	}
}

func TestPeak(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"positive", []float64{1, 2, 3}, 3},
		{"negative", []float64{-5, -1, -3}, 5},
		{"mixed", []float64{2, -7, 3}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Peak(tt.signal); got != tt.want {
				t.Errorf("Peak(%s): got %g, want %g", tt.name, got, tt.want)
			}
		})
	}
}

func TestCrestFactor(t *testing.T) {
	if got := CrestFactor(make([]float64, 10)); got != 0 {
		t.Fatalf("silent: got %v", got)
	}

	sine := testutil.DeterministicSine(100, 8000, 0.5, 8000)
	if got := CrestFactor(sine); !almostEqual(got, math.Sqrt2, 1e-6) {
		t.Fatalf("sine: got %v, want sqrt(2)", got)
	}
}

func TestMeasureMatchesIndividual(t *testing.T) {
	sig := testutil.DeterministicNoise(3, 0.7, 1000)
	l := Measure(sig)

	if l.Length != len(sig) || l.Peak != Peak(sig) || !almostEqual(l.RMS, RMS(sig), 1e-15) {
		t.Fatalf("Measure mismatch: %+v", l)
	}

	if !almostEqual(l.PeakDB, 20*math.Log10(l.Peak), 1e-12) {
		t.Fatalf("PeakDB = %v", l.PeakDB)
	}

	if !almostEqual(l.CrestFactor, CrestFactor(sig), 1e-12) {
		t.Fatalf("CrestFactor = %v", l.CrestFactor)
	}
}

func TestMeasureEmpty(t *testing.T) {
	l := Measure(nil)
	if l.Length != 0 || !math.IsInf(l.PeakDB, -1) || !math.IsInf(l.RMSDB, -1) {
		t.Fatalf("unexpected %+v", l)
	}
}

func TestGainDB(t *testing.T) {
	a := []float64{1, -1, 1, -1}
	b := []float64{0.1, -0.1, 0.1, -0.1}

	if got := GainDB(a, b); !almostEqual(got, -20, 1e-12) {
		t.Fatalf("got %v, want -20", got)
	}
}
