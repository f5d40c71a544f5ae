package biquad

import (
	"testing"

	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

func twoSectionCoeffs() []Coefficients {
	return []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

func TestNewCascade(t *testing.T) {
	c := NewCascade(twoSectionCoeffs()...)
	if c.NumSections() != 2 {
		t.Fatalf("NumSections: got %d, want 2", c.NumSections())
	}
	if c.Order() != 4 {
		t.Fatalf("Order: got %d, want 4", c.Order())
	}
}

func TestCascade_ApplyMatchesManualCascade(t *testing.T) {
	coeffs := twoSectionCoeffs()
	input := testutil.DeterministicNoise(11, 1, 300)

	s1 := NewSection(coeffs[0])
	s2 := NewSection(coeffs[1])
	want := make([]float64, len(input))
	for i, x := range input {
		want[i] = s2.ProcessSample(s1.ProcessSample(x))
	}

	got := NewCascade(coeffs...).Apply(input)
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestCascade_ApplyDoesNotMutateInput(t *testing.T) {
	input := testutil.DeterministicSine(440, 22050, 0.5, 64)
	orig := make([]float64, len(input))
	copy(orig, input)

	NewCascade(twoSectionCoeffs()...).Apply(input)
	testutil.RequireSliceNearlyEqual(t, input, orig, 0)
}

func TestCascade_NoStateAcrossCalls(t *testing.T) {
	c := NewCascade(twoSectionCoeffs()...)
	input := testutil.DeterministicNoise(5, 1, 128)

	first := c.Apply(input)
	second := c.Apply(input)
	testutil.RequireSliceNearlyEqual(t, second, first, 0)
}

func TestCascade_EmptyInput(t *testing.T) {
	out := NewCascade(twoSectionCoeffs()...).Apply(nil)
	if len(out) != 0 {
		t.Fatalf("len = %d, want 0", len(out))
	}
}

func TestCascade_NoSectionsIsIdentity(t *testing.T) {
	input := testutil.DeterministicNoise(9, 1, 32)
	testutil.RequireSliceNearlyEqual(t, NewCascade().Apply(input), input, 0)
}

func TestCascade_SectionsIsCopy(t *testing.T) {
	c := NewCascade(twoSectionCoeffs()...)
	secs := c.Sections()
	secs[0].B0 = 99
	if c.Sections()[0].B0 == 99 {
		t.Fatal("Sections exposed internal storage")
	}
}
