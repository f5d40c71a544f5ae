package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// ErrInvalidFilterParameter is returned when a frequency lies outside
// (0, Nyquist) or when Q, slope or order is out of range.
var ErrInvalidFilterParameter = errors.New("design: invalid filter parameter")

// Kind selects the filter shape of a Spec.
type Kind int

const (
	// HighPass attenuates below Freq.
	HighPass Kind = iota
	// LowPass attenuates above Freq.
	LowPass
	// LowShelf applies GainDB below Freq; the shelf is shaped by Q.
	LowShelf
	// HighShelf applies GainDB above Freq; the shelf is shaped by Q.
	HighShelf
	// Peak is a bell of GainDB centered at Freq with bandwidth Q.
	Peak
	// LowShelfSlope is LowShelf parameterized by the cookbook shelf slope S.
	LowShelfSlope
	// HighShelfSlope is HighShelf parameterized by the cookbook shelf slope S.
	HighShelfSlope
	// BandPass keeps Freq..FreqHigh using a Butterworth high-pass and
	// low-pass of the given Order.
	BandPass
)

var kindNames = [...]string{
	HighPass:       "highpass",
	LowPass:        "lowpass",
	LowShelf:       "lowshelf",
	HighShelf:      "highshelf",
	Peak:           "peak",
	LowShelfSlope:  "lowshelf-slope",
	HighShelfSlope: "highshelf-slope",
	BandPass:       "bandpass",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// Spec describes one filter. Which fields are read depends on Kind.
type Spec struct {
	Kind Kind

	// Freq is the corner or center frequency in Hz. For BandPass it is the
	// lower edge.
	Freq float64
	// FreqHigh is the upper edge of a BandPass.
	FreqHigh float64
	// Q is the resonance of HighPass, LowPass, Peak and the Q-form shelves.
	Q float64
	// Slope is the shelf slope S of the slope-form shelves.
	Slope float64
	// GainDB is the shelf or peak gain. Zero yields an identity section.
	GainDB float64
	// Order selects a Butterworth cascade for HighPass, LowPass and
	// BandPass. Zero means a single second-order section.
	Order int
}

// HighPassSpec returns a single-section high-pass spec.
func HighPassSpec(freq, q float64) Spec {
	return Spec{Kind: HighPass, Freq: freq, Q: q}
}

// LowPassSpec returns a single-section low-pass spec.
func LowPassSpec(freq, q float64) Spec {
	return Spec{Kind: LowPass, Freq: freq, Q: q}
}

// ButterworthHighPassSpec returns a Butterworth high-pass of the given order.
func ButterworthHighPassSpec(freq float64, order int) Spec {
	return Spec{Kind: HighPass, Freq: freq, Q: defaultQ, Order: order}
}

// ButterworthLowPassSpec returns a Butterworth low-pass of the given order.
func ButterworthLowPassSpec(freq float64, order int) Spec {
	return Spec{Kind: LowPass, Freq: freq, Q: defaultQ, Order: order}
}

// PeakSpec returns a peaking EQ spec.
func PeakSpec(freq, gainDB, q float64) Spec {
	return Spec{Kind: Peak, Freq: freq, GainDB: gainDB, Q: q}
}

// LowShelfSpec returns a Q-form low-shelf spec.
func LowShelfSpec(freq, gainDB, q float64) Spec {
	return Spec{Kind: LowShelf, Freq: freq, GainDB: gainDB, Q: q}
}

// HighShelfSpec returns a Q-form high-shelf spec.
func HighShelfSpec(freq, gainDB, q float64) Spec {
	return Spec{Kind: HighShelf, Freq: freq, GainDB: gainDB, Q: q}
}

// BandPassSpec returns a Butterworth band-pass spec between lo and hi.
func BandPassSpec(lo, hi float64, order int) Spec {
	return Spec{Kind: BandPass, Freq: lo, FreqHigh: hi, Order: order}
}

// MaxFreq returns the highest frequency the spec places a corner at. A
// sample rate must exceed twice this value for the spec to validate.
func (s Spec) MaxFreq() float64 {
	return math.Max(s.Freq, s.FreqHigh)
}

// Validate checks the spec against sampleRate.
func (s Spec) Validate(sampleRate float64) error {
	if !core.IsFinitePositive(sampleRate) {
		return fmt.Errorf("%w: sample rate must be > 0: %f", ErrInvalidFilterParameter, sampleRate)
	}

	if err := validateFreq("frequency", s.Freq, sampleRate); err != nil {
		return err
	}

	if !core.IsFinite(s.GainDB) {
		return fmt.Errorf("%w: gain must be finite: %f", ErrInvalidFilterParameter, s.GainDB)
	}

	if s.Order < 0 {
		return fmt.Errorf("%w: order must be >= 0: %d", ErrInvalidFilterParameter, s.Order)
	}

	switch s.Kind {
	case HighPass, LowPass:
		if s.usesCascade() {
			return nil
		}

		return validatePositive("Q", s.Q)
	case Peak, LowShelf, HighShelf:
		return validatePositive("Q", s.Q)
	case LowShelfSlope, HighShelfSlope:
		return validatePositive("slope", s.Slope)
	case BandPass:
		if err := validateFreq("upper frequency", s.FreqHigh, sampleRate); err != nil {
			return err
		}

		if s.FreqHigh <= s.Freq {
			return fmt.Errorf("%w: upper frequency must exceed lower frequency: %f <= %f",
				ErrInvalidFilterParameter, s.FreqHigh, s.Freq)
		}

		return nil
	default:
		return fmt.Errorf("%w: unknown kind %v", ErrInvalidFilterParameter, s.Kind)
	}
}

func (s Spec) usesCascade() bool {
	return s.Order != 0 && s.Order != 2
}

func validateFreq(name string, f, sampleRate float64) error {
	if !core.IsFinite(f) || f <= 0 || f >= sampleRate/2 {
		return fmt.Errorf("%w: %s must be in (0, %g): %f", ErrInvalidFilterParameter, name, sampleRate/2, f)
	}

	return nil
}

func validatePositive(name string, v float64) error {
	if !core.IsFinitePositive(v) {
		return fmt.Errorf("%w: %s must be > 0: %f", ErrInvalidFilterParameter, name, v)
	}

	return nil
}

var defaultQ = 1 / math.Sqrt2
