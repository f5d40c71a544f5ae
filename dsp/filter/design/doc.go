// Package design computes second-order-section coefficients for the filter
// shapes used by the voice presets.
//
// The single-section shapes follow the RBJ audio EQ cookbook. High-pass and
// low-pass specs with an Order other than 2 expand to Butterworth cascades,
// and BandPass is a high-pass/low-pass pair. [Design] validates a [Spec]
// and returns the sections ready for dsp/filter/biquad.
package design
