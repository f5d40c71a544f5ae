// Package biquad provides the second-order section runtime used by the
// voice effect filters.
//
// A [Section] evaluates the direct-form recursion
//
//	y[n] = b0*x[n] + b1*x[n-1] + b2*x[n-2] - a1*y[n-1] - a2*y[n-2]
//
// with its own four state slots. A [Cascade] applies an ordered list of
// sections to a whole buffer: every section starts from zero state, runs over
// the complete output of the previous section, and its state is discarded
// when the buffer is done. Nothing persists between calls.
//
// Coefficient design lives in dsp/filter/design.
package biquad
