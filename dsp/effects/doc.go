// Package effects provides the waveshaping and modulation stages of the
// voice presets.
//
// Stages in this package:
//   - Saturator: normalized tanh soft clipper.
//   - RingModulator: sine carrier multiplication blended with the dry signal.
//   - SampleHold: stair-step decimation that preserves buffer length.
//   - Quantizer: bit-depth reduction over [-1, 1].
//   - Delay: single-tap delayed copy mixed with the dry signal.
//
// Every stage processes a complete buffer and keeps no state between calls.
// Process returns a new slice; ProcessInPlace overwrites its argument.
// Constructors validate their parameters and wrap ErrInvalidStageParameter.
//
// The compander lives in github.com/cwbudde/algo-voicefx/dsp/effects/dynamics.
package effects
