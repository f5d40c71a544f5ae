// Package pipeline runs named voice presets over mono buffers.
//
// A preset is an ordered list of [Stage] values: filters designed by
// dsp/filter/design, waveshaping and modulation from dsp/effects, the
// compander from dsp/effects/dynamics, weighted parallel blends, and the
// external pitch-shift and time-stretch collaborators. [Pipeline.Run]
// resolves the preset, executes the stages in order and peak-normalizes
// the result.
//
// Failures of external stages are logged and the stage is skipped; any
// other stage failure aborts the run with a [*StageError].
package pipeline
