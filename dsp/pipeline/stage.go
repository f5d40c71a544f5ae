package pipeline

import (
	"fmt"

	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
)

// StageKind identifies the operation of a Stage.
type StageKind int

// Stage kinds.
const (
	KindFilter StageKind = iota
	KindSaturate
	KindRingMod
	KindSampleHold
	KindQuantize
	KindDelay
	KindCompander
	KindPitchShift
	KindTimeStretch
	KindGain
	KindParallel
)

var stageKindNames = [...]string{
	KindFilter:      "filter",
	KindSaturate:    "saturate",
	KindRingMod:     "ringmod",
	KindSampleHold:  "samplehold",
	KindQuantize:    "quantize",
	KindDelay:       "delay",
	KindCompander:   "compander",
	KindPitchShift:  "pitch-shift",
	KindTimeStretch: "time-stretch",
	KindGain:        "gain",
	KindParallel:    "parallel",
}

func (k StageKind) String() string {
	if k < 0 || int(k) >= len(stageKindNames) {
		return fmt.Sprintf("StageKind(%d)", int(k))
	}

	return stageKindNames[k]
}

// External reports whether the stage is run by an external collaborator
// whose failures are recovered.
func (k StageKind) External() bool {
	return k == KindPitchShift || k == KindTimeStretch
}

// Stage is one step of a preset. Only the fields belonging to Kind are
// read; use the constructor functions to build stages.
type Stage struct {
	Kind StageKind

	Filter design.Spec // KindFilter

	Drive float64 // KindSaturate

	CarrierHz float64 // KindRingMod
	Mix       float64 // KindRingMod, KindDelay

	HoldFactor int // KindSampleHold
	Bits       int // KindQuantize
	DelayMs    float64

	Threshold float64 // KindCompander
	Ratio     float64

	Semitones float64 // KindPitchShift
	Rate      float64 // KindTimeStretch
	Gain      float64 // KindGain, linear

	Branches []Branch // KindParallel
}

// Branch is one weighted path of a Parallel stage. A branch without
// stages contributes the dry input.
type Branch struct {
	Weight float64
	Stages []Stage
}

// Filter returns a filter stage.
func Filter(spec design.Spec) Stage {
	return Stage{Kind: KindFilter, Filter: spec}
}

// Saturate returns a tanh waveshaper stage.
func Saturate(drive float64) Stage {
	return Stage{Kind: KindSaturate, Drive: drive}
}

// RingMod returns a ring modulator stage.
func RingMod(carrierHz, mix float64) Stage {
	return Stage{Kind: KindRingMod, CarrierHz: carrierHz, Mix: mix}
}

// SampleHold returns a sample-and-hold stage.
func SampleHold(factor int) Stage {
	return Stage{Kind: KindSampleHold, HoldFactor: factor}
}

// Quantize returns a bit-depth reduction stage.
func Quantize(bits int) Stage {
	return Stage{Kind: KindQuantize, Bits: bits}
}

// Delay returns a single-tap delay-and-mix stage.
func Delay(ms, mix float64) Stage {
	return Stage{Kind: KindDelay, DelayMs: ms, Mix: mix}
}

// Compander returns a static soft-knee limiter stage.
func Compander(threshold, ratio float64) Stage {
	return Stage{Kind: KindCompander, Threshold: threshold, Ratio: ratio}
}

// PitchShift returns an external pitch-shift stage.
func PitchShift(semitones float64) Stage {
	return Stage{Kind: KindPitchShift, Semitones: semitones}
}

// TimeStretch returns an external time-stretch stage. rate > 1 is faster.
func TimeStretch(rate float64) Stage {
	return Stage{Kind: KindTimeStretch, Rate: rate}
}

// Gain returns a linear gain stage.
func Gain(linear float64) Stage {
	return Stage{Kind: KindGain, Gain: linear}
}

// Parallel returns a stage that sums weighted branches.
func Parallel(branches ...Branch) Stage {
	return Stage{Kind: KindParallel, Branches: branches}
}

// Dry returns a branch that passes the input through.
func Dry(weight float64) Branch {
	return Branch{Weight: weight}
}

// Wet returns a branch that runs stages on a copy of the input.
func Wet(weight float64, stages ...Stage) Branch {
	return Branch{Weight: weight, Stages: stages}
}
