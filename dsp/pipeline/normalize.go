package pipeline

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	timestats "github.com/cwbudde/algo-voicefx/stats/time"
)

// DefaultTargetPeak is the linear peak the pipeline normalizes to when the
// request does not name one.
const DefaultTargetPeak = 0.95

// NormalizeTarget is a final peak level given either as a linear amplitude
// or in dBFS. The zero value means DefaultTargetPeak.
type NormalizeTarget struct {
	value float64
	dbfs  bool
	set   bool
}

// Peak returns a linear peak target.
func Peak(linear float64) NormalizeTarget {
	return NormalizeTarget{value: linear, set: true}
}

// DBFS returns a peak target in dB relative to full scale.
func DBFS(db float64) NormalizeTarget {
	return NormalizeTarget{value: db, dbfs: true, set: true}
}

// Level returns the linear peak of the target.
func (t NormalizeTarget) Level() float64 {
	switch {
	case !t.set:
		return DefaultTargetPeak
	case t.dbfs:
		return TargetFromDBFS(t.value)
	default:
		return t.value
	}
}

func (t NormalizeTarget) String() string {
	if t.dbfs {
		return fmt.Sprintf("%g dBFS", t.value)
	}

	return fmt.Sprintf("%g", t.Level())
}

func (t NormalizeTarget) level() (float64, error) {
	level := t.Level()
	if !core.IsFinitePositive(level) {
		return 0, fmt.Errorf("%w: normalize target must be > 0 and finite: %s", ErrInvalidRequest, t)
	}

	return level, nil
}

// TargetFromDBFS converts a dBFS peak to a linear amplitude.
func TargetFromDBFS(db float64) float64 {
	return core.DBToLinear(db)
}

// Normalize returns samples scaled so their peak magnitude equals target.
// A silent buffer is returned unchanged. samples is not modified.
func Normalize(samples []float64, target float64) []float64 {
	out := make([]float64, len(samples))

	peak := timestats.Peak(samples)
	if peak == 0 || math.IsNaN(peak) {
		copy(out, samples)
		return out
	}

	vecmath.ScaleBlock(out, samples, 1/peak)
	vecmath.ScaleBlock(out, out, target)

	return out
}
