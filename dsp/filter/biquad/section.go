package biquad

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad/internal/kernel"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section. a0 is normalized to 1 and not stored.
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// State is the direct-form history of one section.
type State struct {
	X1, X2 float64 // x[n-1], x[n-2]
	Y1, Y2 float64 // y[n-1], y[n-2]
}

// Section is a single biquad with coefficients and private state.
type Section struct {
	Coefficients

	state State
}

var (
	processBlockImpl     kernel.ProcessBlockFn
	processBlockInitOnce sync.Once
)

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	st := &s.state
	y := s.B0*x + s.B1*st.X1 + s.B2*st.X2 - s.A1*st.Y1 - s.A2*st.Y2
	st.X2, st.X1 = st.X1, x
	st.Y2, st.Y1 = st.Y1, y

	return y
}

// ProcessBlock filters buf in place, continuing from the current state.
func (s *Section) ProcessBlock(buf []float64) {
	processBlockInitOnce.Do(initProcessBlockKernel)

	coeffs := kernel.Coefficients{
		B0: s.B0,
		B1: s.B1,
		B2: s.B2,
		A1: s.A1,
		A2: s.A2,
	}

	st := kernel.State(s.state)
	s.state = State(processBlockImpl(coeffs, st, buf))
}

// Reset clears the section history.
func (s *Section) Reset() {
	s.state = State{}
}

// State returns the current history.
func (s *Section) State() State {
	return s.state
}

// KernelName reports which ProcessBlock implementation was selected for
// this machine.
func KernelName() string {
	entry := kernel.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		return ""
	}

	return entry.Name
}

func initProcessBlockKernel() {
	entry := kernel.Global.Lookup(cpu.DetectFeatures())
	if entry == nil {
		panic("biquad: no ProcessBlock kernel registered (missing generic fallback?)")
	}

	if entry.ProcessBlock == nil {
		panic("biquad: selected kernel missing ProcessBlock")
	}

	processBlockImpl = entry.ProcessBlock
}
