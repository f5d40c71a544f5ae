package vocoder

import (
	"fmt"
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-voicefx/dsp/core"
	"github.com/cwbudde/algo-voicefx/dsp/window"
)

// normFloor bounds the overlap-add window normalization at the buffer edges.
const normFloor = 1e-3

// Stretcher changes the duration of a buffer without changing its pitch.
type Stretcher struct {
	frameSize int
	hop       int
	window    []float64
	omega     []float64

	pool sync.Pool
}

type workspace struct {
	plan      *algofft.Plan[complex128]
	spectrum  []complex128
	frame     []complex128
	segment   []float64
	mag       []float64
	phase     []float64
	prevPhase []float64
	sumPhase  []float64
	peaks     []int
}

// NewStretcher creates a time stretcher.
func NewStretcher(opts ...Option) (*Stretcher, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}

	win, err := window.Hann(cfg.frameSize, window.WithPeriodic())
	if err != nil {
		return nil, err
	}

	s := &Stretcher{
		frameSize: cfg.frameSize,
		hop:       cfg.hop,
		window:    win,
		omega:     make([]float64, cfg.frameSize/2+1),
	}

	for k := range s.omega {
		s.omega[k] = 2 * math.Pi * float64(k) / float64(cfg.frameSize)
	}

	// Fail at construction if the FFT size is unsupported.
	ws, err := s.newWorkspace()
	if err != nil {
		return nil, err
	}

	s.pool.Put(ws)

	return s, nil
}

// FrameSize returns the FFT frame size.
func (s *Stretcher) FrameSize() int { return s.frameSize }

// Hop returns the synthesis hop.
func (s *Stretcher) Hop() int { return s.hop }

// Stretch returns in played back rate times faster. rate > 1 shortens the
// signal, rate < 1 lengthens it. The output has round(len(in)/rate)
// samples.
func (s *Stretcher) Stretch(in []float64, rate float64) ([]float64, error) {
	if !core.IsFinitePositive(rate) {
		return nil, fmt.Errorf("%w: stretch rate must be > 0 and finite: %f", ErrInvalidArgument, rate)
	}

	outLen := int(math.Round(float64(len(in)) / rate))
	if len(in) == 0 || outLen == 0 {
		return make([]float64, outLen), nil
	}

	if rate == 1 {
		out := make([]float64, len(in))
		copy(out, in)

		return out, nil
	}

	ws, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(ws)

	return s.stretch(ws, in, rate, outLen)
}

func (s *Stretcher) stretch(ws *workspace, in []float64, rate float64, outLen int) ([]float64, error) {
	n := s.frameSize
	half := n / 2
	hs := float64(s.hop)

	frames := (outLen+s.hop-1)/s.hop + 1
	out := make([]float64, (frames-1)*s.hop+n)
	norm := make([]float64, len(out))

	prevPos := 0

	for f := range frames {
		inPos := int(math.Round(float64(f*s.hop) * rate))
		outPos := f * s.hop

		for i := range ws.segment {
			x := 0.0
			if idx := inPos + i; idx < len(in) {
				x = in[idx]
			}

			ws.segment[i] = x
		}

		vecmath.MulBlockInPlace(ws.segment, s.window)

		for i, v := range ws.segment {
			ws.spectrum[i] = complex(v, 0)
		}

		if err := ws.plan.Forward(ws.spectrum, ws.spectrum); err != nil {
			return nil, fmt.Errorf("vocoder: forward FFT failed: %w", err)
		}

		for k := 0; k <= half; k++ {
			re, im := real(ws.spectrum[k]), imag(ws.spectrum[k])
			ws.mag[k] = math.Hypot(re, im)
			ws.phase[k] = math.Atan2(im, re)
		}

		if f == 0 {
			copy(ws.sumPhase, ws.phase)
		} else {
			s.advancePhases(ws, float64(inPos-prevPos), hs)
		}

		copy(ws.prevPhase, ws.phase)
		prevPos = inPos

		for k := 0; k <= half; k++ {
			ws.spectrum[k] = complex(
				ws.mag[k]*math.Cos(ws.sumPhase[k]),
				ws.mag[k]*math.Sin(ws.sumPhase[k]),
			)
		}

		ws.spectrum[0] = complex(real(ws.spectrum[0]), 0)
		ws.spectrum[half] = complex(real(ws.spectrum[half]), 0)

		for k := 1; k < half; k++ {
			v := ws.spectrum[k]
			ws.spectrum[n-k] = complex(real(v), -imag(v))
		}

		if err := ws.plan.Inverse(ws.frame, ws.spectrum); err != nil {
			return nil, fmt.Errorf("vocoder: inverse FFT failed: %w", err)
		}

		for i, w := range s.window {
			out[outPos+i] += real(ws.frame[i]) * w
			norm[outPos+i] += w * w
		}
	}

	for i := range out {
		if norm[i] > normFloor {
			out[i] /= norm[i]
		}
	}

	return fitLength(out, outLen), nil
}

// advancePhases accumulates synthesis phases for one frame. Spectral peaks
// advance by their instantaneous frequency; every other bin keeps its
// analysis phase offset to the nearest peak.
func (s *Stretcher) advancePhases(ws *workspace, ha, hs float64) {
	half := s.frameSize / 2

	instFreq := func(k int) float64 {
		if ha == 0 {
			return s.omega[k]
		}

		delta := wrapPhase(ws.phase[k] - ws.prevPhase[k] - s.omega[k]*ha)

		return s.omega[k] + delta/ha
	}

	ws.peaks = ws.peaks[:0]
	for k := 1; k < half; k++ {
		if ws.mag[k] >= ws.mag[k-1] && ws.mag[k] > ws.mag[k+1] {
			ws.peaks = append(ws.peaks, k)
		}
	}

	if len(ws.peaks) == 0 {
		for k := 0; k <= half; k++ {
			ws.sumPhase[k] += instFreq(k) * hs
		}

		return
	}

	for _, pk := range ws.peaks {
		ws.sumPhase[pk] += instFreq(pk) * hs
	}

	p := 0
	for k := 0; k <= half; k++ {
		for p+1 < len(ws.peaks) && absInt(ws.peaks[p+1]-k) < absInt(ws.peaks[p]-k) {
			p++
		}

		if pk := ws.peaks[p]; k != pk {
			ws.sumPhase[k] = ws.sumPhase[pk] + ws.phase[k] - ws.phase[pk]
		}
	}
}

func (s *Stretcher) acquire() (*workspace, error) {
	if ws, ok := s.pool.Get().(*workspace); ok {
		return ws, nil
	}

	return s.newWorkspace()
}

func (s *Stretcher) newWorkspace() (*workspace, error) {
	plan, err := algofft.NewPlan64(s.frameSize)
	if err != nil {
		return nil, fmt.Errorf("vocoder: failed to create FFT plan: %w", err)
	}

	bins := s.frameSize/2 + 1

	return &workspace{
		plan:      plan,
		spectrum:  make([]complex128, s.frameSize),
		frame:     make([]complex128, s.frameSize),
		segment:   make([]float64, s.frameSize),
		mag:       make([]float64, bins),
		phase:     make([]float64, bins),
		prevPhase: make([]float64, bins),
		sumPhase:  make([]float64, bins),
		peaks:     make([]int, 0, bins),
	}, nil
}

func wrapPhase(p float64) float64 {
	return p - 2*math.Pi*math.Round(p/(2*math.Pi))
}

func fitLength(x []float64, n int) []float64 {
	if len(x) == n {
		return x
	}

	out := make([]float64, n)
	copy(out, x)

	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
