package pipeline

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-voicefx/dsp/audio"
	"github.com/cwbudde/algo-voicefx/dsp/buffer"
	"github.com/cwbudde/algo-voicefx/dsp/vocoder"
)

// speedEpsilon is the smallest |speed-1| that adds a time-stretch stage.
const speedEpsilon = 1e-3

// PitchShifter transposes a buffer without changing its length.
type PitchShifter interface {
	Shift(in []float64, sampleRate int, semitones float64) ([]float64, error)
}

// TimeStretcher changes the duration of a buffer. rate > 1 is faster.
type TimeStretcher interface {
	Stretch(in []float64, rate float64) ([]float64, error)
}

// State is the lifecycle position of a run.
type State int

// Run states.
const (
	StateIdle State = iota
	StateResolving
	StateExecuting
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:      "idle",
	StateResolving: "resolving",
	StateExecuting: "executing",
	StateDone:      "done",
	StateFailed:    "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}

	return stateNames[s]
}

// Request is one buffer to process.
type Request struct {
	Buffer audio.Buffer
	// Preset names a catalog entry; empty means "none".
	Preset string
	// Overrides are applied by presets that accept them and ignored by
	// the rest.
	Overrides Overrides
	// Speed adds a leading time-stretch stage when it differs from 1.
	// Zero means 1.
	Speed float64
	// Target is the final peak level. The zero value is DefaultTargetPeak.
	Target NormalizeTarget
}

// Result is the outcome of a run.
type Result struct {
	Buffer audio.Buffer
	RunID  string
	Preset string
	State  State
	// Stages is the resolved stage list, including any time-stretch
	// pre-stage.
	Stages []Stage
	// Recovered holds the failures of external stages that were skipped.
	// Each wraps ErrExternalStage.
	Recovered []error
}

// Pipeline executes presets. It holds no per-run state and is safe for
// concurrent use when its collaborators are.
type Pipeline struct {
	logger    logrus.FieldLogger
	shifter   PitchShifter
	stretcher TimeStretcher
	catalog   *Catalog
	workers   int
	scratch   *buffer.Pool
}

// Option mutates pipeline construction parameters.
type Option func(*Pipeline) error

// WithLogger sets the logger. The default is logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) error {
		if l == nil {
			return fmt.Errorf("%w: nil logger", ErrInvalidRequest)
		}

		p.logger = l

		return nil
	}
}

// WithPitchShifter replaces the default phase-vocoder pitch shifter.
// A nil shifter makes every pitch-shift stage a recovered failure.
func WithPitchShifter(s PitchShifter) Option {
	return func(p *Pipeline) error {
		p.shifter = s
		return nil
	}
}

// WithTimeStretcher replaces the default phase-vocoder time stretcher.
// A nil stretcher makes every time-stretch stage a recovered failure.
func WithTimeStretcher(s TimeStretcher) Option {
	return func(p *Pipeline) error {
		p.stretcher = s
		return nil
	}
}

// WithPresets replaces the built-in catalog.
func WithPresets(c *Catalog) Option {
	return func(p *Pipeline) error {
		if c == nil {
			return fmt.Errorf("%w: nil catalog", ErrInvalidRequest)
		}

		p.catalog = c

		return nil
	}
}

// WithWorkers bounds the number of concurrent runs in RunBatch.
func WithWorkers(n int) Option {
	return func(p *Pipeline) error {
		if n < 1 {
			return fmt.Errorf("%w: workers must be >= 1: %d", ErrInvalidRequest, n)
		}

		p.workers = n

		return nil
	}
}

// New creates a pipeline with the built-in presets and phase-vocoder
// collaborators.
func New(opts ...Option) (*Pipeline, error) {
	shifter, err := vocoder.NewShifter()
	if err != nil {
		return nil, err
	}

	stretcher, err := vocoder.NewStretcher()
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		logger:    logrus.StandardLogger(),
		shifter:   shifter,
		stretcher: stretcher,
		catalog:   DefaultCatalog(),
		workers:   runtime.GOMAXPROCS(0),
		scratch:   buffer.NewPool(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Catalog returns the preset catalog in use.
func (p *Pipeline) Catalog() *Catalog { return p.catalog }

// Run processes one request. The request buffer is not modified. On
// failure the returned Result carries StateFailed and the run ID.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	r := &run{
		p:     p,
		ctx:   ctx,
		id:    uuid.New().String(),
		state: StateIdle,
	}

	name := req.Preset
	if name == "" {
		name = PresetNone
	}

	r.log = p.logger.WithFields(logrus.Fields{
		"run_id": r.id,
		"preset": name,
	})

	res := Result{RunID: r.id, Preset: name}

	out, err := r.execute(name, req)
	res.State = r.state
	res.Stages = r.stages
	res.Recovered = r.recovered

	if err != nil {
		r.log.WithError(err).Debug("run failed")
		return res, err
	}

	res.Buffer = out

	return res, nil
}

type run struct {
	p          *Pipeline
	ctx        context.Context
	id         string
	log        logrus.FieldLogger
	state      State
	sampleRate int
	stages     []Stage
	recovered  []error
}

func (r *run) transition(s State) {
	r.log.WithFields(logrus.Fields{"from": r.state.String(), "to": s.String()}).Debug("state change")
	r.state = s
}

func (r *run) fail(err error) (audio.Buffer, error) {
	r.transition(StateFailed)
	return audio.Buffer{}, err
}

func (r *run) execute(name string, req Request) (audio.Buffer, error) {
	start := time.Now()

	r.transition(StateResolving)

	if err := req.Buffer.Validate(); err != nil {
		return r.fail(err)
	}

	r.sampleRate = req.Buffer.SampleRate

	target, err := req.Target.level()
	if err != nil {
		return r.fail(err)
	}

	stages, err := r.resolve(name, req)
	if err != nil {
		return r.fail(err)
	}

	r.stages = stages

	r.log.WithField("stages", len(stages)).Debug("preset resolved")

	r.transition(StateExecuting)

	samples, err := r.applyStages(stages, slices.Clone(req.Buffer.Samples))
	if err != nil {
		return r.fail(err)
	}

	r.transition(StateDone)

	out := req.Buffer.WithSamples(Normalize(samples, target))

	r.log.WithFields(logrus.Fields{
		"samples":  out.Len(),
		"duration": time.Since(start).String(),
	}).Debug("run finished")

	return out, nil
}

func (r *run) resolve(name string, req Request) ([]Stage, error) {
	preset, ok := r.p.catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	if req.Overrides.Name != "" {
		r.log.WithField("override_name", req.Overrides.Name).Info("using override config")
	}

	stages, err := preset.Resolve(req.Overrides)
	if err != nil {
		return nil, err
	}

	speed := req.Speed
	if speed == 0 {
		speed = 1
	}

	if speed < 0 || math.IsNaN(speed) || math.IsInf(speed, 0) {
		return nil, fmt.Errorf("%w: speed must be > 0 and finite: %f", ErrInvalidRequest, speed)
	}

	if math.Abs(speed-1) > speedEpsilon {
		stages = append([]Stage{TimeStretch(speed)}, stages...)
	}

	return stages, nil
}

func (r *run) applyStages(stages []Stage, in []float64) ([]float64, error) {
	cur := in

	for i, st := range stages {
		if err := r.ctx.Err(); err != nil {
			return nil, err
		}

		out, err := r.applyStage(st, cur)
		if err != nil {
			return nil, &StageError{Index: i, Kind: st.Kind, Err: err}
		}

		cur = out
	}

	return cur, nil
}

func (r *run) applyStage(st Stage, in []float64) ([]float64, error) {
	if !st.Kind.External() {
		return r.applyInternal(st, in)
	}

	out, err := r.applyExternal(st, slices.Clone(in))
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrExternalStage, st.Kind, err)
		r.recovered = append(r.recovered, err)
		r.log.WithFields(logrus.Fields{
			"stage": st.Kind.String(),
			"error": err.Error(),
		}).Warn("external stage failed, passing signal through")

		return in, nil
	}

	return out, nil
}

func (r *run) applyExternal(st Stage, in []float64) (out []float64, err error) {
	defer func() {
		if v := recover(); v != nil {
			out, err = nil, fmt.Errorf("panic: %v", v)
		}
	}()

	switch st.Kind {
	case KindPitchShift:
		if r.p.shifter == nil {
			return nil, fmt.Errorf("no pitch shifter configured")
		}

		out, err = r.p.shifter.Shift(in, r.sampleRate, st.Semitones)
		if err == nil && len(out) != len(in) {
			err = fmt.Errorf("pitch shifter returned %d samples for %d", len(out), len(in))
		}
	case KindTimeStretch:
		if r.p.stretcher == nil {
			return nil, fmt.Errorf("no time stretcher configured")
		}

		out, err = r.p.stretcher.Stretch(in, st.Rate)
	default:
		err = fmt.Errorf("stage %s is not external", st.Kind)
	}

	return out, err
}
