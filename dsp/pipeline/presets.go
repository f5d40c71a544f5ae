package pipeline

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
)

// Built-in preset names.
const (
	PresetNone           = "none"
	PresetRobot          = "robot"
	PresetRobotBass      = "robot_bass"
	PresetRobotBassGrit  = "robot_bass_grit"
	PresetRobotBassClean = "robot_bass_clean"
	PresetAnonymous      = "anonymous"
	PresetGritClean      = "grit_clean"
	PresetGritUltraClean = "grit_ultraclean"
)

// Preset is a named, ordered stage list. A preset with Configure accepts
// overrides; all others ignore them.
type Preset struct {
	Name        string
	Description string
	Stages      []Stage
	Configure   func(Overrides) ([]Stage, error)
}

// Configurable reports whether the preset accepts overrides.
func (p Preset) Configurable() bool { return p.Configure != nil }

// Resolve returns the stage list for one run.
func (p Preset) Resolve(o Overrides) ([]Stage, error) {
	if p.Configure == nil {
		return append([]Stage(nil), p.Stages...), nil
	}

	return p.Configure(o)
}

// MinSampleRate returns the lowest integer sample rate at which every filter
// corner of the default stage list lies below Nyquist, or 0 when the preset
// has no filters. Runs at lower rates fail with a filter stage error.
func (p Preset) MinSampleRate() int {
	stages, err := p.Resolve(Overrides{})
	if err != nil {
		return 0
	}

	maxFreq := maxFilterFreq(stages)
	if maxFreq <= 0 {
		return 0
	}

	return int(math.Floor(2*maxFreq)) + 1
}

func maxFilterFreq(stages []Stage) float64 {
	var f float64

	for _, st := range stages {
		switch st.Kind {
		case KindFilter:
			f = math.Max(f, st.Filter.MaxFreq())
		case KindParallel:
			for _, b := range st.Branches {
				f = math.Max(f, maxFilterFreq(b.Stages))
			}
		}
	}

	return f
}

// Catalog maps preset names to presets.
type Catalog struct {
	presets map[string]Preset
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{presets: make(map[string]Preset)}
}

// Register adds a preset.
func (c *Catalog) Register(p Preset) error {
	if p.Name == "" {
		return errors.New("empty preset name")
	}

	if _, exists := c.presets[p.Name]; exists {
		return fmt.Errorf("%w: %s", errDuplicatePreset, p.Name)
	}

	c.presets[p.Name] = p

	return nil
}

// MustRegister is like Register but panics on error.
func (c *Catalog) MustRegister(p Preset) {
	if err := c.Register(p); err != nil {
		panic("pipeline catalog: " + err.Error())
	}
}

// Lookup returns the preset with the given name.
func (c *Catalog) Lookup(name string) (Preset, bool) {
	p, ok := c.presets[name]
	return p, ok
}

// Names returns the registered preset names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.presets))
	for name := range c.presets {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// DefaultCatalog returns a catalog holding the built-in presets.
//
//nolint:funlen
func DefaultCatalog() *Catalog {
	c := NewCatalog()

	c.MustRegister(Preset{
		Name:        PresetNone,
		Description: "no processing, normalization only",
	})
	c.MustRegister(Preset{
		Name:        PresetRobot,
		Description: "pitch down four semitones",
		Stages:      []Stage{PitchShift(-4)},
	})
	c.MustRegister(Preset{
		Name:        PresetRobotBass,
		Description: "deep robotic voice with a light ring modulation",
		Stages: []Stage{
			PitchShift(-4),
			RingMod(80, 0.1),
			Filter(design.ButterworthHighPassSpec(40, 2)),
			Filter(design.LowShelfSpec(120, 6, 0.707)),
			Filter(design.ButterworthLowPassSpec(7000, 4)),
			Filter(design.HighShelfSpec(6500, -3, 0.707)),
			Compander(0.6, 1.6),
		},
	})
	c.MustRegister(Preset{
		Name:        PresetRobotBassGrit,
		Description: "deep robotic voice with a bit-crushed layer and a short slap",
		Stages: []Stage{
			PitchShift(-6),
			Parallel(
				Dry(0.75),
				Wet(0.25, Saturate(2.8), SampleHold(3), Quantize(10)),
			),
			Delay(6, 0.15),
			Filter(design.ButterworthHighPassSpec(40, 2)),
			Filter(design.LowShelfSpec(110, 8, 0.707)),
			Filter(design.ButterworthLowPassSpec(6500, 4)),
			Filter(design.HighShelfSpec(6000, -4, 0.707)),
			Compander(0.5, 2.0),
		},
	})
	c.MustRegister(Preset{
		Name:        PresetRobotBassClean,
		Description: "shallower robotic voice with light saturation",
		Stages: []Stage{
			PitchShift(-3),
			Parallel(Dry(0.85), Wet(0.15, Saturate(1.6))),
			Filter(design.ButterworthHighPassSpec(45, 2)),
			Filter(design.LowShelfSpec(120, 5, 0.707)),
			Filter(design.PeakSpec(300, -1.5, 0.9)),
			Filter(design.ButterworthLowPassSpec(9000, 4)),
			Filter(design.HighShelfSpec(7000, -1, 0.707)),
			Compander(0.65, 1.35),
		},
	})
	c.MustRegister(Preset{
		Name:        PresetAnonymous,
		Description: "deep telephone-band voice with doubling and heavy compression",
		Configure: func(o Overrides) ([]Stage, error) {
			return AnonymousDefaults().WithOverrides(o).Stages(), nil
		},
	})
	c.MustRegister(Preset{
		Name:        PresetGritClean,
		Description: "moderate depth with ring and band-limited grit",
		Stages: []Stage{
			PitchShift(-4),
			Parallel(
				Dry(0.92),
				Wet(0.05, RingMod(70, 1)),
				Wet(0.03, Saturate(2.2)),
			),
			Filter(design.ButterworthHighPassSpec(50, 2)),
			Filter(design.LowShelfSpec(110, 6, 0.707)),
			Filter(design.PeakSpec(300, -2, 0.9)),
			Filter(design.PeakSpec(2500, 1.5, 1.1)),
			Filter(design.ButterworthLowPassSpec(8000, 4)),
			Parallel(
				Dry(0.9),
				Wet(0.1, Filter(design.BandPassSpec(1000, 4000, 2)), Saturate(2.4)),
			),
			Compander(0.6, 1.6),
		},
	})
	c.MustRegister(Preset{
		Name:        PresetGritUltraClean,
		Description: "mild depth with minimal texture and strong articulation",
		Stages: []Stage{
			PitchShift(-3),
			Parallel(
				Dry(0.965),
				Wet(0.015, RingMod(65, 1)),
				Wet(0.02, Saturate(1.8)),
			),
			Filter(design.ButterworthHighPassSpec(55, 2)),
			Filter(design.LowShelfSpec(110, 4, 0.707)),
			Filter(design.PeakSpec(280, -2.5, 1.0)),
			Filter(design.PeakSpec(3000, 2.5, 1.1)),
			Filter(design.HighShelfSpec(7500, 0.5, 0.707)),
			Filter(design.ButterworthLowPassSpec(9500, 4)),
			Filter(design.PeakSpec(6500, -1.2, 1.3)),
			Compander(0.68, 1.4),
		},
	})

	return c
}

// AnonymousParams are the tunable values of the anonymous preset.
type AnonymousParams struct {
	PitchSteps     float64
	HighPassHz     float64
	LowPassHz      float64
	PresenceHz     float64
	PresenceGainDB float64
	PresenceQ      float64
	Delay1Ms       float64
	Delay2Ms       float64
	MixDry         float64
	MixDelay1      float64
	MixDelay2      float64
	CompThreshold  float64
	CompRatio      float64
	ClipDrive      float64
}

// AnonymousDefaults returns the anonymous preset defaults.
func AnonymousDefaults() AnonymousParams {
	return AnonymousParams{
		PitchSteps:     -5,
		HighPassHz:     200,
		LowPassHz:      3400,
		PresenceHz:     1200,
		PresenceGainDB: 2.5,
		PresenceQ:      1.1,
		Delay1Ms:       6,
		Delay2Ms:       12,
		MixDry:         0.85,
		MixDelay1:      0.10,
		MixDelay2:      0.05,
		CompThreshold:  0.45,
		CompRatio:      2.8,
		ClipDrive:      1.8,
	}
}

// WithOverrides returns p with every key present in o applied.
func (p AnonymousParams) WithOverrides(o Overrides) AnonymousParams {
	p.PitchSteps = o.GetNum("pitch_steps", p.PitchSteps)
	p.HighPassHz = o.GetNum("hpf", p.HighPassHz)
	p.LowPassHz = o.GetNum("lpf", p.LowPassHz)
	p.PresenceHz = o.GetNum("presence_f0", p.PresenceHz)
	p.PresenceGainDB = o.GetNum("presence_gain_db", p.PresenceGainDB)
	p.PresenceQ = o.GetNum("presence_Q", p.PresenceQ)
	p.Delay1Ms = o.GetNum("delay_ms_1", p.Delay1Ms)
	p.Delay2Ms = o.GetNum("delay_ms_2", p.Delay2Ms)
	p.MixDry = o.GetNum("mix_dry", p.MixDry)
	p.MixDelay1 = o.GetNum("mix_d1", p.MixDelay1)
	p.MixDelay2 = o.GetNum("mix_d2", p.MixDelay2)
	p.CompThreshold = o.GetNum("comp_thresh", p.CompThreshold)
	p.CompRatio = o.GetNum("comp_ratio", p.CompRatio)
	p.ClipDrive = o.GetNum("clip_drive", p.ClipDrive)

	return p
}

// Stages returns the anonymous stage list for p.
func (p AnonymousParams) Stages() []Stage {
	return []Stage{
		PitchShift(p.PitchSteps),
		Filter(design.ButterworthHighPassSpec(p.HighPassHz, 2)),
		Filter(design.ButterworthLowPassSpec(p.LowPassHz, 4)),
		Filter(design.PeakSpec(p.PresenceHz, p.PresenceGainDB, p.PresenceQ)),
		Parallel(
			Dry(p.MixDry),
			Wet(p.MixDelay1, Delay(p.Delay1Ms, 1)),
			Wet(p.MixDelay2, Delay(p.Delay2Ms, 1)),
		),
		Compander(p.CompThreshold, p.CompRatio),
		Saturate(p.ClipDrive),
	}
}
