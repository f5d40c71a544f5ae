package loudness

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-voicefx/dsp/filter/biquad"
	"github.com/cwbudde/algo-voicefx/dsp/filter/design"
)

const (
	// K-weighting filter parameters from BS.1770.
	kWeightingShelfFreq = 1500.0
	kWeightingShelfGain = 4.0
	kWeightingHpfFreq   = 38.0

	blockDuration = 0.4
	blockOverlap  = 0.75

	absThreshold = -70.0
	relThreshold = -10.0

	// silenceFloor is reported for a block with no energy.
	silenceFloor = -120.0
)

// ErrInvalidSampleRate is returned when the sample rate cannot hold the
// K-weighting shelf.
var ErrInvalidSampleRate = errors.New("loudness: invalid sample rate")

// Result holds the loudness of one buffer in LUFS.
type Result struct {
	// Integrated is the gated program loudness. It is -Inf when the buffer
	// is shorter than one block or every block falls below the gates.
	Integrated float64
	// MaxMomentary is the loudest 400 ms block.
	MaxMomentary float64
	Blocks       int
}

// Measure computes the loudness of a mono buffer.
func Measure(samples []float64, sampleRate float64) (Result, error) {
	if !(sampleRate > 2*kWeightingShelfFreq) || math.IsInf(sampleRate, 0) {
		return Result{}, fmt.Errorf("%w: must exceed %g Hz: %f", ErrInvalidSampleRate, 2*kWeightingShelfFreq, sampleRate)
	}

	blocks := blockPowers(kWeight(samples, sampleRate), sampleRate)

	res := Result{
		Integrated:   math.Inf(-1),
		MaxMomentary: math.Inf(-1),
		Blocks:       len(blocks),
	}

	for _, b := range blocks {
		res.MaxMomentary = math.Max(res.MaxMomentary, toLUFS(b))
	}

	res.Integrated = gate(blocks)

	return res, nil
}

func kWeight(samples []float64, sampleRate float64) []float64 {
	q := 1.0 / math.Sqrt(2)

	c := biquad.NewCascade(
		design.HighShelfQ(kWeightingShelfFreq, kWeightingShelfGain, q, sampleRate),
		design.Highpass(kWeightingHpfFreq, q, sampleRate),
	)

	return c.Apply(samples)
}

// blockPowers returns the mean square of every complete gating block.
func blockPowers(weighted []float64, sampleRate float64) []float64 {
	size := int(math.Round(blockDuration * sampleRate))
	step := max(int(math.Round(blockDuration*(1-blockOverlap)*sampleRate)), 1)

	if size <= 0 || len(weighted) < size {
		return nil
	}

	prefix := make([]float64, len(weighted)+1)
	for i, x := range weighted {
		prefix[i+1] = prefix[i] + x*x
	}

	blocks := make([]float64, 0, (len(weighted)-size)/step+1)
	for start := 0; start+size <= len(weighted); start += step {
		blocks = append(blocks, (prefix[start+size]-prefix[start])/float64(size))
	}

	return blocks
}

func gate(blocks []float64) float64 {
	var (
		absSum   float64
		absCount int
	)

	for _, b := range blocks {
		if toLUFS(b) > absThreshold {
			absSum += b
			absCount++
		}
	}

	if absCount == 0 {
		return math.Inf(-1)
	}

	gammaRel := toLUFS(absSum/float64(absCount)) + relThreshold

	var (
		relSum   float64
		relCount int
	)

	for _, b := range blocks {
		if l := toLUFS(b); l > absThreshold && l > gammaRel {
			relSum += b
			relCount++
		}
	}

	if relCount == 0 {
		return math.Inf(-1)
	}

	return toLUFS(relSum / float64(relCount))
}

func toLUFS(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return silenceFloor
	}

	return -0.691 + 10.0*math.Log10(meanSquare)
}
