package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	gowav "github.com/go-audio/wav"
	"github.com/zaf/g711"

	"github.com/cwbudde/algo-voicefx/dsp/audio"
)

// ReadFile loads a WAVE file as a mono buffer.
func ReadFile(path string) (audio.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("wav: read %s: %w", path, err)
	}

	return Decode(data)
}

// Decode parses a complete WAVE file held in memory. Supported are 16, 24
// and 32-bit linear PCM and 8-bit µ-law/A-law with any channel count.
func Decode(data []byte) (audio.Buffer, error) {
	f, payload, err := scanChunks(data)
	if err != nil {
		return audio.Buffer{}, err
	}

	var (
		ints  []int
		scale float64
	)

	switch f.tag {
	case formatPCM:
		ints, scale, err = decodePCM(data)
		if err != nil {
			return audio.Buffer{}, err
		}
	case formatULaw:
		ints, scale = pcm16Ints(g711.DecodeUlaw(payload)), fullScale(16)
	case formatALaw:
		ints, scale = pcm16Ints(g711.DecodeAlaw(payload)), fullScale(16)
	default:
		return audio.Buffer{}, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, f.tag)
	}

	return audio.Buffer{
		Samples:    downmix(ints, f.channels, scale),
		SampleRate: f.sampleRate,
	}, nil
}

func decodePCM(data []byte) ([]int, float64, error) {
	d := gowav.NewDecoder(bytes.NewReader(data))

	ib, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("wav: decode PCM: %w", err)
	}

	bits := int(d.BitDepth)
	switch bits {
	case 16, 24, 32:
	default:
		return nil, 0, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedFormat, bits)
	}

	return ib.Data, fullScale(bits), nil
}

func pcm16Ints(pcm []byte) []int {
	out := make([]int, len(pcm)/2)
	for i := range out {
		out[i] = int(int16(binary.LittleEndian.Uint16(pcm[2*i:])))
	}

	return out
}

// downmix averages interleaved channels and scales to [-1, 1].
func downmix(ints []int, channels int, scale float64) []float64 {
	frames := len(ints) / channels
	out := make([]float64, frames)

	norm := 1 / (scale * float64(channels))
	for i := range out {
		var sum int
		for c := range channels {
			sum += ints[i*channels+c]
		}

		out[i] = float64(sum) * norm
	}

	return out
}

// fullScale is the largest positive sample value at the given bit depth.
func fullScale(bits int) float64 {
	return float64(int64(1)<<(bits-1) - 1)
}
