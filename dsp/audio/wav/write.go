package wav

import (
	"fmt"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/zaf/g711"

	"github.com/cwbudde/algo-voicefx/dsp/audio"
	"github.com/cwbudde/algo-voicefx/dsp/core"
)

// WriteFile writes buf to path, replacing any existing file.
func WriteFile(path string, buf audio.Buffer, enc Encoding) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wav: create %s: %w", path, err)
	}

	if err := Encode(f, buf, enc); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Encode writes buf as a mono WAVE stream. Samples are clamped to [-1, 1]
// before conversion.
func Encode(w io.WriteSeeker, buf audio.Buffer, enc Encoding) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	switch enc {
	case PCM16, PCM24:
		return encodePCM(w, buf, enc.bitDepth())
	case ULaw:
		return encodeG711(w, buf, formatULaw, g711.EncodeUlawFrame)
	case ALaw:
		return encodeG711(w, buf, formatALaw, g711.EncodeAlawFrame)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, enc)
	}
}

func encodePCM(w io.WriteSeeker, buf audio.Buffer, bits int) error {
	ib := &goaudio.IntBuffer{
		Data: quantize(buf.Samples, bits),
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  buf.SampleRate,
		},
		SourceBitDepth: bits,
	}

	e := gowav.NewEncoder(w, buf.SampleRate, bits, 1, formatPCM)
	if err := e.Write(ib); err != nil {
		return fmt.Errorf("wav: encode PCM: %w", err)
	}

	if err := e.Close(); err != nil {
		return fmt.Errorf("wav: finalize PCM: %w", err)
	}

	return nil
}

func encodeG711(w io.Writer, buf audio.Buffer, tag int, frame func(int16) byte) error {
	n := len(buf.Samples)
	body := make([]byte, n, n+1)

	for i, v := range quantize(buf.Samples, 16) {
		body[i] = frame(int16(v))
	}

	if n%2 != 0 {
		body = append(body, 0)
	}

	if _, err := w.Write(g711Header(tag, buf.SampleRate, n)); err != nil {
		return fmt.Errorf("wav: write header: %w", err)
	}

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("wav: write data: %w", err)
	}

	return nil
}

func quantize(samples []float64, bits int) []int {
	scale := fullScale(bits)
	out := make([]int, len(samples))

	for i, x := range samples {
		if math.IsNaN(x) {
			continue
		}

		out[i] = int(math.Round(core.Clamp(x, -1, 1) * scale))
	}

	return out
}
