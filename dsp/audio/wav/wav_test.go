package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-voicefx/dsp/audio"
	"github.com/cwbudde/algo-voicefx/internal/testutil"
)

func roundTrip(t *testing.T, buf audio.Buffer, enc Encoding) audio.Buffer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.wav")
	if err := WriteFile(path, buf, enc); err != nil {
		t.Fatalf("WriteFile(%v): %v", enc, err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%v): %v", enc, err)
	}

	return got
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	in := audio.Buffer{
		Samples:    testutil.DeterministicSine(440, 22050, 0.9, 2205),
		SampleRate: 22050,
	}

	tests := []struct {
		enc Encoding
		tol float64
	}{
		{PCM16, 1.0 / 32767},
		{PCM24, 1.0 / 8388607},
		{ULaw, 0.03},
		{ALaw, 0.03},
	}

	for _, tt := range tests {
		t.Run(tt.enc.String(), func(t *testing.T) {
			t.Parallel()

			got := roundTrip(t, in, tt.enc)
			if got.SampleRate != in.SampleRate {
				t.Fatalf("sample rate %d, want %d", got.SampleRate, in.SampleRate)
			}

			testutil.RequireSliceNearlyEqual(t, got.Samples, in.Samples, tt.tol)
		})
	}
}

func TestRoundTrip_OddLengthG711(t *testing.T) {
	t.Parallel()

	in := audio.Buffer{Samples: []float64{0, 0.5, -0.5}, SampleRate: 8000}
	got := roundTrip(t, in, ULaw)
	testutil.RequireSliceNearlyEqual(t, got.Samples, in.Samples, 0.03)
}

func TestEncode_Clamps(t *testing.T) {
	t.Parallel()

	in := audio.Buffer{Samples: []float64{1.5, -2, math.NaN()}, SampleRate: 16000}
	got := roundTrip(t, in, PCM16)
	testutil.RequireSliceNearlyEqual(t, got.Samples, []float64{1, -1, 0}, 1e-12)
}

func TestEncode_InvalidBuffer(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.wav")
	if err := WriteFile(path, audio.Buffer{Samples: []float64{0}}, PCM16); !errors.Is(err, audio.ErrInvalidBuffer) {
		t.Fatalf("err = %v, want ErrInvalidBuffer", err)
	}
}

// pcm16Stereo builds a minimal 16-bit stereo WAVE file.
func pcm16Stereo(sampleRate int, frames [][2]int16) []byte {
	var buf bytes.Buffer

	dataSize := len(frames) * 4

	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(formatPCM))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(2))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*4))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(4))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(dataSize))

	for _, f := range frames {
		_ = binary.Write(&buf, binary.LittleEndian, f[0])
		_ = binary.Write(&buf, binary.LittleEndian, f[1])
	}

	return buf.Bytes()
}

func TestDecode_StereoAveraged(t *testing.T) {
	t.Parallel()

	data := pcm16Stereo(44100, [][2]int16{
		{32767, 32767},
		{32767, -32767},
		{0, -32767},
	})

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.SampleRate != 44100 {
		t.Fatalf("sample rate %d", got.SampleRate)
	}

	testutil.RequireSliceNearlyEqual(t, got.Samples, []float64{1, 0, -0.5}, 1e-12)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not riff", []byte("this is not a wave file")},
		{"no chunks", []byte("RIFF\x04\x00\x00\x00WAVE")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Decode(tt.data); !errors.Is(err, ErrUnsupportedFormat) {
				t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
			}
		})
	}
}

func TestReadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.wav"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}

func TestParseEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Encoding
	}{
		{"pcm16", PCM16},
		{"PCM_24", PCM24},
		{" ulaw ", ULaw},
		{"mulaw", ULaw},
		{"alaw", ALaw},
	}

	for _, tt := range tests {
		got, err := ParseEncoding(tt.in)
		if err != nil || got != tt.want {
			t.Fatalf("ParseEncoding(%q) = %v, %v", tt.in, got, err)
		}
	}

	if _, err := ParseEncoding("flac"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("flac: err = %v", err)
	}
}
