package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

type formatChunk struct {
	tag        int
	channels   int
	sampleRate int
	bitDepth   int
}

// scanChunks walks the RIFF chunk list and returns the fmt description and
// the data payload. Odd-sized chunks are followed by one pad byte.
func scanChunks(data []byte) (formatChunk, []byte, error) {
	var f formatChunk

	if len(data) < 12 || !bytes.HasPrefix(data, []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return f, nil, fmt.Errorf("%w: missing RIFF/WAVE header", ErrUnsupportedFormat)
	}

	var (
		payload []byte
		haveFmt bool
	)

	for i := 12; i+8 <= len(data); {
		id := string(data[i : i+4])
		size := int(binary.LittleEndian.Uint32(data[i+4 : i+8]))
		start := i + 8
		end := start + size

		if end > len(data) {
			if id != "data" {
				return f, nil, fmt.Errorf("%w: chunk %q exceeds file length", ErrUnsupportedFormat, id)
			}
			// Truncated streams often carry a bogus data size.
			end = len(data)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return f, nil, fmt.Errorf("%w: fmt chunk too short: %d", ErrUnsupportedFormat, size)
			}

			c := data[start:end]
			f = formatChunk{
				tag:        int(binary.LittleEndian.Uint16(c[0:2])),
				channels:   int(binary.LittleEndian.Uint16(c[2:4])),
				sampleRate: int(binary.LittleEndian.Uint32(c[4:8])),
				bitDepth:   int(binary.LittleEndian.Uint16(c[14:16])),
			}
			haveFmt = true
		case "data":
			payload = data[start:end]
		}

		if size%2 != 0 {
			end++
		}

		i = end
	}

	if !haveFmt {
		return f, nil, fmt.Errorf("%w: fmt chunk not found", ErrUnsupportedFormat)
	}

	if payload == nil {
		return f, nil, fmt.Errorf("%w: data chunk not found", ErrUnsupportedFormat)
	}

	if f.channels <= 0 || f.sampleRate <= 0 {
		return f, nil, fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupportedFormat, f.channels, f.sampleRate)
	}

	return f, payload, nil
}

// g711Header builds the RIFF header for an 8-bit mono G.711 stream of n
// samples. Non-PCM formats carry cbSize and a fact chunk.
func g711Header(tag, sampleRate, n int) []byte {
	const (
		fmtSize  = 18
		factSize = 4
	)

	buf := bytes.NewBuffer(make([]byte, 0, 58))

	riffSize := 4 + (8 + fmtSize) + (8 + factSize) + (8 + n + n%2)

	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, uint32(riffSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(fmtSize))
	_ = binary.Write(buf, binary.LittleEndian, uint16(tag))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate)) // byte rate
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))          // block align
	_ = binary.Write(buf, binary.LittleEndian, uint16(8))
	_ = binary.Write(buf, binary.LittleEndian, uint16(0)) // cbSize

	buf.WriteString("fact")
	_ = binary.Write(buf, binary.LittleEndian, uint32(factSize))
	_ = binary.Write(buf, binary.LittleEndian, uint32(n))

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, uint32(n))

	return buf.Bytes()
}
