package wav

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat is returned for WAVE data this package cannot decode
// or an Encoding it cannot write.
var ErrUnsupportedFormat = errors.New("wav: unsupported format")

// Encoding selects the sample format written by Encode.
type Encoding int

const (
	// PCM16 is 16-bit signed linear PCM.
	PCM16 Encoding = iota
	// PCM24 is 24-bit signed linear PCM.
	PCM24
	// ULaw is 8-bit G.711 µ-law.
	ULaw
	// ALaw is 8-bit G.711 A-law.
	ALaw
)

// WAVE format tags.
const (
	formatPCM  = 1
	formatALaw = 6
	formatULaw = 7
)

var encodingNames = [...]string{
	PCM16: "pcm16",
	PCM24: "pcm24",
	ULaw:  "ulaw",
	ALaw:  "alaw",
}

func (e Encoding) String() string {
	if e < 0 || int(e) >= len(encodingNames) {
		return fmt.Sprintf("Encoding(%d)", int(e))
	}

	return encodingNames[e]
}

// ParseEncoding maps a name such as "pcm16" or "ulaw" to an Encoding.
func ParseEncoding(name string) (Encoding, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range encodingNames {
		if s == n {
			return Encoding(i), nil
		}
	}

	switch n {
	case "pcm_16", "s16":
		return PCM16, nil
	case "pcm_24", "s24":
		return PCM24, nil
	case "mulaw", "u-law", "µ-law":
		return ULaw, nil
	case "a-law":
		return ALaw, nil
	}

	return 0, fmt.Errorf("%w: unknown encoding %q", ErrUnsupportedFormat, name)
}

func (e Encoding) bitDepth() int {
	switch e {
	case PCM16:
		return 16
	case PCM24:
		return 24
	default:
		return 8
	}
}
