package vocoder

import (
	"errors"
	"fmt"
)

const (
	defaultFrameSize = 1024
	defaultHop       = 256
	minFrameSize     = 64
)

// ErrInvalidArgument is returned for invalid configuration, rates or pitch
// offsets.
var ErrInvalidArgument = errors.New("vocoder: invalid argument")

// Option mutates vocoder construction parameters.
type Option func(*config) error

type config struct {
	frameSize int
	hop       int
}

func defaultConfig() config {
	return config{
		frameSize: defaultFrameSize,
		hop:       defaultHop,
	}
}

// WithFrameSize sets the FFT frame size. size must be a power of two and >= 64.
func WithFrameSize(size int) Option {
	return func(cfg *config) error {
		if size < minFrameSize || size&(size-1) != 0 {
			return fmt.Errorf("%w: frame size must be power-of-two and >= %d: %d",
				ErrInvalidArgument, minFrameSize, size)
		}

		cfg.frameSize = size

		return nil
	}
}

// WithHop sets the synthesis hop in samples. It must be smaller than the
// frame size once all options are applied.
func WithHop(hop int) Option {
	return func(cfg *config) error {
		if hop <= 0 {
			return fmt.Errorf("%w: hop must be > 0: %d", ErrInvalidArgument, hop)
		}

		cfg.hop = hop

		return nil
	}
}

func buildConfig(opts []Option) (config, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}

	if cfg.hop >= cfg.frameSize {
		return config{}, fmt.Errorf("%w: hop must be in [1, %d): %d", ErrInvalidArgument, cfg.frameSize, cfg.hop)
	}

	return cfg, nil
}
