package window

import (
	"errors"
	"fmt"
)

// ErrInvalidLength is returned for a window size below one.
var ErrInvalidLength = errors.New("window: invalid length")

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: size must be > 0: %d", ErrInvalidLength, size)
	}

	return nil
}
