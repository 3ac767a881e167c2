package peak

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned for an empty signal or a non-positive window size.
var ErrInvalidInput = errors.New("peak: invalid input")

func validate(n, windowSize int) error {
	if n == 0 {
		return fmt.Errorf("%w: empty signal", ErrInvalidInput)
	}
	if windowSize < 1 {
		return fmt.Errorf("%w: window size must be >= 1: %d", ErrInvalidInput, windowSize)
	}
	return nil
}
