package orchestrators

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks errors caused by the caller's input rather than by
// storage. The wrapped domain error carries the detail.
var ErrInvalidInput = errors.New("invalid input")

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
