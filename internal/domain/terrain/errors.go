package terrain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("invalid world dimensions")
	ErrDegenerateNoise   = errors.New("degenerate noise range")
	ErrOutOfBounds       = errors.New("coordinates out of bounds")
	ErrUnknownNoise      = errors.New("unknown noise kind")
	ErrUnknownDirection  = errors.New("unknown direction")
)

type OutOfBoundsError struct {
	X    int
	Y    int
	Size int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s: (%d,%d) outside [0,%d)", ErrOutOfBounds.Error(), e.X, e.Y, e.Size)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
