package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for solver operations.
var (
	// ErrInvalidGeometry indicates extents or cell counts that cannot form a grid.
	ErrInvalidGeometry = errors.New("maxwell: invalid geometry")

	// ErrDimensionMismatch indicates grids whose shapes do not match the geometry.
	ErrDimensionMismatch = errors.New("maxwell: grid dimension mismatch")

	// ErrFlatGradient indicates a gradient too small to follow or invert.
	ErrFlatGradient = errors.New("maxwell: gradient vanishes")

	// ErrIterationLimit indicates an iterative search hit its step cap.
	ErrIterationLimit = errors.New("maxwell: iteration limit reached")

	// ErrMalformedCharges indicates charge data that could not be decoded.
	ErrMalformedCharges = errors.New("maxwell: malformed charge data")
)

// GridError wraps an error with the shapes involved.
type GridError struct {
	Op      string
	WantX   int
	WantY   int
	GotX    int
	GotY    int
	Wrapped error
}

func (e *GridError) Error() string {
	return fmt.Sprintf("%s: want %dx%d, got %dx%d: %v", e.Op, e.WantX, e.WantY, e.GotX, e.GotY, e.Wrapped)
}

func (e *GridError) Unwrap() error {
	return e.Wrapped
}
