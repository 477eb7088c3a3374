package field

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput indicates the dump cannot be parsed or reshaped.
	ErrMalformedInput = errors.New("field: malformed input")

	// ErrInvalidShape indicates a shape with a non-positive dimension.
	ErrInvalidShape = errors.New("field: invalid shape")

	// ErrFrameRange indicates a frame index outside the tensor.
	ErrFrameRange = errors.New("field: frame index out of range")
)

// ParseError reports a token that is not a floating point number.
type ParseError struct {
	Line  int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("field: line %d: invalid value %q: %v", e.Line, e.Token, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformedInput, e.Err}
}

// ShapeError reports a token count that cannot be reshaped into the shape.
type ShapeError struct {
	Shape Shape
	Got   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("field: cannot reshape %d values into %s (need %d)", e.Got, e.Shape, e.Shape.Size())
}

func (e *ShapeError) Unwrap() error {
	return ErrMalformedInput
}
