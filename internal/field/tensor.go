package field

import "fmt"

// Tensor is the immutable field tensor of a whole run.
type Tensor struct {
	shape Shape
	data  []float64
}

// FrameSource is anything that hands out frames by time index.
type FrameSource interface {
	Len() int
	Frame(t int) Frame
}

// New wraps data, which must hold exactly shape.Size() values in row-major
// order. The slice is owned by the tensor afterwards.
func New(shape Shape, data []float64) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.Size() {
		return nil, &ShapeError{Shape: shape, Got: len(data)}
	}
	return &Tensor{shape: shape, data: data}, nil
}

func (t *Tensor) Shape() Shape { return t.shape }

// Len is the number of time steps.
func (t *Tensor) Len() int { return t.shape.Frames }

// At returns the value at (time, row, col, channel).
func (t *Tensor) At(ti, r, c, ch int) float64 {
	return t.data[t.index(ti, r, c, ch)]
}

func (t *Tensor) index(ti, r, c, ch int) int {
	s := t.shape
	return ((ti*s.Rows+r)*s.Cols+c)*s.Channels + ch
}

// Frame returns a view of time step ti. It panics when ti is out of range,
// like slice indexing; use FrameAt for a checked lookup.
func (t *Tensor) Frame(ti int) Frame {
	if ti < 0 || ti >= t.shape.Frames {
		panic(fmt.Sprintf("field: frame %d out of range [0, %d)", ti, t.shape.Frames))
	}
	n := t.shape.FrameSize()
	return Frame{
		Index: ti,
		rows:  t.shape.Rows,
		cols:  t.shape.Cols,
		chans: t.shape.Channels,
		data:  t.data[ti*n : (ti+1)*n : (ti+1)*n],
	}
}

// FrameAt is Frame with an error instead of a panic.
func (t *Tensor) FrameAt(ti int) (Frame, error) {
	if ti < 0 || ti >= t.shape.Frames {
		return Frame{}, fmt.Errorf("%w: %d not in [0, %d)", ErrFrameRange, ti, t.shape.Frames)
	}
	return t.Frame(ti), nil
}

// Last returns the final time step.
func (t *Tensor) Last() Frame {
	return t.Frame(t.shape.Frames - 1)
}
