package field

import "fmt"

// Channel indices inside one grid point.
const (
	ChannelKind = iota
	ChannelX
	ChannelY
	ChannelValue
)

const (
	DefaultFrames   = 1000
	DefaultRows     = 101
	DefaultCols     = 81
	DefaultChannels = 4
)

// Shape is the four-dimensional layout of a dump.
type Shape struct {
	Frames   int `yaml:"frames" json:"frames"`
	Rows     int `yaml:"rows" json:"rows"`
	Cols     int `yaml:"cols" json:"cols"`
	Channels int `yaml:"channels" json:"channels"`
}

// DefaultShape is the layout written by the heat solver: 1000 × 101 × 81 × 4.
func DefaultShape() Shape {
	return Shape{
		Frames:   DefaultFrames,
		Rows:     DefaultRows,
		Cols:     DefaultCols,
		Channels: DefaultChannels,
	}
}

// Size is the number of values the shape holds.
func (s Shape) Size() int {
	return s.Frames * s.Rows * s.Cols * s.Channels
}

// FrameSize is the number of values in one time step.
func (s Shape) FrameSize() int {
	return s.Rows * s.Cols * s.Channels
}

// Validate checks that every dimension is usable. Channels must include the
// value channel.
func (s Shape) Validate() error {
	if s.Frames <= 0 || s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidShape, s)
	}
	if s.Channels <= ChannelValue {
		return fmt.Errorf("%w: %s has %d channels, need at least %d", ErrInvalidShape, s, s.Channels, ChannelValue+1)
	}
	return nil
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", s.Frames, s.Rows, s.Cols, s.Channels)
}
