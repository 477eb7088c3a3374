package field

import "math"

// Frame is a read-only view of one time step.
type Frame struct {
	Index int

	rows, cols, chans int
	data              []float64
}

func (f Frame) Rows() int { return f.rows }
func (f Frame) Cols() int { return f.cols }

func (f Frame) at(r, c, ch int) float64 {
	return f.data[(r*f.cols+c)*f.chans+ch]
}

// X is the X coordinate of grid point (r, c).
func (f Frame) X(r, c int) float64 { return f.at(r, c, ChannelX) }

// Y is the Y coordinate of grid point (r, c).
func (f Frame) Y(r, c int) float64 { return f.at(r, c, ChannelY) }

// Value is the scalar field at grid point (r, c).
func (f Frame) Value(r, c int) float64 { return f.at(r, c, ChannelValue) }

// Values copies the scalar channel out in row-major order.
func (f Frame) Values() []float64 {
	out := make([]float64, 0, f.rows*f.cols)
	for i := ChannelValue; i < len(f.data); i += f.chans {
		out = append(out, f.data[i])
	}
	return out
}

// Raw is the frame's backing data, all channels. Callers must not modify it.
func (f Frame) Raw() []float64 { return f.data }

// Range returns the smallest and largest finite scalar values. A frame with
// no finite values reports NaN for both.
func (f Frame) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := ChannelValue; i < len(f.data); i += f.chans {
		v := f.data[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return math.NaN(), math.NaN()
	}
	return lo, hi
}
