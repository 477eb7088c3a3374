package render

import (
	"math"

	"github.com/san-kum/fieldviz/internal/field"
)

// Contour is the mapping used to draw one frame: its value range and the
// level boundaries of the filled bands.
type Contour struct {
	Frame  int
	Min    float64
	Max    float64
	Levels []float64
}

// Measure computes the contour mapping of f with n filled bands.
func Measure(f field.Frame, n int) *Contour {
	if n < 1 {
		n = 1
	}
	lo, hi := f.Range()
	c := &Contour{Frame: f.Index, Min: lo, Max: hi}

	slo, shi := c.Span()
	c.Levels = make([]float64, n+1)
	for i := range c.Levels {
		c.Levels[i] = slo + (shi-slo)*float64(i)/float64(n)
	}
	return c
}

// Uniform reports whether the frame held a single value.
func (c *Contour) Uniform() bool {
	return c.Min == c.Max
}

// Span is the range colours are spread over. A uniform field is widened by
// half a unit each way so its value sits in the middle band.
func (c *Contour) Span() (lo, hi float64) {
	lo, hi = c.Min, c.Max
	switch {
	case math.IsNaN(lo) || math.IsNaN(hi):
		return 0, 1
	case lo == hi:
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}

// Bands is the number of filled bands.
func (c *Contour) Bands() int {
	return len(c.Levels) - 1
}

// Band returns the index of the filled band v falls into, clamped to the
// outermost bands.
func (c *Contour) Band(v float64) int {
	n := c.Bands()
	lo, hi := c.Span()
	if n <= 0 || math.IsNaN(v) {
		return 0
	}
	i := int(math.Floor((v - lo) / (hi - lo) * float64(n)))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Inner returns the level boundaries strictly inside the span, the values
// where contour lines are drawn.
func (c *Contour) Inner() []float64 {
	if len(c.Levels) <= 2 {
		return nil
	}
	return c.Levels[1 : len(c.Levels)-1]
}
