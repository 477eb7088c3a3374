package field

import "slices"

// Grid adapts a Frame to a rectilinear grid (gonum's plotter.GridXYZ).
//
// The solver writes meshes where X runs along the first spatial axis, so the
// adapter looks at which axis each coordinate channel varies along and maps
// that axis to plot columns. A strictly decreasing coordinate is flipped so
// the plot axis increases; any other coordinate that is not strictly
// increasing along its axis falls back to the grid index.
type Grid struct {
	f            Frame
	transposed   bool
	flipX, flipY bool
	xs, ys       []float64
}

// Grid builds the rectilinear adapter for f.
func (f Frame) Grid() *Grid {
	g := &Grid{f: f}

	// X varying down the rows means the first axis is horizontal.
	if f.rows > 1 && f.X(1, 0) != f.X(0, 0) && (f.cols < 2 || f.X(0, 1) == f.X(0, 0)) {
		g.transposed = true
	}

	c, r := g.Dims()
	g.xs = make([]float64, c)
	g.ys = make([]float64, r)
	for i := range g.xs {
		if g.transposed {
			g.xs[i] = f.X(i, 0)
		} else {
			g.xs[i] = f.X(0, i)
		}
	}
	for j := range g.ys {
		if g.transposed {
			g.ys[j] = f.Y(0, j)
		} else {
			g.ys[j] = f.Y(j, 0)
		}
	}
	g.flipX = orient(g.xs)
	g.flipY = orient(g.ys)
	return g
}

// Transposed reports whether frame rows are drawn as plot columns.
func (g *Grid) Transposed() bool { return g.transposed }

// Dims returns the number of plot columns and rows.
func (g *Grid) Dims() (c, r int) {
	if g.transposed {
		return g.f.rows, g.f.cols
	}
	return g.f.cols, g.f.rows
}

// Z returns the scalar value at plot cell (c, r).
func (g *Grid) Z(c, r int) float64 {
	if g.flipX {
		c = len(g.xs) - 1 - c
	}
	if g.flipY {
		r = len(g.ys) - 1 - r
	}
	if g.transposed {
		return g.f.Value(c, r)
	}
	return g.f.Value(r, c)
}

func (g *Grid) X(c int) float64 { return g.xs[c] }
func (g *Grid) Y(r int) float64 { return g.ys[r] }

func increasing(v []float64) bool {
	for i := 1; i < len(v); i++ {
		if !(v[i] > v[i-1]) {
			return false
		}
	}
	return true
}

// orient makes v strictly increasing: a decreasing axis is reversed, which
// is reported, and anything else becomes grid indices.
func orient(v []float64) (flipped bool) {
	if increasing(v) {
		return false
	}
	slices.Reverse(v)
	if len(v) > 1 && increasing(v) {
		return true
	}
	slices.Reverse(v)
	indexAxis(v)
	return false
}

func indexAxis(v []float64) {
	for i := range v {
		v[i] = float64(i)
	}
}
