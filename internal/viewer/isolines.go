package viewer

import (
	"math"

	"github.com/san-kum/fieldviz/internal/field"
)

// Point is a position in grid index space.
type Point struct{ X, Y float64 }

// Segment is one piece of a contour line inside a grid cell.
type Segment struct{ A, B Point }

// Isolines traces the level curves of g with marching squares. Saddle cells
// are resolved by connecting crossings in edge order.
func Isolines(g *field.Grid, levels []float64) []Segment {
	cols, rows := g.Dims()
	var segs []Segment
	var pts []Point

	for _, lv := range levels {
		for r := 0; r+1 < rows; r++ {
			for c := 0; c+1 < cols; c++ {
				z00, z10 := g.Z(c, r), g.Z(c+1, r)
				z01, z11 := g.Z(c, r+1), g.Z(c+1, r+1)

				pts = pts[:0]
				x0, y0 := float64(c), float64(r)
				if p, ok := crossing(z00, z10, lv); ok {
					pts = append(pts, Point{x0 + p, y0})
				}
				if p, ok := crossing(z10, z11, lv); ok {
					pts = append(pts, Point{x0 + 1, y0 + p})
				}
				if p, ok := crossing(z01, z11, lv); ok {
					pts = append(pts, Point{x0 + p, y0 + 1})
				}
				if p, ok := crossing(z00, z01, lv); ok {
					pts = append(pts, Point{x0, y0 + p})
				}
				for i := 0; i+1 < len(pts); i += 2 {
					segs = append(segs, Segment{pts[i], pts[i+1]})
				}
			}
		}
	}
	return segs
}

// crossing returns where along the edge from a to b the level is crossed, as
// a fraction of the edge. Values equal to the level count as above it.
func crossing(a, b, level float64) (float64, bool) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0, false
	}
	if (a < level) == (b < level) {
		return 0, false
	}
	return (level - a) / (b - a), true
}

// Trace draws segs onto the canvas, scaling grid space to the canvas dots
// with Y pointing up.
func Trace(cv *Canvas, segs []Segment, cols, rows int) {
	w, h := cv.Dots()
	sx := float64(w-1) / math.Max(float64(cols-1), 1)
	sy := float64(h-1) / math.Max(float64(rows-1), 1)
	for _, s := range segs {
		cv.DrawLine(
			int(math.Round(s.A.X*sx)), h-1-int(math.Round(s.A.Y*sy)),
			int(math.Round(s.B.X*sx)), h-1-int(math.Round(s.B.Y*sy)),
		)
	}
}
