// Package export writes contour lines as vector graphics.
package export

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/san-kum/fieldviz/internal/viewer"
)

// Layer is the set of isoline segments at one level.
type Layer struct {
	Level    float64
	Color    color.Color
	Segments []viewer.Segment
}

// IsolineSVG writes layers as an SVG document of width x height pixels. The
// grid spans cols x rows cells with Y pointing up; a tenth of each axis is
// left as padding.
func IsolineSVG(w io.Writer, layers []Layer, cols, rows, width, height int) error {
	bw := bufio.NewWriter(w)

	padX, padY := float64(width)*0.1, float64(height)*0.1
	sx := (float64(width) - 2*padX) / math.Max(float64(cols-1), 1)
	sy := (float64(height) - 2*padY) / math.Max(float64(rows-1), 1)
	px := func(p viewer.Point) (float64, float64) {
		return padX + p.X*sx, float64(height) - padY - p.Y*sy
	}

	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for _, l := range layers {
		if len(l.Segments) == 0 {
			continue
		}
		fmt.Fprintf(bw, `<path fill="none" stroke="%s" stroke-width="1.5" data-level="%g" d="`, viewer.Hex(l.Color), l.Level)
		for i, s := range l.Segments {
			ax, ay := px(s.A)
			bx, by := px(s.B)
			if i > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "M%.1f,%.1f L%.1f,%.1f", ax, ay, bx, by)
		}
		bw.WriteString("\"/>\n")
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}
