package viewer

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/render"
)

// Hex formats c as #rrggbb.
func Hex(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// Sampler maps terminal cells onto grid cells, Y increasing upwards.
type Sampler struct {
	Grid   *field.Grid
	Width  int // terminal columns
	Height int // sample rows, two per terminal line
}

// At returns the grid value under sample (x, y), y counted from the top.
func (s Sampler) At(x, y int) float64 {
	cols, rows := s.Grid.Dims()
	gc := x * cols / s.Width
	gr := (s.Height - 1 - y) * rows / s.Height
	return s.Grid.Z(gc, gr)
}

// Heatmap paints f as half-block cells: each terminal line holds two samples,
// the upper one in the foreground and the lower one in the background.
func Heatmap(f field.Frame, cs *render.Contour, bands []color.Color, width, lines int) []string {
	s := Sampler{Grid: f.Grid(), Width: width, Height: lines * 2}
	hex := make([]lipgloss.Color, len(bands))
	for i, c := range bands {
		hex[i] = Hex(c)
	}

	out := make([]string, lines)
	var sb strings.Builder
	for l := 0; l < lines; l++ {
		sb.Reset()
		for x := 0; x < width; x++ {
			top := hex[cs.Band(s.At(x, 2*l))]
			bottom := hex[cs.Band(s.At(x, 2*l+1))]
			sb.WriteString(lipgloss.NewStyle().Foreground(top).Background(bottom).Render("▀"))
		}
		out[l] = sb.String()
	}
	return out
}

func swatch(c color.Color) string {
	return lipgloss.NewStyle().Background(Hex(c)).Render("  ")
}
