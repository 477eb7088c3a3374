package render

import (
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/fieldviz/internal/field"
)

const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultLevels = 8
	MaxLevels     = 200

	barFraction = 0.16
)

// Options controls how frames are drawn.
type Options struct {
	Width    int
	Height   int
	Levels   int
	ColorMap string
	Lines    bool
	Title    string
}

// DefaultOptions draws 640×480 plasma plots with eight filled bands.
func DefaultOptions() Options {
	return Options{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Levels:   DefaultLevels,
		ColorMap: DefaultColorMap,
	}
}

// Renderer draws filled contour plots of field frames.
type Renderer struct {
	opts Options
}

// New validates opts and returns a renderer.
func New(opts Options) (*Renderer, error) {
	if opts.Width < 64 || opts.Height < 64 {
		return nil, fmt.Errorf("render: image %dx%d too small", opts.Width, opts.Height)
	}
	if opts.Levels < 2 || opts.Levels > MaxLevels {
		return nil, fmt.Errorf("render: levels must be in [2, %d], got %d", MaxLevels, opts.Levels)
	}
	if _, err := NewColorMap(opts.ColorMap); err != nil {
		return nil, err
	}
	return &Renderer{opts: opts}, nil
}

func (r *Renderer) Options() Options { return r.opts }

// Measure computes the mapping Draw would use for f.
func (r *Renderer) Measure(f field.Frame) *Contour {
	return Measure(f, r.opts.Levels)
}

// Draw renders f as a filled contour plot scaled to f's own range. When bar
// is non-nil a colour bar keyed to bar's mapping is drawn beside the plot.
func (r *Renderer) Draw(f field.Frame, bar *Contour) (*image.RGBA, *Contour, error) {
	cs := r.Measure(f)

	cv := vgimg.NewWith(vgimg.UseImage(image.NewRGBA(image.Rect(0, 0, r.opts.Width, r.opts.Height))))
	dc := draw.New(cv)

	p, err := r.contourPlot(f, cs)
	if err != nil {
		return nil, nil, err
	}

	if bar == nil {
		p.Draw(dc)
		return toRGBA(cv.Image()), cs, nil
	}

	w := dc.Max.X - dc.Min.X
	split := vg.Length(float64(w) * (1 - barFraction))
	p.Draw(draw.Crop(dc, 0, split-w, 0, 0))

	cb, err := r.colorBar(bar)
	if err != nil {
		return nil, nil, err
	}
	cb.Draw(draw.Crop(dc, split, 0, 0, 0))

	return toRGBA(cv.Image()), cs, nil
}

// toRGBA returns the canvas image as *image.RGBA. The canvas draws into its
// own copy of the image it was created from.
func toRGBA(img stddraw.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	stddraw.Draw(out, out.Bounds(), img, b.Min, stddraw.Src)
	return out
}

// RenderLatest draws the final frame of src with a colour bar keyed to that
// frame. No other frame is requested from src.
func (r *Renderer) RenderLatest(src field.FrameSource) (*image.RGBA, *Contour, error) {
	n := src.Len()
	if n == 0 {
		return nil, nil, field.ErrFrameRange
	}
	f := src.Frame(n - 1)
	return r.Draw(f, r.Measure(f))
}

func (r *Renderer) contourPlot(f field.Frame, cs *Contour) (*plot.Plot, error) {
	bands, err := r.bandPalette(cs)
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = r.opts.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	grid := f.Grid()
	hm := plotter.NewHeatMap(bandGrid{grid: grid, cs: cs}, bands)
	hm.Min, hm.Max = 0, float64(cs.Bands()-1)
	p.Add(hm)

	if r.opts.Lines && !cs.Uniform() {
		lines := plotter.NewContour(grid, cs.Inner(), linePalette{})
		p.Add(lines)
	}
	return p, nil
}

func (r *Renderer) colorBar(cs *Contour) (*plot.Plot, error) {
	cm, err := NewColorMap(r.opts.ColorMap)
	if err != nil {
		return nil, err
	}
	lo, hi := cs.Span()
	cm.SetMax(hi)
	cm.SetMin(lo)

	p := plot.New()
	p.HideX()
	p.Y.Padding = 0
	p.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true, Colors: cs.Bands()})
	return p, nil
}

// Palette is a GIF-sized palette holding the exact band colours, a grey ramp
// for axes and text, and an even sampling of the colour map for the bar.
func (r *Renderer) Palette() (color.Palette, error) {
	cm, err := NewColorMap(r.opts.ColorMap)
	if err != nil {
		return nil, err
	}
	bands, err := BandColors(cm, r.opts.Levels)
	if err != nil {
		return nil, err
	}

	pal := make(color.Palette, 0, 256)
	pal = append(pal, bands...)
	for i := 0; i < 16; i++ {
		v := uint8(i * 17)
		pal = append(pal, color.RGBA{R: v, G: v, B: v, A: 0xff})
	}
	fill := 256 - len(pal)
	for i := 0; i < fill; i++ {
		c, err := cm.At(float64(i) / float64(max(fill-1, 1)))
		if err != nil {
			return nil, err
		}
		pal = append(pal, c)
	}
	return pal, nil
}

// bandPalette samples the colour map at the middle of every band.
func (r *Renderer) bandPalette(cs *Contour) (palette.Palette, error) {
	cm, err := NewColorMap(r.opts.ColorMap)
	if err != nil {
		return nil, err
	}
	return BandColors(cm, cs.Bands())
}

// BandColors samples a [0, 1] colour map at the centres of n bands.
func BandColors(cm palette.ColorMap, n int) (Colors, error) {
	out := make(Colors, n)
	for i := range out {
		c, err := cm.At((float64(i) + 0.5) / float64(n))
		if err != nil {
			return nil, fmt.Errorf("render: sampling band %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

// Colors is a fixed palette.Palette.
type Colors []color.Color

func (c Colors) Colors() []color.Color { return c }

// bandGrid replaces every cell value by its band index so the heat map
// fills whole bands.
type bandGrid struct {
	grid *field.Grid
	cs   *Contour
}

func (g bandGrid) Dims() (c, r int)   { return g.grid.Dims() }
func (g bandGrid) X(c int) float64    { return g.grid.X(c) }
func (g bandGrid) Y(r int) float64    { return g.grid.Y(r) }
func (g bandGrid) Z(c, r int) float64 { return float64(g.cs.Band(g.grid.Z(c, r))) }

type linePalette struct{}

func (linePalette) Colors() []color.Color {
	return []color.Color{color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xa0}}
}
