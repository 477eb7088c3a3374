package render

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// DefaultColorMap matches the colour scheme the solver's plots used.
const DefaultColorMap = "plasma"

// plasmaControls are anchor colours of the plasma map, in increasing
// luminance.
var plasmaControls = []color.Color{
	color.NRGBA{R: 0x0d, G: 0x08, B: 0x87, A: 0xff},
	color.NRGBA{R: 0x6a, G: 0x00, B: 0xa8, A: 0xff},
	color.NRGBA{R: 0xb1, G: 0x2a, B: 0x90, A: 0xff},
	color.NRGBA{R: 0xe1, G: 0x64, B: 0x62, A: 0xff},
	color.NRGBA{R: 0xfc, G: 0xa6, B: 0x36, A: 0xff},
	color.NRGBA{R: 0xf0, G: 0xf9, B: 0x21, A: 0xff},
}

var colorMaps = map[string]func() (palette.ColorMap, error){
	"plasma":             func() (palette.ColorMap, error) { return moreland.NewLuminance(plasmaControls) },
	"blackbody":          infallible(moreland.BlackBody),
	"extended-blackbody": infallible(moreland.ExtendedBlackBody),
	"kindlmann":          infallible(moreland.Kindlmann),
	"smooth-blue-red":    func() (palette.ColorMap, error) { return moreland.SmoothBlueRed(), nil },
}

func infallible(f func() palette.ColorMap) func() (palette.ColorMap, error) {
	return func() (palette.ColorMap, error) { return f(), nil }
}

// NewColorMap returns a fresh colour map spanning [0, 1]. Each call returns a
// new value so callers can rescale it freely.
func NewColorMap(name string) (palette.ColorMap, error) {
	if name == "" {
		name = DefaultColorMap
	}
	mk, ok := colorMaps[name]
	if !ok {
		return nil, fmt.Errorf("render: unknown colormap %q (available: %v)", name, ColorMapNames())
	}
	cm, err := mk()
	if err != nil {
		return nil, fmt.Errorf("render: building colormap %q: %w", name, err)
	}
	cm.SetMin(0)
	cm.SetMax(1)
	return cm, nil
}

// ColorMapNames lists the registered colour maps in sorted order.
func ColorMapNames() []string {
	names := make([]string, 0, len(colorMaps))
	for name := range colorMaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
