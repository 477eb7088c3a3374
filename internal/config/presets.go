package config

import "sort"

// Presets adjust the defaults for common jobs. "last-layer" reads dumps the
// solver wrote with only its final time layer.
var Presets = map[string]func(*Config){
	"preview": func(c *Config) {
		c.Render.Width, c.Render.Height = 320, 240
		c.Render.Levels = 6
	},
	"poster": func(c *Config) {
		c.Render.Width, c.Render.Height = 1280, 960
		c.Render.Levels = 16
		c.Render.Lines = true
	},
	"last-layer": func(c *Config) {
		c.Shape.Frames = 1
	},
	"video": func(c *Config) {
		c.Animation.Format = FormatMJPEG
		c.Animation.Output = "ani.avi"
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// Apply modifies cfg in place with the named preset.
func Apply(cfg *Config, name string) bool {
	apply, ok := Presets[name]
	if ok {
		apply(cfg)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
