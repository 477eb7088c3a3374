package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldviz/internal/anim"
	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/render"
)

const (
	FormatGIF   = "gif"
	FormatMJPEG = "mjpeg"
)

type Config struct {
	Shape     field.Shape     `yaml:"shape"`
	Render    RenderConfig    `yaml:"render"`
	Animation AnimationConfig `yaml:"animation"`
	Show      bool            `yaml:"show"`
}

type RenderConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Levels   int    `yaml:"levels"`
	ColorMap string `yaml:"colormap"`
	Lines    bool   `yaml:"lines"`
	Title    string `yaml:"title"`
}

type AnimationConfig struct {
	Output     string `yaml:"output"`
	Format     string `yaml:"format"`
	IntervalMS int    `yaml:"interval_ms"`
}

func DefaultConfig() *Config {
	return &Config{
		Shape: field.DefaultShape(),
		Render: RenderConfig{
			Width:    render.DefaultWidth,
			Height:   render.DefaultHeight,
			Levels:   render.DefaultLevels,
			ColorMap: render.DefaultColorMap,
		},
		Animation: AnimationConfig{
			Output:     anim.DefaultOutput,
			Format:     FormatGIF,
			IntervalMS: anim.DefaultIntervalMS,
		},
		Show: true,
	}
}

// Load reads a YAML file over the defaults; keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Shape.Validate(); err != nil {
		return err
	}
	if _, err := render.New(c.RenderOptions()); err != nil {
		return err
	}
	switch c.Animation.Format {
	case FormatGIF, FormatMJPEG:
	default:
		return fmt.Errorf("config: unknown animation format %q", c.Animation.Format)
	}
	if c.Animation.IntervalMS <= 0 {
		return fmt.Errorf("config: interval must be positive, got %d", c.Animation.IntervalMS)
	}
	if c.Animation.Output == "" {
		return fmt.Errorf("config: empty animation output path")
	}
	return nil
}

func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Width:    c.Render.Width,
		Height:   c.Render.Height,
		Levels:   c.Render.Levels,
		ColorMap: c.Render.ColorMap,
		Lines:    c.Render.Lines,
		Title:    c.Render.Title,
	}
}
