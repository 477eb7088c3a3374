// Package cli builds the fieldviz and fieldvizctl command trees.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/san-kum/fieldviz/internal/anim"
	"github.com/san-kum/fieldviz/internal/config"
	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/render"
	"github.com/san-kum/fieldviz/internal/report"
	"github.com/san-kum/fieldviz/internal/stats"
	"github.com/san-kum/fieldviz/internal/viewer"
)

const (
	modeLatest  = "latest"
	modeAnimate = "animate"
)

var errMissingMode = errors.New("missing mode argument: pass -l for the final frame or any argument to animate")

// app holds the flag values of one command tree.
type app struct {
	configFile string
	preset     string
	verbose    bool

	frames, rows, cols int
	width, height      int
	levels             int
	colorMap           string
	lines              bool
	title              string

	out        string
	format     string
	intervalMS int
	pngPath    string
	reportDir  string
	noShow     bool
}

// NewRootCmd builds the fieldviz command. Its first argument selects the
// mode: "-l" plots the final frame, anything else animates every frame. Flags
// follow the mode argument.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "fieldviz (-l | MODE) [flags] < dump.txt",
		Short: "contour plots of a 2-D field dump read from stdin",
		Long: `fieldviz reads a flattened frames x rows x cols x 4 dump of a 2-D field
from stdin. With -l as its first argument it plots the final frame; with any
other first argument it renders every frame into an animation (ani.gif by
default).`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE:               a.runRoot,
	}

	a.commonFlags(rootCmd.Flags())
	f := rootCmd.Flags()
	f.StringVarP(&a.out, "out", "o", anim.DefaultOutput, "animation output file")
	f.StringVar(&a.format, "format", config.FormatGIF, "animation format (gif, mjpeg)")
	f.IntVar(&a.intervalMS, "interval", anim.DefaultIntervalMS, "frame interval in milliseconds")
	f.StringVar(&a.pngPath, "png", "", "also save the final frame plot as PNG (with -l)")
	f.StringVar(&a.reportDir, "report", "", "write a run manifest and frame statistics to this directory")
	f.BoolVar(&a.noShow, "no-show", false, "do not open the interactive viewer")
	return rootCmd
}

// NewToolsCmd builds fieldvizctl, the companion commands working on the same
// dumps and configuration.
func NewToolsCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "fieldvizctl",
		Short:        "statistics, single frames and configuration for fieldviz",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), a.verbose)
		},
	}
	a.commonFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		a.statsCmd(),
		a.frameCmd(),
		a.initConfigCmd(),
		a.presetsCmd(),
	)
	return rootCmd
}

func (a *app) commonFlags(fs *pflag.FlagSet) {
	fs.StringVar(&a.configFile, "config", "", "config file path (yaml)")
	fs.StringVar(&a.preset, "preset", "", "use preset configuration")
	fs.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	fs.IntVar(&a.frames, "frames", field.DefaultFrames, "frames in the dump")
	fs.IntVar(&a.rows, "rows", field.DefaultRows, "grid rows per frame")
	fs.IntVar(&a.cols, "cols", field.DefaultCols, "grid columns per frame")
	fs.IntVar(&a.width, "width", render.DefaultWidth, "image width in pixels")
	fs.IntVar(&a.height, "height", render.DefaultHeight, "image height in pixels")
	fs.IntVar(&a.levels, "levels", render.DefaultLevels, "number of filled contour bands")
	fs.StringVar(&a.colorMap, "colormap", render.DefaultColorMap, "colour map")
	fs.BoolVar(&a.lines, "lines", false, "draw contour lines over the bands")
	fs.StringVar(&a.title, "title", "", "plot title")
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// selectMode compares the first argument literally against "-l". Any other
// first argument animates; the remaining arguments are flags.
func selectMode(args []string) (mode string, rest []string, err error) {
	if len(args) == 0 {
		return "", nil, errMissingMode
	}
	if args[0] == "-l" {
		return modeLatest, args[1:], nil
	}
	return modeAnimate, args[1:], nil
}

// resolveConfig layers the config file, the preset and explicitly set flags,
// in that order.
func (a *app) resolveConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if a.configFile != "" {
		loaded, err := config.Load(a.configFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if a.preset != "" && !config.Apply(cfg, a.preset) {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", a.preset, config.ListPresets())
	}

	if flags.Changed("frames") {
		cfg.Shape.Frames = a.frames
	}
	if flags.Changed("rows") {
		cfg.Shape.Rows = a.rows
	}
	if flags.Changed("cols") {
		cfg.Shape.Cols = a.cols
	}
	if flags.Changed("width") {
		cfg.Render.Width = a.width
	}
	if flags.Changed("height") {
		cfg.Render.Height = a.height
	}
	if flags.Changed("levels") {
		cfg.Render.Levels = a.levels
	}
	if flags.Changed("colormap") {
		cfg.Render.ColorMap = a.colorMap
	}
	if flags.Changed("lines") {
		cfg.Render.Lines = a.lines
	}
	if flags.Changed("title") {
		cfg.Render.Title = a.title
	}
	if flags.Lookup("out") != nil && flags.Changed("out") {
		cfg.Animation.Output = a.out
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Animation.Format = a.format
	}
	if flags.Lookup("interval") != nil && flags.Changed("interval") {
		cfg.Animation.IntervalMS = a.intervalMS
	}
	if a.noShow {
		cfg.Show = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadInput(cmd *cobra.Command, shape field.Shape) (*field.Tensor, error) {
	start := time.Now()
	tn, err := field.Load(cmd.InOrStdin(), shape)
	if err != nil {
		return nil, err
	}
	slog.Debug("input loaded", "shape", shape.String(), "elapsed", time.Since(start))
	return tn, nil
}

func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	mode, rest, err := selectMode(args)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if err := flags.Parse(rest); err != nil {
		return err
	}
	if help, _ := flags.GetBool("help"); help {
		return cmd.Help()
	}
	setupLogging(cmd.ErrOrStderr(), a.verbose)
	if extra := flags.Args(); len(extra) > 0 {
		slog.Debug("ignoring extra arguments", "args", extra)
	}

	cfg, err := a.resolveConfig(flags)
	if err != nil {
		return err
	}
	tn, err := loadInput(cmd, cfg.Shape)
	if err != nil {
		return err
	}
	r, err := render.New(cfg.RenderOptions())
	if err != nil {
		return err
	}

	if mode == modeLatest {
		return a.runLatest(cfg, r, tn)
	}
	return a.runAnimate(cmd, cfg, r, tn)
}

func (a *app) runLatest(cfg *config.Config, r *render.Renderer, tn *field.Tensor) error {
	start := time.Now()
	img, cs, err := r.RenderLatest(tn)
	if err != nil {
		return err
	}
	slog.Info("rendered final frame", "frame", cs.Frame, "min", cs.Min, "max", cs.Max, "uniform", cs.Uniform())

	if a.pngPath != "" {
		if err := render.SavePNG(a.pngPath, img); err != nil {
			return err
		}
		slog.Info("saved plot", "path", a.pngPath)
	}

	if a.reportDir != "" {
		m := a.manifest(modeLatest, cfg, tn, time.Since(start))
		m.Output = a.pngPath
		m.Frames = 1
		m.Stats = []stats.FrameStats{stats.Of(tn.Last())}
		if err := report.New(a.reportDir).Write(m); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	if !showViewer(cfg) {
		return nil
	}
	return viewer.Run(tn, viewer.Options{
		Title:    cfg.Render.Title,
		Frames:   viewer.LastFrame(tn),
		Levels:   cfg.Render.Levels,
		ColorMap: cfg.Render.ColorMap,
		Bar:      cs,
	})
}

func (a *app) runAnimate(cmd *cobra.Command, cfg *config.Config, r *render.Renderer, tn *field.Tensor) error {
	sink, err := newSink(cfg, r)
	if err != nil {
		return err
	}

	start := time.Now()
	st, err := anim.Run(cmd.Context(), r, tn, sink, anim.NewBar(cmd.ErrOrStderr(), 50))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	slog.Info("wrote animation", "path", cfg.Animation.Output, "frames", st.Index, "elapsed", elapsed)

	var all []stats.FrameStats
	if a.reportDir != "" || showViewer(cfg) {
		all = stats.Collect(tn)
	}

	if a.reportDir != "" {
		m := a.manifest(modeAnimate, cfg, tn, elapsed)
		m.Output = cfg.Animation.Output
		m.Format = cfg.Animation.Format
		m.IntervalMS = cfg.Animation.IntervalMS
		m.Frames = st.Index
		m.Stats = all
		if err := report.New(a.reportDir).Write(m); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}

	if !showViewer(cfg) {
		return nil
	}
	return viewer.Run(tn, viewer.Options{
		Title:    cfg.Render.Title,
		Frames:   viewer.AllFrames(tn),
		Interval: time.Duration(cfg.Animation.IntervalMS) * time.Millisecond,
		Levels:   cfg.Render.Levels,
		ColorMap: cfg.Render.ColorMap,
		Bar:      st.Bar,
		Means:    stats.Series(all, func(s stats.FrameStats) float64 { return s.Mean }),
	})
}

func newSink(cfg *config.Config, r *render.Renderer) (anim.Sink, error) {
	switch cfg.Animation.Format {
	case config.FormatMJPEG:
		return anim.NewMJPEGSink(cfg.Animation.Output, cfg.Animation.IntervalMS), nil
	default:
		pal, err := r.Palette()
		if err != nil {
			return nil, err
		}
		return anim.NewGIFSink(cfg.Animation.Output, pal, cfg.Animation.IntervalMS), nil
	}
}

func (a *app) manifest(mode string, cfg *config.Config, tn *field.Tensor, elapsed time.Duration) *report.Manifest {
	return &report.Manifest{
		Mode:     mode,
		Shape:    tn.Shape(),
		ColorMap: cfg.Render.ColorMap,
		Levels:   cfg.Render.Levels,
		Created:  time.Now(),
		Elapsed:  elapsed,
	}
}

// showViewer reports whether the interactive viewer should open: it needs
// the config to allow it and a terminal on stdout.
func showViewer(cfg *config.Config) bool {
	return cfg.Show && isatty.IsTerminal(os.Stdout.Fd())
}
