package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fieldviz/internal/config"
	"github.com/san-kum/fieldviz/internal/export"
	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/render"
	"github.com/san-kum/fieldviz/internal/stats"
	"github.com/san-kum/fieldviz/internal/viewer"
)

func (a *app) statsCmd() *cobra.Command {
	var csvPath string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "plot per-frame min, mean and max of the dump",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.resolveConfig(cmd.Flags())
			if err != nil {
				return err
			}
			tn, err := loadInput(cmd, cfg.Shape)
			if err != nil {
				return err
			}
			all := stats.Collect(tn)

			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return err
				}
				if err := stats.WriteCSV(f, all); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				slog.Info("wrote frame statistics", "path", csvPath, "frames", len(all))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "field statistics: %s\n\n", tn.Shape())
			series := []struct {
				caption string
				pick    func(stats.FrameStats) float64
			}{
				{"max", func(s stats.FrameStats) float64 { return s.Max }},
				{"mean", func(s stats.FrameStats) float64 { return s.Mean }},
				{"min", func(s stats.FrameStats) float64 { return s.Min }},
			}
			if len(all) > 1 {
				for _, s := range series {
					graph := asciigraph.Plot(stats.Series(all, s.pick),
						asciigraph.Height(10),
						asciigraph.Width(80),
						asciigraph.Caption(s.caption),
					)
					fmt.Fprintln(out, graph)
					fmt.Fprintln(out)
				}
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FRAME\tMIN\tMAX\tMEAN\tSTDDEV\tCHECKSUM")
			for _, i := range []int{0, len(all) - 1} {
				s := all[i]
				fmt.Fprintf(w, "%d\t%.6g\t%.6g\t%.6g\t%.6g\t%s\n", s.Frame, s.Min, s.Max, s.Mean, s.StdDev, s.Checksum)
				if len(all) == 1 {
					break
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "also write the statistics to a CSV file")
	return cmd
}

func (a *app) frameCmd() *cobra.Command {
	var output, svgPath string
	cmd := &cobra.Command{
		Use:   "frame N",
		Short: "render frame N to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid frame index %q", args[0])
			}
			cfg, err := a.resolveConfig(cmd.Flags())
			if err != nil {
				return err
			}
			tn, err := loadInput(cmd, cfg.Shape)
			if err != nil {
				return err
			}
			f, err := tn.FrameAt(n)
			if err != nil {
				return err
			}
			r, err := render.New(cfg.RenderOptions())
			if err != nil {
				return err
			}
			img, cs, err := r.Draw(f, r.Measure(f))
			if err != nil {
				return err
			}
			if output == "" {
				output = fmt.Sprintf("frame_%04d.png", n)
			}
			if err := render.SavePNG(output, img); err != nil {
				return err
			}
			slog.Info("saved plot", "path", output, "frame", n, "min", cs.Min, "max", cs.Max)

			if svgPath != "" {
				if err := writeIsolines(svgPath, f, cs, cfg); err != nil {
					return err
				}
				slog.Info("saved isolines", "path", svgPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG path (default frame_NNNN.png)")
	cmd.Flags().StringVar(&svgPath, "svg", "", "also write the contour lines as SVG")
	return cmd
}

// writeIsolines saves the level lines between the filled bands of f, each
// drawn in the colour of the band above it.
func writeIsolines(path string, f field.Frame, cs *render.Contour, cfg *config.Config) error {
	cm, err := render.NewColorMap(cfg.Render.ColorMap)
	if err != nil {
		return err
	}
	bands, err := render.BandColors(cm, cs.Bands())
	if err != nil {
		return err
	}

	g := f.Grid()
	var layers []export.Layer
	if !cs.Uniform() {
		for i, lv := range cs.Inner() {
			layers = append(layers, export.Layer{
				Level:    lv,
				Color:    bands[i+1],
				Segments: viewer.Isolines(g, []float64{lv}),
			})
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	c, r := g.Dims()
	if err := export.IsolineSVG(out, layers, c, r, cfg.Render.Width, cfg.Render.Height); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (a *app) initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config FILE",
		Short: "write the effective configuration as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.resolveConfig(cmd.Flags())
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
}

func (a *app) presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tFRAMES\tSIZE\tLEVELS\tLINES\tOUTPUT")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%dx%d\t%d\t%v\t%s (%s)\n", name, cfg.Shape.Frames,
					cfg.Render.Width, cfg.Render.Height, cfg.Render.Levels, cfg.Render.Lines,
					cfg.Animation.Output, cfg.Animation.Format)
			}
			return w.Flush()
		},
	}
}
