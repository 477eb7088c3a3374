package anim_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fieldviz/internal/anim"
	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/render"
)

func tensor(frames, rows, cols int, value func(ti, r, c int) float64) *field.Tensor {
	shape := field.Shape{Frames: frames, Rows: rows, Cols: cols, Channels: 4}
	data := make([]float64, 0, shape.Size())
	for ti := 0; ti < frames; ti++ {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				data = append(data, 0, float64(r), float64(c), value(ti, r, c))
			}
		}
	}
	t, err := field.New(shape, data)
	Expect(err).NotTo(HaveOccurred())
	return t
}

func smallRenderer() *render.Renderer {
	opts := render.DefaultOptions()
	opts.Width, opts.Height = 96, 72
	r, err := render.New(opts)
	Expect(err).NotTo(HaveOccurred())
	return r
}

// recordingSink keeps the order frames arrive in.
type recordingSink struct {
	frames []int
	closed bool
}

func (s *recordingSink) Add(i int, _ image.Image) error {
	s.frames = append(s.frames, i)
	return nil
}

func (s *recordingSink) Close() error {
	s.closed = true
	return nil
}

// spyDrawer records the frame and colour bar of each Draw call.
type spyDrawer struct {
	anim.Drawer
	drawn []int
	bars  []int
}

func (d *spyDrawer) Draw(f field.Frame, bar *render.Contour) (*image.RGBA, *render.Contour, error) {
	d.drawn = append(d.drawn, f.Index)
	d.bars = append(d.bars, bar.Frame)
	return d.Drawer.Draw(f, bar)
}

type countingProgress struct {
	total, n int
	done     bool
}

func (p *countingProgress) Start(total int) { p.total = total }
func (p *countingProgress) Increment()      { p.n++ }
func (p *countingProgress) Done()           { p.done = true }

func decode(path string) *gif.GIF {
	f, err := os.Open(path)
	Expect(err).NotTo(HaveOccurred())
	defer f.Close()
	g, err := gif.DecodeAll(f)
	Expect(err).NotTo(HaveOccurred())
	return g
}

// colours counts the palette entries a frame uses.
func colours(p *image.Paletted) int {
	seen := map[uint8]bool{}
	for _, i := range p.Pix {
		seen[i] = true
	}
	return len(seen)
}

// uses reports whether a frame holds the given colour anywhere.
func uses(p *image.Paletted, c color.Color) bool {
	i := uint8(p.Palette.Index(c))
	for _, v := range p.Pix {
		if v == i {
			return true
		}
	}
	return false
}

var _ = Describe("Run", func() {
	var (
		r   *render.Renderer
		dir string
	)

	BeforeEach(func() {
		r = smallRenderer()
		dir = GinkgoT().TempDir()
	})

	It("renders every frame once in increasing order", func() {
		src := tensor(6, 5, 4, func(ti, rr, c int) float64 { return float64(ti*rr + c) })
		sink := &recordingSink{}
		prog := &countingProgress{}

		st, err := anim.Run(context.Background(), r, src, sink, prog)
		Expect(err).NotTo(HaveOccurred())
		Expect(sink.frames).To(Equal([]int{0, 1, 2, 3, 4, 5}))
		Expect(sink.closed).To(BeTrue())
		Expect(prog.total).To(Equal(6))
		Expect(prog.n).To(Equal(6))
		Expect(prog.done).To(BeTrue())
		Expect(st.Index).To(Equal(6))
		Expect(st.Last.Frame).To(Equal(5))
	})

	It("keys the colour bar to the initial drawing for every frame", func() {
		src := tensor(4, 5, 4, func(ti, rr, c int) float64 { return float64((ti + 1) * (rr + c)) })
		spy := &spyDrawer{Drawer: r}

		st, err := anim.Run(context.Background(), spy, src, &recordingSink{}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(spy.drawn).To(Equal([]int{0, 1, 2, 3}))
		Expect(spy.bars).To(Equal([]int{0, 0, 0, 0}))
		Expect(st.Bar.Max).To(Equal(float64(7)))
		Expect(st.Last.Max).To(Equal(float64(28)))
	})

	It("writes a single GIF holding every frame", func() {
		src := tensor(5, 6, 5, func(ti, rr, c int) float64 { return float64(ti + rr - c) })
		pal, err := r.Palette()
		Expect(err).NotTo(HaveOccurred())
		out := filepath.Join(dir, anim.DefaultOutput)

		_, err = anim.Run(context.Background(), r, src, anim.NewGIFSink(out, pal, anim.DefaultIntervalMS), anim.Nop{})
		Expect(err).NotTo(HaveOccurred())

		entries, err := os.ReadDir(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].Name()).To(Equal("ani.gif"))

		g := decode(out)
		Expect(g.Image).To(HaveLen(5))
		Expect(g.Delay).To(HaveEach(2))
		Expect(g.LoopCount).To(Equal(0))
		Expect(g.Image[0].Bounds().Dx()).To(Equal(96))
	})

	It("draws frames with different data differently", func() {
		src := tensor(3, 8, 8, func(ti, rr, c int) float64 {
			if ti == 0 {
				return float64(rr)
			}
			return float64(c * c)
		})
		pal, err := r.Palette()
		Expect(err).NotTo(HaveOccurred())
		out := filepath.Join(dir, "varying.gif")

		_, err = anim.Run(context.Background(), r, src, anim.NewGIFSink(out, pal, anim.DefaultIntervalMS), nil)
		Expect(err).NotTo(HaveOccurred())

		g := decode(out)
		Expect(g.Image).To(HaveLen(3))
		Expect(bytes.Equal(g.Image[0].Pix, g.Image[2].Pix)).To(BeFalse())
		Expect(colours(g.Image[2])).To(BeNumerically(">", 4))
	})

	It("produces the same frames on repeated runs", func() {
		src := tensor(3, 6, 5, func(ti, rr, c int) float64 { return float64(ti*c - rr) })
		pal, err := r.Palette()
		Expect(err).NotTo(HaveOccurred())

		var decoded []*gif.GIF
		for _, name := range []string{"a.gif", "b.gif"} {
			out := filepath.Join(dir, name)
			_, err := anim.Run(context.Background(), r, src, anim.NewGIFSink(out, pal, anim.DefaultIntervalMS), nil)
			Expect(err).NotTo(HaveOccurred())
			decoded = append(decoded, decode(out))
		}

		Expect(decoded[0].Image).To(HaveLen(len(decoded[1].Image)))
		Expect(colours(decoded[0].Image[0])).To(BeNumerically(">", 4))
		for i := range decoded[0].Image {
			Expect(decoded[0].Image[i].Pix).To(Equal(decoded[1].Image[i].Pix))
		}
	})

	It("renders identical frames for a uniform field", func() {
		src := tensor(4, 6, 5, func(int, int, int) float64 { return 5.0 })
		pal, err := r.Palette()
		Expect(err).NotTo(HaveOccurred())
		out := filepath.Join(dir, "uniform.gif")

		st, err := anim.Run(context.Background(), r, src, anim.NewGIFSink(out, pal, anim.DefaultIntervalMS), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Last.Uniform()).To(BeTrue())
		Expect(st.Last.Min).To(Equal(5.0))

		cm, err := render.NewColorMap(r.Options().ColorMap)
		Expect(err).NotTo(HaveOccurred())
		bands, err := render.BandColors(cm, st.Last.Bands())
		Expect(err).NotTo(HaveOccurred())

		g := decode(out)
		Expect(g.Image).To(HaveLen(4))
		Expect(uses(g.Image[0], bands[st.Last.Band(5.0)])).To(BeTrue())
		for _, frame := range g.Image[1:] {
			Expect(bytes.Equal(frame.Pix, g.Image[0].Pix)).To(BeTrue())
		}
	})

	It("stops on cancellation without writing output", func() {
		src := tensor(3, 4, 4, func(ti, rr, c int) float64 { return float64(rr) })
		pal, err := r.Palette()
		Expect(err).NotTo(HaveOccurred())
		out := filepath.Join(dir, "cancelled.gif")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = anim.Run(ctx, r, src, anim.NewGIFSink(out, pal, anim.DefaultIntervalMS), nil)
		Expect(err).To(MatchError(context.Canceled))
		Expect(out).NotTo(BeAnExistingFile())
	})

	It("writes an MJPEG AVI", func() {
		src := tensor(3, 4, 4, func(ti, rr, c int) float64 { return float64(ti + c) })
		out := filepath.Join(dir, "ani.avi")

		_, err := anim.Run(context.Background(), r, src, anim.NewMJPEGSink(out, anim.DefaultIntervalMS), nil)
		Expect(err).NotTo(HaveOccurred())

		data, err := os.ReadFile(out)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data[:4])).To(Equal("RIFF"))
		Expect(string(data[8:12])).To(Equal("AVI "))
	})
})

var _ = Describe("Step", func() {
	It("advances the state and remembers the drawn mapping", func() {
		r := smallRenderer()
		src := tensor(2, 4, 4, func(ti, rr, c int) float64 { return float64(ti*10 + c) })

		_, st, err := anim.Step(r, src, anim.State{Index: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(st.Index).To(Equal(2))
		Expect(st.Last.Frame).To(Equal(1))
		Expect(st.Last.Min).To(Equal(float64(10)))

		_, _, err = anim.Step(r, src, st)
		Expect(err).To(MatchError(field.ErrFrameRange))
	})
})

var _ = DescribeTable("GIFDelay",
	func(ms, want int) {
		Expect(anim.GIFDelay(ms)).To(Equal(want))
	},
	Entry("default interval", 24, 2),
	Entry("rounds up", 25, 3),
	Entry("never zero", 1, 1),
	Entry("one second", 1000, 100),
)
