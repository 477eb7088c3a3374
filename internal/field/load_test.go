package field_test

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fieldviz/internal/field"
)

// dump writes one line per grid point, four channels each, with value(i) as
// the i-th token.
func dump(shape field.Shape, value func(i int) float64) string {
	var sb strings.Builder
	n := shape.Size()
	for i := 0; i < n; i++ {
		sb.WriteString(strconv.FormatFloat(value(i), 'g', -1, 64))
		if (i+1)%shape.Channels == 0 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

var _ = Describe("Load", func() {
	small := field.Shape{Frames: 3, Rows: 4, Cols: 5, Channels: 4}

	It("reshapes the stream losslessly in row-major order", func() {
		t, err := field.Load(strings.NewReader(dump(small, func(i int) float64 { return float64(i) })), small)
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Shape()).To(Equal(small))
		Expect(t.Len()).To(Equal(3))

		i := 0
		for ti := 0; ti < small.Frames; ti++ {
			for r := 0; r < small.Rows; r++ {
				for c := 0; c < small.Cols; c++ {
					for ch := 0; ch < small.Channels; ch++ {
						Expect(t.At(ti, r, c, ch)).To(Equal(float64(i)))
						i++
					}
				}
			}
		}
	})

	It("ignores how tokens are split across lines", func() {
		in := dump(small, func(i int) float64 { return float64(i) / 2 })
		oneLine := strings.TrimSuffix(strings.ReplaceAll(in, "\n", " "), " ")
		a, err := field.Load(strings.NewReader(in), small)
		Expect(err).NotTo(HaveOccurred())
		b, err := field.Load(strings.NewReader(oneLine), small)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Last().Raw()).To(Equal(b.Last().Raw()))
	})

	DescribeTable("rejects token counts that do not fit the shape",
		func(delta int) {
			n := small.Size() + delta
			var sb strings.Builder
			for i := 0; i < n; i++ {
				fmt.Fprintf(&sb, "%d\n", i)
			}
			_, err := field.Load(strings.NewReader(sb.String()), small)
			Expect(err).To(MatchError(field.ErrMalformedInput))

			var se *field.ShapeError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Got).To(Equal(n))
		},
		Entry("one short", -1),
		Entry("one extra", 1),
		Entry("a whole frame short", -small.FrameSize()),
		Entry("empty input", -small.Size()),
	)

	DescribeTable("rejects empty tokens",
		func(edit func(lines []string)) {
			lines := strings.Split(strings.TrimSuffix(dump(small, func(i int) float64 { return 1 }), "\n"), "\n")
			edit(lines)
			_, err := field.Load(strings.NewReader(strings.Join(lines, "\n")), small)
			Expect(err).To(MatchError(field.ErrMalformedInput))

			var pe *field.ParseError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Token).To(BeEmpty())
			Expect(pe.Line).To(Equal(3))
		},
		Entry("blank line", func(l []string) { l[2] = "" }),
		Entry("doubled space", func(l []string) { l[2] = "1  1 1 1" }),
		Entry("trailing space", func(l []string) { l[2] = "1 1 1 1 " }),
	)

	It("tolerates whitespace the number parser strips", func() {
		in := strings.ReplaceAll(dump(small, func(i int) float64 { return 2 }), "\n", "\r\n")
		t, err := field.Load(strings.NewReader(in), small)
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Last().Values()).To(HaveEach(2.0))
	})

	It("rejects a non-numeric token and reports its line", func() {
		in := dump(small, func(i int) float64 { return 1 })
		lines := strings.Split(in, "\n")
		lines[7] = "1 1 abc 1"
		_, err := field.Load(strings.NewReader(strings.Join(lines, "\n")), small)
		Expect(err).To(MatchError(field.ErrMalformedInput))

		var pe *field.ParseError
		Expect(errors.As(err, &pe)).To(BeTrue())
		Expect(pe.Line).To(Equal(8))
		Expect(pe.Token).To(Equal("abc"))
	})

	It("wraps read failures", func() {
		_, err := field.Load(io.MultiReader(strings.NewReader("1 2 3\n"), failingReader{}), small)
		Expect(err).To(HaveOccurred())
		Expect(err).NotTo(MatchError(field.ErrMalformedInput))
		Expect(err.Error()).To(ContainSubstring("disk on fire"))
	})

	It("refuses a shape without a value channel", func() {
		_, err := field.Load(strings.NewReader(""), field.Shape{Frames: 1, Rows: 1, Cols: 1, Channels: 3})
		Expect(err).To(MatchError(field.ErrInvalidShape))
	})

	It("accepts the full solver dump", func() {
		if testing.Short() {
			Skip("full-size dump in -short mode")
		}
		shape := field.DefaultShape()
		Expect(shape.Frames * shape.Rows * shape.Cols).To(Equal(8_181_000))

		t, err := field.Load(strings.NewReader(dump(shape, func(i int) float64 { return float64(i % 7) })), shape)
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Len()).To(Equal(1000))
		Expect(t.Last().Index).To(Equal(999))
	})
})

var _ = Describe("Tensor", func() {
	shape := field.Shape{Frames: 2, Rows: 2, Cols: 2, Channels: 4}

	It("requires the exact number of values", func() {
		_, err := field.New(shape, make([]float64, 15))
		Expect(err).To(MatchError(field.ErrMalformedInput))
	})

	It("checks frame bounds", func() {
		t, err := field.New(shape, make([]float64, shape.Size()))
		Expect(err).NotTo(HaveOccurred())

		_, err = t.FrameAt(2)
		Expect(err).To(MatchError(field.ErrFrameRange))
		Expect(func() { t.Frame(-1) }).To(Panic())

		f, err := t.FrameAt(1)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Index).To(Equal(1))
	})

	It("extracts channel 3 as the scalar field", func() {
		data := make([]float64, shape.Size())
		for i := range data {
			data[i] = float64(i)
		}
		t, err := field.New(shape, data)
		Expect(err).NotTo(HaveOccurred())

		last := t.Last()
		Expect(last.Values()).To(Equal([]float64{19, 23, 27, 31}))
		Expect(last.X(1, 0)).To(Equal(float64(25)))
		Expect(last.Y(0, 1)).To(Equal(float64(22)))

		lo, hi := last.Range()
		Expect(lo).To(Equal(float64(19)))
		Expect(hi).To(Equal(float64(31)))
	})
})
