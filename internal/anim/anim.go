package anim

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/render"
)

const (
	DefaultOutput     = "ani.gif"
	DefaultIntervalMS = 24
)

// ErrEmpty indicates a source without frames.
var ErrEmpty = errors.New("anim: no frames to render")

// State is the animation state carried from one frame to the next.
type State struct {
	// Index is the next frame to draw.
	Index int
	// Last is the mapping of the most recently drawn frame.
	Last *render.Contour
	// Bar is the mapping the colour bar is keyed to.
	Bar *render.Contour
}

// Drawer renders one frame. *render.Renderer satisfies it.
type Drawer interface {
	Draw(f field.Frame, bar *render.Contour) (*image.RGBA, *render.Contour, error)
	Measure(f field.Frame) *render.Contour
}

// Step draws frame st.Index and returns the advanced state.
func Step(d Drawer, src field.FrameSource, st State) (image.Image, State, error) {
	if st.Index < 0 || st.Index >= src.Len() {
		return nil, st, fmt.Errorf("anim: %w: %d", field.ErrFrameRange, st.Index)
	}
	img, cs, err := d.Draw(src.Frame(st.Index), st.Bar)
	if err != nil {
		return nil, st, fmt.Errorf("anim: frame %d: %w", st.Index, err)
	}
	return img, State{Index: st.Index + 1, Last: cs, Bar: st.Bar}, nil
}

// Run renders every frame of src in increasing time order into sink and
// closes it.
//
// Before the loop frame 0 is measured as the initial drawing and the colour
// bar is attached to that last drawn mapping; it stays fixed while each frame
// is scaled to its own range.
func Run(ctx context.Context, d Drawer, src field.FrameSource, sink Sink, prog Progress) (State, error) {
	n := src.Len()
	if n == 0 {
		return State{}, ErrEmpty
	}
	if prog == nil {
		prog = Nop{}
	}

	st := State{Last: d.Measure(src.Frame(0))}
	st.Bar = st.Last
	slog.Debug("colour bar attached", "frame", st.Bar.Frame, "min", st.Bar.Min, "max", st.Bar.Max)

	prog.Start(n)
	for st.Index < n {
		if err := ctx.Err(); err != nil {
			abort(sink)
			return st, err
		}

		i := st.Index
		var img image.Image
		var err error
		img, st, err = Step(d, src, st)
		if err != nil {
			abort(sink)
			return st, err
		}
		if err := sink.Add(i, img); err != nil {
			abort(sink)
			return st, fmt.Errorf("anim: adding frame %d: %w", i, err)
		}
		prog.Increment()
	}
	prog.Done()

	if err := sink.Close(); err != nil {
		return st, fmt.Errorf("anim: writing output: %w", err)
	}
	return st, nil
}

func abort(sink Sink) {
	if a, ok := sink.(Aborter); ok {
		if err := a.Abort(); err != nil {
			slog.Warn("discarding partial output", "error", err)
		}
	}
}
