package viewer

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/render"
)

const (
	defaultCols  = 72
	defaultLines = 24
)

type tickMsg time.Time

// Options configures a viewer session.
type Options struct {
	Title    string
	Frames   []int         // frame indices to browse, in order
	Interval time.Duration // playback interval
	Levels   int
	ColorMap string
	Bar      *render.Contour // fixed colour bar mapping, nil to use each frame's own
	Means    []float64       // per-frame means for the sparkline, optional
}

// Model is the Bubble Tea model of the viewer.
type Model struct {
	src      field.FrameSource
	opts     Options
	bands    []color.Color
	pos      int
	playing  bool
	isolines bool
	theme    int
	cols     int
	lines    int
}

// NewModel prepares a viewer over src. Playback starts when more than one
// frame is browsed.
func NewModel(src field.FrameSource, opts Options) (Model, error) {
	if len(opts.Frames) == 0 {
		return Model{}, field.ErrFrameRange
	}
	if opts.Levels < 2 {
		opts.Levels = render.DefaultLevels
	}
	if opts.Interval <= 0 {
		opts.Interval = 100 * time.Millisecond
	}
	cm, err := render.NewColorMap(opts.ColorMap)
	if err != nil {
		return Model{}, err
	}
	bands, err := render.BandColors(cm, opts.Levels)
	if err != nil {
		return Model{}, err
	}

	return Model{
		src:     src,
		opts:    opts,
		bands:   bands,
		playing: len(opts.Frames) > 1,
		cols:    defaultCols,
		lines:   defaultLines,
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.Interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	if m.playing {
		return m.tick()
	}
	return nil
}

// Update handles keys, window resizes and playback ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing && len(m.opts.Frames) > 1
			if m.playing {
				return m, m.tick()
			}
		case "right", "l":
			m.seek(1)
		case "left", "h":
			m.seek(-1)
		case "home", "g":
			m.pos = 0
		case "end", "G":
			m.pos = len(m.opts.Frames) - 1
		case "c":
			m.isolines = !m.isolines
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-4, 8)
		m.lines = max(msg.Height-9, 4)
	case tickMsg:
		if !m.playing {
			return m, nil
		}
		m.pos = (m.pos + 1) % len(m.opts.Frames)
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) seek(d int) {
	m.pos = min(max(m.pos+d, 0), len(m.opts.Frames)-1)
}

// Frame is the index of the frame currently shown.
func (m Model) Frame() int { return m.opts.Frames[m.pos] }

func (m Model) View() string {
	st := Themes[m.theme].styles()
	f := m.src.Frame(m.Frame())
	cs := render.Measure(f, m.opts.Levels)

	var body []string
	if m.isolines {
		cv := NewCanvas(m.cols, m.lines)
		g := f.Grid()
		c, r := g.Dims()
		if !cs.Uniform() {
			Trace(cv, Isolines(g, cs.Inner()), c, r)
		}
		body = cv.Lines()
		for i := range body {
			body[i] = st.lines.Render(body[i])
		}
	} else {
		body = Heatmap(f, cs, m.bands, m.cols, m.lines)
	}

	var s strings.Builder
	title := m.opts.Title
	if title == "" {
		title = "FIELD"
	}
	s.WriteString(st.header.Render(strings.ToUpper(title)) + "\n")
	s.WriteString(st.panel.Render(strings.Join(body, "\n")) + "\n")

	bar := cs
	if m.opts.Bar != nil {
		bar = m.opts.Bar
	}
	s.WriteString(m.legend(st, bar) + "\n")

	status := "PAUSED"
	if m.playing {
		status = "PLAYING"
	}
	s.WriteString(fmt.Sprintf("%s %s  %s %s  %s %s",
		st.label.Render("frame"), st.value.Render(fmt.Sprintf("%d/%d", m.pos+1, len(m.opts.Frames))),
		st.label.Render("t"), st.value.Render(fmt.Sprintf("%d", m.Frame())),
		st.label.Render("range"), st.value.Render(fmt.Sprintf("[%.4g, %.4g]  %s", cs.Min, cs.Max, status)),
	))
	if len(m.opts.Means) > 0 {
		s.WriteString("\n" + st.label.Render("mean ") + Sparkline(m.opts.Means, m.Frame(), m.cols-5))
	}
	s.WriteString(st.help.Render("\n←/→ step • space play • c contours • t theme • q quit"))
	return s.String()
}

// legend draws the colour bar: one swatch per band, labelled with its range.
func (m Model) legend(st styles, cs *render.Contour) string {
	var sb strings.Builder
	for _, c := range m.bands {
		sb.WriteString(swatch(c))
	}
	lo, hi := cs.Span()
	return fmt.Sprintf("%s %s %s", st.label.Render(fmt.Sprintf("%.4g", lo)), sb.String(), st.label.Render(fmt.Sprintf("%.4g", hi)))
}
