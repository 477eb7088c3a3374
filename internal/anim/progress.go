package anim

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Progress is told about every rendered frame.
type Progress interface {
	Start(total int)
	Increment()
	Done()
}

// Nop discards progress.
type Nop struct{}

func (Nop) Start(int)  {}
func (Nop) Increment() {}
func (Nop) Done()      {}

var (
	barFilled  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f89540"))
	barHead    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f0f921")).Bold(true)
	barPercent = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Bar redraws a one-line progress bar in place:
//
//	[=========>          ] 45.00% 450/1000
type Bar struct {
	w     io.Writer
	width int
	total int
	done  int
}

// NewBar writes a bar of the given width to w.
func NewBar(w io.Writer, width int) *Bar {
	if width < 1 {
		width = 50
	}
	return &Bar{w: w, width: width}
}

func (b *Bar) Start(total int) {
	b.total, b.done = total, 0
	b.draw()
}

func (b *Bar) Increment() {
	if b.done < b.total {
		b.done++
	}
	b.draw()
}

func (b *Bar) Done() {
	fmt.Fprintln(b.w)
}

// Fraction is the share of frames done, in [0, 1].
func (b *Bar) Fraction() float64 {
	if b.total == 0 {
		return 0
	}
	return float64(b.done) / float64(b.total)
}

func (b *Bar) String() string {
	pos := int(float64(b.width) * b.Fraction())

	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(barFilled.Render(strings.Repeat("=", pos)))
	if pos < b.width {
		sb.WriteString(barHead.Render(">"))
		sb.WriteString(strings.Repeat(" ", b.width-pos-1))
	}
	sb.WriteString("] ")
	sb.WriteString(barPercent.Render(fmt.Sprintf("%.2f%% %d/%d", b.Fraction()*100, b.done, b.total)))
	return sb.String()
}

func (b *Bar) draw() {
	fmt.Fprintf(b.w, "\r%s", b.String())
}
