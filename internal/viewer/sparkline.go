package viewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	sparkChars  = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	sparkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7e7e9a"))
	sparkCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#f0f921")).Bold(true)
)

// Sparkline squeezes values into width characters and highlights the one
// holding index cursor.
func Sparkline(values []float64, cursor, width int) string {
	if width < 1 || len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	n := min(width, len(values))
	var sb strings.Builder
	for i := 0; i < n; i++ {
		from, to := i*len(values)/n, (i+1)*len(values)/n
		v := values[from]
		idx := int((v - lo) / rng * float64(len(sparkChars)-1))
		ch := string(sparkChars[min(max(idx, 0), len(sparkChars)-1)])
		if cursor >= from && cursor < to {
			sb.WriteString(sparkCursor.Render(ch))
		} else {
			sb.WriteString(sparkStyle.Render(ch))
		}
	}
	return sb.String()
}
