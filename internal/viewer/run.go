package viewer

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/fieldviz/internal/field"
)

// Run shows the viewer until the user quits.
func Run(src field.FrameSource, opts Options) error {
	m, err := NewModel(src, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// AllFrames lists every frame index of src in order.
func AllFrames(src field.FrameSource) []int {
	out := make([]int, src.Len())
	for i := range out {
		out[i] = i
	}
	return out
}

// LastFrame lists only the final frame of src.
func LastFrame(src field.FrameSource) []int {
	return []int{src.Len() - 1}
}
