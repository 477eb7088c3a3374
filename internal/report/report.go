// Package report records what a render run emitted: a JSON manifest and a
// CSV of per-frame statistics next to it.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/stats"
)

const (
	manifestFile = "manifest.json"
	framesFile   = "frames.csv"
)

type Manifest struct {
	Mode       string             `json:"mode"`
	Output     string             `json:"output,omitempty"`
	Format     string             `json:"format,omitempty"`
	IntervalMS int                `json:"interval_ms,omitempty"`
	Shape      field.Shape        `json:"shape"`
	Frames     int                `json:"frames"`
	ColorMap   string             `json:"colormap"`
	Levels     int                `json:"levels"`
	Created    time.Time          `json:"created"`
	Elapsed    time.Duration      `json:"elapsed"`
	Stats      []stats.FrameStats `json:"-"`
}

type Writer struct {
	baseDir string
}

func New(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

func (w *Writer) Init() error {
	return os.MkdirAll(w.baseDir, 0755)
}

// Write stores m as manifest.json and its frame statistics as frames.csv.
func (w *Writer) Write(m *Manifest) error {
	if err := w.Init(); err != nil {
		return err
	}

	err := writeFile(filepath.Join(w.baseDir, manifestFile), func(f io.Writer) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	})
	if err != nil {
		return err
	}

	return writeFile(filepath.Join(w.baseDir, framesFile), func(f io.Writer) error {
		return stats.WriteCSV(f, m.Stats)
	})
}

// writeFile creates path, fills it with write and closes it, reporting the
// first error of the three.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("report: writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: closing %s: %w", path, err)
	}
	return nil
}

// Read loads a manifest and its frame statistics.
func (w *Writer) Read() (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(w.baseDir, manifestFile))
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("report: parsing manifest: %w", err)
	}

	f, err := os.Open(filepath.Join(w.baseDir, framesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m.Stats, err = stats.ReadCSV(f)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Same reports whether two runs emitted the same number of frames from the
// same source data.
func Same(a, b *Manifest) bool {
	if a.Frames != b.Frames || len(a.Stats) != len(b.Stats) {
		return false
	}
	for i := range a.Stats {
		if a.Stats[i].Checksum != b.Stats[i].Checksum {
			return false
		}
	}
	return true
}
