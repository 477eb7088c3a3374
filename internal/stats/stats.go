// Package stats summarises the scalar field of every frame.
package stats

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"io"
	"math"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/fieldviz/internal/field"
)

// FrameStats describes one frame's scalar channel. Checksum digests the
// frame's raw data, all channels, so two runs can be compared frame by frame.
type FrameStats struct {
	Frame    int     `csv:"frame" json:"frame"`
	Min      float64 `csv:"min" json:"min"`
	Max      float64 `csv:"max" json:"max"`
	Mean     float64 `csv:"mean" json:"mean"`
	StdDev   float64 `csv:"std_dev" json:"std_dev"`
	Checksum string  `csv:"checksum" json:"checksum"`
}

// Uniform reports whether every value in the frame was the same.
func (s FrameStats) Uniform() bool {
	return s.Min == s.Max
}

// Of computes the statistics of one frame.
func Of(f field.Frame) FrameStats {
	vals := f.Values()
	s := FrameStats{Frame: f.Index, Checksum: Checksum(f)}
	if len(vals) == 0 {
		return s
	}
	s.Min = floats.Min(vals)
	s.Max = floats.Max(vals)
	s.Mean, s.StdDev = stat.MeanStdDev(vals, nil)
	if len(vals) == 1 || math.IsNaN(s.StdDev) {
		s.StdDev = 0
	}
	return s
}

// Collect computes statistics for every frame of src in time order.
func Collect(src field.FrameSource) []FrameStats {
	out := make([]FrameStats, src.Len())
	for i := range out {
		out[i] = Of(src.Frame(i))
	}
	return out
}

// Checksum is the FNV-1a digest of a frame's raw values.
func Checksum(f field.Frame) string {
	h := fnv.New64a()
	var b [8]byte
	for _, v := range f.Raw() {
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
		h.Write(b[:])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Series extracts one column for plotting.
func Series(all []FrameStats, pick func(FrameStats) float64) []float64 {
	out := make([]float64, len(all))
	for i, s := range all {
		out[i] = pick(s)
	}
	return out
}

// WriteCSV writes the statistics with a header row.
func WriteCSV(w io.Writer, all []FrameStats) error {
	if err := gocsv.Marshal(all, w); err != nil {
		return fmt.Errorf("writing frame stats: %w", err)
	}
	return nil
}

// ReadCSV parses statistics written by WriteCSV.
func ReadCSV(r io.Reader) ([]FrameStats, error) {
	var all []FrameStats
	if err := gocsv.Unmarshal(r, &all); err != nil {
		return nil, fmt.Errorf("reading frame stats: %w", err)
	}
	return all, nil
}
