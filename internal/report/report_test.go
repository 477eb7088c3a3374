package report

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/stats"
)

func sample() *Manifest {
	return &Manifest{
		Mode:       "animate",
		Output:     "ani.gif",
		Format:     "gif",
		IntervalMS: 24,
		Shape:      field.Shape{Frames: 2, Rows: 3, Cols: 4, Channels: 4},
		Frames:     2,
		ColorMap:   "plasma",
		Levels:     8,
		Created:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Stats: []stats.FrameStats{
			{Frame: 0, Min: 1, Max: 2, Mean: 1.5, Checksum: "aa"},
			{Frame: 1, Min: 2, Max: 3, Mean: 2.5, Checksum: "bb"},
		},
	}
}

func TestWriteRead(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "run"))
	m := sample()

	if err := w.Write(m); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	back, err := w.Read()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if back.Output != "ani.gif" || back.Shape != m.Shape {
		t.Errorf("manifest mismatch: %+v", back)
	}
	if !back.Created.Equal(m.Created) {
		t.Errorf("expected created %v, got %v", m.Created, back.Created)
	}
	if len(back.Stats) != 2 || back.Stats[1].Checksum != "bb" {
		t.Errorf("stats mismatch: %+v", back.Stats)
	}
	if !Same(m, back) {
		t.Error("expected round-tripped manifest to match")
	}
}

func TestFileStructure(t *testing.T) {
	dir := t.TempDir()
	if err := New(dir).Write(sample()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	for _, name := range []string{"manifest.json", "frames.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestSame(t *testing.T) {
	a, b := sample(), sample()
	if !Same(a, b) {
		t.Error("identical manifests should match")
	}

	b.Stats[1].Checksum = "cc"
	if Same(a, b) {
		t.Error("different frame data should not match")
	}

	c := sample()
	c.Frames = 3
	if Same(a, c) {
		t.Error("different frame counts should not match")
	}
}

func TestReadMissing(t *testing.T) {
	if _, err := New(t.TempDir()).Read(); err == nil {
		t.Error("expected error reading empty directory")
	}
}

func TestWriteFileReportsWriteErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	boom := errors.New("encoder failed")

	err := writeFile(path, func(io.Writer) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the write error", err)
	}

	if err := writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "complete")
		return err
	}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "complete" {
		t.Errorf("file holds %q", data)
	}
}

func TestWriteFailsOnUnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	// A directory where the manifest file should go makes Create fail.
	if err := os.Mkdir(filepath.Join(dir, manifestFile), 0755); err != nil {
		t.Fatal(err)
	}
	if err := New(dir).Write(sample()); err == nil {
		t.Error("write over a directory succeeded")
	}
}
