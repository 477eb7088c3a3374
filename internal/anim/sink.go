package anim

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"

	"github.com/icza/mjpeg"
)

// Sink receives rendered frames in order.
type Sink interface {
	Add(frame int, img image.Image) error
	Close() error
}

// Aborter is implemented by sinks that hold resources to release when a run
// fails before Close.
type Aborter interface {
	Abort() error
}

// GIFDelay converts a frame interval in milliseconds to GIF centiseconds.
func GIFDelay(intervalMS int) int {
	d := int(math.Round(float64(intervalMS) / 10))
	if d < 1 {
		d = 1
	}
	return d
}

// GIFSink collects frames and writes them as one looping animated GIF on
// Close.
type GIFSink struct {
	path    string
	palette color.Palette
	delay   int
	anim    gif.GIF
}

// NewGIFSink writes to path with the given palette and frame interval.
func NewGIFSink(path string, pal color.Palette, intervalMS int) *GIFSink {
	return &GIFSink{
		path:    path,
		palette: pal,
		delay:   GIFDelay(intervalMS),
		anim:    gif.GIF{LoopCount: 0},
	}
}

func (s *GIFSink) Add(_ int, img image.Image) error {
	b := img.Bounds()
	frame := image.NewPaletted(b, s.palette)
	draw.Draw(frame, b, img, b.Min, draw.Src)
	s.anim.Image = append(s.anim.Image, frame)
	s.anim.Delay = append(s.anim.Delay, s.delay)
	return nil
}

func (s *GIFSink) Close() error {
	if len(s.anim.Image) == 0 {
		return ErrEmpty
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &s.anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *GIFSink) Abort() error {
	s.anim = gif.GIF{}
	return nil
}

// MJPEGSink streams frames as JPEGs into an AVI container.
type MJPEGSink struct {
	path    string
	fps     int32
	quality int
	aw      mjpeg.AviWriter
	buf     bytes.Buffer
}

// NewMJPEGSink writes to path at 1000/intervalMS frames per second. The file
// is created with the first frame, whose size fixes the video size.
func NewMJPEGSink(path string, intervalMS int) *MJPEGSink {
	fps := int32(math.Round(1000 / float64(max(intervalMS, 1))))
	return &MJPEGSink{path: path, fps: max(fps, 1), quality: 90}
}

func (s *MJPEGSink) Add(_ int, img image.Image) error {
	if s.aw == nil {
		b := img.Bounds()
		aw, err := mjpeg.New(s.path, int32(b.Dx()), int32(b.Dy()), s.fps)
		if err != nil {
			return err
		}
		s.aw = aw
	}

	s.buf.Reset()
	if err := jpeg.Encode(&s.buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return err
	}
	return s.aw.AddFrame(s.buf.Bytes())
}

func (s *MJPEGSink) Close() error {
	if s.aw == nil {
		return ErrEmpty
	}
	return s.aw.Close()
}

func (s *MJPEGSink) Abort() error {
	if s.aw == nil {
		return nil
	}
	err := s.aw.Close()
	if rmErr := os.Remove(s.path); err == nil {
		err = rmErr
	}
	return err
}
