package video

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"countdown/countdown"
)

// PNGOpener writes every frame as a numbered PNG file into a directory named
// after the job. Meant for inspecting frames without ffmpeg.
type PNGOpener struct {
	encoder png.Encoder
}

func NewPNGOpener() *PNGOpener {
	return &PNGOpener{encoder: png.Encoder{CompressionLevel: png.BestSpeed}}
}

// Extension is empty: the output is a directory.
func (o *PNGOpener) Extension() string { return "" }

func (o *PNGOpener) Open(path string, fps, width, height int) (countdown.Sink, error) {
	if fps <= 0 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid stream %dx%d@%d", width, height, fps)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create frame directory: %w", err)
	}
	return &pngSink{dir: path, width: width, height: height, encoder: &o.encoder}, nil
}

type pngSink struct {
	dir           string
	width, height int
	encoder       *png.Encoder
	next          int
	closed        bool
}

// FrameName is the file name of frame i inside a PNG output directory.
func FrameName(i int) string {
	return fmt.Sprintf("frame%06d.png", i)
}

func (s *pngSink) Write(img image.Image) error {
	if s.closed {
		return fmt.Errorf("write to closed sink %s", s.dir)
	}
	if err := checkBounds(img, s.width, s.height); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(s.dir, FrameName(s.next)))
	if err != nil {
		return err
	}
	if err := s.encoder.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode frame %d: %w", s.next, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.next++
	return nil
}

func (s *pngSink) Close() error {
	s.closed = true
	return nil
}
