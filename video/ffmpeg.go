package video

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"countdown/countdown"
)

// FFmpegOpener opens sinks that pipe raw RGB24 frames into an ffmpeg process.
type FFmpegOpener struct {
	opts EncoderOptions
}

func NewFFmpegOpener(opts EncoderOptions) *FFmpegOpener {
	return &FFmpegOpener{opts: opts.withDefaults()}
}

// Extension is the suffix of the files this opener writes.
func (o *FFmpegOpener) Extension() string { return o.opts.Container }

func (o *FFmpegOpener) binary() string {
	if o.opts.FFmpegPath != "" {
		return o.opts.FFmpegPath
	}
	return "ffmpeg"
}

// stream builds the ffmpeg graph of one output file.
func (o *FFmpegOpener) stream(path string, fps, width, height int) *ffmpeg.Stream {
	return ffmpeg.Input("pipe:", ffmpeg.KwArgs{
		"format":    "rawvideo",
		"pix_fmt":   "rgb24",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": strconv.Itoa(fps),
	}).
		Output(path, ffmpeg.KwArgs{
			"c:v":     o.opts.Codec,
			"pix_fmt": o.opts.PixFmt,
			"preset":  o.opts.Preset,
		}).
		OverWriteOutput()
}

// command compiles stream into the process to run, honoring FFmpegPath.
func (o *FFmpegOpener) command(stream *ffmpeg.Stream) *exec.Cmd {
	cmd := stream.Compile()
	if o.opts.FFmpegPath == "" {
		return cmd
	}
	custom := exec.Command(o.opts.FFmpegPath, cmd.Args[1:]...)
	custom.Stdin, custom.Stdout, custom.Stderr = cmd.Stdin, cmd.Stdout, cmd.Stderr
	return custom
}

// Open starts ffmpeg writing to path. The process exits once the sink is closed.
func (o *FFmpegOpener) Open(path string, fps, width, height int) (countdown.Sink, error) {
	if fps <= 0 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid stream %dx%d@%d", width, height, fps)
	}
	if width%2 != 0 || height%2 != 0 {
		return nil, fmt.Errorf("%s needs even frame dimensions, got %dx%d", o.opts.PixFmt, width, height)
	}
	if _, err := exec.LookPath(o.binary()); err != nil {
		return nil, fmt.Errorf("ffmpeg not available: %w", err)
	}

	pr, pw := io.Pipe()
	stderr := &tailBuffer{limit: 4096}
	s := &ffmpegSink{
		path:   path,
		width:  width,
		height: height,
		pw:     pw,
		stderr: stderr,
		frame:  make([]byte, width*height*3),
		done:   make(chan error, 1),
	}
	cmd := o.command(o.stream(path, fps, width, height).WithInput(pr).WithErrorOutput(stderr))
	if err := cmd.Start(); err != nil {
		pr.Close()
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}
	go func() {
		err := cmd.Wait()
		// Unblocks a pending Write if ffmpeg exits early.
		if err != nil {
			pr.CloseWithError(fmt.Errorf("ffmpeg exited: %w", err))
		} else {
			pr.CloseWithError(io.ErrClosedPipe)
		}
		s.done <- err
	}()
	return s, nil
}

type ffmpegSink struct {
	path          string
	width, height int
	pw            *io.PipeWriter
	stderr        *tailBuffer
	frame         []byte
	done          chan error

	closeOnce sync.Once
	closeErr  error
}

func (s *ffmpegSink) Write(img image.Image) error {
	if err := checkBounds(img, s.width, s.height); err != nil {
		return err
	}
	toRGB24(s.frame, img)
	if _, err := s.pw.Write(s.frame); err != nil {
		return s.withStderr(err)
	}
	return nil
}

// Close flushes the pipe and waits for ffmpeg to finish the file.
func (s *ffmpegSink) Close() error {
	s.closeOnce.Do(func() {
		s.pw.Close()
		if err := <-s.done; err != nil {
			s.closeErr = s.withStderr(fmt.Errorf("ffmpeg %s: %w", s.path, err))
		}
	})
	return s.closeErr
}

func (s *ffmpegSink) withStderr(err error) error {
	if tail := strings.TrimSpace(s.stderr.String()); tail != "" {
		return fmt.Errorf("%w\n%s", err, tail)
	}
	return err
}

func checkBounds(img image.Image, width, height int) error {
	if img == nil {
		return errors.New("nil frame")
	}
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		return fmt.Errorf("frame is %dx%d, stream is %dx%d", b.Dx(), b.Dy(), width, height)
	}
	return nil
}

// toRGB24 packs img into dst, three bytes per pixel, row by row.
func toRGB24(dst []byte, img image.Image) {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok {
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := rgba.Pix[rgba.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				dst[i], dst[i+1], dst[i+2] = row[4*x], row[4*x+1], row[4*x+2]
				i += 3
			}
		}
		return
	}
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			dst[i], dst[i+1], dst[i+2] = byte(r>>8), byte(g>>8), byte(bl>>8)
			i += 3
		}
	}
}

// tailBuffer keeps the last limit bytes written to it.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	buf   []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.limit; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
