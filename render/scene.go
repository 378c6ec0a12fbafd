package render

import (
	"fmt"
	"image"
	"image/draw"
	"strings"

	"countdown/countdown"
)

// sceneKey identifies what a frame shows; equal keys draw equal frames.
type sceneKey struct {
	text  string
	rings countdown.RingAngles
	stats string
}

// Scene composes frames of one job. It implements countdown.Composer and
// reuses its surface while consecutive frames show the same thing.
type Scene struct {
	job     countdown.Job
	style   Style
	palette Palette
	text    TextRenderer
	arcs    ArcRenderer

	canvas *image.RGBA
	key    sceneKey
	valid  bool
	draws  int
}

// NewScene checks that the job's font can be rendered before any frame is drawn.
func NewScene(job countdown.Job, width, height int, text TextRenderer, arcs ArcRenderer) (*Scene, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: frame size must be positive, got %dx%d", countdown.ErrConfiguration, width, height)
	}
	if text == nil {
		return nil, fmt.Errorf("%w: a text renderer is required", countdown.ErrConfiguration)
	}
	if job.Layout.HasRings() && arcs == nil {
		return nil, fmt.Errorf("%w: layout %s needs an arc renderer", countdown.ErrConfiguration, job.Layout)
	}
	style := StyleFor(job.Layout, width, height)
	if _, err := text.Measure("00:00", job.FontID, style.TextScale, style.TextThickness); err != nil {
		return nil, fmt.Errorf("%w: font %q: %w", countdown.ErrRenderer, job.FontID, err)
	}
	return &Scene{
		job:     job,
		style:   style,
		palette: PaletteFor(job.Variant),
		text:    text,
		arcs:    arcs,
		canvas:  image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// Draws is the number of frames actually rendered, as opposed to reused.
func (s *Scene) Draws() int { return s.draws }

// Compose returns the surface for fs. The surface is overwritten by the next call.
func (s *Scene) Compose(fs countdown.FrameState) (image.Image, error) {
	key := sceneKey{text: fs.Text, rings: fs.Rings}
	if fs.Stats != nil {
		key.stats = countdown.FormatStats(*fs.Stats)
	}
	if s.valid && key == s.key {
		return s.canvas, nil
	}

	s.valid = false
	if err := s.draw(fs); err != nil {
		return nil, err
	}
	s.key, s.valid = key, true
	s.draws++
	return s.canvas, nil
}

func (s *Scene) draw(fs countdown.FrameState) error {
	st := s.style
	draw.Draw(s.canvas, s.canvas.Bounds(), image.NewUniform(s.palette.Background), image.Point{}, draw.Src)

	for _, a := range fs.Rings.Arcs(s.job.Layout, st.OuterRadius, st.RingThickness) {
		radii := image.Pt(a.Radius, a.Radius)
		if err := s.arcs.DrawArc(s.canvas, st.Center, radii, a.Start, a.Sweep, s.palette.Ring(a.Ring), st.RingThickness); err != nil {
			return fmt.Errorf("%s ring: %w", a.Ring, err)
		}
	}

	size, err := s.text.Measure(fs.Text, s.job.FontID, st.TextScale, st.TextThickness)
	if err != nil {
		return fmt.Errorf("measure %q: %w", fs.Text, err)
	}
	// Re-centered every frame since the width changes with the format.
	pos := image.Pt(st.Center.X-size.X/2, st.Center.Y+size.Y/2)
	if err := s.text.Draw(s.canvas, fs.Text, pos, s.job.FontID, st.TextScale, s.palette.Foreground, st.TextThickness); err != nil {
		return fmt.Errorf("draw %q: %w", fs.Text, err)
	}

	if fs.Stats == nil {
		return nil
	}
	for i, line := range fs.Stats.StatsLines() {
		pos := st.StatsOrigin.Add(image.Pt(0, i*st.StatsLineHeight))
		if err := s.text.Draw(s.canvas, line, pos, s.job.FontID, st.StatsScale, s.palette.Foreground, st.StatsThickness); err != nil {
			return fmt.Errorf("draw stats line %q: %w", strings.SplitN(line, ":", 2)[0], err)
		}
	}
	return nil
}
