package countdown

import (
	"fmt"
	"time"
)

// FrameState is everything needed to draw frame Index of a job.
type FrameState struct {
	Index int
	// Remaining is the countdown remaining seconds, duration - Index/fps.
	Remaining int
	// Clock is the displayed time: Remaining, or elapsed when counting up.
	Clock Clock
	Text  string
	Rings RingAngles
	// Sample is set on the first frame of each simulated second.
	Sample *ProgressSample
	// Stats is the last computed sample; set on every frame when the job shows stats.
	Stats *ProgressSample
}

// Generator is a lazy, finite, single-pass sequence of frame states.
type Generator struct {
	job     Job
	total   int
	next    int
	sampler sampler

	// last is valid once the first frame was produced; frame 0 always samples.
	last    ProgressSample
	hasLast bool
}

// GeneratorOption customizes a Generator.
type GeneratorOption func(*Generator)

// WithClock replaces time.Now for progress estimates.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.sampler.now = now
	}
}

// NewGenerator validates job and returns a generator positioned before frame 0.
func NewGenerator(job Job, opts ...GeneratorOption) (*Generator, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		job:   job,
		total: job.TotalFrames(),
		sampler: sampler{
			job: job,
			now: time.Now,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Len is the total number of frames the generator yields.
func (g *Generator) Len() int { return g.total }

// Produced is the number of frames yielded so far.
func (g *Generator) Produced() int { return g.next }

// Last returns the most recent progress sample.
func (g *Generator) Last() (ProgressSample, bool) { return g.last, g.hasLast }

// Next yields the next frame state, or false once the sequence is exhausted.
func (g *Generator) Next() (FrameState, bool) {
	if g.next >= g.total {
		return FrameState{}, false
	}
	f := g.next
	if f == 0 {
		g.sampler.start()
	}
	g.next++

	fps := g.job.FPS
	elapsed := min(f/fps, g.job.DurationSeconds)
	remaining := g.job.DurationSeconds - elapsed

	shown := remaining
	if g.job.CountUp {
		shown = elapsed
	}
	clock := Decompose(shown)

	fs := FrameState{
		Index:     f,
		Remaining: remaining,
		Clock:     clock,
		Text:      FormatClock(clock, g.job.AlwaysShowHours),
	}
	if g.job.Layout.HasRings() {
		fs.Rings = ComputeRings(clock, g.job.HourBase())
	}
	if f%fps == 0 {
		g.last = g.sampler.sample(f, remaining)
		g.hasLast = true
		sample := g.last
		fs.Sample = &sample
	}
	if g.job.ShowStats {
		stats := g.last
		fs.Stats = &stats
	}
	return fs, true
}

func (g *Generator) String() string {
	return fmt.Sprintf("generator(%s, %d/%d)", OutputName(g.job), g.next, g.total)
}
