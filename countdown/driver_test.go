package countdown

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComposer struct {
	texts  []string
	failAt int
}

func (c *fakeComposer) Compose(fs FrameState) (image.Image, error) {
	if c.failAt >= 0 && fs.Index == c.failAt {
		return nil, errors.New("glyph missing")
	}
	c.texts = append(c.texts, fs.Text)
	return image.NewRGBA(image.Rect(0, 0, 4, 2)), nil
}

type fakeSink struct {
	opener  *fakeOpener
	written int
	closed  int
}

func (s *fakeSink) Write(image.Image) error {
	if s.opener.failWriteAt >= 0 && s.written == s.opener.failWriteAt {
		return errors.New("disk full")
	}
	s.written++
	return nil
}

func (s *fakeSink) Close() error {
	s.closed++
	return nil
}

type fakeOpener struct {
	failOpen    bool
	failWriteAt int
	sinks       []*fakeSink
	paths       []string
}

func newFakeOpener() *fakeOpener { return &fakeOpener{failWriteAt: -1} }

func (o *fakeOpener) Open(path string, fps, width, height int) (Sink, error) {
	if o.failOpen {
		return nil, errors.New("permission denied")
	}
	s := &fakeSink{opener: o}
	o.sinks = append(o.sinks, s)
	o.paths = append(o.paths, path)
	return s, nil
}

// countingSignal raises after n polls.
type countingSignal struct {
	after int
	polls int
}

func (s *countingSignal) Poll() bool {
	s.polls++
	return s.polls > s.after
}

func testJob() Job {
	return Job{DurationSeconds: 5, FPS: 2, FontID: "mono", Variant: Dark}
}

func newTestDriver(t *testing.T, job Job, deps Deps) *Driver {
	t.Helper()
	deps.Width, deps.Height = 4, 2
	d, err := NewDriver(job, "out/job.mp4", deps)
	require.NoError(t, err)
	return d
}

func TestDriverCompletes(t *testing.T) {
	comp := &fakeComposer{failAt: -1}
	opener := newFakeOpener()
	var samples []ProgressSample
	d := newTestDriver(t, testJob(), Deps{
		Composer: comp,
		Opener:   opener,
		Reporter: ReporterFunc(func(s ProgressSample) { samples = append(samples, s) }),
	})

	res, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, res.State)
	assert.Equal(t, StateCompleted, d.State())
	assert.Equal(t, 10, res.TotalFrames)
	assert.Equal(t, 10, res.Frames)
	assert.Equal(t, 10, opener.sinks[0].written)
	assert.Equal(t, 1, opener.sinks[0].closed)
	require.Len(t, samples, 5)
	assert.Equal(t, samples[4], res.LastSample)
	assert.Equal(t, 8, res.LastSample.Frame)
	assert.Equal(t, "00:05", comp.texts[0])
	assert.Equal(t, "00:01", comp.texts[9])
}

func TestDriverCancelClosesSink(t *testing.T) {
	opener := newFakeOpener()
	d := newTestDriver(t, testJob(), Deps{
		Composer: &fakeComposer{failAt: -1},
		Opener:   opener,
		Signal:   &countingSignal{after: 3},
	})

	res, err := d.Run()
	require.ErrorIs(t, err, ErrCanceled)
	assert.Equal(t, StateCanceled, res.State)
	assert.Equal(t, 3, res.Frames)
	assert.Equal(t, 3, opener.sinks[0].written, "frames written before cancellation")
	assert.Equal(t, 1, opener.sinks[0].closed)
}

func TestDriverRendererFailure(t *testing.T) {
	opener := newFakeOpener()
	d := newTestDriver(t, testJob(), Deps{Composer: &fakeComposer{failAt: 4}, Opener: opener})

	res, err := d.Run()
	require.ErrorIs(t, err, ErrRenderer)
	assert.Equal(t, StateFailed, res.State)
	assert.Equal(t, 4, opener.sinks[0].written)
	assert.Equal(t, 1, opener.sinks[0].closed, "sink closed after renderer failure")
}

func TestDriverSinkFailures(t *testing.T) {
	t.Run("open", func(t *testing.T) {
		opener := newFakeOpener()
		opener.failOpen = true
		d := newTestDriver(t, testJob(), Deps{Composer: &fakeComposer{failAt: -1}, Opener: opener})
		_, err := d.Run()
		assert.ErrorIs(t, err, ErrSink)
	})

	t.Run("write", func(t *testing.T) {
		opener := newFakeOpener()
		opener.failWriteAt = 2
		d := newTestDriver(t, testJob(), Deps{Composer: &fakeComposer{failAt: -1}, Opener: opener})
		_, err := d.Run()
		assert.ErrorIs(t, err, ErrSink)
		assert.Equal(t, 1, opener.sinks[0].closed, "sink closed after write failure")
	})
}

func TestDriverIsNotRestartable(t *testing.T) {
	opener := newFakeOpener()
	d := newTestDriver(t, testJob(), Deps{Composer: &fakeComposer{failAt: -1}, Opener: opener})
	_, err := d.Run()
	require.NoError(t, err)
	_, err = d.Run()
	assert.ErrorIs(t, err, ErrDriverUsed)
	assert.Len(t, opener.sinks, 1)
}

func TestDriverSurvivesPanickingReporter(t *testing.T) {
	opener := newFakeOpener()
	d := newTestDriver(t, testJob(), Deps{
		Composer: &fakeComposer{failAt: -1},
		Opener:   opener,
		Reporter: ReporterFunc(func(ProgressSample) { panic("terminal gone") }),
	})
	res, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, 5, res.ReportFailures)
	assert.Equal(t, 10, res.Frames)
}

func TestNewDriverRejectsBadInput(t *testing.T) {
	deps := Deps{Composer: &fakeComposer{failAt: -1}, Opener: newFakeOpener(), Width: 4, Height: 2}
	_, err := NewDriver(Job{DurationSeconds: -3, FPS: 1, FontID: "mono"}, "x", deps)
	assert.ErrorIs(t, err, ErrConfiguration, "negative duration")
	deps.Width = 0
	_, err = NewDriver(testJob(), "x", deps)
	assert.ErrorIs(t, err, ErrConfiguration, "zero width")
}
