package countdown

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// Composer draws a frame state onto a surface. The returned image is only
// valid until the next call.
type Composer interface {
	Compose(FrameState) (image.Image, error)
}

// Sink is an open output resource accepting frames in order.
type Sink interface {
	Write(image.Image) error
	Close() error
}

// SinkOpener opens the output resource of a job.
type SinkOpener interface {
	Open(path string, fps, width, height int) (Sink, error)
}

// State is the driver lifecycle.
type State int

const (
	StateReady State = iota
	StateRunning
	StateCompleted
	StateCanceled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCanceled:
		return "canceled"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Deps are the collaborators of a driver. Composer and Opener are required.
type Deps struct {
	Composer Composer
	Opener   SinkOpener
	Signal   Signal
	Reporter Reporter
	Width    int
	Height   int
	// Now defaults to time.Now.
	Now func() time.Time
}

// Result describes what a driver run did.
type Result struct {
	Path           string
	State          State
	Frames         int
	TotalFrames    int
	Started        time.Time
	Finished       time.Time
	LastSample     ProgressSample
	ReportFailures int
}

// Driver renders one job into one sink. It runs at most once.
type Driver struct {
	job   Job
	path  string
	deps  Deps
	state State
}

// NewDriver validates job and deps without touching the output.
func NewDriver(job Job, path string, deps Deps) (*Driver, error) {
	if err := job.Validate(); err != nil {
		return nil, err
	}
	if deps.Composer == nil || deps.Opener == nil {
		return nil, fmt.Errorf("%w: composer and sink opener are required", ErrConfiguration)
	}
	if deps.Width <= 0 || deps.Height <= 0 {
		return nil, fmt.Errorf("%w: frame size must be positive, got %dx%d", ErrConfiguration, deps.Width, deps.Height)
	}
	if deps.Signal == nil {
		deps.Signal = Never
	}
	if deps.Reporter == nil {
		deps.Reporter = nopReporter{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Driver{job: job, path: path, deps: deps}, nil
}

// State returns the current lifecycle state.
func (d *Driver) State() State { return d.state }

// Run opens the sink, streams every frame into it and closes it. The sink is
// closed on every exit path once opened. A canceled run returns ErrCanceled.
func (d *Driver) Run() (Result, error) {
	res := Result{Path: d.path, TotalFrames: d.job.TotalFrames()}
	if d.state != StateReady {
		res.State = d.state
		return res, fmt.Errorf("%w: %s is %s", ErrDriverUsed, d.path, d.state)
	}
	d.state = StateRunning
	res.Started = d.deps.Now()

	gen, err := NewGenerator(d.job, WithClock(d.deps.Now))
	if err != nil {
		return d.finish(res, StateFailed), err
	}
	res.TotalFrames = gen.Len()

	sink, err := d.deps.Opener.Open(d.path, d.job.FPS, d.deps.Width, d.deps.Height)
	if err != nil {
		if sink != nil {
			err = errors.Join(err, sink.Close())
		}
		return d.finish(res, StateFailed), fmt.Errorf("%w: open %s: %w", ErrSink, d.path, err)
	}

	for {
		fs, ok := gen.Next()
		if !ok {
			break
		}
		if d.deps.Signal.Poll() {
			closeErr := sink.Close()
			res = d.finish(res, StateCanceled)
			if closeErr != nil {
				return res, errors.Join(ErrCanceled, fmt.Errorf("%w: close %s: %w", ErrSink, d.path, closeErr))
			}
			return res, ErrCanceled
		}
		if fs.Sample != nil {
			res.LastSample, _ = gen.Last()
			if !d.report(*fs.Sample) {
				res.ReportFailures++
			}
		}

		img, err := d.deps.Composer.Compose(fs)
		if err != nil {
			err = fmt.Errorf("%w: frame %d: %w", ErrRenderer, fs.Index, err)
			return d.finish(res, StateFailed), d.abort(sink, err)
		}
		if err := sink.Write(img); err != nil {
			err = fmt.Errorf("%w: write frame %d: %w", ErrSink, fs.Index, err)
			return d.finish(res, StateFailed), d.abort(sink, err)
		}
		res.Frames++
	}

	if err := sink.Close(); err != nil {
		return d.finish(res, StateFailed), fmt.Errorf("%w: close %s: %w", ErrSink, d.path, err)
	}
	return d.finish(res, StateCompleted), nil
}

func (d *Driver) abort(sink Sink, err error) error {
	if closeErr := sink.Close(); closeErr != nil {
		return errors.Join(err, fmt.Errorf("%w: close %s: %w", ErrSink, d.path, closeErr))
	}
	return err
}

func (d *Driver) finish(res Result, state State) Result {
	d.state = state
	res.State = state
	res.Finished = d.deps.Now()
	return res
}

// report hands s to the reporter and reports whether it returned normally.
func (d *Driver) report(s ProgressSample) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	d.deps.Reporter.Report(s)
	return true
}
