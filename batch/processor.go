package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"countdown/countdown"
)

// Opener is a sink opener that knows the suffix of its outputs.
type Opener interface {
	countdown.SinkOpener
	Extension() string
}

// ComposerFactory builds the composer of one job.
type ComposerFactory func(job countdown.Job, width, height int) (countdown.Composer, error)

// Outcome is what happened to one job of a batch.
type Outcome int

const (
	OutcomeNotRun Outcome = iota
	OutcomeCompleted
	OutcomeSkipped
	OutcomeFailed
	OutcomeCanceled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "not run"
	}
}

// JobResult is the record of one job.
type JobResult struct {
	JobEvent
	Outcome        Outcome
	Err            error
	Frames         int
	ReportFailures int
	Elapsed        time.Duration
}

// Summary is the record of a batch run, one result per queued job.
type Summary struct {
	RunID    string
	Results  []JobResult
	Canceled bool
}

// Count returns the number of jobs that ended with outcome o.
func (s Summary) Count(o Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == o {
			n++
		}
	}
	return n
}

// ProcessorConfig wires a Processor.
type ProcessorConfig struct {
	OutputDir string
	Width     int
	Height    int
	Opener    Opener
	Composers ComposerFactory
	// Signal is polled once per frame alongside the run context.
	Signal   countdown.Signal
	Observer Observer
	// StopOnError ends the batch at the first failed job instead of moving on.
	StopOnError bool
	Now         func() time.Time
}

// Processor renders a queue of jobs one at a time.
type Processor struct {
	cfg   ProcessorConfig
	runID string
}

func NewProcessor(cfg ProcessorConfig) (*Processor, error) {
	if cfg.Opener == nil || cfg.Composers == nil {
		return nil, fmt.Errorf("%w: processor needs an opener and a composer factory", countdown.ErrConfiguration)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: frame size must be positive, got %dx%d", countdown.ErrConfiguration, cfg.Width, cfg.Height)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Signal == nil {
		cfg.Signal = countdown.Never
	}
	if cfg.Observer == nil {
		cfg.Observer = NopObserver{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Processor{cfg: cfg, runID: uuid.NewString()}, nil
}

// RunID identifies this processor's run in logs.
func (p *Processor) RunID() string { return p.runID }

// OutputPath is where job is published.
func (p *Processor) OutputPath(job countdown.Job) string {
	return filepath.Join(p.cfg.OutputDir, countdown.OutputName(job)+p.cfg.Opener.Extension())
}

// partialPath keeps the extension so encoders can still pick the container.
func (p *Processor) partialPath(job countdown.Job) string {
	return filepath.Join(p.cfg.OutputDir, countdown.OutputName(job)+".partial"+p.cfg.Opener.Extension())
}

// Run renders jobs in order. Jobs whose output exists are skipped. A canceled
// run stops the whole queue and returns ErrCanceled; failed jobs are reported
// in the joined error.
func (p *Processor) Run(ctx context.Context, jobs []countdown.Job) (Summary, error) {
	sum := Summary{RunID: p.runID, Results: make([]JobResult, len(jobs))}
	for i, job := range jobs {
		sum.Results[i].JobEvent = JobEvent{Index: i, Total: len(jobs), Job: job, Path: p.OutputPath(job)}
	}
	obs := p.cfg.Observer
	obs.BatchStarted(p.runID, len(jobs))

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		err = fmt.Errorf("%w: create output dir: %w", countdown.ErrSink, err)
		obs.BatchFinished(sum)
		return sum, err
	}

	signal := countdown.AnySignal(countdown.ContextSignal(ctx), p.cfg.Signal)
	var errs []error
	for i := range sum.Results {
		if signal.Poll() {
			sum.Canceled = true
			break
		}
		r := &sum.Results[i]
		if _, err := os.Stat(r.Path); err == nil {
			r.Outcome = OutcomeSkipped
			obs.JobSkipped(r.JobEvent)
			continue
		}

		obs.JobStarted(r.JobEvent)
		p.runJob(r, signal)
		obs.JobFinished(*r)

		if r.Outcome == OutcomeCanceled {
			sum.Canceled = true
			break
		}
		if r.Outcome == OutcomeFailed {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(r.Path), r.Err))
			if p.cfg.StopOnError {
				break
			}
		}
	}

	obs.BatchFinished(sum)
	if sum.Canceled {
		errs = append(errs, countdown.ErrCanceled)
	}
	return sum, errors.Join(errs...)
}

func (p *Processor) runJob(r *JobResult, signal countdown.Signal) {
	started := p.cfg.Now()
	defer func() { r.Elapsed = p.cfg.Now().Sub(started) }()

	fail := func(err error) {
		r.Outcome, r.Err = OutcomeFailed, err
	}

	partial := p.partialPath(r.Job)
	if err := os.RemoveAll(partial); err != nil {
		fail(fmt.Errorf("%w: remove stale %s: %w", countdown.ErrSink, partial, err))
		return
	}

	composer, err := p.cfg.Composers(r.Job, p.cfg.Width, p.cfg.Height)
	if err != nil {
		fail(err)
		return
	}
	event := r.JobEvent
	driver, err := countdown.NewDriver(r.Job, partial, countdown.Deps{
		Composer: composer,
		Opener:   p.cfg.Opener,
		Signal:   signal,
		Reporter: countdown.ReporterFunc(func(s countdown.ProgressSample) {
			p.cfg.Observer.JobProgress(event, s)
		}),
		Width:  p.cfg.Width,
		Height: p.cfg.Height,
		Now:    p.cfg.Now,
	})
	if err != nil {
		fail(err)
		return
	}

	res, err := driver.Run()
	r.Frames, r.ReportFailures = res.Frames, res.ReportFailures
	switch {
	case errors.Is(err, countdown.ErrCanceled):
		r.Outcome, r.Err = OutcomeCanceled, err
		cleanup(partial)
	case err != nil:
		fail(err)
		cleanup(partial)
	default:
		if err := os.Rename(partial, r.Path); err != nil {
			fail(fmt.Errorf("%w: publish %s: %w", countdown.ErrSink, r.Path, err))
			cleanup(partial)
			return
		}
		r.Outcome = OutcomeCompleted
	}
}

// cleanup removes a partial output; it only ever targets .partial names.
func cleanup(path string) {
	if strings.Contains(filepath.Base(path), ".partial") {
		_ = os.RemoveAll(path)
	}
}
