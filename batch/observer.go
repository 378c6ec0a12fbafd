package batch

import (
	"time"

	"github.com/rs/zerolog"

	"countdown/countdown"
)

// JobEvent locates a job within a batch.
type JobEvent struct {
	Index int
	Total int
	Job   countdown.Job
	Path  string
}

// Observer is notified of batch progress. Calls happen on the processor's
// goroutine, in order.
type Observer interface {
	BatchStarted(runID string, jobs int)
	JobStarted(JobEvent)
	JobSkipped(JobEvent)
	JobProgress(JobEvent, countdown.ProgressSample)
	JobFinished(JobResult)
	BatchFinished(Summary)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) BatchStarted(string, int)                       {}
func (NopObserver) JobStarted(JobEvent)                            {}
func (NopObserver) JobSkipped(JobEvent)                            {}
func (NopObserver) JobProgress(JobEvent, countdown.ProgressSample) {}
func (NopObserver) JobFinished(JobResult)                          {}
func (NopObserver) BatchFinished(Summary)                          {}

// MultiObserver fans events out in order.
type MultiObserver []Observer

func (m MultiObserver) BatchStarted(runID string, jobs int) {
	for _, o := range m {
		o.BatchStarted(runID, jobs)
	}
}

func (m MultiObserver) JobStarted(e JobEvent) {
	for _, o := range m {
		o.JobStarted(e)
	}
}

func (m MultiObserver) JobSkipped(e JobEvent) {
	for _, o := range m {
		o.JobSkipped(e)
	}
}

func (m MultiObserver) JobProgress(e JobEvent, s countdown.ProgressSample) {
	for _, o := range m {
		o.JobProgress(e, s)
	}
}

func (m MultiObserver) JobFinished(r JobResult) {
	for _, o := range m {
		o.JobFinished(r)
	}
}

func (m MultiObserver) BatchFinished(s Summary) {
	for _, o := range m {
		o.BatchFinished(s)
	}
}

// LogObserver writes batch events to a zerolog logger.
type LogObserver struct {
	log zerolog.Logger
}

func NewLogObserver(log zerolog.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (l *LogObserver) BatchStarted(runID string, jobs int) {
	l.log = l.log.With().Str("run", runID).Logger()
	l.log.Info().Int("jobs", jobs).Msg("batch started")
}

func (l *LogObserver) JobStarted(e JobEvent) {
	l.log.Info().Msgf("[%d/%d] rendering %s", e.Index+1, e.Total, e.Path)
}

func (l *LogObserver) JobSkipped(e JobEvent) {
	l.log.Info().Msgf("[%d/%d] %s already exists, skipping", e.Index+1, e.Total, e.Path)
}

func (l *LogObserver) JobProgress(e JobEvent, s countdown.ProgressSample) {
	l.log.Info().
		Str("job", countdown.OutputName(e.Job)).
		Int("frame", s.Frame).
		Int("total_frames", s.TotalFrames).
		Str("elapsed", countdown.FormatDelta(s.Elapsed)).
		Str("remaining", countdown.FormatDelta(s.Remaining)).
		Float64("percent", s.Percent).
		Time("eta", s.EstimatedFinish).
		Msg("\n" + countdown.FormatStats(s))
}

func (l *LogObserver) JobFinished(r JobResult) {
	if r.ReportFailures > 0 {
		l.log.Warn().Int("failures", r.ReportFailures).Str("path", r.Path).Msg("progress reporter failed")
	}
	level := zerolog.InfoLevel
	switch r.Outcome {
	case OutcomeFailed:
		level = zerolog.ErrorLevel
	case OutcomeCanceled:
		level = zerolog.WarnLevel
	}
	l.log.WithLevel(level).
		Err(r.Err).
		Str("path", r.Path).
		Str("outcome", r.Outcome.String()).
		Int("frames", r.Frames).
		Dur("took", r.Elapsed.Round(time.Millisecond)).
		Msgf("[%d/%d] %s", r.Index+1, r.Total, r.Outcome)
}

func (l *LogObserver) BatchFinished(s Summary) {
	l.log.Info().
		Int("completed", s.Count(OutcomeCompleted)).
		Int("skipped", s.Count(OutcomeSkipped)).
		Int("failed", s.Count(OutcomeFailed)).
		Bool("canceled", s.Canceled).
		Msg("batch finished")
}
