package countdown

import (
	"fmt"
	"strings"
	"time"
)

// ProgressSample is the statistics snapshot taken at each simulated second.
type ProgressSample struct {
	Frame       int
	TotalFrames int
	// Elapsed and Remaining are countdown time, not wall time.
	Elapsed         time.Duration
	Remaining       time.Duration
	Percent         float64
	EstimatedFinish time.Time
	// RenderElapsed is the wall time spent on the job so far.
	RenderElapsed time.Duration
}

// Reporter receives progress samples. Implementations must not block for long;
// anything they do wrong is swallowed by the driver.
type Reporter interface {
	Report(ProgressSample)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ProgressSample)

func (f ReporterFunc) Report(s ProgressSample) { f(s) }

type nopReporter struct{}

func (nopReporter) Report(ProgressSample) {}

// sampler builds samples for one job.
type sampler struct {
	job     Job
	now     func() time.Time
	started time.Time
}

func (s *sampler) start() {
	s.started = s.now()
}

// sample computes the statistics at frame, where remaining is the countdown
// remaining seconds of that frame.
func (s *sampler) sample(frame, remaining int) ProgressSample {
	return Sample(s.job, frame, remaining, s.started, s.now())
}

// Sample computes the statistics of job at frame for a job that started
// rendering at started, observed at now.
func Sample(job Job, frame, remaining int, started, now time.Time) ProgressSample {
	duration := time.Duration(job.DurationSeconds) * time.Second
	left := time.Duration(remaining) * time.Second
	total := job.TotalFrames()

	out := ProgressSample{
		Frame:         frame,
		TotalFrames:   total,
		Elapsed:       duration - left,
		Remaining:     left,
		RenderElapsed: now.Sub(started),
	}
	if total > 0 {
		out.Percent = 100 * float64(frame) / float64(total)
	}

	switch job.Estimate {
	case EstimateFromStart:
		out.EstimatedFinish = started.Add(left)
	case EstimateFrozen:
		out.EstimatedFinish = started.Add(duration)
	default:
		out.EstimatedFinish = now.Add(left)
	}
	return out
}

// FormatDelta prints a duration as H:MM:SS, prefixed with "N day(s), " past 24h.
func FormatDelta(d time.Duration) string {
	if d < 0 {
		return "-" + FormatDelta(-d)
	}
	total := int(d / time.Second)
	days := total / 86400
	c := Decompose(total % 86400)
	clock := fmt.Sprintf("%d:%02d:%02d", c.Hours, c.Minutes, c.Seconds)
	switch days {
	case 0:
		return clock
	case 1:
		return "1 day, " + clock
	default:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
}

// StatsLines returns the four statistics lines of a sample.
func (s ProgressSample) StatsLines() []string {
	return []string{
		"Time Passed: " + FormatDelta(s.Elapsed),
		"Time Remaining: " + FormatDelta(s.Remaining),
		"Estimated Finish: " + s.EstimatedFinish.Format("15:04:05"),
		fmt.Sprintf("Completion: %.2f%%", s.Percent),
	}
}

// FormatStats joins StatsLines with newlines.
func FormatStats(s ProgressSample) string {
	return strings.Join(s.StatsLines(), "\n")
}

func (s ProgressSample) String() string {
	return FormatStats(s)
}
