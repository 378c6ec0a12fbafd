package tui

import (
	"time"

	"countdown/batch"
	"countdown/countdown"
)

// Messages for the tea program, sent by Observer from the processor goroutine

// BatchStartedMsg is sent once the processor has its queue
type BatchStartedMsg struct {
	RunID string
	Jobs  int
}

// JobStartedMsg is sent before the first frame of a job
type JobStartedMsg struct {
	Event batch.JobEvent
}

// JobSkippedMsg is sent when a job's output already exists
type JobSkippedMsg struct {
	Event batch.JobEvent
}

// ProgressMsg carries the sample taken at each simulated second
type ProgressMsg struct {
	Event  batch.JobEvent
	Sample countdown.ProgressSample
}

// JobFinishedMsg is sent when a job ends in any way
type JobFinishedMsg struct {
	Result batch.JobResult
}

// BatchFinishedMsg is sent after the last job
type BatchFinishedMsg struct {
	Summary batch.Summary
}

// TickMsg refreshes the wall clock
type TickMsg struct {
	Time time.Time
}
