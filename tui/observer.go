package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"countdown/batch"
	"countdown/countdown"
)

// Sender delivers messages to a running program; *tea.Program is one.
type Sender interface {
	Send(tea.Msg)
}

// Observer forwards batch events to the terminal UI.
type Observer struct {
	sender Sender
}

var _ batch.Observer = (*Observer)(nil)

func NewObserver(sender Sender) *Observer {
	return &Observer{sender: sender}
}

func (o *Observer) BatchStarted(runID string, jobs int) {
	o.sender.Send(BatchStartedMsg{RunID: runID, Jobs: jobs})
}

func (o *Observer) JobStarted(e batch.JobEvent) {
	o.sender.Send(JobStartedMsg{Event: e})
}

func (o *Observer) JobSkipped(e batch.JobEvent) {
	o.sender.Send(JobSkippedMsg{Event: e})
}

func (o *Observer) JobProgress(e batch.JobEvent, s countdown.ProgressSample) {
	o.sender.Send(ProgressMsg{Event: e, Sample: s})
}

func (o *Observer) JobFinished(r batch.JobResult) {
	o.sender.Send(JobFinishedMsg{Result: r})
}

func (o *Observer) BatchFinished(s batch.Summary) {
	o.sender.Send(BatchFinishedMsg{Summary: s})
}
