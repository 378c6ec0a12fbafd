package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"countdown/batch"
	"countdown/countdown"
)

// State represents the renderer state machine as seen by the UI
type State string

const (
	StateIdle      State = "idle"
	StateRendering State = "rendering"
	StateCanceling State = "canceling"
	StateComplete  State = "complete"
	StateCanceled  State = "canceled"
	StateError     State = "error"
)

// maxLogs is how many recent log lines the view keeps
const maxLogs = 8

// LogEntry represents a single log line with timestamp
type LogEntry struct {
	Timestamp time.Time
	Message   string
}

// Model is the terminal UI state
type Model struct {
	// cancel is raised on esc/q/ctrl+c; the processor polls it every frame
	cancel *countdown.Flag

	State   State
	RunID   string
	Jobs    int
	Current *batch.JobEvent
	Sample  *countdown.ProgressSample
	Logs    []LogEntry

	Completed int
	Skipped   int
	Failed    int
	Err       error

	Started time.Time
	Now     time.Time
}

// NewModel creates a model that raises cancel when the user asks to stop
func NewModel(cancel *countdown.Flag) Model {
	now := time.Now()
	return Model{
		cancel:  cancel,
		State:   StateIdle,
		Logs:    make([]LogEntry, 0, maxLogs),
		Started: now,
		Now:     now,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// AddLog appends a log line, dropping the oldest past maxLogs
func (m Model) AddLog(msg string) Model {
	logs := append(m.Logs, LogEntry{Timestamp: m.Now, Message: msg})
	if len(logs) > maxLogs {
		logs = logs[len(logs)-maxLogs:]
	}
	m.Logs = logs
	return m
}

// Done reports whether the batch has ended
func (m Model) Done() bool {
	return m.State == StateComplete || m.State == StateCanceled || m.State == StateError
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	switch m.State {
	case StateIdle:
		return InfoStyle.Render("Preparing jobs...")
	case StateRendering:
		return StatusStyle.Render(fmt.Sprintf("Rendering job %d of %d", m.jobNumber(), m.Jobs))
	case StateCanceling:
		return WarningStyle.Render("Stopping after the current frame...")
	case StateComplete:
		return HighlightStyle.Render("COMPLETE")
	case StateCanceled:
		return WarningStyle.Render("Canceled: remaining jobs were not rendered")
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", errMsg))
	default:
		return ""
	}
}

func (m Model) jobNumber() int {
	if m.Current == nil {
		return 0
	}
	return m.Current.Index + 1
}
