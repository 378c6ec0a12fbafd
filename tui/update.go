package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"countdown/batch"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TickMsg:
		m.Now = msg.Time
		if m.Done() {
			return m, nil
		}
		return m, tickCmd()
	case BatchStartedMsg:
		m.RunID, m.Jobs = msg.RunID, msg.Jobs
		if m.State == StateIdle {
			m.State = StateRendering
		}
		return m.AddLog(fmt.Sprintf("Run %s: %d jobs queued", msg.RunID, msg.Jobs)), nil
	case JobStartedMsg:
		ev := msg.Event
		m.Current, m.Sample = &ev, nil
		return m.AddLog("Rendering " + filepath.Base(ev.Path)), nil
	case JobSkippedMsg:
		m.Skipped++
		return m.AddLog("Skipped " + filepath.Base(msg.Event.Path) + " (exists)"), nil
	case ProgressMsg:
		s := msg.Sample
		m.Sample = &s
		return m, nil
	case JobFinishedMsg:
		return m.handleJobFinished(msg.Result)
	case BatchFinishedMsg:
		return m.handleBatchFinished(msg.Summary)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Done() {
		return m, tea.Quit
	}
	switch msg.String() {
	case "esc", "q", "ctrl+c":
		if m.State == StateCanceling {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		m.cancel.Raise()
		m.State = StateCanceling
		return m.AddLog("Cancellation requested"), nil
	}
	return m, nil
}

// handleJobFinished processes one finished job
func (m Model) handleJobFinished(r batch.JobResult) (tea.Model, tea.Cmd) {
	name := filepath.Base(r.Path)
	switch r.Outcome {
	case batch.OutcomeCompleted:
		m.Completed++
		m = m.AddLog(fmt.Sprintf("Finished %s (%d frames)", name, r.Frames))
	case batch.OutcomeFailed:
		m.Failed++
		m.Err = r.Err
		m = m.AddLog(fmt.Sprintf("Failed %s: %v", name, r.Err))
	case batch.OutcomeCanceled:
		m = m.AddLog(fmt.Sprintf("Canceled %s after %d frames", name, r.Frames))
	}
	return m, nil
}

// handleBatchFinished ends the program once the queue is done
func (m Model) handleBatchFinished(s batch.Summary) (tea.Model, tea.Cmd) {
	m.Current = nil
	switch {
	case s.Canceled:
		m.State = StateCanceled
	case s.Count(batch.OutcomeFailed) > 0:
		m.State = StateError
		m.Err = fmt.Errorf("%d of %d jobs failed", s.Count(batch.OutcomeFailed), len(s.Results))
	default:
		m.State = StateComplete
	}
	return m.AddLog("Batch finished"), tea.Quit
}
