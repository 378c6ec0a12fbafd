package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"countdown/countdown"
)

// barWidth is the width of the progress bar in cells
const barWidth = 40

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Current job
	if m.Current != nil {
		b.WriteString(fmt.Sprintf("Job: %s\n", filepath.Base(m.Current.Path)))
		if m.Sample != nil {
			b.WriteString(progressBar(m.Sample.Percent))
			b.WriteString(fmt.Sprintf(" %6.2f%%\n\n", m.Sample.Percent))
			b.WriteString(BoxStyle.Render(strings.Join(m.Sample.StatsLines(), "\n")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Statistics
	if m.Jobs > 0 {
		stats := fmt.Sprintf("Done: %d | Skipped: %d | Failed: %d | Total: %d | Wall: %s",
			m.Completed, m.Skipped, m.Failed, m.Jobs, countdown.FormatDelta(m.Now.Sub(m.Started)))
		b.WriteString(InfoStyle.Render(stats))
		b.WriteString("\n\n")
	}

	// Logs
	if len(m.Logs) > 0 {
		b.WriteString(InfoStyle.Render("Recent Activity:"))
		b.WriteString("\n")
		for _, entry := range m.Logs {
			line := fmt.Sprintf("   %s %s", entry.Timestamp.Format("15:04:05"), entry.Message)
			b.WriteString(InfoStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Help text
	switch {
	case m.Done():
		b.WriteString(HighlightStyle.Render(TextFooterDone))
	case m.State == StateCanceling:
		b.WriteString(WarningStyle.Render(TextFooterCanceling))
	default:
		b.WriteString(InfoStyle.Render(TextFooterRunning))
	}

	return b.String()
}

func progressBar(percent float64) string {
	filled := int(percent / 100 * barWidth)
	filled = max(0, min(filled, barWidth))
	return BarFilledStyle.Render(strings.Repeat("█", filled)) +
		BarEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}
