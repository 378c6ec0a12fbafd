package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickCmd creates a command that ticks every 500ms to refresh elapsed time
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
