package tui

// UI Text Constants
const (
	TextTitle = "⏱  Countdown Renderer"

	// Footer
	TextFooterRunning   = "Press 'esc', 'q' or Ctrl+C to stop after the current frame"
	TextFooterCanceling = "Stopping... press Ctrl+C again to leave now"
	TextFooterDone      = "Batch finished"
)
