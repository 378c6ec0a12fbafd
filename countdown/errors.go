package countdown

import "errors"

// Error taxonomy for a render job. Callers match with errors.Is; every error
// returned by this package wraps exactly one of these.
var (
	// ErrConfiguration is returned before any frame is produced when a job is invalid.
	ErrConfiguration = errors.New("invalid job configuration")

	// ErrSink means the output resource could not be opened, written or closed.
	ErrSink = errors.New("frame sink failure")

	// ErrRenderer means a frame could not be fully drawn.
	ErrRenderer = errors.New("frame render failure")

	// ErrCanceled is not a failure: the cancellation signal was observed and the
	// remaining job queue must be abandoned.
	ErrCanceled = errors.New("render canceled")

	// ErrDriverUsed is returned when Run is called on a driver that already ran.
	ErrDriverUsed = errors.New("driver already used")
)
