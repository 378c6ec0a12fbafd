package countdown

import (
	"context"
	"sync/atomic"
)

// Signal is polled once per frame; true abandons the current job and the rest
// of the queue. Poll must be cheap and must not block.
type Signal interface {
	Poll() bool
}

// SignalFunc adapts a function to Signal.
type SignalFunc func() bool

func (f SignalFunc) Poll() bool { return f() }

// Never is a signal that is never raised.
var Never Signal = SignalFunc(func() bool { return false })

// Flag is a signal raised from another goroutine (keypress handler, OS signal).
// The zero value is lowered.
type Flag struct {
	raised atomic.Bool
}

// Raise sets the flag. It is safe to call more than once.
func (f *Flag) Raise() { f.raised.Store(true) }

// Poll reports whether the flag was raised.
func (f *Flag) Poll() bool { return f.raised.Load() }

// ContextSignal is raised once ctx is done.
func ContextSignal(ctx context.Context) Signal {
	return SignalFunc(func() bool {
		return ctx.Err() != nil
	})
}

// AnySignal is raised when any of signals is raised. Nil entries are ignored.
func AnySignal(signals ...Signal) Signal {
	return SignalFunc(func() bool {
		for _, s := range signals {
			if s != nil && s.Poll() {
				return true
			}
		}
		return false
	})
}
