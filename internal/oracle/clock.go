// Package oracle implements the prediction session: the state machine behind
// the oracle ball. A request flips the session into analyzing, a one-shot
// scheduled completion generates the outcome and flips it back.
package oracle

import "time"

// Clock abstracts scheduling so the session lifecycle is testable without
// real delays.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable one-shot scheduled task.
type Timer interface {
	// Stop cancels the task. It reports whether the call prevented the task
	// from firing.
	Stop() bool
}

type systemClock struct{}

// NewSystemClock returns a Clock backed by the time package.
func NewSystemClock() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
