package study

import "time"

// Timer is a pending deferred call.
type Timer interface {
	// Stop prevents the call from running if it has not started yet.
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// clockScheduler defers with the runtime timer.
type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
