package clock

import "time"

// Timer is a pending call scheduled by AfterFunc.
type Timer interface {
	// Stop reports false when the call already ran or was stopped.
	Stop() bool
}

type Clocker interface {
	Now() time.Time
	// AfterFunc runs f once, in its own goroutine, after d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

// TimeClocker reads the wall clock.
type TimeClocker struct{}

func New() *TimeClocker { return &TimeClocker{} }

func (*TimeClocker) Now() time.Time { return time.Now() }

func (*TimeClocker) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
