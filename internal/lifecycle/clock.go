package lifecycle

import "time"

// Clock abstracts timer scheduling for the lifecycle machinery.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
	NewTicker(d time.Duration) Ticker
}

// Timer is a cancelable scheduled callback.
type Timer interface {
	// Stop cancels the timer; it reports false if the callback already ran
	// or was stopped before.
	Stop() bool
}

// Ticker delivers periodic ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

func (SystemClock) NewTicker(d time.Duration) Ticker {
	return systemTicker{time.NewTicker(d)}
}

type systemTicker struct{ t *time.Ticker }

func (s systemTicker) C() <-chan time.Time { return s.t.C }
func (s systemTicker) Stop()               { s.t.Stop() }
