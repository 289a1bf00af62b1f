package main

import "time"

// monoClock counts from process start using the monotonic reading of time.Time.
type monoClock struct {
	start time.Time
}

func newMonoClock() *monoClock {
	return &monoClock{start: time.Now()}
}

func (c *monoClock) Millis() int64 {
	return time.Since(c.start).Milliseconds()
}

func (c *monoClock) Micros() int64 {
	return time.Since(c.start).Microseconds()
}
