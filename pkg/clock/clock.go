// Package clock provides the monotonic session clock and a cancelable
// one-shot timer queue driven by it.
package clock

// Clock converts externally supplied frame timestamps into per-tick deltas.
// The first observed timestamp yields a zero delta, and timestamps that go
// backwards are treated as no time passing.
type Clock struct {
	now     float64
	started bool
}

// New creates a clock that has not yet observed a frame
func New() *Clock {
	return &Clock{}
}

// Advance records the frame timestamp and returns the elapsed seconds since
// the previous frame.
func (c *Clock) Advance(timestamp float64) float64 {
	if !c.started {
		c.started = true
		c.now = timestamp
		return 0
	}
	if timestamp <= c.now {
		return 0
	}
	dt := timestamp - c.now
	c.now = timestamp
	return dt
}

// Now returns the latest observed timestamp
func (c *Clock) Now() float64 {
	return c.now
}

// Started reports whether any frame has been observed
func (c *Clock) Started() bool {
	return c.started
}
