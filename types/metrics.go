package types

// This file defines how the cache reports what it is doing.

/*
Metrics is an interface that defines what the cache wants to measure.
Each method represents an event in the cache lifecycle; the cache calls
these methods whenever something happens.
*/
type Metrics interface {

	// Hit is called when the cache successfully returns a live value.
	Hit()

	// Miss is called when a key is absent or has already been reclaimed.
	Miss()

	// Expire is called when a read discovers a stale entry and its whole
	// timestamp bucket is reclaimed (lazy expiry).
	Expire()

	// Sweep is called once per explicit garbage-collection run.
	Sweep()
}

/*
NoopMetrics is a "do nothing" implementation of Metrics.

We don't want to force every user of the cache to implement metrics, and
we don't want `if metrics != nil` conditions scattered through the code.
So the cache falls back to this implementation when none is configured.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()    {}
func (NoopMetrics) Miss()   {}
func (NoopMetrics) Expire() {}
func (NoopMetrics) Sweep()  {}
