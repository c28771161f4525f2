// Package epoch provides the generation counter backing iterator-validity
// checks: containers bump a counter on every structural mutation, iterators
// capture it on creation and compare on use, and a mismatch means the
// iterator was invalidated.
//
// The process-wide counter lives for the whole process: initialized at
// load, bumped on every mutation of the guarded heap's tracking state,
// never reset. Higher-level containers may also embed their own Counter.
package epoch

import "sync/atomic"

// Counter is a monotonically increasing generation counter. The zero value
// starts at generation 0 and is ready to use.
type Counter struct {
	n atomic.Uint64
}

// Bump increments the generation and returns the previous value.
func (c *Counter) Bump() uint64 {
	return c.n.Add(1) - 1
}

// Current returns the current generation.
func (c *Counter) Current() uint64 {
	return c.n.Load()
}

// global is the process-wide counter. Free-standing state by design: no
// component owns it, and it needs no lock because it is monotonic and
// independently meaningful.
var global Counter

// Bump increments the process-wide generation, returning the previous value.
func Bump() uint64 {
	return global.Bump()
}

// Current returns the process-wide generation.
func Current() uint64 {
	return global.Current()
}
