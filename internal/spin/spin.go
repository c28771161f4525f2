// Package spin provides the spin lock serializing access to the guarded
// heap's tracking state.
//
// A spin lock is used instead of sync.Mutex because critical sections are
// short and bounded (fixed-size table probes, ring buffer writes) and the
// lock must not itself allocate or park on the runtime it is guarding.
package spin

import (
	"runtime"
	"sync/atomic"
)

// Lock is a test-and-test-and-set spin lock. The zero value is unlocked.
//
// It is not reentrant: acquiring a Lock already held by the caller spins
// forever. It makes no fairness guarantee.
type Lock struct {
	locked atomic.Bool
}

// Acquire spins until the lock is observed unlocked and atomically taken.
// Pair with a deferred Release so every exit path unlocks.
func (l *Lock) Acquire() {
	for {
		if l.locked.CompareAndSwap(false, true) {
			return
		}
		// Spin on plain loads until the holder releases; this keeps the
		// expensive CAS off the cache line while the lock is contended.
		for l.locked.Load() {
			runtime.Gosched()
		}
	}
}

// Release unlocks. Calling Release on an unlocked Lock is a caller bug and
// corrupts mutual exclusion.
func (l *Lock) Release() {
	l.locked.Store(false)
}
