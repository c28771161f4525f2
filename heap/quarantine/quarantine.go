// Package quarantine delays physical reclamation of freed blocks in a
// fixed-capacity FIFO ring so that a second free of the same address is
// still recognizable as a double free rather than an invalid free.
//
// The ring never owns memory indefinitely: pushing into a full ring evicts
// the oldest entry and hands it back to the caller, whose job it is to
// perform the real deallocation.
package quarantine

import "unsafe"

// Capacity is the fixed number of quarantined blocks. Kept small on purpose:
// Contains is an O(Capacity) linear scan, bounded by this constant.
const Capacity = 256

// Entry describes one freed block awaiting reclamation.
type Entry struct {
	// User is the pointer that was handed to the caller, used as the key
	// for double-free detection.
	User uintptr
	// Base is the start of the underlying block, the address to physically
	// free on eviction.
	Base unsafe.Pointer
	// Size is the user-visible size of the block.
	Size uintptr
}

// Ring is the quarantine buffer. The zero value is an empty ring; it is not
// self-synchronizing, callers serialize access externally.
type Ring struct {
	entries [Capacity]Entry
	pos     int // next write index
	length  int // entries currently held, saturates at Capacity
}

// Push quarantines e. If the ring was already full, the evicted oldest
// entry is returned with ok=true and must be physically freed by the
// caller.
func (r *Ring) Push(e Entry) (evicted Entry, ok bool) {
	if r.length == Capacity {
		evicted, ok = r.entries[r.pos], true
	} else {
		r.length++
	}
	r.entries[r.pos] = e
	r.pos = (r.pos + 1) % Capacity
	return evicted, ok
}

// Contains reports whether user is currently quarantined. Linear scan over
// the held entries.
func (r *Ring) Contains(user uintptr) bool {
	for i := 0; i < r.length; i++ {
		if r.entries[i].User == user {
			return true
		}
	}
	return false
}

// Len returns the number of blocks currently quarantined.
func (r *Ring) Len() int {
	return r.length
}
