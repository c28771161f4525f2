// Package track maintains the registry of live allocations: a fixed-capacity
// open-addressing hash table keyed by the user-visible address.
//
// The table never resizes and never heap-allocates after construction. Slots
// are a tagged variant (empty, occupied, tombstone); deletion tombstones the
// slot so probe sequences stay correct without compaction. Addresses are
// opaque integers here, the table never dereferences them.
package track

import "unsafe"

// Kind tags which allocation API produced a block. Freeing through a
// different API than the one that allocated is a reportable error.
type Kind uint8

const (
	// KindAlloc marks a plain allocation (malloc-style).
	KindAlloc Kind = iota
	// KindNew marks a scalar operator-new-style allocation.
	KindNew
	// KindNewArray marks an array operator-new-style allocation.
	KindNewArray
)

// String returns the API name used in diagnostic reports.
func (k Kind) String() string {
	switch k {
	case KindAlloc:
		return "alloc"
	case KindNew:
		return "new"
	case KindNewArray:
		return "new[]"
	default:
		return "unknown"
	}
}

// Record describes one live allocation.
type Record struct {
	// User is the pointer returned to the caller, and the lookup key.
	User uintptr
	// Base is the start of the underlying block (User minus the prefix
	// red zone).
	Base unsafe.Pointer
	// Size is the caller-requested size, excluding red zones.
	Size uintptr
	// Kind is the allocation API that produced the block.
	Kind Kind
}

// Capacity is the fixed slot count. Power of two so the hash can be masked
// into an index.
const Capacity = 16384

// indexBits is log2(Capacity); the hash keeps exactly this many top bits.
const indexBits = 14

type slotState uint8

const (
	slotEmpty slotState = iota
	slotOccupied
	slotTombstone
)

type slot struct {
	rec   Record
	state slotState
}

// Table is the live-allocation registry. The zero value is ready to use;
// it is not self-synchronizing, callers serialize access externally.
type Table struct {
	slots [Capacity]slot
	count int
}

// hash spreads pointer-valued keys despite their alignment-induced low-bit
// clustering. Fibonacci hashing: multiply by 2^64/phi, keep the top bits.
func hash(addr uintptr) int {
	return int((uint64(addr) * 0x9E3779B97F4A7C15) >> (64 - indexBits))
}

// Insert records a live allocation. It reports false when a full-table
// probe finds no empty or tombstoned slot; losing track of a live block
// defeats every later check, so callers must treat false as fatal.
func (t *Table) Insert(rec Record) bool {
	idx := hash(rec.User)
	for i := 0; i < Capacity; i++ {
		s := &t.slots[idx]
		if s.state != slotOccupied {
			s.rec = rec
			s.state = slotOccupied
			t.count++
			return true
		}
		idx = (idx + 1) & (Capacity - 1)
	}
	return false
}

// Remove tombstones the live record keyed by user and returns it. The probe
// continues through tombstones and occupied mismatches, stopping only at an
// empty slot; stopping at a tombstone would lose keys that probed past it.
func (t *Table) Remove(user uintptr) (Record, bool) {
	idx := hash(user)
	for i := 0; i < Capacity; i++ {
		s := &t.slots[idx]
		switch {
		case s.state == slotOccupied && s.rec.User == user:
			rec := s.rec
			s.state = slotTombstone
			s.rec = Record{}
			t.count--
			return rec, true
		case s.state == slotEmpty:
			return Record{}, false
		}
		idx = (idx + 1) & (Capacity - 1)
	}
	return Record{}, false
}

// Lookup returns the live record keyed by user without mutating the table.
func (t *Table) Lookup(user uintptr) (Record, bool) {
	idx := hash(user)
	for i := 0; i < Capacity; i++ {
		s := &t.slots[idx]
		switch {
		case s.state == slotOccupied && s.rec.User == user:
			return s.rec, true
		case s.state == slotEmpty:
			return Record{}, false
		}
		idx = (idx + 1) & (Capacity - 1)
	}
	return Record{}, false
}

// Len returns the number of live records.
func (t *Table) Len() int {
	return t.count
}

// Range calls f for every live record in slot order until f returns false.
// Used by the process-exit leak audit.
func (t *Table) Range(f func(Record) bool) {
	for i := range t.slots {
		if t.slots[i].state == slotOccupied {
			if !f(t.slots[i].rec) {
				return
			}
		}
	}
}
