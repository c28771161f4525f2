// Package heap is a guarded allocator: every block it hands out is flanked
// by red zones, registered in a fixed-capacity tracking table, and routed
// through a quarantine on free, so that double frees, invalid frees,
// allocation/deallocation API mismatches, buffer overflows and underflows,
// use-after-free reads, and exit-time leaks are detected and reported.
//
// # Entry points
//
// The three operations mirror the allocator interface consumed by a
// process-wide allocation hook:
//
//	p, err := heap.Alloc(size, track.KindAlloc)
//	heap.Free(p, track.KindAlloc)
//	p, err = heap.Realloc(p, newSize, track.KindAlloc)
//
// A package-level default allocator is constructed at load time, before
// any entry point is reachable. Independent instances can be built with
// New for embedding or testing.
//
// # Error model
//
// A failure of the underlying platform allocator (true out-of-memory) is
// returned as an ordinary error; the caller may have a legitimate recovery
// path. Every detected heap-corruption condition — double free, invalid
// free, kind mismatch, red zone corruption, registry exhaustion — is
// reported to stderr and followed by process termination: continuing would
// mean operating on an allocator whose own state can no longer be trusted.
// Leaks are the one diagnostic-only category, reported by AuditLeaks.
//
// # Modes
//
// In passthrough mode the entry points degrade to direct platform
// allocator calls with no tracking, no red zones and no locking. The
// default mode is selected at compile time by the heapguard_passthrough
// build tag; individual allocators can override it with WithPassthrough.
//
// # Concurrency
//
// All entry points may be called from any goroutine. Each acquires one
// spin lock for its whole body; operations are totally ordered by lock
// acquisition. Critical sections are short and bounded: fixed-size table
// probes, a fixed-size ring write, and the platform call.
package heap
