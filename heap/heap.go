package heap

import (
	"errors"
	"unsafe"

	"github.com/joshuapare/heapguard/heap/epoch"
	"github.com/joshuapare/heapguard/heap/quarantine"
	"github.com/joshuapare/heapguard/heap/redzone"
	"github.com/joshuapare/heapguard/heap/report"
	"github.com/joshuapare/heapguard/heap/track"
	"github.com/joshuapare/heapguard/internal/platform"
	"github.com/joshuapare/heapguard/internal/spin"
)

var (
	// ErrRegistryFull is returned after a registry-exhaustion report when
	// the abort handler declines to terminate (test configurations only).
	ErrRegistryFull = errors.New("heap: allocation registry exhausted")

	// ErrUntracked is returned after an invalid-free report on Realloc of
	// a pointer that no tracked allocation produced, when the abort
	// handler declines to terminate.
	ErrUntracked = errors.New("heap: pointer not tracked by this allocator")
)

// Allocator is a guarded heap. It owns all tracking state; the registry,
// quarantine and red zone codec are only ever touched here, under the lock.
type Allocator struct {
	mu    spin.Lock
	table *track.Table
	ring  *quarantine.Ring

	passthrough bool
	abort       func()

	// Counters below are guarded by mu.
	allocs    uint64
	frees     uint64
	reallocs  uint64
	liveBytes uintptr
	peakLive  int
}

// Option configures an Allocator at construction time.
type Option func(*Allocator)

// WithPassthrough overrides the compile-time mode selection. A passthrough
// allocator forwards directly to the platform allocator with zero added
// tracking or overhead.
func WithPassthrough(on bool) Option {
	return func(a *Allocator) { a.passthrough = on }
}

// WithAbortHandler replaces the process-abort routine invoked after a
// fatal report. Tests install a panicking handler so fatal paths can be
// asserted in-process; production code has no reason to touch this.
func WithAbortHandler(abort func()) Option {
	return func(a *Allocator) { a.abort = abort }
}

// New constructs an independent guarded allocator.
func New(opts ...Option) *Allocator {
	a := &Allocator{
		table:       new(track.Table),
		ring:        new(quarantine.Ring),
		passthrough: defaultPassthrough,
		abort:       platform.Abort,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// fatal announces and performs process termination after a report has been
// emitted. Not reached in passthrough mode.
func (a *Allocator) fatal() {
	report.Aborting()
	a.abort()
}

// Alloc returns a pointer to size usable bytes tagged with kind. A nil
// pointer with an error means the platform allocator is out of memory;
// that is the only failure propagated to the caller.
func (a *Allocator) Alloc(size uintptr, kind track.Kind) (unsafe.Pointer, error) {
	if a.passthrough {
		return platform.Alloc(size)
	}

	a.mu.Acquire()
	defer a.mu.Release()

	base, err := platform.Alloc(redzone.TotalSize(size))
	if err != nil {
		return nil, err
	}
	redzone.Fill(base, size)

	user := redzone.User(base)
	rec := track.Record{User: uintptr(user), Base: base, Size: size, Kind: kind}
	if !a.table.Insert(rec) {
		// An untracked live block defeats every later check. Not a normal
		// allocation failure; the registry capacity is an internal invariant.
		report.CapacityExhausted(rec.User, size)
		platform.Free(base)
		a.fatal()
		return nil, ErrRegistryFull
	}
	epoch.Bump()

	a.allocs++
	a.liveBytes += size
	if n := a.table.Len(); n > a.peakLive {
		a.peakLive = n
	}
	return user, nil
}

// Free validates and quarantines the block at p. Freeing nil is a no-op.
// Every detected misuse is fatal; Free never reports failure to the caller.
func (a *Allocator) Free(p unsafe.Pointer, kind track.Kind) {
	if a.passthrough {
		platform.Free(p)
		return
	}
	if p == nil {
		return
	}

	a.mu.Acquire()
	defer a.mu.Release()

	user := uintptr(p)
	if a.ring.Contains(user) {
		report.DoubleFree(user)
		a.fatal()
		return
	}

	rec, ok := a.table.Remove(user)
	if !ok {
		// Not live and not quarantined: never allocated here, or freed so
		// long ago that the quarantine already evicted it.
		report.InvalidFree(user)
		a.fatal()
		return
	}

	if rec.Kind != kind {
		report.KindMismatch(user, rec.Kind, kind)
		a.fatal()
		return
	}

	prefixOK, suffixOK := redzone.Check(rec.Base, rec.Size)
	if !prefixOK || !suffixOK {
		report.Corruption(user, rec.Size, prefixOK, suffixOK)
		a.fatal()
		return
	}

	redzone.Poison(p, rec.Size)

	if ev, evicted := a.ring.Push(quarantine.Entry{User: user, Base: rec.Base, Size: rec.Size}); evicted {
		platform.Free(ev.Base)
	}
	epoch.Bump()

	a.frees++
	a.liveBytes -= rec.Size
}

// Realloc resizes the block at p to newSize, returning the new location.
// The red zones make the block's true extent opaque to the platform
// allocator, so this is allocate-copy-free through the guarded paths:
// tracking and canaries stay consistent at the cost of a copy. Realloc of
// nil behaves as Alloc.
func (a *Allocator) Realloc(p unsafe.Pointer, newSize uintptr, kind track.Kind) (unsafe.Pointer, error) {
	if a.passthrough {
		return platform.Realloc(p, newSize)
	}
	if p == nil {
		return a.Alloc(newSize, kind)
	}

	a.mu.Acquire()
	rec, ok := a.table.Lookup(uintptr(p))
	a.mu.Release()
	if !ok {
		report.InvalidFree(uintptr(p))
		a.fatal()
		return nil, ErrUntracked
	}

	np, err := a.Alloc(newSize, kind)
	if err != nil {
		return nil, err
	}

	n := rec.Size
	if newSize < n {
		n = newSize
	}
	if n > 0 {
		copy(unsafe.Slice((*byte)(np), n), unsafe.Slice((*byte)(p), n))
	}

	a.Free(p, kind)

	a.mu.Acquire()
	a.reallocs++
	a.mu.Release()
	return np, nil
}

// Lookup returns the tracking record for a live pointer without mutating
// any state. Reserved for bounds-checked access by higher layers; always
// reports false in passthrough mode.
func (a *Allocator) Lookup(p unsafe.Pointer) (track.Record, bool) {
	if a.passthrough {
		return track.Record{}, false
	}
	a.mu.Acquire()
	defer a.mu.Release()
	return a.table.Lookup(uintptr(p))
}
