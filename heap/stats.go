package heap

// Stats is a point-in-time snapshot of an allocator's counters.
type Stats struct {
	// Allocs is the number of guarded allocations performed.
	Allocs uint64
	// Frees is the number of guarded frees accepted into quarantine.
	Frees uint64
	// Reallocs is the number of guarded reallocations performed.
	Reallocs uint64
	// Live is the number of allocations currently tracked as live.
	Live int
	// PeakLive is the highest Live value observed.
	PeakLive int
	// Quarantined is the number of freed blocks awaiting reclamation.
	Quarantined int
	// LiveBytes is the sum of user-requested sizes of live allocations,
	// excluding red zones and page rounding.
	LiveBytes uintptr
}

// Stats returns a consistent snapshot taken under the allocator lock.
// Passthrough allocators track nothing and return a zero snapshot.
func (a *Allocator) Stats() Stats {
	if a.passthrough {
		return Stats{}
	}

	a.mu.Acquire()
	defer a.mu.Release()

	return Stats{
		Allocs:      a.allocs,
		Frees:       a.frees,
		Reallocs:    a.reallocs,
		Live:        a.table.Len(),
		PeakLive:    a.peakLive,
		Quarantined: a.ring.Len(),
		LiveBytes:   a.liveBytes,
	}
}
