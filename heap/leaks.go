package heap

import (
	"github.com/joshuapare/heapguard/heap/report"
	"github.com/joshuapare/heapguard/heap/track"
)

// AuditLeaks walks every allocation still live in the registry and emits
// one report line per block, returning the count. Intended to run once at
// process teardown; unlike the error categories it never terminates the
// process, and a clean heap produces no output at all.
func (a *Allocator) AuditLeaks() int {
	if a.passthrough {
		return 0
	}

	a.mu.Acquire()
	defer a.mu.Release()

	if a.table.Len() == 0 {
		return 0
	}

	report.LeakHeader()
	n := 0
	a.table.Range(func(rec track.Record) bool {
		report.Leak(rec.User, rec.Size, rec.Kind)
		n++
		return true
	})
	report.LeakFooter(n)
	return n
}
