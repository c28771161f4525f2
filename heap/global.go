package heap

import (
	"unsafe"

	"github.com/joshuapare/heapguard/heap/track"
)

// std is the process-wide allocator consumed by the global allocation
// hook. Constructed at package load, so initialization completes before
// any entry point is reachable; no lazy-init race is possible.
var std = New()

// Default returns the process-wide allocator.
func Default() *Allocator {
	return std
}

// Alloc allocates size bytes from the process-wide allocator.
func Alloc(size uintptr, kind track.Kind) (unsafe.Pointer, error) {
	return std.Alloc(size, kind)
}

// Free releases p through the process-wide allocator.
func Free(p unsafe.Pointer, kind track.Kind) {
	std.Free(p, kind)
}

// Realloc resizes p through the process-wide allocator.
func Realloc(p unsafe.Pointer, newSize uintptr, kind track.Kind) (unsafe.Pointer, error) {
	return std.Realloc(p, newSize, kind)
}

// AuditLeaks runs the exit-time leak audit on the process-wide allocator.
func AuditLeaks() int {
	return std.AuditLeaks()
}
