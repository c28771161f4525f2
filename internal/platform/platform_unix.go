//go:build unix

package platform

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Alloc maps an anonymous private region large enough for size bytes plus
// the block header and returns a pointer past the header. A mapping failure
// (true out-of-memory or vm.max_map_count pressure) is returned as an
// ordinary error for the caller to propagate.
func Alloc(size uintptr) (unsafe.Pointer, error) {
	total := alignUp(headerSize+size, uintptr(os.Getpagesize()))
	b, err := unix.Mmap(-1, 0, int(total),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	base := unsafe.Pointer(&b[0])
	header(unsafe.Add(base, headerSize)).mapped = total
	return unsafe.Add(base, headerSize), nil
}

// Free unmaps the block containing p. p must have been returned by Alloc
// and not freed before; this layer performs no validation of its own, that
// is the guarded facade's job.
func Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	base := unsafe.Add(p, -headerSize)
	total := header(p).mapped
	// Munmap wants the original mapping as a slice; reconstruct it.
	_ = unix.Munmap(unsafe.Slice((*byte)(base), total))
}

// WriteStderr writes b to fd 2 with a single raw syscall, bypassing any
// buffering or formatting machinery. Diagnostic reports must stay usable
// even when the Go heap itself is the component under suspicion.
func WriteStderr(b []byte) {
	_, _ = unix.Write(2, b)
}

// Abort terminates the process the way a native allocator would: SIGABRT,
// so a core dump and nonzero status are produced. Exit is the fallback if
// the signal is somehow swallowed.
func Abort() {
	_ = unix.Kill(unix.Getpid(), unix.SIGABRT)
	os.Exit(134)
}
