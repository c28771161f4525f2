//go:build !unix

package platform

import (
	"os"
	"sync"
	"unsafe"
)

// Non-unix fallback: blocks come from the Go heap and are pinned in a
// package-level map so the collector cannot reclaim or move them while the
// tracking layer holds their addresses as raw integers.

var (
	pinnedMu sync.Mutex
	pinned   = make(map[unsafe.Pointer][]byte)
)

// Alloc returns a pointer to a pinned heap block of at least size bytes.
func Alloc(size uintptr) (unsafe.Pointer, error) {
	total := alignUp(headerSize+size, headerSize)
	b := make([]byte, total)
	base := unsafe.Pointer(&b[0])
	p := unsafe.Add(base, headerSize)
	header(p).mapped = total
	pinnedMu.Lock()
	pinned[p] = b
	pinnedMu.Unlock()
	return p, nil
}

// Free unpins the block containing p, returning it to the collector.
func Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	pinnedMu.Lock()
	delete(pinned, p)
	pinnedMu.Unlock()
}

// WriteStderr writes b to the process standard error stream.
func WriteStderr(b []byte) {
	_, _ = os.Stderr.Write(b)
}

// Abort terminates the process with the conventional SIGABRT exit status.
func Abort() {
	os.Exit(134)
}
