// Package platform provides the underlying memory primitives for the guarded
// heap: raw block allocation, physical reclamation, unbuffered stderr output,
// and process abort.
//
// Blocks are carved out of anonymous private mappings rather than the Go heap
// so that block addresses are stable integers the tracking layer can key on,
// and so that reclamation is a real unmap instead of waiting on the collector.
//
// Each block is preceded by a 16-byte header recording the total mapped
// length. The header keeps Free and Realloc size-free, the same contract as
// malloc/free, which the passthrough mode of the facade depends on.
package platform

import "unsafe"

// headerSize is the gap between the mapping start and the pointer handed to
// the caller. 16 bytes preserves max_align_t-style alignment for the block.
const headerSize = 16

// blockHeader sits at the start of every mapping.
type blockHeader struct {
	mapped uintptr // total mapped length, including this header
	_      uintptr // pad to headerSize
}

// header returns the block header for a pointer previously returned by Alloc.
func header(p unsafe.Pointer) *blockHeader {
	return (*blockHeader)(unsafe.Add(p, -headerSize))
}

// UsableSize reports the number of bytes usable at p, which may exceed the
// requested size due to page rounding. p must have been returned by Alloc.
func UsableSize(p unsafe.Pointer) uintptr {
	return header(p).mapped - headerSize
}

// Realloc resizes a block by allocating, copying and freeing. The mapping
// granularity makes in-place growth pointless at this layer.
func Realloc(p unsafe.Pointer, newSize uintptr) (unsafe.Pointer, error) {
	if p == nil {
		return Alloc(newSize)
	}
	np, err := Alloc(newSize)
	if err != nil {
		return nil, err
	}
	n := UsableSize(p)
	if newSize < n {
		n = newSize
	}
	copy(unsafe.Slice((*byte)(np), n), unsafe.Slice((*byte)(p), n))
	Free(p)
	return np, nil
}

// alignUp rounds n up to the next multiple of align. align must be a power
// of two.
func alignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}
