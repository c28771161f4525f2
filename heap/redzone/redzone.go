// Package redzone stamps and verifies the guard regions flanking every
// user allocation.
//
// A guarded block is laid out as:
//
//	base                 base+Size              base+Size+userSize
//	| prefix red zone    | user region          | suffix red zone    |
//	|<----- Size ------->|<---- userSize ------>|<----- Size ------->|
//
// Both zones are filled with CanaryByte at allocation time. Any deviation
// observed at deallocation time means a write escaped the user region.
// Freed user data is overwritten with PoisonByte so dangling reads see a
// recognizable pattern instead of recycled memory.
package redzone

import "unsafe"

const (
	// Size of each red zone (prefix and suffix), in bytes. 16 matches the
	// platform allocator's block alignment, so the user region keeps it.
	Size = 16

	// CanaryByte is the pattern written into red zones.
	CanaryByte = 0xAB

	// PoisonByte is the pattern written over freed user data.
	PoisonByte = 0xFE
)

// TotalSize returns the underlying block size for a userSize-byte
// allocation, including both red zones.
func TotalSize(userSize uintptr) uintptr {
	return Size + userSize + Size
}

// User returns the user-region pointer for a block starting at base.
func User(base unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(base, Size)
}

// Base returns the block start for a user-region pointer.
func Base(user unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(user, -Size)
}

// Fill writes the canary pattern into the prefix and suffix zones of the
// block at base, around a userSize-byte user region.
func Fill(base unsafe.Pointer, userSize uintptr) {
	stamp(unsafe.Slice((*byte)(base), Size))
	stamp(unsafe.Slice((*byte)(unsafe.Add(base, Size+userSize)), Size))
}

// Check re-reads both zones and compares them byte-for-byte against the
// canary pattern. It reports each zone separately so the caller can say
// whether the write escaped below (prefix) or above (suffix) the region.
func Check(base unsafe.Pointer, userSize uintptr) (prefixOK, suffixOK bool) {
	prefixOK = intact(unsafe.Slice((*byte)(base), Size))
	suffixOK = intact(unsafe.Slice((*byte)(unsafe.Add(base, Size+userSize)), Size))
	return prefixOK, suffixOK
}

// Poison overwrites the user region (not the zones) with PoisonByte.
func Poison(user unsafe.Pointer, userSize uintptr) {
	b := unsafe.Slice((*byte)(user), userSize)
	for i := range b {
		b[i] = PoisonByte
	}
}

func stamp(zone []byte) {
	for i := range zone {
		zone[i] = CanaryByte
	}
}

func intact(zone []byte) bool {
	for _, b := range zone {
		if b != CanaryByte {
			return false
		}
	}
	return true
}
