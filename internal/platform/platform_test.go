package platform

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestAllocFree(t *testing.T) {
	p, err := Alloc(64)
	require.NoError(t, err)
	require.NotNil(t, p)

	// The block must be writable across its full usable extent.
	b := unsafe.Slice((*byte)(p), UsableSize(p))
	for i := range b {
		b[i] = 0x5A
	}
	for i := range b {
		require.Equal(t, byte(0x5A), b[i])
	}

	Free(p)
}

func TestUsableSizeCoversRequest(t *testing.T) {
	for _, size := range []uintptr{1, 16, 64, 4096, 70000} {
		p, err := Alloc(size)
		require.NoError(t, err)
		require.GreaterOrEqual(t, UsableSize(p), size, "size %d", size)
		Free(p)
	}
}

func TestAllocAlignment(t *testing.T) {
	for i := 0; i < 8; i++ {
		p, err := Alloc(24)
		require.NoError(t, err)
		require.Zero(t, uintptr(p)%16, "blocks must be 16-byte aligned")
		Free(p)
	}
}

func TestReallocPreservesData(t *testing.T) {
	p, err := Alloc(32)
	require.NoError(t, err)
	b := unsafe.Slice((*byte)(p), 32)
	for i := range b {
		b[i] = byte(i)
	}

	np, err := Realloc(p, 64)
	require.NoError(t, err)
	nb := unsafe.Slice((*byte)(np), 64)
	for i := 0; i < 32; i++ {
		require.Equal(t, byte(i), nb[i])
	}
	Free(np)
}

func TestReallocNilActsAsAlloc(t *testing.T) {
	p, err := Realloc(nil, 48)
	require.NoError(t, err)
	require.NotNil(t, p)
	Free(p)
}

func TestFreeNilIsNoop(t *testing.T) {
	Free(nil) // must not panic
}
