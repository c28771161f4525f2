package redzone

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// block allocates a guarded-layout buffer on the Go heap for codec tests.
// The facade uses the platform allocator; the codec itself only needs a
// contiguous region.
func block(userSize uintptr) (base unsafe.Pointer, raw []byte) {
	raw = make([]byte, TotalSize(userSize))
	return unsafe.Pointer(&raw[0]), raw
}

func TestFillThenCheckIntact(t *testing.T) {
	for _, userSize := range []uintptr{0, 1, 7, 16, 64, 4096} {
		base, _ := block(userSize)
		Fill(base, userSize)

		prefixOK, suffixOK := Check(base, userSize)
		assert.True(t, prefixOK, "size %d prefix", userSize)
		assert.True(t, suffixOK, "size %d suffix", userSize)
	}
}

func TestFillDoesNotTouchUserRegion(t *testing.T) {
	const userSize = 32
	base, raw := block(userSize)
	for i := range raw {
		raw[i] = 0x11
	}
	Fill(base, userSize)

	for i := Size; i < Size+userSize; i++ {
		require.Equal(t, byte(0x11), raw[i], "user byte %d clobbered", i)
	}
}

func TestCheckDetectsSuffixCorruption(t *testing.T) {
	const userSize = 32
	base, raw := block(userSize)
	Fill(base, userSize)

	// One byte past the end of the user region.
	raw[Size+userSize] ^= 0xFF

	prefixOK, suffixOK := Check(base, userSize)
	assert.True(t, prefixOK)
	assert.False(t, suffixOK)
}

func TestCheckDetectsPrefixCorruption(t *testing.T) {
	const userSize = 32
	base, raw := block(userSize)
	Fill(base, userSize)

	// One byte before the start of the user region.
	raw[Size-1] ^= 0xFF

	prefixOK, suffixOK := Check(base, userSize)
	assert.False(t, prefixOK)
	assert.True(t, suffixOK)
}

func TestCheckDetectsLastSuffixByte(t *testing.T) {
	const userSize = 8
	base, raw := block(userSize)
	Fill(base, userSize)

	raw[len(raw)-1] = 0x00

	_, suffixOK := Check(base, userSize)
	assert.False(t, suffixOK)
}

func TestPoisonCoversUserRegionOnly(t *testing.T) {
	const userSize = 48
	base, raw := block(userSize)
	Fill(base, userSize)

	Poison(User(base), userSize)

	for i := Size; i < Size+userSize; i++ {
		require.Equal(t, byte(PoisonByte), raw[i])
	}
	prefixOK, suffixOK := Check(base, userSize)
	assert.True(t, prefixOK, "poison must not touch the prefix zone")
	assert.True(t, suffixOK, "poison must not touch the suffix zone")
}

func TestUserBaseRoundTrip(t *testing.T) {
	base, _ := block(16)
	assert.Equal(t, base, Base(User(base)))
	assert.Equal(t, uintptr(Size), uintptr(User(base))-uintptr(base))
}
