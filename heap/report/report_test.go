package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joshuapare/heapguard/heap/track"
)

// capture redirects report output into a builder for the test's duration.
func capture(t *testing.T) *strings.Builder {
	t.Helper()
	var sb strings.Builder
	prev := SetOutput(func(b []byte) { sb.Write(b) })
	t.Cleanup(func() { SetOutput(prev) })
	return &sb
}

func TestAppendHex(t *testing.T) {
	assert.Equal(t, "0x0000000000000000", string(AppendHex(nil, 0)))
	assert.Equal(t, "0x00000000deadbeef", string(AppendHex(nil, 0xDEADBEEF)))
	assert.Equal(t, "0xffffffffffffffff", string(AppendHex(nil, ^uint64(0))))

	// Appends after existing content.
	b := AppendHex([]byte("addr="), 0x10)
	assert.Equal(t, "addr=0x0000000000000010", string(b))
}

func TestAppendDec(t *testing.T) {
	assert.Equal(t, "0", string(AppendDec(nil, 0)))
	assert.Equal(t, "7", string(AppendDec(nil, 7)))
	assert.Equal(t, "1024", string(AppendDec(nil, 1024)))
	assert.Equal(t, "18446744073709551615", string(AppendDec(nil, ^uint64(0))))
}

func TestDoubleFreeReport(t *testing.T) {
	out := capture(t)
	DoubleFree(0x7F00AB)

	s := out.String()
	assert.Contains(t, s, "ERROR: double free")
	assert.Contains(t, s, "0x00000000007f00ab")
	assert.Contains(t, s, "quarantine")
}

func TestInvalidFreeReport(t *testing.T) {
	out := capture(t)
	InvalidFree(0x1234)

	s := out.String()
	assert.Contains(t, s, "ERROR: invalid free")
	assert.Contains(t, s, "0x0000000000001234")
}

func TestKindMismatchReport(t *testing.T) {
	out := capture(t)
	KindMismatch(0x2000, track.KindNewArray, track.KindNew)

	s := out.String()
	assert.Contains(t, s, "ERROR: mismatched deallocation")
	assert.Contains(t, s, "allocated with: new[]")
	assert.Contains(t, s, "freed with:     new")
}

func TestCorruptionReportDistinguishesZones(t *testing.T) {
	out := capture(t)
	Corruption(0x3000, 32, true, false)
	s := out.String()
	assert.Contains(t, s, "red zone corruption")
	assert.Contains(t, s, "size:    32 bytes")
	assert.Contains(t, s, "overflow: suffix red zone corrupted")
	assert.NotContains(t, s, "underflow: prefix")

	out.Reset()
	Corruption(0x3000, 32, false, true)
	s = out.String()
	assert.Contains(t, s, "underflow: prefix red zone corrupted")
	assert.NotContains(t, s, "overflow: suffix")
}

func TestCapacityExhaustedReport(t *testing.T) {
	out := capture(t)
	CapacityExhausted(0x4000, 128)

	s := out.String()
	assert.Contains(t, s, "registry exhausted")
	assert.Contains(t, s, "size:    128 bytes")
}

func TestLeakReportLines(t *testing.T) {
	out := capture(t)
	LeakHeader()
	Leak(0x5000, 64, track.KindAlloc)
	Leak(0x6000, 32, track.KindNewArray)
	LeakFooter(2)

	s := out.String()
	assert.Contains(t, s, "leak report")
	assert.Contains(t, s, "LEAK: 0x0000000000005000  size=64  via=alloc")
	assert.Contains(t, s, "LEAK: 0x0000000000006000  size=32  via=new[]")
	assert.Contains(t, s, "total leaks: 2")
}
