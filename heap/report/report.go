// Package report formats and emits the guarded heap's diagnostics.
//
// Reports are assembled in fixed-size local buffers with hand-rolled
// integer formatting: by the time a report fires, the allocator (or the
// heap around it) is suspected to be corrupted, so the formatting path
// must not depend on any dynamic-size text machinery.
//
// The reporter only writes. Whether a condition is fatal is decided at
// each call site: the error categories are followed by an abort there,
// the leak report is diagnostic-only.
package report

import (
	"github.com/joshuapare/heapguard/heap/track"
	"github.com/joshuapare/heapguard/internal/platform"
)

const (
	errBanner  = "\n\x1b[1;31m=== heapguard ===\x1b[0m\n"
	leakBanner = "\n\x1b[1;33m=== heapguard: leak report ===\x1b[0m\n"

	// bufCap bounds every assembled report line. The widest report
	// (mismatched deallocation) stays well under this.
	bufCap = 256
)

// output is swappable so tests can capture report text.
var output = platform.WriteStderr

// SetOutput redirects report emission and returns the previous sink.
// Intended for tests; the default sink is the raw stderr writer.
func SetOutput(w func([]byte)) (prev func([]byte)) {
	prev = output
	output = w
	return prev
}

const hexDigits = "0123456789abcdef"

// AppendHex appends v to dst as a 0x-prefixed, 16-digit, zero-padded
// lower-case hexadecimal number.
func AppendHex(dst []byte, v uint64) []byte {
	var buf [18]byte
	buf[0], buf[1] = '0', 'x'
	for i := 17; i >= 2; i-- {
		buf[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return append(dst, buf[:]...)
}

// AppendDec appends v to dst as a variable-width decimal number.
func AppendDec(dst []byte, v uint64) []byte {
	if v == 0 {
		return append(dst, '0')
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return append(dst, buf[i:]...)
}

// DoubleFree reports a free of an address still held in quarantine.
func DoubleFree(addr uintptr) {
	var buf [bufCap]byte
	b := append(buf[:0], errBanner...)
	b = append(b, "ERROR: double free\n  address: "...)
	b = AppendHex(b, uint64(addr))
	b = append(b, "\n  this address was already freed and is still in quarantine\n"...)
	output(b)
}

// InvalidFree reports a free of an address no tracked allocation returned.
func InvalidFree(addr uintptr) {
	var buf [bufCap]byte
	b := append(buf[:0], errBanner...)
	b = append(b, "ERROR: invalid free\n  address: "...)
	b = AppendHex(b, uint64(addr))
	b = append(b, "\n  this address was not returned by any tracked allocation\n"...)
	output(b)
}

// KindMismatch reports a block freed through a different allocation API
// than the one that produced it.
func KindMismatch(addr uintptr, tracked, freed track.Kind) {
	var buf [bufCap]byte
	b := append(buf[:0], errBanner...)
	b = append(b, "ERROR: mismatched deallocation\n  address:        "...)
	b = AppendHex(b, uint64(addr))
	b = append(b, "\n  allocated with: "...)
	b = append(b, tracked.String()...)
	b = append(b, "\n  freed with:     "...)
	b = append(b, freed.String()...)
	b = append(b, '\n')
	output(b)
}

// Corruption reports red zone damage found at deallocation time. The two
// flags say which zone was intact, so the report can distinguish an
// underflow (prefix) from an overflow (suffix).
func Corruption(addr, size uintptr, prefixIntact, suffixIntact bool) {
	var buf [bufCap]byte
	b := append(buf[:0], errBanner...)
	b = append(b, "ERROR: buffer overflow detected (red zone corruption)\n  address: "...)
	b = AppendHex(b, uint64(addr))
	b = append(b, "\n  size:    "...)
	b = AppendDec(b, uint64(size))
	b = append(b, " bytes\n"...)
	if !prefixIntact {
		b = append(b, "  -> underflow: prefix red zone corrupted\n"...)
	}
	if !suffixIntact {
		b = append(b, "  -> overflow: suffix red zone corrupted\n"...)
	}
	output(b)
}

// CapacityExhausted reports that the live-allocation registry has no slot
// left for a new allocation. Losing track of a live block would defeat
// every later check, so callers treat this as fatal.
func CapacityExhausted(addr, size uintptr) {
	var buf [bufCap]byte
	b := append(buf[:0], errBanner...)
	b = append(b, "ERROR: allocation registry exhausted\n  address: "...)
	b = AppendHex(b, uint64(addr))
	b = append(b, "\n  size:    "...)
	b = AppendDec(b, uint64(size))
	b = append(b, " bytes\n  the fixed-capacity registry cannot track this allocation\n"...)
	output(b)
}

// LeakHeader emits the banner opening the process-exit leak report.
func LeakHeader() {
	var buf [bufCap]byte
	output(append(buf[:0], leakBanner...))
}

// Leak emits one line for a block still live at the process-exit audit.
func Leak(addr, size uintptr, kind track.Kind) {
	var buf [bufCap]byte
	b := append(buf[:0], "  LEAK: "...)
	b = AppendHex(b, uint64(addr))
	b = append(b, "  size="...)
	b = AppendDec(b, uint64(size))
	b = append(b, "  via="...)
	b = append(b, kind.String()...)
	b = append(b, '\n')
	output(b)
}

// LeakFooter closes the leak report with the total count.
func LeakFooter(count int) {
	var buf [bufCap]byte
	b := append(buf[:0], "  total leaks: "...)
	b = AppendDec(b, uint64(count))
	b = append(b, "\n\n"...)
	output(b)
}

// Aborting announces the process termination that follows a fatal report.
func Aborting() {
	var buf [bufCap]byte
	output(append(buf[:0], "aborting.\n\n"...))
}
