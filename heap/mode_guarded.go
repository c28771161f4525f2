//go:build !heapguard_passthrough

package heap

// defaultPassthrough selects the instrumented mode for default builds.
// Building with -tags heapguard_passthrough flips every allocator that
// does not set WithPassthrough explicitly into direct platform calls.
const defaultPassthrough = false
