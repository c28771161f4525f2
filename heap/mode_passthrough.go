//go:build heapguard_passthrough

package heap

// defaultPassthrough disables instrumentation for passthrough builds: the
// entry points degrade to direct platform allocator calls with no tracking
// side effects.
const defaultPassthrough = true
