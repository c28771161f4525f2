package spin

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAcquireRelease(t *testing.T) {
	var l Lock
	l.Acquire()
	l.Release()
	l.Acquire()
	l.Release()
}

// TestMutualExclusion hammers a plain counter from many goroutines; any
// lost update means two holders were inside the critical section at once.
func TestMutualExclusion(t *testing.T) {
	const (
		goroutines = 8
		iterations = 5000
	)

	var (
		l       Lock
		counter int
		wg      sync.WaitGroup
	)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				l.Acquire()
				counter++
				l.Release()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, goroutines*iterations, counter)
}

// TestDeferredReleaseOnEveryPath checks that the defer-Release idiom leaves
// the lock acquirable after a panicking critical section.
func TestDeferredReleaseOnEveryPath(t *testing.T) {
	var l Lock

	func() {
		defer func() { _ = recover() }()
		l.Acquire()
		defer l.Release()
		panic("early exit")
	}()

	done := make(chan struct{})
	go func() {
		l.Acquire()
		l.Release()
		close(done)
	}()
	<-done
}
