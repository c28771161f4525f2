package main

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapguard/heap/track"
)

var (
	stressWorkers int
	stressOps     int
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVar(&stressWorkers, "workers", 8, "Number of concurrent workers")
	cmd.Flags().IntVar(&stressOps, "ops", 1000, "Allocations per worker")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Hammer the allocator from concurrent workers",
		Long: `Runs a well-behaved workload: many goroutines allocating, writing,
reallocating and freeing blocks of random sizes. No error is expected;
the run ends with an allocator statistics summary and a clean leak audit.

Example:
  heapcheck stress
  heapcheck stress --workers 16 --ops 5000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
	return cmd
}

func runStress() error {
	a := newAllocator()

	var wg sync.WaitGroup
	for w := 0; w < stressWorkers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for i := 0; i < stressOps; i++ {
				size := uintptr(1 + rng.Intn(512))
				p, err := a.Alloc(size, track.KindAlloc)
				if err != nil {
					return
				}
				*(*byte)(p) = byte(i)
				if rng.Intn(4) == 0 {
					np, err := a.Realloc(p, size*2, track.KindAlloc)
					if err != nil {
						a.Free(p, track.KindAlloc)
						continue
					}
					p = np
				}
				a.Free(p, track.KindAlloc)
			}
		}(int64(w))
	}
	wg.Wait()

	st := a.Stats()
	fmt.Printf("allocs:      %d\n", st.Allocs)
	fmt.Printf("frees:       %d\n", st.Frees)
	fmt.Printf("reallocs:    %d\n", st.Reallocs)
	fmt.Printf("live:        %d\n", st.Live)
	fmt.Printf("peak live:   %d\n", st.PeakLive)
	fmt.Printf("quarantined: %d\n", st.Quarantined)

	if leaked := a.AuditLeaks(); leaked != 0 {
		return fmt.Errorf("unexpected leaks after stress run: %d", leaked)
	}
	fmt.Println("clean run, no leaks")
	return nil
}
