package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapguard/heap/track"
)

func init() {
	rootCmd.AddCommand(newDoubleFreeCmd())
}

func newDoubleFreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doublefree",
		Short: "Free the same allocation twice",
		Long: `Allocates a block, frees it, then frees it again. The second free hits
the quarantine and the allocator aborts with a double-free report.

Example:
  heapcheck doublefree`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoubleFree()
		},
	}
	return cmd
}

func runDoubleFree() error {
	a := newAllocator()

	p, err := a.Alloc(64, track.KindAlloc)
	if err != nil {
		return fmt.Errorf("alloc failed: %w", err)
	}
	printVerbose("allocated 64 bytes at %p\n", p)

	a.Free(p, track.KindAlloc)
	printVerbose("first free done, freeing again\n")
	a.Free(p, track.KindAlloc)

	// Only reachable in passthrough mode.
	fmt.Println("no error detected (passthrough mode)")
	return nil
}
