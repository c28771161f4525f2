package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapguard/heap/track"
)

func init() {
	rootCmd.AddCommand(newMismatchCmd())
}

func newMismatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mismatch",
		Short: "Free an allocation with the wrong deallocation kind",
		Long: `Allocates a block as new[] and frees it as new. The registry remembers
how each block was allocated, so the allocator aborts with an
allocation-kind mismatch report.

Example:
  heapcheck mismatch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMismatch()
		},
	}
	return cmd
}

func runMismatch() error {
	a := newAllocator()

	p, err := a.Alloc(128, track.KindNewArray)
	if err != nil {
		return fmt.Errorf("alloc failed: %w", err)
	}
	printVerbose("allocated 128 bytes as new[] at %p\n", p)

	a.Free(p, track.KindNew)

	fmt.Println("no error detected (passthrough mode)")
	return nil
}
