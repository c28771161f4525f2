package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapguard/heap/track"
)

var leakCount int

func init() {
	cmd := newLeakCmd()
	cmd.Flags().IntVar(&leakCount, "count", 3, "Number of allocations to leak")
	rootCmd.AddCommand(cmd)
}

func newLeakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leak",
		Short: "Allocate without freeing and run the leak audit",
		Long: `Performs a handful of allocations, frees none of them, and runs the
leak audit. Every live allocation is reported to stderr with its address,
size and allocation kind. The audit is diagnostic only and does not abort.

Example:
  heapcheck leak
  heapcheck leak --count 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLeak()
		},
	}
	return cmd
}

func runLeak() error {
	a := newAllocator()

	for i := 0; i < leakCount; i++ {
		size := uintptr(16 * (i + 1))
		if _, err := a.Alloc(size, track.KindAlloc); err != nil {
			return fmt.Errorf("alloc failed: %w", err)
		}
		printVerbose("leaked %d bytes\n", size)
	}

	leaked := a.AuditLeaks()
	fmt.Printf("leak audit reported %d allocation(s)\n", leaked)
	return nil
}
