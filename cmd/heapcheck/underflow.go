package main

import (
	"fmt"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapguard/heap/track"
)

func init() {
	rootCmd.AddCommand(newUnderflowCmd())
}

func newUnderflowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "underflow",
		Short: "Write one byte before the start of an allocation",
		Long: `Allocates a block, writes one byte before its start into the prefix red
zone, then frees it. The damaged canary is detected at free time and the
allocator aborts with an underflow report.

Example:
  heapcheck underflow`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnderflow()
		},
	}
	return cmd
}

func runUnderflow() error {
	a := newAllocator()

	p, err := a.Alloc(32, track.KindAlloc)
	if err != nil {
		return fmt.Errorf("alloc failed: %w", err)
	}
	printVerbose("allocated 32 bytes at %p, writing at offset -1\n", p)

	*(*byte)(unsafe.Add(p, -1)) = 0x42

	a.Free(p, track.KindAlloc)

	fmt.Println("no error detected (passthrough mode)")
	return nil
}
