package main

import (
	"fmt"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapguard/heap/track"
)

func init() {
	rootCmd.AddCommand(newUafCmd())
}

func newUafCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uaf",
		Short: "Read from a freed allocation",
		Long: `Allocates a block, frees it, then reads it back. The block sits in
quarantine with its contents poisoned, so the read observes the poison
pattern instead of the original data. This demonstrates how a
use-after-free surfaces as garbage reads rather than silently reusing
stale data.

Example:
  heapcheck uaf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUaf()
		},
	}
	return cmd
}

func runUaf() error {
	a := newAllocator()

	const size = 16
	p, err := a.Alloc(size, track.KindAlloc)
	if err != nil {
		return fmt.Errorf("alloc failed: %w", err)
	}
	for i := 0; i < size; i++ {
		*(*byte)(unsafe.Add(p, i)) = byte(i)
	}
	printVerbose("wrote 0x00..0x0f to %p, freeing\n", p)

	a.Free(p, track.KindAlloc)

	if passthrough {
		fmt.Println("passthrough mode: reading freed memory is undefined, skipping")
		return nil
	}

	fmt.Printf("bytes after free at %p:", p)
	for i := 0; i < size; i++ {
		fmt.Printf(" %02x", *(*byte)(unsafe.Add(p, i)))
	}
	fmt.Println()
	fmt.Println("stale data was overwritten with the poison pattern")
	return nil
}
