package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapguard/heap"
)

var (
	// Global flags
	passthrough bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "heapcheck",
	Short: "Drive the guarded heap allocator into each of its detection scenarios",
	Long: `heapcheck exercises the heapguard allocator end to end. Each subcommand
performs a deliberately broken (or deliberately clean) allocation sequence so
the resulting diagnostic report can be observed on stderr.

The error scenarios terminate the process with SIGABRT, exactly as the
allocator would in production. Run them one at a time:

  heapcheck doublefree
  heapcheck overflow
  heapcheck leak

With --passthrough the allocator degrades to direct platform calls and no
scenario is detected; this demonstrates the uninstrumented mode.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().
		BoolVar(&passthrough, "passthrough", false, "Disable instrumentation (direct platform allocator calls)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newAllocator builds the allocator the scenarios run against.
func newAllocator() *heap.Allocator {
	return heap.New(heap.WithPassthrough(passthrough))
}

// printVerbose prints a progress message when verbose mode is enabled.
func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}
