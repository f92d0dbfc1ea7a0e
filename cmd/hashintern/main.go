// Package main provides the hashintern command line tool.
//
// It interns the lines of text files and reports deduplication and memory
// statistics, and reads and writes interner snapshots.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
