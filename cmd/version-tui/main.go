// Version TUI is a terminal tool for bumping a project's semantic version.
// It edits the version stored in the project settings, writes the patch
// notes for the release next to the project, and offers the same flow as
// non-interactive commands for scripts.
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
