// main.go - Entry point for the perfhar CLI.
// Converts a Chrome performance log captured during a test run into a HAR
// file whose pages are the run's test steps.
//
// Usage:
//
//	perfhar convert --log perf.json --steps steps.yaml --out run.har
//	perfhar version
//
// Exit codes:
//
//	0 = success
//	1 = error (unreadable input, unwritable output, bad config)
package main

import (
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the main entry point, separated for testability.
// Returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
