// Package main provides the entry point for the byteprobe CLI.
//
// byteprobe reads a file (or standard input) and runs an ordered list of
// byte-interpretation actions over it: hex dumps, timestamps, integers,
// strings, GUIDs, CBOR items and EXIF tags. The result is one report with a
// header banner, one section per action and the execution time.
//
// Usage:
//
//	byteprobe interpret <file>...
//	byteprobe interpret -a hexdump -a timestamp --set timestamp.format=unix32 <file>
//
// See --help for all available options.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
)

// main is the entry point for byteprobe.
func main() {
	os.Exit(run())
}

// run executes the root command and returns the process exit status.
// Any error, including an aborted report, exits with status 1.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, NewRootCmd(), fang.WithVersion(getVersion())); err != nil {
		return 1
	}
	return 0
}
