// SPDX-License-Identifier: MIT

// Command lae evaluates a JSON operation tree of matrix operations on a
// fatigue-scheduled worker pool and writes the result as JSON.
//
// Usage:
//
//	lae [flags] <threads> <input.json> <output.json>
//
// On failure the output file holds {"error": "..."} and the command exits 1.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(newApp(os.Stdout)).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
