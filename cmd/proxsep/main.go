// SPDX-License-Identifier: MIT

// Command proxsep builds a named problem fixture, compiles it into
// prox-separable form and prints the result with compile statistics.
//
// Usage:
//
//	proxsep fixtures
//	proxsep compile --fixture lasso --size 10 [--config proxsep.yaml] [--trace] [--metrics]
package main

import (
	"context"
	"os"
	"os/signal"
)

// Exit codes.
const (
	exitSuccess = 0
	exitError   = 1
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		return exitError
	}
	return exitSuccess
}
