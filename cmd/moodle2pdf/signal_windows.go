//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// notifyContext cancels the export context on interrupt, failing the
// attempts still running. stop() releases the signal handler.
// syscall.SIGTERM is not available on Windows.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}
