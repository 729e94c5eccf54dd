package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func realMain() error {
	// staging files are discarded on cancellation, so an interrupt never
	// leaves a half-written archive or entry behind
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func main() {
	// wrapping main lets deferred calls in realMain run before os.Exit
	if err := realMain(); err != nil {
		fmt.Fprintln(os.Stderr, "flatpack:", err)
		os.Exit(1)
	}
}
