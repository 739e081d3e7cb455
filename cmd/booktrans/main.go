package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// graceful shutdown for the watch command
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := rootCmd.ExecuteContext(ctx)
	if fileLogger != nil {
		_ = fileLogger.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}
