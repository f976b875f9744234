// ./main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MLouchini/sitepilot/cmd"
	"github.com/MLouchini/sitepilot/internal/observability"
)

// main is the entry point for the sitepilot CLI application.
func main() {
	// Listen for interrupt signals so long-running commands (narration) can
	// shut down gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)
	observability.Sync()
	if err != nil {
		os.Exit(1)
	}
}
