// Command carbonsense estimates the CO₂ footprint of ML inference workloads.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Yasharm4x/CarbonSense-v5/internal/cli"
	"github.com/Yasharm4x/CarbonSense-v5/pkg/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(version.String()).ExecuteContext(ctx)
}
