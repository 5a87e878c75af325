// Package main provides the entry point for the habit CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/habit/habit/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(cli.ExitCode(err))
}
