// Package main provides the netbuf CLI tool.
//
// Usage:
//
//	netbuf [flags] <command> [args]
//
// Commands:
//
//	replay   - Replay an operation script against a buffer
//	bench    - Run an append/drain workload
//	layout   - Show the region layout of a buffer
//	config   - Configuration management
//
// Configuration:
//
//	The CLI stores configuration in ~/.netbuf/netbuf/
//	Use 'netbuf config' commands to manage buffer profiles.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/haivivi/netbuf/cmd/netbuf/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := commands.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
