// Package cli provides common CLI utilities for netbuf command-line tools.
//
// This package includes:
//   - Configuration management (named buffer profiles)
//   - Output formatting (YAML, JSON, MessagePack, table)
//   - Request file loading (YAML/JSON)
//   - Buffer region layout rendering
//   - slog setup with an optional rotating log file
//
// Configuration is stored in ~/.netbuf/<app>/ directory, supporting
// multiple profiles similar to kubectl contexts.
//
// Example usage:
//
//	cfg, err := cli.LoadConfig("netbuf")
//
//	// Resolve the profile to use and build a buffer from it
//	p, err := cfg.ResolveProfile("")
//	buf := p.NewBuffer()
//
//	// Output result
//	cli.Output(buf.Stats(), cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	})
package cli
