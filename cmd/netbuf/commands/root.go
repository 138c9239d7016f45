package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/haivivi/netbuf/pkg/cli"
)

const appName = "netbuf"

var (
	// Global flags
	cfgFile      string
	profileName  string
	outputFile   string
	outputJSON   bool
	formatOutput string
	logFile      string
	verbose      bool

	// Global configuration
	globalConfig *cli.Config

	// logWriter frames slog output; closed when the command returns
	logWriter *cli.LogWriter
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "netbuf",
	Short: "Inspect and exercise network byte buffers",
	Long: `netbuf - A command line tool for the netbuf byte buffer.

This tool drives a prependable, growable byte buffer from the outside:
  - replay YAML/JSON operation scripts and trace every step
  - benchmark append/drain workloads and count grows and compactions
  - draw the prependable/readable/writable layout of a buffer

Configuration is stored in ~/.netbuf/netbuf/ and supports multiple buffer
profiles, similar to kubectl's context management.

Examples:
  # Define a profile for large frames
  netbuf config add-profile jumbo --initial 65536 --prepend 16

  # Replay a script with that profile
  netbuf -p jumbo replay -f framing.yaml

  # Benchmark the default workload as JSON
  netbuf bench --iterations 100000 --json
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Command returns the root cobra command for mounting into a parent CLI.
func Command() *cobra.Command {
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext is Execute with a context that long-running commands
// watch for cancellation.
func ExecuteContext(ctx context.Context) error {
	defer closeLogs()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "config file (default is ~/.netbuf/netbuf/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "buffer profile to use")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")
	rootCmd.PersistentFlags().StringVar(&formatOutput, "format", "", "output format: yaml, json, table, msgpack, raw")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file, rotated at 10 MB")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(layoutCmd)
}

func initConfig() {
	// Configure slog based on verbose and log-file flags
	closeLogs()
	var logger *slog.Logger
	logger, logWriter = cli.SetupLogging(cli.LogOptions{
		Verbose: verbose,
		File:    logFile,
	})
	slog.SetDefault(logger)

	var err error
	globalConfig, err = cli.LoadConfigWithPath(appName, cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s config: %v\n", appName, err)
	}
}

func closeLogs() {
	if logWriter != nil {
		logWriter.Close()
		logWriter = nil
	}
}

// getConfig returns the global configuration
func getConfig() (*cli.Config, error) {
	if globalConfig == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}
	return globalConfig, nil
}

// getProfile returns the buffer profile selected by -p, the current
// profile, or the built-in defaults
func getProfile() (*cli.Profile, error) {
	cfg, err := getConfig()
	if err != nil {
		// Buffer commands still work without a config file.
		if profileName == "" {
			return cli.DefaultProfile(), nil
		}
		return nil, err
	}
	return cfg.ResolveProfile(profileName)
}
