package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/netbuf/pkg/cli"
	"github.com/haivivi/netbuf/pkg/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay an operation script against a buffer",
	Long: `Replay a YAML or JSON operation script against a fresh buffer and print
the result and buffer state of every step.

The buffer is created from the selected profile; initial and prepend sizes
in the script override it. A bare script name is looked up in
~/.netbuf/netbuf/scripts/<name>.yaml. Use -f - to read from stdin.

Examples:
  netbuf replay -f framing.yaml
  netbuf replay -f framing --stop-on-error --format table
  netbuf replay -f framing.yaml --layout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		stopOnError, _ := cmd.Flags().GetBool("stop-on-error")
		showLayout, _ := cmd.Flags().GetBool("layout")

		if err := requireFlag(file, "script file (-f)"); err != nil {
			return err
		}

		profile, err := getProfile()
		if err != nil {
			return err
		}

		path := resolveScript(file)
		printVerbose("Loading script %s", path)
		script, err := replay.Load(path)
		if err != nil {
			return err
		}

		trace, runErr := replay.Run(cmd.Context(), script, replay.Options{
			Buffer:      profile.Options(),
			StopOnError: stopOnError,
		})
		if trace == nil {
			return runErr
		}
		printVerbose("Trace %s: %d steps, %d failed", trace.ID, len(trace.Steps), trace.Failed)

		if showLayout {
			printLayouts(trace)
		} else if err := outputResult(trace, profile); err != nil {
			return err
		}
		return runErr
	},
}

// printLayouts draws the buffer after every step.
func printLayouts(trace *replay.Trace) {
	fmt.Println(cli.NewLayout("start").Render(trace.Start, 80))
	for _, s := range trace.Steps {
		title := fmt.Sprintf("#%d %s", s.Index, s.Op)
		if s.Error != "" {
			title += " (error: " + s.Error + ")"
		}
		fmt.Println()
		fmt.Println(cli.NewLayout(title).Render(s.Stats, 80))
	}
}

func init() {
	replayCmd.Flags().StringP("file", "f", "", "script file (YAML or JSON, - for stdin)")
	replayCmd.Flags().Bool("stop-on-error", false, "stop at the first failing step")
	replayCmd.Flags().Bool("layout", false, "draw the buffer layout after every step")
}
