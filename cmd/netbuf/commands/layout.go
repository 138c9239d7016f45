package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haivivi/netbuf/pkg/cli"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Show the region layout of a buffer",
	Long: `Create a buffer from the selected profile, optionally append, retrieve
and prepend some bytes, and draw its prependable, readable and writable
regions. With --json or --format the buffer stats are printed instead.

Examples:
  netbuf layout
  netbuf -p jumbo layout --append 4000 --retrieve 1000 --header 4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appendN, _ := cmd.Flags().GetInt("append")
		retrieveN, _ := cmd.Flags().GetInt("retrieve")
		header, _ := cmd.Flags().GetInt("header")
		width, _ := cmd.Flags().GetInt("width")

		profile, err := getProfile()
		if err != nil {
			return err
		}

		b := profile.NewBuffer()
		if appendN > 0 {
			b.AppendString(strings.Repeat("x", appendN))
		}
		if err := b.Retrieve(retrieveN); err != nil {
			return err
		}
		if header > 0 {
			if err := b.Prepend(make([]byte, header)); err != nil {
				return err
			}
		}

		st := b.Stats()
		if outputJSON || formatOutput != "" {
			return outputResult(st, profile)
		}
		fmt.Println(cli.NewLayout("profile " + profile.Name).Render(st, width))
		return nil
	},
}

func init() {
	layoutCmd.Flags().Int("append", 0, "bytes to append")
	layoutCmd.Flags().Int("retrieve", 0, "bytes to retrieve after appending")
	layoutCmd.Flags().Int("header", 0, "bytes to prepend last")
	layoutCmd.Flags().Int("width", 80, "layout width in columns")
}
