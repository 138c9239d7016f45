package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/netbuf/pkg/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `Manage netbuf CLI configuration.

Configuration is stored in ~/.netbuf/netbuf/config.yaml.
Multiple buffer profiles can be defined for different workloads.`,
}

var configAddProfileCmd = &cobra.Command{
	Use:   "add-profile <name>",
	Short: "Add or replace a buffer profile",
	Long: `Add a buffer profile. Sizes left unset use the buffer defaults.

Examples:
  netbuf config add-profile jumbo --initial 65536 --prepend 16
  netbuf config add-profile raw --prepend 0 --output json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		initial, _ := cmd.Flags().GetInt("initial")
		output, _ := cmd.Flags().GetString("output-format")

		p := &cli.Profile{
			Name:    name,
			Initial: initial,
		}
		if cmd.Flags().Changed("prepend") {
			prepend, _ := cmd.Flags().GetInt("prepend")
			p.Prepend = &prepend
		}
		if output != "" {
			format, err := cli.ParseOutputFormat(output)
			if err != nil {
				return err
			}
			p.Output = format
		}

		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.AddProfile(name, p); err != nil {
			return err
		}

		cli.PrintSuccess("Profile '%s' added successfully", name)
		return nil
	},
}

var configDeleteProfileCmd = &cobra.Command{
	Use:   "delete-profile <name>",
	Short: "Delete a buffer profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.DeleteProfile(name); err != nil {
			return err
		}
		cli.PrintSuccess("Profile '%s' deleted", name)
		return nil
	},
}

var configUseProfileCmd = &cobra.Command{
	Use:   "use-profile <name>",
	Short: "Set the default buffer profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		if err := cfg.UseProfile(name); err != nil {
			return err
		}
		cli.PrintSuccess("Switched to profile '%s'", name)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all buffer profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		names := cfg.ListProfiles()
		if len(names) == 0 {
			fmt.Println("No profiles configured")
			return nil
		}

		for _, name := range names {
			p := cfg.Profiles[name]
			marker := "  "
			if name == cfg.CurrentProfile {
				marker = "* "
			}
			fmt.Printf("%s%-16s initial=%d prepend=%d\n", marker, name, p.InitialSize(), p.PrependSize())
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show full configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := getConfig()
		if err != nil {
			return err
		}
		return outputResult(cfg, nil)
	},
}

func init() {
	// add-profile flags
	configAddProfileCmd.Flags().Int("initial", 0, "initial writable size (default 1024)")
	configAddProfileCmd.Flags().Int("prepend", 0, "prepend reserve (default 8)")
	configAddProfileCmd.Flags().String("output-format", "", "preferred output format for this profile")

	configCmd.AddCommand(configAddProfileCmd)
	configCmd.AddCommand(configDeleteProfileCmd)
	configCmd.AddCommand(configUseProfileCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configShowCmd)
}
