package commands

import (
	"fmt"

	"github.com/haivivi/netbuf/pkg/cli"
)

// getOutputFormat resolves the output format: --json, then --format, then
// the profile's preferred format, then YAML.
func getOutputFormat(p *cli.Profile) (cli.OutputFormat, error) {
	if outputJSON {
		return cli.FormatJSON, nil
	}
	if formatOutput != "" {
		return cli.ParseOutputFormat(formatOutput)
	}
	if p != nil && p.Output != "" {
		return cli.ParseOutputFormat(string(p.Output))
	}
	return cli.FormatYAML, nil
}

// outputResult outputs the result using cli package
func outputResult(result any, p *cli.Profile) error {
	format, err := getOutputFormat(p)
	if err != nil {
		return err
	}
	return cli.Output(result, cli.OutputOptions{
		Format: format,
		File:   outputFile,
	})
}

// resolveScript maps a bare script name to ~/.netbuf/netbuf/scripts/<name>.yaml
func resolveScript(name string) string {
	if name == "-" {
		return name
	}
	paths, err := cli.NewPaths(appName)
	if err != nil {
		return name
	}
	return paths.ScriptPath(name)
}

// requireFlag checks that a string flag was provided
func requireFlag(value, flag string) error {
	if value == "" {
		return fmt.Errorf("%s is required", flag)
	}
	return nil
}

// printVerbose prints verbose output if enabled
func printVerbose(format string, args ...any) {
	cli.PrintVerbose(verbose, format, args...)
}
