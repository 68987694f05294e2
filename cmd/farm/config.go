package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-farm/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration farm would run with, as YAML.

The first line names where it came from. Redirect the output to a file to
start a custom config.

Examples:
  farm config
  farm config --config ./my-farm.yaml
  farm config validate ./my-farm.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a config file against the schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configValidateCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	fmt.Printf("# source: %s\n", cfg.Source)
	_, err = os.Stdout.Write(data)
	return err
}

func runConfigValidate(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if _, err := config.Parse(data); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	fmt.Printf("%s: ok\n", args[0])
	return nil
}
