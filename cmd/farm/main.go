// farm is a tile-based farming game for the terminal.
//
// Usage:
//
//	farm play                - Till, plant and harvest in the terminal
//	farm serve               - Start SSH server, one farm per connection
//	farm tools               - List the tool hotbar
//	farm stats               - Show harvest totals per item
//	farm ledger              - Browse the harvest ledger
//	farm config              - Print the effective configuration
//
// Global flags:
//
//	--config <path>    - Farm config YAML (default: search path, then built-in)
//	--tick-rate <tps>  - Override the simulation tick rate
//	--db <path>        - Set database path (default: ~/.farm/ledger.db)
//	--log <path>       - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-farm/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagTickRate int
	flagDBPath   string
	flagLogPath  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "farm",
	Short: "TUI Farm - Grow crops in your terminal",
	Long: `TUI Farm is a small farming game played in the terminal.

Walk the field, till grass into dirt with the hoe, plant seeds and
harvest them once they have grown over a few in-game days.

Available commands:
  play     - Start farming
  serve    - Start SSH server for remote play
  tools    - Show the tool hotbar
  stats    - Harvest totals per item
  ledger   - Browse recorded sessions and harvests
  config   - Print or validate the configuration

Examples:
  farm play
  farm play --tick-rate 30 --observe :8080
  farm serve --ssh :2222
  farm config > ~/.farm/configs/farm.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to farm config YAML")
	rootCmd.PersistentFlags().IntVar(&flagTickRate, "tick-rate", 0, "Simulation ticks per second (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.farm/ledger.db", "Path to harvest ledger database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the farm config from --config or the search path.
func loadConfig() (config.FarmConfig, error) {
	return config.Load(flagConfig)
}

// newLogger returns a logger writing to --log, or to fallback when the flag
// is empty. A nil fallback discards. The returned closer is never nil.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func() error, error) {
	w := io.Discard
	closer := func() error { return nil }
	if fallback != nil {
		w = fallback
	}
	if flagLogPath != "" {
		f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, closer, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = f.Close
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}
