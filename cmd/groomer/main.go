// groomer generates, previews and shares procedural ski pistes.
//
// Usage:
//
//	groomer generate --rank red        - Generate a piste from a seed
//	groomer daily                      - Show today's daily contract
//	groomer levels                     - List the authored campaign
//	groomer preview [level-id]         - Preview a map in the terminal
//	groomer code <seed-or-code>        - Convert between seeds and codes
//	groomer share --seed 2N9C          - Print a share link query
//	groomer record / runs              - Log finished runs and list them
//	groomer serve                      - Start SSH server for remote previews
//
// Global flags:
//
//	--config <path>     - Generator config YAML
//	--db <path>         - Run log database (default: ~/.groomer/runs.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Register the authored campaign.
	_ "github.com/vovakirdan/snowgroomer/internal/catalog"
	"github.com/vovakirdan/snowgroomer/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string

	// Set by the root pre-run hook.
	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "groomer",
	Short: "Snow Groomer - procedural pistes for night-shift groomers",
	Long: `Snow Groomer generates the pistes of the grooming game from a seed and a
difficulty rank, and previews their geometry in the terminal.

Available commands:
  generate - Generate a piste from a seed code
  daily    - Today's daily contract
  levels   - List the authored campaign
  preview  - Interactive or one-shot map preview
  code     - Convert between decimal seeds and seed codes
  share    - Build or parse a share link query
  record   - Record a finished run
  runs     - List recorded runs
  serve    - Start SSH server for remote previews

Examples:
  groomer generate --rank black --seed 2N9C
  groomer daily --rank red
  groomer preview 6 --static
  groomer serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		l, err := newLogger(flagLogLevel)
		if err != nil {
			return err
		}
		logger = l
		log.SetDefault(logger)

		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		appConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to generator config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.groomer/runs.db", "Path to run log database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(codeCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the stderr logger shared by every command.
func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "groomer",
		Level:           lvl,
	}), nil
}
