package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snowgroomer/internal/catalog"
	"github.com/vovakirdan/snowgroomer/internal/platform/tui"
	"github.com/vovakirdan/snowgroomer/internal/registry"
)

var flagLevelsDir string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the authored campaign",
	Long: `Shows the authored campaign, plus any custom level packs found under
--dir (*.yaml or *.yml files). Invalid files and levels reusing a
campaign id are skipped.

Examples:
  groomer levels
  groomer levels --dir ./packs
  groomer levels check ./packs/nuit.yaml`,
	RunE: runLevels,
}

var levelsCheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate level files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLevelsCheck,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsDir, "dir", "", "Directory of custom level packs")
	levelsCmd.AddCommand(levelsCheckCmd)
}

func runLevels(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	levels := registry.All()

	if flagLevelsDir != "" {
		custom, err := catalog.NewLoader(flagLevelsDir).LoadAll()
		if err != nil {
			return err
		}
		logger.Debug("loaded custom levels", "dir", flagLevelsDir, "count", len(custom))
		for _, d := range custom {
			if registry.Exists(d.ID) {
				logger.Warn("custom level id taken by the campaign, skipping", "id", d.ID, "name", d.Name)
				continue
			}
			levels = append(levels, d)
		}
	}

	if len(levels) == 0 {
		fmt.Fprintln(out, "No levels available.")
		return nil
	}

	maxName := len("Name")
	for _, d := range levels {
		maxName = max(maxName, len([]rune(d.Name)))
	}

	fmt.Fprintf(out, "  %-4s  %-*s  %-8s  %s\n", "ID", maxName, "Name", "Rank", "Time")
	fmt.Fprintf(out, "  %-4s  %-*s  %-8s  %s\n", "--", maxName, "----", "----", "----")
	for _, d := range levels {
		fmt.Fprintf(out, "  %-4d  %s  %-8s  %s\n", d.ID, padRunes(d.Name, maxName), d.Difficulty, tui.FormatTime(d.TimeLimit))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'groomer preview <id>' to see a level.")
	return nil
}

func runLevelsCheck(cmd *cobra.Command, args []string) error {
	loader := catalog.NewLoader("")
	failed := 0
	for _, path := range args {
		levels, err := loader.LoadFile(path)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s\n  %v\n", path, err)
			continue
		}
		for _, d := range levels {
			fmt.Fprintf(cmd.OutOrStdout(), "ok   %s: %d %s (%s)\n", path, d.ID, d.Name, tui.FormatTime(d.TimeLimit))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(args))
	}
	return nil
}

// padRunes left-aligns s in width runes; %-*s pads by bytes.
func padRunes(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + fmt.Sprintf("%*s", width-n, "")
}
