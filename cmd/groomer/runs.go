package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snowgroomer/internal/platform/tui"
	"github.com/vovakirdan/snowgroomer/internal/rng"
	"github.com/vovakirdan/snowgroomer/internal/storage"
)

var (
	flagElapsed   int
	flagCoverage  int
	flagCompleted bool
	flagRunsLimit int
	flagRunsTUI   bool
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a finished run",
	Long: `Record a finished run of a generated level in the run log. The level is
regenerated from --seed and --rank so stars are rated against its bonus
objectives.

Examples:
  groomer record --seed 2N9C --rank red --elapsed 95 --coverage 88 --completed`,
	RunE: runRecord,
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Long: `List the most recent runs, or every run of one seed code and rank with
its best result.

Examples:
  groomer runs
  groomer runs --seed 2N9C --rank red
  groomer runs --tui
  groomer runs delete <id>`,
	RunE: runRuns,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

func init() {
	recordCmd.Flags().StringVar(&flagSeed, "seed", "", "Seed code (base 36)")
	recordCmd.Flags().StringVar(&flagRank, "rank", "green", "Difficulty rank: green, blue, red, black")
	recordCmd.Flags().IntVar(&flagElapsed, "elapsed", 0, "Elapsed seconds")
	recordCmd.Flags().IntVar(&flagCoverage, "coverage", 0, "Groomed coverage percent")
	recordCmd.Flags().BoolVar(&flagCompleted, "completed", false, "The run reached the target coverage in time")
	_ = recordCmd.MarkFlagRequired("seed")

	runsCmd.Flags().StringVar(&flagSeed, "seed", "", "Seed code (base 36)")
	runsCmd.Flags().StringVar(&flagRank, "rank", "green", "Difficulty rank: green, blue, red, black")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of recent runs to show")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "tui", false, "Browse runs in the terminal UI")
	runsCmd.AddCommand(runsDeleteCmd)
}

func runRecord(cmd *cobra.Command, _ []string) error {
	if flagElapsed < 0 || flagCoverage < 0 || flagCoverage > 100 {
		return errors.New("--elapsed must be >= 0 and --coverage within 0..100")
	}
	seed, err := parseSeedCode(flagSeed)
	if err != nil {
		return err
	}
	rank := parseRank(flagRank)
	res := newGenerator().GenerateValidLevel(seed, rank)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	run := storage.NewRun(res.Level, rank, rng.SeedToCode(seed), rng.SeedToCode(res.Seed), flagElapsed, flagCoverage, flagCompleted)
	saved, err := store.SaveRun(run)
	if err != nil {
		return err
	}
	logger.Debug("run recorded", "id", saved.ID, "seed", saved.SeedCode, "rank", saved.Rank)

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", saved.LevelName, stars(saved.Stars), saved.ID)
	return nil
}

func runRuns(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagRunsTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunRuns(store, width, height)
	}

	out := cmd.OutOrStdout()
	var runs []storage.Run
	if flagSeed != "" {
		seed, err := parseSeedCode(flagSeed)
		if err != nil {
			return err
		}
		code, rank := rng.SeedToCode(seed), parseRank(flagRank)
		if runs, err = store.RunsFor(code, rank); err != nil {
			return err
		}
		stats, err := store.Stats(code, rank)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s: %d runs, %d completed\n", code, rank, stats.Runs, stats.Completed)
		best, err := store.BestRun(code, rank)
		if err != nil {
			return err
		}
		if best != nil {
			fmt.Fprintf(out, "best: %s, %d%% groomed", stars(best.Stars), best.Coverage)
			if best.Completed {
				fmt.Fprintf(out, " in %s", tui.FormatTime(best.ElapsedSecs))
			}
			fmt.Fprintf(out, " (%s)\n", best.ID)
		}
		fmt.Fprintln(out)
	} else if runs, err = store.RecentRuns(flagRunsLimit); err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-6s  %-6s  %-24s  %-8s  %-7s  %-5s  %s\n", "Seed", "Rank", "Level", "Time", "Groomed", "Stars", "Date")
	for _, r := range runs {
		row := tui.RunRow(r)
		fmt.Fprintf(out, "  %-6s  %-6s  %-24s  %-8s  %-7s  %-5s  %s\n", row[0], row[1], padRunes(row[2], 24), row[3], row[4], row[5], row[6])
	}
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteRun(args[0]); err != nil {
		if storage.IsNotFound(err) {
			return fmt.Errorf("no run with id %s", args[0])
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}

func stars(n int) string {
	if n == 0 {
		return "no stars"
	}
	return fmt.Sprintf("%d/3 stars", n)
}
