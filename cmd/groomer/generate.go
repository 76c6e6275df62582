package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/snowgroomer/internal/generator"
	"github.com/vovakirdan/snowgroomer/internal/level"
	"github.com/vovakirdan/snowgroomer/internal/rng"
)

var (
	flagRank   string
	flagSeed   string
	flagRandom bool
	flagYAML   bool
	flagDate   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a piste from a seed code",
	Long: `Generate a validated piste for a seed code and rank.

The generator retries with derived seeds until a candidate passes
validation; the seed actually used is printed alongside the level.

Examples:
  groomer generate --rank red --seed 2N9C
  groomer generate --rank black --random
  groomer generate --seed 2N9C --yaml > piste.yaml`,
	RunE: runGenerate,
}

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show the daily contract",
	Long: `Show the daily contract: the piste every player gets for a UTC day.

Examples:
  groomer daily
  groomer daily --rank black
  groomer daily --date 2026-01-31 --yaml`,
	RunE: runDaily,
}

func init() {
	generateCmd.Flags().StringVar(&flagRank, "rank", "green", "Difficulty rank: green, blue, red, black")
	generateCmd.Flags().StringVar(&flagSeed, "seed", "", "Seed code (base 36)")
	generateCmd.Flags().BoolVar(&flagRandom, "random", false, "Roll a random seed")
	generateCmd.Flags().BoolVar(&flagYAML, "yaml", false, "Print the level descriptor as YAML")

	dailyCmd.Flags().StringVar(&flagRank, "rank", "green", "Difficulty rank: green, blue, red, black")
	dailyCmd.Flags().StringVar(&flagDate, "date", "", "UTC day as YYYY-MM-DD (default: today)")
	dailyCmd.Flags().BoolVar(&flagYAML, "yaml", false, "Print the level descriptor as YAML")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	seed, err := resolveSeed(flagSeed, flagRandom)
	if err != nil {
		return err
	}
	rank := parseRank(flagRank)
	res := newGenerator().GenerateValidLevel(seed, rank)
	return writeResult(cmd, res, seed, rank)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	day := time.Now()
	if flagDate != "" {
		t, err := time.Parse(time.DateOnly, flagDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		day = t
	}
	rank := parseRank(flagRank)
	res := newGenerator().Daily(day, rank)
	logger.Debug("daily contract", "date", day.UTC().Format(time.DateOnly), "seed", rng.SeedToCode(res.Seed))
	return writeResult(cmd, res, rng.DailySeed(day), rank)
}

func writeResult(cmd *cobra.Command, res generator.Result, requested uint32, rank level.Difficulty) error {
	if !res.Valid {
		logger.Warn("no valid level within the retry budget", "seed", rng.SeedToCode(requested))
	}
	if !flagYAML {
		printLevel(cmd.OutOrStdout(), res.Level)
		printSeed(cmd.OutOrStdout(), res, requested, rank)
		return nil
	}

	logger.Info("generated", "seed", rng.SeedToCode(res.Seed), "attempts", res.Attempts)
	out, err := yaml.Marshal(res.Level)
	if err != nil {
		return fmt.Errorf("encode level: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
