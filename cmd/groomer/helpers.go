package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/snowgroomer/internal/generator"
	"github.com/vovakirdan/snowgroomer/internal/level"
	"github.com/vovakirdan/snowgroomer/internal/platform/tui"
	"github.com/vovakirdan/snowgroomer/internal/rng"
)

var errBadSeed = errors.New("seed code has no base-36 characters")

// parseRank reads a --rank value. Unknown ranks fall back to green with a
// warning.
func parseRank(s string) level.Difficulty {
	r := level.ParseRank(s)
	if s != "" && string(r) != strings.ToLower(strings.TrimSpace(s)) {
		logger.Warn("unknown rank, using green", "rank", s)
	}
	return r
}

// parseSeedCode decodes a --seed value.
func parseSeedCode(code string) (uint32, error) {
	if !strings.ContainsAny(strings.ToUpper(code), "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return 0, fmt.Errorf("%q: %w", code, errBadSeed)
	}
	return rng.CodeToSeed(code), nil
}

// resolveSeed picks the seed from --seed and --random; with neither a
// random seed is rolled.
func resolveSeed(code string, random bool) (uint32, error) {
	if code != "" && random {
		return 0, errors.New("--seed and --random are mutually exclusive")
	}
	if code == "" {
		return rng.RandomSeed(), nil
	}
	return parseSeedCode(code)
}

func newGenerator() *generator.Generator {
	return generator.New(appConfig.Generator, logger)
}

// printLevel writes the human-readable summary of a level.
func printLevel(w io.Writer, d level.Descriptor) {
	fmt.Fprintf(w, "%s  [%s]\n", d.Name, d.Difficulty)
	fmt.Fprintln(w, tui.Summary(d))
	if bonus := tui.Bonuses(d); bonus != "" {
		fmt.Fprintln(w, "bonus: "+bonus)
	}
	if d.Intro.Key != "" {
		fmt.Fprintf(w, "intro: %s (%s)\n", d.Intro.Key, d.Intro.Speaker)
	}
}

// printSeed writes the seed actually used and the share query of a
// generated level. rank is the requested rank, not the rolled difficulty.
func printSeed(w io.Writer, res generator.Result, requested uint32, rank level.Difficulty) {
	seedLine := "seed " + rng.SeedToCode(res.Seed)
	if res.Seed != requested {
		seedLine += fmt.Sprintf(" (requested %s, %d attempts)", rng.SeedToCode(requested), res.Attempts)
	}
	if !res.Valid {
		seedLine += " UNVALIDATED"
	}
	fmt.Fprintln(w, seedLine)
	fmt.Fprintln(w, "share: ?"+generator.NewShareLink(res.Seed, rank).Query())
}
