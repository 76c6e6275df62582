package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snowgroomer/internal/catalog"
	"github.com/vovakirdan/snowgroomer/internal/geometry"
	"github.com/vovakirdan/snowgroomer/internal/level"
	"github.com/vovakirdan/snowgroomer/internal/platform/tui"
	"github.com/vovakirdan/snowgroomer/internal/registry"
	"github.com/vovakirdan/snowgroomer/internal/rng"
)

var (
	flagStatic      bool
	flagPreviewFile string
)

var previewCmd = &cobra.Command{
	Use:   "preview [level-id]",
	Short: "Preview a level map in the terminal",
	Long: `Draw a level's geometry: piste corridor, steep zones, service roads,
cliff bands, winch anchors and obstacles.

With a level id the authored level is shown; with --file the first level
of a YAML file; otherwise a generated level for --seed/--rank, or the
daily contract when no seed is given.

Controls:
  Left/Right  - Easier/harder rank
  R           - Random seed
  D           - Daily contract
  Ctrl+S      - Save the map as text
  Q/Ctrl+C    - Quit

Examples:
  groomer preview
  groomer preview 6
  groomer preview --seed 2N9C --rank black --static
  groomer preview --file piste.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&flagSeed, "seed", "", "Seed code (base 36)")
	previewCmd.Flags().StringVar(&flagRank, "rank", "green", "Difficulty rank: green, blue, red, black")
	previewCmd.Flags().BoolVar(&flagRandom, "random", false, "Roll a random seed")
	previewCmd.Flags().BoolVar(&flagStatic, "static", false, "Print the map once instead of opening the preview")
	previewCmd.Flags().StringVar(&flagPreviewFile, "file", "", "Level YAML file to preview")
}

func runPreview(cmd *cobra.Command, args []string) error {
	opts := tui.PreviewOptions{
		Generator: newGenerator(),
		Geometry:  appConfig.Geometry,
		Logger:    logger,
		Rank:      parseRank(flagRank),
	}

	switch {
	case len(args) == 1:
		d, err := authoredLevel(args[0])
		if err != nil {
			return err
		}
		opts.Level = &d
	case flagPreviewFile != "":
		levels, err := catalog.NewLoader("").LoadFile(flagPreviewFile)
		if err != nil {
			return err
		}
		opts.Level = &levels[0]
	case flagSeed == "" && !flagRandom:
		opts.Daily = true
	default:
		seed, err := resolveSeed(flagSeed, flagRandom)
		if err != nil {
			return err
		}
		opts.Seed = seed
	}

	if flagStatic {
		return printStatic(cmd, opts)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	return tui.RunPreview(opts, width, height)
}

// authoredLevel looks an id up in the campaign.
func authoredLevel(arg string) (level.Descriptor, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return level.Descriptor{}, fmt.Errorf("level id %q is not a number", arg)
	}
	return registry.Get(id)
}

// printStatic writes the header and map once. Colors are kept only when
// stdout is a terminal.
func printStatic(cmd *cobra.Command, opts tui.PreviewOptions) error {
	out := cmd.OutOrStdout()
	var d level.Descriptor
	if opts.Level != nil {
		d = *opts.Level
		printLevel(out, d)
	} else {
		seed := opts.Seed
		if opts.Daily {
			seed = rng.DailySeed(time.Now())
		}
		res := opts.Generator.GenerateValidLevel(seed, opts.Rank)
		d = res.Level
		printLevel(out, d)
		printSeed(out, res, seed, opts.Rank)
	}

	screen := tui.RenderLevel(geometry.New(opts.Geometry, logger), d)
	fmt.Fprintln(out)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(out, tui.RenderScreen(screen))
	} else {
		fmt.Fprintln(out, screen.String())
	}
	return nil
}
