package tui

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/vovakirdan/snowgroomer/internal/level"
)

// FormatTime renders a time limit as m:ss. Zero means no limit.
func FormatTime(secs int) string {
	if secs <= 0 {
		return "no limit"
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Summary lists the facts of d shown under its name: rank, size, time
// limit, conditions and hazards.
func Summary(d level.Descriptor) string {
	parts := []string{
		string(d.Difficulty),
		fmt.Sprintf("%dx%d", d.Width, d.Height),
		FormatTime(d.TimeLimit),
		fmt.Sprintf("%d%% groomed", d.TargetCoverage),
		string(d.Weather),
	}
	if d.IsNight {
		parts = append(parts, "night")
	}
	if d.HasWinch {
		parts = append(parts, "winch")
	}
	if d.HasDangerousBoundaries {
		parts = append(parts, "cliffs")
	}
	if n := len(d.SteepZones); n > 0 {
		parts = append(parts, plural(n, "steep zone"))
	}
	if n := len(d.AccessPaths); n > 0 {
		parts = append(parts, plural(n, "service road"))
	}
	if len(d.SpecialFeatures) > 0 {
		parts = append(parts, strings.Join(lo.Map(d.SpecialFeatures, func(f level.Feature, _ int) string {
			return string(f)
		}), "+"))
	}
	if d.SlalomGates != nil {
		parts = append(parts, plural(d.SlalomGates.Count, "gate"))
	}
	return strings.Join(lo.Compact(parts), " · ")
}

// Bonuses describes the bonus objectives of d.
func Bonuses(d level.Descriptor) string {
	return strings.Join(lo.Map(d.BonusObjectives, func(b level.BonusObjective, _ int) string {
		switch b.Type {
		case level.BonusSpeedRun:
			return "finish in " + FormatTime(b.Target)
		case level.BonusPrecision:
			return fmt.Sprintf("groom %d%%", b.Target)
		case level.BonusNoTumble:
			return "no tumble"
		}
		return string(b.Type)
	}), ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
