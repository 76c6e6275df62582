package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/snowgroomer/internal/level"
)

// defaultCliffKey selects the cliff tuning used by difficulties without
// their own entry.
const defaultCliffKey level.Difficulty = "default"

// MaxSteepZones is the most steep zones the generator's zone band holds
// at minimum length with margins.
const MaxSteepZones = 5

// Cliff tuning is clamped to these tile bounds whatever the config says.
var (
	cliffOffsetBounds = FloatRange{1.5, 3}
	cliffExtentBounds = FloatRange{3, 5}
)

// Rank returns the tuning for rank, falling back to the green tuning and
// then to the hardcoded default.
func (c GeneratorConfig) Rank(rank level.Difficulty) RankTuning {
	if t, ok := c.Ranks[rank]; ok {
		return t
	}
	if t, ok := c.Ranks[level.Green]; ok {
		return t
	}
	return DefaultGeneratorConfig().Ranks[level.Green]
}

// Cliff returns the cliff tuning for d, clamped to the playable band.
func (g GeometryConfig) Cliff(d level.Difficulty) CliffTuning {
	t, ok := g.Cliffs[d]
	if !ok {
		t, ok = g.Cliffs[defaultCliffKey]
	}
	if !ok {
		t = DefaultGeometryConfig().Cliffs[defaultCliffKey]
	}
	return CliffTuning{
		Offset: t.Offset.clampTo(cliffOffsetBounds),
		Extent: t.Extent.clampTo(cliffExtentBounds),
	}
}

// Validate reports tuning that would make generation impossible.
func (c Config) Validate() error {
	var errs []error
	g := c.Generator
	if g.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("generator.max_attempts must be at least 1, got %d", g.MaxAttempts))
	}
	for _, rank := range level.Ranks {
		t, ok := g.Ranks[rank]
		if !ok {
			errs = append(errs, fmt.Errorf("generator.ranks.%s missing", rank))
			continue
		}
		if len(t.Shapes) == 0 {
			errs = append(errs, fmt.Errorf("generator.ranks.%s.shapes empty", rank))
		}
		for name, r := range map[string]IntRange{"width": t.Width, "height": t.Height, "steep_zones": t.SteepZones, "coverage": t.Coverage} {
			if r.Min > r.Max {
				errs = append(errs, fmt.Errorf("generator.ranks.%s.%s: min %d > max %d", rank, name, r.Min, r.Max))
			}
		}
		if t.SteepZones.Max > MaxSteepZones {
			errs = append(errs, fmt.Errorf("generator.ranks.%s.steep_zones: max %d above %d", rank, t.SteepZones.Max, MaxSteepZones))
		}
		if t.PisteWidth.Min <= 0 || t.PisteWidth.Max > 1 || t.PisteWidth.Min > t.PisteWidth.Max {
			errs = append(errs, fmt.Errorf("generator.ranks.%s.piste_width outside (0, 1]", rank))
		}
	}
	if len(g.Park.Shapes) == 0 {
		errs = append(errs, errors.New("generator.park.shapes empty"))
	}

	geo := c.Geometry
	if geo.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("geometry.tile_size must be positive, got %d", geo.TileSize))
	}
	if geo.BoundaryRows < 0 {
		errs = append(errs, fmt.Errorf("geometry.boundary_rows must not be negative, got %d", geo.BoundaryRows))
	}
	if geo.CurvePoints < 2 {
		errs = append(errs, fmt.Errorf("geometry.curve_points must be at least 2, got %d", geo.CurvePoints))
	}
	if geo.CliffBandRows.Min < 1 || geo.CliffBandRows.Min > geo.CliffBandRows.Max {
		errs = append(errs, fmt.Errorf("geometry.cliff_band_rows invalid: %d-%d", geo.CliffBandRows.Min, geo.CliffBandRows.Max))
	}
	if geo.OmitFraction < 0 || geo.OmitFraction >= 1 {
		errs = append(errs, fmt.Errorf("geometry.omit_fraction must be in [0, 1), got %.2f", geo.OmitFraction))
	}

	return errors.Join(errs...)
}

func (r FloatRange) clampTo(bounds FloatRange) FloatRange {
	out := FloatRange{
		Min: clampF(r.Min, bounds.Min, bounds.Max),
		Max: clampF(r.Max, bounds.Min, bounds.Max),
	}
	if out.Min > out.Max {
		out.Min, out.Max = out.Max, out.Min
	}
	return out
}

// clampF restricts a float64 value to [min, max].
func clampF(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
