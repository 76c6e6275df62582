package config

import (
	_ "embed"

	"github.com/vovakirdan/snowgroomer/internal/level"
)

//go:embed defaults/generator.yaml
var defaultGeneratorYAML []byte

// DefaultConfig returns the hardcoded tuning. The embedded YAML mirrors it.
func DefaultConfig() Config {
	return Config{
		Generator: DefaultGeneratorConfig(),
		Geometry:  DefaultGeometryConfig(),
	}
}

// DefaultGeneratorConfig returns the default generator tuning.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MaxAttempts:    10,
		TumbleSlope:    35,
		AnchorShuffles: 8,
		Ranks: map[level.Difficulty]RankTuning{
			level.Green: {
				ParkChance:      0.3,
				Shapes:          []level.PisteShape{level.Straight, level.GentleCurve, level.Wide},
				Width:           IntRange{40, 50},
				Height:          IntRange{60, 80},
				PisteWidth:      FloatRange{0.5, 0.6},
				SteepZones:      IntRange{0, 0},
				Slope:           FloatRange{0, 0},
				LightSnowChance: 0.2,
				SlalomChance:    0.1,
				Coverage:        IntRange{75, 85},
				Obstacles:       []level.Obstacle{level.Trees, level.SnowDrifts},
			},
			level.Blue: {
				Shapes:          []level.PisteShape{level.Straight, level.GentleCurve, level.Winding, level.Wide},
				Width:           IntRange{45, 55},
				Height:          IntRange{70, 100},
				PisteWidth:      FloatRange{0.42, 0.52},
				SteepZones:      IntRange{0, 1},
				Slope:           FloatRange{20, 30},
				NightChance:     0.1,
				LightSnowChance: 0.3,
				StormChance:     0.05,
				SlalomChance:    0.2,
				Coverage:        IntRange{80, 88},
				Obstacles:       []level.Obstacle{level.Trees, level.Rocks, level.SnowDrifts, level.Pylons},
			},
			level.Red: {
				Shapes:          []level.PisteShape{level.GentleCurve, level.Winding, level.Serpentine},
				Width:           IntRange{50, 60},
				Height:          IntRange{90, 120},
				PisteWidth:      FloatRange{0.36, 0.46},
				SteepZones:      IntRange{1, 2},
				Slope:           FloatRange{28, 40},
				WinchChance:     0.3,
				DangerChance:    0.5,
				NightChance:     0.2,
				LightSnowChance: 0.3,
				StormChance:     0.15,
				SlalomChance:    0.3,
				Coverage:        IntRange{85, 92},
				Obstacles:       []level.Obstacle{level.Trees, level.Rocks, level.Pylons, level.SnowDrifts, level.AvalancheZones},
			},
			level.Black: {
				Shapes:          []level.PisteShape{level.Straight, level.Winding, level.Serpentine},
				Width:           IntRange{50, 65},
				Height:          IntRange{100, 140},
				PisteWidth:      FloatRange{0.3, 0.4},
				SteepZones:      IntRange{1, 3},
				Slope:           FloatRange{38, 50},
				WinchChance:     0.5,
				DangerChance:    0.8,
				NightChance:     0.35,
				LightSnowChance: 0.3,
				StormChance:     0.25,
				SlalomChance:    0.25,
				Coverage:        IntRange{88, 95},
				Obstacles:       []level.Obstacle{level.Trees, level.Rocks, level.Cliffs, level.AvalancheZones, level.SnowDrifts},
			},
		},
		Park: ParkTuning{
			Shapes:      []level.PisteShape{level.Straight, level.Wide},
			Width:       IntRange{40, 50},
			Height:      IntRange{60, 80},
			PisteWidth:  FloatRange{0.55, 0.65},
			Coverage:    IntRange{70, 80},
			LanesChance: 0.5,
			Obstacles:   []level.Obstacle{level.Trees, level.SnowGuns},
		},
	}
}

// DefaultGeometryConfig returns the default geometry tuning.
func DefaultGeometryConfig() GeometryConfig {
	return GeometryConfig{
		TileSize:           16,
		BoundaryRows:       3,
		RoadWidthTiles:     3,
		RoadDetourTiles:    6,
		CurvePoints:        12,
		OrganicJitterTiles: 1,
		OmitFraction:       0.3,
		CliffBandRows:      IntRange{18, 30},
		Cliffs: map[level.Difficulty]CliffTuning{
			defaultCliffKey: {Offset: FloatRange{1.5, 3}, Extent: FloatRange{3, 5}},
			level.Red:       {Offset: FloatRange{2, 3}, Extent: FloatRange{3, 4}},
			level.Black:     {Offset: FloatRange{1.5, 2.5}, Extent: FloatRange{3.5, 5}},
		},
	}
}
