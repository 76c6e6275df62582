// Package config provides YAML-based tuning for the level generator and the
// geometry engine, loaded from the user's config directory with embedded
// defaults.
package config

import "github.com/vovakirdan/snowgroomer/internal/level"

// Config is the full tuning document.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Geometry  GeometryConfig  `yaml:"geometry"`
}

// IntRange is an inclusive integer range.
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// FloatRange is a real range.
type FloatRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// GeneratorConfig tunes the level generator.
type GeneratorConfig struct {
	MaxAttempts    int                             `yaml:"max_attempts"`
	TumbleSlope    float64                         `yaml:"tumble_slope"`    // degrees; steeper zones force a winch
	AnchorShuffles int                             `yaml:"anchor_shuffles"` // reshuffles before the fallback anchor
	Ranks          RankTable `yaml:"ranks"`
	Park           ParkTuning                      `yaml:"park"`
}

// RankTable maps each rank to its tuning.
type RankTable map[level.Difficulty]RankTuning

// RankTuning holds the sampling ranges and probabilities for one rank.
type RankTuning struct {
	ParkChance float64            `yaml:"park_chance"`
	Shapes     []level.PisteShape `yaml:"shapes"`
	Width      IntRange           `yaml:"width"`
	Height     IntRange           `yaml:"height"`
	PisteWidth FloatRange         `yaml:"piste_width"`
	SteepZones IntRange           `yaml:"steep_zones"`
	Slope      FloatRange         `yaml:"slope"`

	WinchChance     float64 `yaml:"winch_chance"`
	DangerChance    float64 `yaml:"danger_chance"`
	NightChance     float64 `yaml:"night_chance"`
	LightSnowChance float64 `yaml:"light_snow_chance"`
	StormChance     float64 `yaml:"storm_chance"`
	SlalomChance    float64 `yaml:"slalom_chance"`

	Coverage  IntRange         `yaml:"coverage"`
	Obstacles []level.Obstacle `yaml:"obstacles"`
}

// ParkTuning holds the sampling ranges for snowpark levels.
type ParkTuning struct {
	Shapes      []level.PisteShape `yaml:"shapes"`
	Width       IntRange           `yaml:"width"`
	Height      IntRange           `yaml:"height"`
	PisteWidth  FloatRange         `yaml:"piste_width"`
	Coverage    IntRange           `yaml:"coverage"`
	LanesChance float64            `yaml:"lanes_chance"`
	Obstacles   []level.Obstacle   `yaml:"obstacles"`
}

// GeometryConfig tunes the geometry engine. Distances are in tiles.
type GeometryConfig struct {
	TileSize           int                              `yaml:"tile_size"`
	BoundaryRows       int                              `yaml:"boundary_rows"`
	RoadWidthTiles     float64                          `yaml:"road_width_tiles"`
	RoadDetourTiles    float64                          `yaml:"road_detour_tiles"`
	CurvePoints        int                              `yaml:"curve_points"`
	OrganicJitterTiles float64                          `yaml:"organic_jitter_tiles"`
	OmitFraction       float64                          `yaml:"omit_fraction"`
	CliffBandRows      IntRange                         `yaml:"cliff_band_rows"`
	Cliffs             CliffTable `yaml:"cliffs"`
}

// CliffTable maps a difficulty, or "default", to its cliff tuning.
type CliffTable map[level.Difficulty]CliffTuning

// CliffTuning holds the cliff offset and extent ranges for a difficulty.
type CliffTuning struct {
	Offset FloatRange `yaml:"offset"`
	Extent FloatRange `yaml:"extent"`
}
