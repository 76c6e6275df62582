// Package level describes ski runs: the Descriptor shared by authored and
// generated levels, its enumerations, structural validation, and the time
// budget calculator.
package level

import (
	"strings"

	"github.com/samber/lo"
)

// GeneratedIDBase is the first id used by generated levels. Authored
// campaign levels stay below it.
const GeneratedIDBase = 100

// Difficulty is the difficulty tier of a run.
type Difficulty string

const (
	Tutorial Difficulty = "tutorial"
	Green    Difficulty = "green"
	Blue     Difficulty = "blue"
	Red      Difficulty = "red"
	Black    Difficulty = "black"
	Park     Difficulty = "park"
)

// Ranks lists the difficulties the generator accepts, easiest first.
var Ranks = []Difficulty{Green, Blue, Red, Black}

var difficulties = []Difficulty{Tutorial, Green, Blue, Red, Black, Park}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	return lo.Contains(difficulties, d)
}

// Scale returns the time budget multiplier for d.
func (d Difficulty) Scale() float64 {
	switch d {
	case Green:
		return 1.3
	case Park:
		return 1.5
	case Red:
		return 0.9
	case Black:
		return 0.75
	default:
		return 1.0
	}
}

// RankIndex returns the position of d in Ranks, or 0 for non-rank
// difficulties.
func (d Difficulty) RankIndex() int {
	if i := lo.IndexOf(Ranks, d); i >= 0 {
		return i
	}
	return 0
}

// ParseRank parses a generator rank. Unknown input falls back to Green.
func ParseRank(s string) Difficulty {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if lo.Contains(Ranks, d) {
		return d
	}
	return Green
}

// Weather is the weather condition of a run.
type Weather string

const (
	Clear     Weather = "clear"
	LightSnow Weather = "light_snow"
	Storm     Weather = "storm"
)

// Valid reports whether w is a known weather value.
func (w Weather) Valid() bool {
	return w == Clear || w == LightSnow || w == Storm
}

// Side is the side of the piste a feature sits on.
type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

// Valid reports whether s is left or right.
func (s Side) Valid() bool {
	return s == Left || s == Right
}

// Feature is a snowpark feature.
type Feature string

const (
	Kickers  Feature = "kickers"
	Rails    Feature = "rails"
	Halfpipe Feature = "halfpipe"
)

// Obstacle is a kind of off-piste or on-piste obstacle.
type Obstacle string

const (
	Trees          Obstacle = "trees"
	Rocks          Obstacle = "rocks"
	Pylons         Obstacle = "pylons"
	Cliffs         Obstacle = "cliffs"
	AvalancheZones Obstacle = "avalanche_zones"
	SnowDrifts     Obstacle = "snow_drifts"
	SnowGuns       Obstacle = "snow_guns"
)

// SteepZone is a vertical band of the run with an elevated slope.
// Fractions are of the level height.
type SteepZone struct {
	StartY float64 `yaml:"start_y"`
	EndY   float64 `yaml:"end_y"`
	Slope  float64 `yaml:"slope"`
}

// Contains reports whether the height fraction y lies in the zone,
// bounds included.
func (z SteepZone) Contains(y float64) bool {
	return y >= z.StartY && y <= z.EndY
}

// WinchAnchor is a tether point for the winch, as a height fraction.
type WinchAnchor struct {
	Y float64 `yaml:"y"`
}

// AccessPath is a service road bypassing part of the run.
type AccessPath struct {
	StartY float64 `yaml:"start_y"`
	EndY   float64 `yaml:"end_y"`
	Side   Side    `yaml:"side"`
}

// SlalomGates configures an optional slalom course.
type SlalomGates struct {
	Count     int     `yaml:"count"`
	GateWidth float64 `yaml:"gate_width"`
}

// Intro is the dialogue shown when the level starts.
type Intro struct {
	Key     string `yaml:"key"`
	Speaker string `yaml:"speaker"`
}

// Descriptor is one ski run. It is built once, by hand or by the
// generator, and treated as read-only afterwards.
type Descriptor struct {
	ID     int    `yaml:"id"`
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	Difficulty     Difficulty `yaml:"difficulty"`
	TargetCoverage int        `yaml:"target_coverage"`
	TimeLimit      int        `yaml:"time_limit"`

	PisteShape PisteShape `yaml:"piste_shape"`
	PisteWidth float64    `yaml:"piste_width"`

	SteepZones   []SteepZone   `yaml:"steep_zones,omitempty"`
	WinchAnchors []WinchAnchor `yaml:"winch_anchors,omitempty"`
	AccessPaths  []AccessPath  `yaml:"access_paths,omitempty"`

	HasWinch               bool    `yaml:"has_winch"`
	IsNight                bool    `yaml:"is_night"`
	Weather                Weather `yaml:"weather"`
	HasDangerousBoundaries bool    `yaml:"dangerous_boundaries"`

	SpecialFeatures []Feature    `yaml:"special_features,omitempty"`
	ParkLanes       bool         `yaml:"park_lanes,omitempty"`
	Obstacles       []Obstacle   `yaml:"obstacles,omitempty"`
	SlalomGates     *SlalomGates `yaml:"slalom_gates,omitempty"`

	Intro           Intro            `yaml:"intro"`
	BonusObjectives []BonusObjective `yaml:"bonus_objectives,omitempty"`
}

// IsGenerated reports whether the id falls in the generated range.
func (d Descriptor) IsGenerated() bool {
	return d.ID >= GeneratedIDBase
}

// AccessPathsRequired reports whether the run needs service roads: cliffs
// or steep zones are present and a safe bypass must exist.
func (d Descriptor) AccessPathsRequired() bool {
	return d.HasDangerousBoundaries || len(d.SteepZones) > 0
}

// SteepZoneAt returns the steep zone containing the height fraction y.
func (d Descriptor) SteepZoneAt(y float64) (SteepZone, bool) {
	return lo.Find(d.SteepZones, func(z SteepZone) bool { return z.Contains(y) })
}

// Clone returns a deep copy of d.
func (d Descriptor) Clone() Descriptor {
	c := d
	c.SteepZones = cloneSlice(d.SteepZones)
	c.WinchAnchors = cloneSlice(d.WinchAnchors)
	c.AccessPaths = cloneSlice(d.AccessPaths)
	c.SpecialFeatures = cloneSlice(d.SpecialFeatures)
	c.Obstacles = cloneSlice(d.Obstacles)
	c.BonusObjectives = cloneSlice(d.BonusObjectives)
	if d.SlalomGates != nil {
		g := *d.SlalomGates
		c.SlalomGates = &g
	}
	return c
}

// Normalize fills defaults for fields an authored level may leave out:
// weather, shape, time limit and bonus objectives.
func (d *Descriptor) Normalize() {
	if d.Weather == "" {
		d.Weather = Clear
	}
	if d.PisteShape == "" {
		d.PisteShape = Straight
	}
	if d.Difficulty == Tutorial {
		d.TimeLimit = 0
	} else if d.TimeLimit <= 0 {
		d.TimeLimit = ComputeTimeLimit(*d)
	}
	if len(d.BonusObjectives) == 0 {
		d.BonusObjectives = BonusObjectives(*d)
	}
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
