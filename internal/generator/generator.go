// Package generator synthesizes ski runs from a seed and a difficulty rank.
// Every call owns its RNG, so a Generator is safe to share between
// goroutines.
package generator

import (
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/vovakirdan/snowgroomer/internal/config"
	"github.com/vovakirdan/snowgroomer/internal/level"
	"github.com/vovakirdan/snowgroomer/internal/rng"
)

// Zone and path placement, as fractions of the level height.
const (
	zoneBandStart = 0.15
	zoneBandEnd   = 0.85
	zoneMinLength = 0.08
	zoneMaxLength = 0.15
	zoneMargin    = 0.02

	pathPadding = 0.03
	pathMin     = 0.05
	pathMax     = 0.95
	pathBandLo  = 0.2
	pathBandHi  = 0.8

	fallbackAnchorY = 0.02
)

// parkCombos are the feature sets a snowpark level can carry.
var parkCombos = [][]level.Feature{
	{level.Halfpipe, level.Kickers},
	{level.Kickers, level.Rails},
	{level.Kickers},
	{level.Kickers, level.Rails, level.Halfpipe},
	{level.Rails, level.Kickers},
}

// Result is the outcome of GenerateValidLevel.
type Result struct {
	Level    level.Descriptor
	Seed     uint32 // seed that produced Level; differs from the input after retries
	Attempts int
	Valid    bool // false when the retry budget ran out
}

// Generator samples level descriptors with a fixed tuning.
type Generator struct {
	cfg    config.GeneratorConfig
	logger *log.Logger
}

// New creates a generator. A nil logger falls back to log.Default().
func New(cfg config.GeneratorConfig, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Generator{cfg: cfg, logger: logger}
}

var defaultGenerator = New(config.DefaultGeneratorConfig(), nil)

// Generate samples one candidate with the default tuning.
func Generate(seed uint32, rank level.Difficulty) level.Descriptor {
	return defaultGenerator.Generate(seed, rank)
}

// GenerateValidLevel runs the retry loop with the default tuning.
func GenerateValidLevel(seed uint32, rank level.Difficulty) Result {
	return defaultGenerator.GenerateValidLevel(seed, rank)
}

// Generate samples one candidate descriptor for seed and rank without
// validating it. Unknown ranks are treated as green.
func (g *Generator) Generate(seed uint32, rank level.Difficulty) level.Descriptor {
	return g.sample(rng.New(seed), level.ParseRank(string(rank)))
}

// GenerateValidLevel samples candidates until one passes validation. Each
// rejected attempt derives the next seed from the current one, so the
// attempt sequence is reproducible. When every attempt fails the last
// candidate is returned with Valid unset.
func (g *Generator) GenerateValidLevel(seed uint32, rank level.Difficulty) Result {
	rank = level.ParseRank(string(rank))
	current := seed

	var candidate level.Descriptor
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		candidate = g.sample(rng.New(current), rank)
		err := level.Validate(candidate)
		if err == nil {
			return Result{Level: candidate, Seed: current, Attempts: attempt, Valid: true}
		}

		g.logger.Debug("rejected candidate",
			"seed", rng.SeedToCode(current), "rank", rank, "attempt", attempt, "err", err)
		if attempt < g.cfg.MaxAttempts {
			current = rng.DeriveSeed(current, attempt)
		}
	}

	g.logger.Warn("retry budget exhausted",
		"seed", rng.SeedToCode(seed), "used", rng.SeedToCode(current), "rank", rank, "attempts", g.cfg.MaxAttempts)
	return Result{Level: candidate, Seed: current, Attempts: g.cfg.MaxAttempts}
}

// Daily returns the daily contract for the UTC day of t.
func (g *Generator) Daily(t time.Time, rank level.Difficulty) Result {
	return g.GenerateValidLevel(rng.DailySeed(t), rank)
}

func (g *Generator) sample(r *rng.RNG, rank level.Difficulty) level.Descriptor {
	t := g.cfg.Rank(rank)

	var d level.Descriptor
	if r.Chance(t.ParkChance) {
		d = g.samplePark(r)
	} else {
		d = g.sampleRun(r, rank, t)
	}

	d.ID = level.GeneratedIDBase + rank.RankIndex()
	d.Name = pickName(r, d.Difficulty)
	d.Intro = pickIntro(r, d.Difficulty, d.Weather)
	d.TimeLimit = level.ComputeTimeLimit(d)
	d.BonusObjectives = level.BonusObjectives(d)
	return d
}

func (g *Generator) samplePark(r *rng.RNG) level.Descriptor {
	p := g.cfg.Park
	return level.Descriptor{
		Difficulty:      level.Park,
		SpecialFeatures: slices.Clone(rng.Pick(r, parkCombos)),
		ParkLanes:       r.Chance(p.LanesChance),
		PisteShape:      pickShape(r, p.Shapes),
		Width:           r.IntegerInRange(p.Width.Min, p.Width.Max),
		Height:          r.IntegerInRange(p.Height.Min, p.Height.Max),
		PisteWidth:      round3(r.RealInRange(p.PisteWidth.Min, p.PisteWidth.Max)),
		Weather:         level.Clear,
		Obstacles:       slices.Clone(p.Obstacles),
		TargetCoverage:  r.IntegerInRange(p.Coverage.Min, p.Coverage.Max),
	}
}

func (g *Generator) sampleRun(r *rng.RNG, rank level.Difficulty, t config.RankTuning) level.Descriptor {
	d := level.Descriptor{Difficulty: rank}
	d.PisteShape = pickShape(r, t.Shapes)
	d.Width = r.IntegerInRange(t.Width.Min, t.Width.Max)
	d.Height = r.IntegerInRange(t.Height.Min, t.Height.Max)
	d.PisteWidth = round3(r.RealInRange(t.PisteWidth.Min, t.PisteWidth.Max))

	d.SteepZones = sampleSteepZones(r, t)
	d.HasDangerousBoundaries = r.Chance(t.DangerChance)
	d.HasWinch = g.requiresWinch(d.SteepZones)
	if !d.HasWinch && len(d.SteepZones) > 0 {
		d.HasWinch = r.Chance(t.WinchChance)
	}
	if d.HasWinch {
		d.WinchAnchors = g.placeAnchors(r, d.SteepZones)
	}
	if d.AccessPathsRequired() {
		d.AccessPaths = sampleAccessPaths(r, d.SteepZones)
	}

	d.Weather = sampleWeather(r, t)
	d.IsNight = r.Chance(t.NightChance)
	if r.Chance(t.SlalomChance) {
		d.SlalomGates = &level.SlalomGates{
			Count:     r.IntegerInRange(6, 12),
			GateWidth: math.Round(r.RealInRange(3, 5)*10) / 10,
		}
	}

	d.Obstacles = sampleObstacles(r, t.Obstacles, d.HasDangerousBoundaries)
	d.TargetCoverage = r.IntegerInRange(t.Coverage.Min, t.Coverage.Max)
	return d
}

// requiresWinch reports whether any zone is too steep to groom untethered.
func (g *Generator) requiresWinch(zones []level.SteepZone) bool {
	return lo.SomeBy(zones, func(z level.SteepZone) bool { return z.Slope > g.cfg.TumbleSlope })
}

// sampleSteepZones places zones in equal slots of the zone band so they
// never overlap. At most config.MaxSteepZones fit.
func sampleSteepZones(r *rng.RNG, t config.RankTuning) []level.SteepZone {
	n := min(r.IntegerInRange(t.SteepZones.Min, t.SteepZones.Max), config.MaxSteepZones)
	if n <= 0 {
		return nil
	}

	slot := (zoneBandEnd - zoneBandStart) / float64(n)
	zones := make([]level.SteepZone, 0, n)
	for i := range n {
		base := zoneBandStart + float64(i)*slot
		length := r.RealInRange(zoneMinLength, math.Min(zoneMaxLength, slot-2*zoneMargin))
		start := base + r.RealInRange(zoneMargin, slot-length-zoneMargin)
		zones = append(zones, level.SteepZone{
			StartY: round3(start),
			EndY:   round3(start + length),
			Slope:  math.Round(r.RealInRange(t.Slope.Min, t.Slope.Max)*10) / 10,
		})
	}
	return zones
}

// placeAnchors proposes one anchor just above each zone plus a free
// candidate, and reshuffles until the picked anchors clear every zone.
func (g *Generator) placeAnchors(r *rng.RNG, zones []level.SteepZone) []level.WinchAnchor {
	outside := func(y float64) bool {
		return !lo.SomeBy(zones, func(z level.SteepZone) bool { return z.Contains(y) })
	}

	candidates := make([]float64, 0, len(zones)+1)
	for _, z := range zones {
		candidates = append(candidates, round3(z.StartY-r.RealInRange(0.01, 0.05)))
	}
	candidates = append(candidates, round3(r.RealInRange(pathMin, pathMax)))

	want := max(len(zones), 1)
	for range g.cfg.AnchorShuffles + 1 {
		picked := lo.Filter(rng.Shuffle(r, candidates)[:want], func(y float64, _ int) bool {
			return y >= 0 && outside(y)
		})
		if len(picked) == want {
			slices.Sort(picked)
			return lo.Map(picked, func(y float64, _ int) level.WinchAnchor { return level.WinchAnchor{Y: y} })
		}
		candidates[len(candidates)-1] = round3(r.RealInRange(pathMin, pathMax))
	}
	return []level.WinchAnchor{{Y: fallbackAnchorY}}
}

// sampleAccessPaths wraps a service road around every steep zone, or lays
// one or two free roads along the cliffs when there are none.
func sampleAccessPaths(r *rng.RNG, zones []level.SteepZone) []level.AccessPath {
	var paths []level.AccessPath
	if len(zones) > 0 {
		prevEnd := 0.0
		for _, z := range zones {
			start := math.Max(pathMin, z.StartY-pathPadding)
			if len(paths) > 0 {
				start = math.Max(start, prevEnd+0.01)
			}
			end := math.Min(pathMax, z.EndY+pathPadding)
			paths = append(paths, level.AccessPath{StartY: round3(start), EndY: round3(end), Side: pickSide(r)})
			prevEnd = end
		}
		return paths
	}

	n := r.IntegerInRange(1, 2)
	slot := (pathBandHi - pathBandLo) / float64(n)
	for i := range n {
		base := pathBandLo + float64(i)*slot
		span := r.RealInRange(0.15, math.Min(0.25, slot))
		start := base + r.RealInRange(0, slot-span)
		paths = append(paths, level.AccessPath{StartY: round3(start), EndY: round3(start + span), Side: pickSide(r)})
	}
	return paths
}

func sampleWeather(r *rng.RNG, t config.RankTuning) level.Weather {
	roll := r.Frac()
	switch {
	case roll < t.StormChance:
		return level.Storm
	case roll < t.StormChance+t.LightSnowChance:
		return level.LightSnow
	default:
		return level.Clear
	}
}

// sampleObstacles draws a non-empty subset of the pool. Cliffs follow the
// dangerous-boundary flag.
func sampleObstacles(r *rng.RNG, pool []level.Obstacle, dangerous bool) []level.Obstacle {
	var out []level.Obstacle
	if len(pool) > 0 {
		out = rng.Shuffle(r, pool)[:r.IntegerInRange(1, len(pool))]
	}
	out = lo.Without(out, level.Cliffs)
	if dangerous {
		out = append(out, level.Cliffs)
	}
	return out
}

func pickShape(r *rng.RNG, shapes []level.PisteShape) level.PisteShape {
	if len(shapes) == 0 {
		return level.Straight
	}
	return rng.Pick(r, shapes)
}

func pickSide(r *rng.RNG) level.Side {
	if r.Chance(0.5) {
		return level.Left
	}
	return level.Right
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
