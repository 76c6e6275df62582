// Package geometry turns a level descriptor into per-row piste geometry,
// cliff bands, service roads and steep-zone rectangles, and answers the
// point queries the physics and rendering layers run every frame.
//
// A Geometry belongs to one active level. Call Reset on teardown and
// Generate on the next load; the same instance can be reused.
package geometry

import (
	"fmt"
	"hash/fnv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snowgroomer/internal/config"
	"github.com/vovakirdan/snowgroomer/internal/core"
	"github.com/vovakirdan/snowgroomer/internal/level"
	"github.com/vovakirdan/snowgroomer/internal/rng"
)

// Point is a position in pixels.
type Point struct {
	X, Y float64
}

// TilePos is a tile coordinate.
type TilePos struct {
	X, Y int
}

// PathRow is the piste corridor on one row, in tiles.
type PathRow struct {
	CenterX float64
	Width   float64
}

// Left returns the left piste edge in tiles.
func (p PathRow) Left() float64 { return p.CenterX - p.Width/2 }

// Right returns the right piste edge in tiles.
func (p PathRow) Right() float64 { return p.CenterX + p.Width/2 }

// AccessPathRect is a collision-exempt rectangle of a service road.
type AccessPathRect struct {
	core.Rect
	Side      level.Side
	PathIndex int
}

// AccessPathCurve is the render-only polyline of one service road.
type AccessPathCurve struct {
	PathIndex int
	Side      level.Side
	Center    []Point
	LeftEdge  []Point
	RightEdge []Point
}

// SteepZoneRect is a steep zone resolved to pixels over the piste corridor.
type SteepZoneRect struct {
	core.Rect
	Slope     float64
	ZoneIndex int
}

// Geometry is the derived, mutable state of one level load.
type Geometry struct {
	cfg    config.GeometryConfig
	logger *log.Logger

	TileSize         float64
	PistePath        []PathRow
	CliffSegments    []CliffSegment
	AccessPathRects  []AccessPathRect
	AccessPathCurves []AccessPathCurve
	SteepZoneRects   []SteepZoneRect

	desc      level.Descriptor
	generated bool
	edges     edgeBuffer
}

// New creates an empty geometry engine. A nil logger falls back to
// log.Default().
func New(cfg config.GeometryConfig, logger *log.Logger) *Geometry {
	if logger == nil {
		logger = log.Default()
	}
	return &Geometry{cfg: cfg, logger: logger, TileSize: float64(cfg.TileSize)}
}

// Reset empties every record so no state leaks into the next level.
func (g *Geometry) Reset() {
	g.PistePath = nil
	g.CliffSegments = nil
	g.AccessPathRects = nil
	g.AccessPathCurves = nil
	g.SteepZoneRects = nil
	g.desc = level.Descriptor{}
	g.generated = false
	g.edges.reset()
}

// Generate rebuilds the geometry for d. A non-positive tileSize uses the
// configured tile size. Layout randomness is seeded from the descriptor, so
// the same level always produces the same geometry.
func (g *Geometry) Generate(d level.Descriptor, tileSize int) {
	g.Reset()
	g.desc = d.Clone()
	g.TileSize = float64(tileSize)
	if g.TileSize <= 0 {
		g.TileSize = float64(g.cfg.TileSize)
	}
	if g.TileSize <= 0 {
		g.TileSize = level.TileSize
	}

	r := rng.New(layoutSeed(d))

	g.buildPistePath(d)
	// Roads first: cliff bands skip the rows a road occupies.
	g.buildAccessPaths(d, r)
	if d.HasDangerousBoundaries {
		g.buildCliffs(d, r)
	}
	g.buildSteepZones(d)
	g.generated = true

	g.logger.Debug("geometry generated",
		"level", d.Name, "rows", len(g.PistePath), "cliffs", len(g.CliffSegments),
		"roads", len(g.AccessPathCurves), "road_rects", len(g.AccessPathRects), "steep", len(g.SteepZoneRects))
}

// Descriptor returns the descriptor of the last Generate call.
func (g *Geometry) Descriptor() level.Descriptor {
	return g.desc
}

// Generated reports whether Generate ran since the last Reset.
func (g *Geometry) Generated() bool {
	return g.generated
}

// boundaryRows is the number of reserved rows at the top and at the bottom.
func (g *Geometry) boundaryRows() int {
	return max(g.cfg.BoundaryRows, 0)
}

// layoutSeed derives the geometry RNG seed from the level identity.
func layoutSeed(d level.Descriptor) uint32 {
	h := fnv.New32a()
	_, _ = fmt.Fprintf(h, "%d:%s:%dx%d", d.ID, d.Name, d.Width, d.Height)
	return h.Sum32()
}
