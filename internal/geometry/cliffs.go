package geometry

import (
	"math"
	"slices"
	"sort"

	"github.com/vovakirdan/snowgroomer/internal/config"
	"github.com/vovakirdan/snowgroomer/internal/core"
	"github.com/vovakirdan/snowgroomer/internal/level"
	"github.com/vovakirdan/snowgroomer/internal/rng"
)

// EdgePoint is the piste edge x at pixel row y.
type EdgePoint struct {
	Y, X float64
}

// edgeBuffer is the working array reused while walking cliff bands. It is
// never referenced by a segment; segments hold an EdgeProfile instead.
type edgeBuffer struct {
	points []EdgePoint
}

func (b *edgeBuffer) add(p EdgePoint) {
	b.points = append(b.points, p)
}

func (b *edgeBuffer) len() int {
	return len(b.points)
}

// reset empties the buffer and keeps its backing array.
func (b *edgeBuffer) reset() {
	b.points = b.points[:0]
}

// snapshot copies the buffered points into an independent profile.
func (b *edgeBuffer) snapshot() EdgeProfile {
	return EdgeProfile{points: slices.Clone(b.points)}
}

// EdgeProfile is an immutable piste edge, sorted by y.
type EdgeProfile struct {
	points []EdgePoint
}

// Len returns the number of points.
func (p EdgeProfile) Len() int {
	return len(p.points)
}

// At returns the edge x at pixel row y, interpolating between points and
// holding the end values outside the profile.
func (p EdgeProfile) At(y float64) float64 {
	n := len(p.points)
	switch {
	case n == 0:
		return 0
	case y <= p.points[0].Y:
		return p.points[0].X
	case y >= p.points[n-1].Y:
		return p.points[n-1].X
	}

	i := sort.Search(n, func(i int) bool { return p.points[i].Y >= y })
	a, b := p.points[i-1], p.points[i]
	t := (y - a.Y) / (b.Y - a.Y)
	return a.X + t*(b.X-a.X)
}

// CliffSegment is a dangerous band alongside the piste. Offset is the gap
// from the piste edge and Extent the band thickness, both in pixels.
type CliffSegment struct {
	Side       level.Side
	StartY     float64
	EndY       float64
	Offset     float64
	Extent     float64
	EdgeLookup func(y float64) float64

	// Tiles is the render-only cliff outline after jitter and omission.
	Tiles []TilePos

	profile EdgeProfile
}

// EdgeX returns the piste edge x at pixel row y.
func (c CliffSegment) EdgeX(y float64) float64 {
	return c.EdgeLookup(y)
}

// Band returns the cliff band [lo, hi] in pixels at row y.
func (c CliffSegment) Band(y float64) (lo, hi float64) {
	edge := c.EdgeLookup(y)
	if c.Side == level.Left {
		return edge - c.Offset - c.Extent, edge - c.Offset
	}
	return edge + c.Offset, edge + c.Offset + c.Extent
}

// Contains reports whether the pixel lies on the cliff band.
func (c CliffSegment) Contains(px, py float64) bool {
	if py < c.StartY || py > c.EndY {
		return false
	}
	lo, hi := c.Band(py)
	return px >= lo && px <= hi
}

// Bounds returns the bounding box of the band over the whole segment.
func (c CliffSegment) Bounds() core.Rect {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range c.profile.points {
		l, h := c.Band(p.Y)
		lo, hi = math.Min(lo, l), math.Max(hi, h)
	}
	if c.profile.Len() == 0 {
		lo, hi = 0, 0
	}
	return core.Rect{StartY: c.StartY, EndY: c.EndY, LeftX: lo, RightX: hi}
}

// buildCliffs walks each side of the piste and cuts the rows into bands.
// Rows covered by a road on the same side break the band.
func (g *Geometry) buildCliffs(d level.Descriptor, r *rng.RNG) {
	br := g.boundaryRows()
	first, last := br, len(g.PistePath)-br-1
	if last < first {
		return
	}
	tuning := g.cfg.Cliff(d.Difficulty)
	bandRows := g.cfg.CliffBandRows

	for _, side := range []level.Side{level.Left, level.Right} {
		g.edges.reset()
		startRow := -1
		limit := r.IntegerInRange(bandRows.Min, bandRows.Max)

		for y := first; y <= last; y++ {
			if g.roadCoversRow(side, y) {
				g.flushCliff(side, startRow, y-1, tuning, r)
				startRow = -1
				continue
			}
			if startRow < 0 {
				startRow = y
			}

			row := g.PistePath[y]
			edge := row.Left()
			if side == level.Right {
				edge = row.Right()
			}
			g.edges.add(EdgePoint{Y: (float64(y) + 0.5) * g.TileSize, X: edge * g.TileSize})

			if y-startRow+1 >= limit {
				g.flushCliff(side, startRow, y, tuning, r)
				startRow = -1
				limit = r.IntegerInRange(bandRows.Min, bandRows.Max)
			}
		}
		g.flushCliff(side, startRow, last, tuning, r)
	}
}

// flushCliff turns the buffered edge points into a segment and clears the
// buffer for the next band.
func (g *Geometry) flushCliff(side level.Side, startRow, endRow int, tuning config.CliffTuning, r *rng.RNG) {
	if startRow < 0 || g.edges.len() == 0 {
		g.edges.reset()
		return
	}

	profile := g.edges.snapshot()
	g.edges.reset()

	seg := CliffSegment{
		Side:       side,
		StartY:     float64(startRow) * g.TileSize,
		EndY:       float64(endRow+1) * g.TileSize,
		Offset:     r.RealInRange(tuning.Offset.Min, tuning.Offset.Max) * g.TileSize,
		Extent:     r.RealInRange(tuning.Extent.Min, tuning.Extent.Max) * g.TileSize,
		EdgeLookup: profile.At,
		profile:    profile,
	}
	seg.Tiles = g.cliffTiles(seg, r)
	g.CliffSegments = append(g.CliffSegments, seg)
}

// cliffTiles lays out the visible rocks of a segment. Each row is pushed a
// random distance away from the piste, and a fraction of tiles is left out.
func (g *Geometry) cliffTiles(seg CliffSegment, r *rng.RNG) []TilePos {
	var tiles []TilePos
	for _, p := range seg.profile.points {
		row := int(p.Y / g.TileSize)
		jitter := r.RealInRange(0, g.cfg.OrganicJitterTiles) * g.TileSize
		lo, hi := seg.Band(p.Y)
		if seg.Side == level.Left {
			lo -= jitter
			hi -= jitter
		} else {
			lo += jitter
			hi += jitter
		}

		for x := int(math.Floor(lo / g.TileSize)); float64(x)*g.TileSize < hi; x++ {
			if r.Chance(g.cfg.OmitFraction) {
				continue
			}
			tiles = append(tiles, TilePos{X: x, Y: row})
		}
	}
	return tiles
}

// IsOnCliff reports whether the pixel lies on any cliff band.
func (g *Geometry) IsOnCliff(px, py float64) bool {
	for _, seg := range g.CliffSegments {
		if seg.Contains(px, py) {
			return true
		}
	}
	return false
}
