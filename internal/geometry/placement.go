package geometry

import (
	"github.com/samber/lo"

	"github.com/vovakirdan/snowgroomer/internal/core"
	"github.com/vovakirdan/snowgroomer/internal/rng"
)

// obstacleSalt separates the placement stream from the layout stream.
const obstacleSalt = 0x9E3779B9

// CliffAvoidRects returns one bounding box per cliff segment, padded by
// margin pixels.
func (g *Geometry) CliffAvoidRects(margin float64) []core.Rect {
	return lo.Map(g.CliffSegments, func(seg CliffSegment, _ int) core.Rect {
		return seg.Bounds().Pad(margin)
	})
}

// PlaceObstacles picks up to count off-piste tiles for trees and rocks.
// Tiles on the piste, on a road or touching a cliff padded by margin pixels
// are rejected. The result depends only on the level.
func (g *Geometry) PlaceObstacles(count int, margin float64) []TilePos {
	if !g.generated || count <= 0 {
		return nil
	}
	d := g.desc
	br := g.boundaryRows()
	if d.Width <= 0 || d.Height-2*br <= 0 {
		return nil
	}

	r := rng.New(layoutSeed(d) ^ obstacleSalt)
	avoid := g.CliffAvoidRects(margin)
	taken := make(map[TilePos]bool, count)
	out := make([]TilePos, 0, count)

	for attempt := 0; attempt < count*20 && len(out) < count; attempt++ {
		pos := TilePos{
			X: r.IntegerInRange(0, d.Width-1),
			Y: r.IntegerInRange(br, d.Height-br-1),
		}
		if taken[pos] {
			continue
		}
		px, py := (float64(pos.X)+0.5)*g.TileSize, (float64(pos.Y)+0.5)*g.TileSize
		if g.IsInPiste(float64(pos.X)+0.5, pos.Y, d) || g.IsOnAccessPath(px, py) {
			continue
		}
		if lo.SomeBy(avoid, func(rect core.Rect) bool { return rect.Intersects(g.tileRect(pos)) }) {
			continue
		}
		taken[pos] = true
		out = append(out, pos)
	}
	return out
}

// tileRect returns the pixel bounds of a tile.
func (g *Geometry) tileRect(pos TilePos) core.Rect {
	x, y := float64(pos.X)*g.TileSize, float64(pos.Y)*g.TileSize
	return core.NewRect(y, y+g.TileSize, x, x+g.TileSize)
}
