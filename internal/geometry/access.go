package geometry

import (
	"math"

	"github.com/vovakirdan/snowgroomer/internal/core"
	"github.com/vovakirdan/snowgroomer/internal/level"
	"github.com/vovakirdan/snowgroomer/internal/rng"
)

// buildAccessPaths lays a switchback road for each declared path: it leaves
// the piste edge at the path start, swings off-piste and rejoins at the
// end. Each pair of consecutive curve points becomes one exemption rect.
func (g *Geometry) buildAccessPaths(d level.Descriptor, r *rng.RNG) {
	if len(g.PistePath) == 0 {
		return
	}
	last := len(g.PistePath) - 1
	h := float64(d.Height)
	n := max(g.cfg.CurvePoints, 2)
	halfRoad := g.cfg.RoadWidthTiles * g.TileSize / 2

	for i, p := range d.AccessPaths {
		startRow := core.Clamp(int(p.StartY*h), 0, last)
		endRow := core.Clamp(int(p.EndY*h), startRow, last)
		dir := 1.0
		if p.Side == level.Left {
			dir = -1
		}
		detour := g.cfg.RoadDetourTiles * r.RealInRange(0.8, 1.2)

		curve := AccessPathCurve{PathIndex: i, Side: p.Side}
		for k := range n {
			t := float64(k) / float64(n-1)
			rowF := float64(startRow) + t*float64(endRow-startRow)
			row := g.PistePath[core.Clamp(int(rowF), 0, last)]

			edge := row.Right()
			if p.Side == level.Left {
				edge = row.Left()
			}
			x := (edge + dir*detour*math.Sin(math.Pi*t)) * g.TileSize
			y := rowF * g.TileSize

			curve.Center = append(curve.Center, Point{X: x, Y: y})
			curve.LeftEdge = append(curve.LeftEdge, Point{X: x - halfRoad, Y: y})
			curve.RightEdge = append(curve.RightEdge, Point{X: x + halfRoad, Y: y})
		}
		g.AccessPathCurves = append(g.AccessPathCurves, curve)

		for k := 1; k < n; k++ {
			a, b := curve.Center[k-1], curve.Center[k]
			g.AccessPathRects = append(g.AccessPathRects, AccessPathRect{
				Rect:      core.NewRect(a.Y, b.Y+g.TileSize, math.Min(a.X, b.X)-halfRoad, math.Max(a.X, b.X)+halfRoad),
				Side:      p.Side,
				PathIndex: i,
			})
		}
	}
}

// roadCoversRow reports whether a road on side spans tile row y.
func (g *Geometry) roadCoversRow(side level.Side, y int) bool {
	top, bottom := float64(y)*g.TileSize, float64(y+1)*g.TileSize
	for _, rect := range g.AccessPathRects {
		if rect.Side == side && rect.StartY < bottom && rect.EndY > top {
			return true
		}
	}
	return false
}

// IsOnAccessPath reports whether the pixel lies on a service road. Bounds
// are inclusive.
func (g *Geometry) IsOnAccessPath(px, py float64) bool {
	for _, rect := range g.AccessPathRects {
		if rect.Contains(px, py) {
			return true
		}
	}
	return false
}
