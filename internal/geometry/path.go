package geometry

import (
	"math"

	"github.com/vovakirdan/snowgroomer/internal/core"
	"github.com/vovakirdan/snowgroomer/internal/level"
)

// buildPistePath stores one corridor entry per row, boundary rows included.
func (g *Geometry) buildPistePath(d level.Descriptor) {
	if d.Height <= 0 || d.Width <= 0 {
		return
	}

	w := float64(d.Width)
	width := math.Min(d.PisteWidth*w, w)
	g.PistePath = make([]PathRow, d.Height)
	for y := range d.Height {
		center := w/2 + d.PisteShape.Offset(float64(y)/float64(d.Height))*w
		center = core.ClampF(center, width/2, w-width/2)
		g.PistePath[y] = PathRow{CenterX: center, Width: width}
	}
}

// buildSteepZones resolves each zone to the pixel box spanning the piste
// over its rows.
func (g *Geometry) buildSteepZones(d level.Descriptor) {
	if len(g.PistePath) == 0 {
		return
	}
	last := len(g.PistePath) - 1
	h := float64(d.Height)

	for i, z := range d.SteepZones {
		start := core.Clamp(int(math.Floor(z.StartY*h)), 0, last)
		end := core.Clamp(int(math.Ceil(z.EndY*h))-1, start, last)

		left, right := math.Inf(1), math.Inf(-1)
		for _, row := range g.PistePath[start : end+1] {
			left = math.Min(left, row.Left())
			right = math.Max(right, row.Right())
		}

		g.SteepZoneRects = append(g.SteepZoneRects, SteepZoneRect{
			Rect: core.Rect{
				StartY: float64(start) * g.TileSize,
				EndY:   float64(end+1) * g.TileSize,
				LeftX:  left * g.TileSize,
				RightX: right * g.TileSize,
			},
			Slope:     z.Slope,
			ZoneIndex: i,
		})
	}
}

// IsInPiste reports whether tile column tileX on row tileY lies on the
// groomable corridor. Boundary rows are never on the piste. A row with no
// geometry yet counts as piste so callers running before Generate are not
// blocked.
func (g *Geometry) IsInPiste(tileX float64, tileY int, d level.Descriptor) bool {
	br := g.boundaryRows()
	if tileY < br || tileY >= d.Height-br {
		return false
	}
	if tileY >= len(g.PistePath) {
		return true
	}
	row := g.PistePath[tileY]
	return tileX >= row.Left() && tileX <= row.Right()
}

// IsBoundaryRow reports whether row y is a reserved frame row of the
// generated level.
func (g *Geometry) IsBoundaryRow(y int) bool {
	if !g.generated {
		return false
	}
	br := g.boundaryRows()
	return y < br || y >= g.desc.Height-br
}

// PisteBounds returns the corridor edges of row y in tiles.
func (g *Geometry) PisteBounds(y int) (left, right float64, ok bool) {
	if y < 0 || y >= len(g.PistePath) {
		return 0, 0, false
	}
	row := g.PistePath[y]
	return row.Left(), row.Right(), true
}

// SteepZoneAt returns the steep zone rectangle containing the pixel.
func (g *Geometry) SteepZoneAt(px, py float64) (SteepZoneRect, bool) {
	for _, z := range g.SteepZoneRects {
		if z.Contains(px, py) {
			return z, true
		}
	}
	return SteepZoneRect{}, false
}
