package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/vovakirdan/snowgroomer/internal/core"
	"github.com/vovakirdan/snowgroomer/internal/geometry"
	"github.com/vovakirdan/snowgroomer/internal/level"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorSnow:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	core.ColorPiste:    lipgloss.NewStyle().Foreground(lipgloss.Color("153")),
	core.ColorBoundary: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorCliff:    lipgloss.NewStyle().Foreground(lipgloss.Color("94")).Bold(true),
	core.ColorRoad:     lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	core.ColorSteep:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorAnchor:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorTree:     lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
	core.ColorRock:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorHazard:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorText:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorMuted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// Map glyphs.
const (
	glyphSnow     = ' '
	glyphPiste    = '.'
	glyphBoundary = '='
	glyphSteep    = '/'
	glyphRoad     = '#'
	glyphCliff    = '^'
	glyphAnchor   = 'W'
	glyphGate     = '|'
)

type glyph struct {
	r rune
	c core.Color
}

// obstacleGlyphs covers the obstacles drawn as scattered tiles. Cliffs come
// from the geometry instead.
var obstacleGlyphs = map[level.Obstacle]glyph{
	level.Trees:          {'T', core.ColorTree},
	level.Rocks:          {'o', core.ColorRock},
	level.Pylons:         {'I', core.ColorHazard},
	level.SnowGuns:       {'*', core.ColorHazard},
	level.SnowDrifts:     {'~', core.ColorSnow},
	level.AvalancheZones: {'!', core.ColorHazard},
}

// obstacleDensity is the share of tiles considered for obstacles.
const obstacleDensity = 1.0 / 40

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// RenderLevel draws d one cell per tile. g is generated for d first when it
// holds another level.
func RenderLevel(g *geometry.Geometry, d level.Descriptor) *core.Screen {
	if !g.Generated() || !sameLevel(g.Descriptor(), d) {
		g.Generate(d, 0)
	}
	s := core.NewScreen(d.Width, d.Height)
	ts := g.TileSize

	for y := range d.Height {
		if g.IsBoundaryRow(y) {
			s.DrawHLine(0, y, d.Width, glyphBoundary, core.ColorBoundary)
			continue
		}
		py := (float64(y) + 0.5) * ts
		for x := range d.Width {
			px := (float64(x) + 0.5) * ts
			switch {
			case g.IsOnAccessPath(px, py):
				s.Set(x, y, glyphRoad, core.ColorRoad)
			case g.IsInPiste(float64(x)+0.5, y, d):
				if _, steep := g.SteepZoneAt(px, py); steep {
					s.Set(x, y, glyphSteep, core.ColorSteep)
				} else {
					s.Set(x, y, glyphPiste, core.ColorPiste)
				}
			default:
				s.Set(x, y, glyphSnow, core.ColorSnow)
			}
		}
	}

	for _, seg := range g.CliffSegments {
		for _, t := range seg.Tiles {
			if s.GetCell(t.X, t.Y).Rune == glyphSnow {
				s.Set(t.X, t.Y, glyphCliff, core.ColorCliff)
			}
		}
	}

	drawObstacles(s, g, d)
	drawGates(s, g, d)
	drawAnchors(s, g, d)
	return s
}

func sameLevel(a, b level.Descriptor) bool {
	return a.ID == b.ID && a.Name == b.Name && a.Width == b.Width && a.Height == b.Height
}

func drawObstacles(s *core.Screen, g *geometry.Geometry, d level.Descriptor) {
	kinds := lo.Filter(d.Obstacles, func(o level.Obstacle, _ int) bool {
		_, ok := obstacleGlyphs[o]
		return ok
	})
	if len(kinds) == 0 {
		return
	}
	count := int(float64(d.Width*d.Height) * obstacleDensity)
	for i, t := range g.PlaceObstacles(count, g.TileSize) {
		gl := obstacleGlyphs[kinds[i%len(kinds)]]
		s.Set(t.X, t.Y, gl.r, gl.c)
	}
}

// drawGates spaces the slalom gates evenly over the playable rows.
func drawGates(s *core.Screen, g *geometry.Geometry, d level.Descriptor) {
	if d.SlalomGates == nil || d.SlalomGates.Count <= 0 {
		return
	}
	n := d.SlalomGates.Count
	for i := range n {
		y := int(float64(d.Height) * (float64(i) + 1) / float64(n+1))
		left, right, ok := g.PisteBounds(y)
		if !ok || g.IsBoundaryRow(y) {
			continue
		}
		center := (left + right) / 2
		// Gates alternate sides of the fall line.
		if i%2 == 0 {
			center -= (right - left) / 6
		} else {
			center += (right - left) / 6
		}
		half := d.SlalomGates.GateWidth / 2
		s.Set(int(math.Floor(center-half)), y, glyphGate, core.ColorText)
		s.Set(int(math.Floor(center+half)), y, glyphGate, core.ColorText)
	}
}

func drawAnchors(s *core.Screen, g *geometry.Geometry, d level.Descriptor) {
	for _, a := range d.WinchAnchors {
		y := int(a.Y * float64(d.Height))
		left, right, ok := g.PisteBounds(y)
		if !ok {
			continue
		}
		s.Set(int((left+right)/2), y, glyphAnchor, core.ColorAnchor)
	}
}
