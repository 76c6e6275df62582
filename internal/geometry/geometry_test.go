package geometry

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/snowgroomer/internal/config"
	"github.com/vovakirdan/snowgroomer/internal/generator"
	"github.com/vovakirdan/snowgroomer/internal/level"
)

const tile = 16

func newEngine() *Geometry {
	return New(config.DefaultGeometryConfig(), log.New(io.Discard))
}

func verticale() level.Descriptor {
	return level.Descriptor{
		ID:                     6,
		Name:                   "La Verticale",
		Width:                  60,
		Height:                 120,
		Difficulty:             level.Black,
		TargetCoverage:         90,
		PisteShape:             level.Winding,
		PisteWidth:             0.35,
		SteepZones:             []level.SteepZone{{StartY: 0.3, EndY: 0.42, Slope: 42}},
		HasWinch:               true,
		WinchAnchors:           []level.WinchAnchor{{Y: 0.25}},
		AccessPaths:            []level.AccessPath{{StartY: 0.27, EndY: 0.45, Side: level.Left}},
		HasDangerousBoundaries: true,
		IsNight:                true,
		Weather:                level.Clear,
	}
}

func marmottes() level.Descriptor {
	return level.Descriptor{
		ID:             1,
		Name:           "Les Marmottes",
		Width:          40,
		Height:         60,
		Difficulty:     level.Green,
		TargetCoverage: 80,
		PisteShape:     level.GentleCurve,
		PisteWidth:     0.5,
		Weather:        level.Clear,
	}
}

func TestEdgeBufferSnapshotIndependent(t *testing.T) {
	var buf edgeBuffer
	buf.add(EdgePoint{Y: 8, X: 100})
	buf.add(EdgePoint{Y: 24, X: 120})
	first := buf.snapshot()
	buf.reset()

	// Reuses the backing array, overwriting the old points in place.
	buf.add(EdgePoint{Y: 8, X: 500})
	buf.add(EdgePoint{Y: 24, X: 900})
	second := buf.snapshot()
	buf.reset()

	tests := []struct {
		name    string
		profile EdgeProfile
		y, want float64
	}{
		{"first start", first, 8, 100},
		{"first mid", first, 16, 110},
		{"first end", first, 24, 120},
		{"first clamped above", first, 0, 100},
		{"first clamped below", first, 40, 120},
		{"second mid", second, 16, 700},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.profile.At(tc.y); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("At(%.0f) = %.3f, expected %.3f", tc.y, got, tc.want)
			}
		})
	}

	if (EdgeProfile{}).At(10) != 0 {
		t.Error("empty profile should return 0")
	}
}

func TestCliffLookupsSurviveLaterSegments(t *testing.T) {
	g := newEngine()
	d := verticale()
	g.Generate(d, tile)

	if len(g.CliffSegments) < 2 {
		t.Fatalf("expected several cliff segments, got %d", len(g.CliffSegments))
	}

	for i, seg := range g.CliffSegments {
		for row := int(seg.StartY / tile); row < int(seg.EndY/tile); row++ {
			want := g.PistePath[row].Left() * tile
			if seg.Side == level.Right {
				want = g.PistePath[row].Right() * tile
			}
			y := (float64(row) + 0.5) * tile
			if got := seg.EdgeLookup(y); math.Abs(got-want) > 1e-6 {
				t.Fatalf("segment %d (%s) row %d: edge %.3f, expected %.3f", i, seg.Side, row, got, want)
			}
			if seg.EdgeX(y) != seg.EdgeLookup(y) {
				t.Fatalf("segment %d: EdgeX disagrees with EdgeLookup", i)
			}
		}
	}
}

func TestCliffBandWithinTuning(t *testing.T) {
	g := newEngine()
	g.Generate(verticale(), tile)
	tuning := config.DefaultGeometryConfig().Cliff(level.Black)
	tiles := 0

	for i, seg := range g.CliffSegments {
		off, ext := seg.Offset/tile, seg.Extent/tile
		if off < tuning.Offset.Min || off > tuning.Offset.Max {
			t.Errorf("segment %d offset %.2f tiles outside %.1f-%.1f", i, off, tuning.Offset.Min, tuning.Offset.Max)
		}
		if ext < tuning.Extent.Min || ext > tuning.Extent.Max {
			t.Errorf("segment %d extent %.2f tiles outside %.1f-%.1f", i, ext, tuning.Extent.Min, tuning.Extent.Max)
		}
		if seg.StartY >= seg.EndY {
			t.Errorf("segment %d spans %.0f-%.0f", i, seg.StartY, seg.EndY)
		}
		for _, tp := range seg.Tiles {
			if float64(tp.Y)*tile < seg.StartY || float64(tp.Y)*tile >= seg.EndY {
				t.Errorf("segment %d tile %v outside its rows", i, tp)
			}
		}
		tiles += len(seg.Tiles)
	}
	if tiles == 0 {
		t.Error("cliffs have no render tiles")
	}
}

func TestIsOnCliff(t *testing.T) {
	g := newEngine()
	d := verticale()

	if g.IsOnCliff(10, 10) {
		t.Error("no segments yet, expected false")
	}

	g.Generate(d, tile)
	for i, seg := range g.CliffSegments {
		y := (seg.StartY + seg.EndY) / 2
		lo, hi := seg.Band(y)
		if !g.IsOnCliff((lo+hi)/2, y) {
			t.Errorf("segment %d: band center not on cliff", i)
		}
		if g.IsOnCliff((lo+hi)/2, seg.EndY+5*tile*float64(d.Height)) {
			t.Errorf("segment %d: point below the level reported on cliff", i)
		}
	}

	for row, p := range g.PistePath {
		if g.IsOnCliff(p.CenterX*tile, (float64(row)+0.5)*tile) {
			t.Fatalf("piste center on row %d reported on cliff", row)
		}
	}
}

func TestCliffsSkipRoadRows(t *testing.T) {
	g := newEngine()
	g.Generate(verticale(), tile)

	for i, seg := range g.CliffSegments {
		for _, rect := range g.AccessPathRects {
			if rect.Side != seg.Side {
				continue
			}
			if rect.StartY < seg.EndY && rect.EndY > seg.StartY {
				t.Errorf("segment %d (%s %.0f-%.0f) overlaps road rect %.0f-%.0f",
					i, seg.Side, seg.StartY, seg.EndY, rect.StartY, rect.EndY)
			}
		}
	}
}

func TestAccessPaths(t *testing.T) {
	g := newEngine()
	d := verticale()
	g.Generate(d, tile)

	if len(g.AccessPathCurves) != len(d.AccessPaths) {
		t.Fatalf("curves = %d, expected %d", len(g.AccessPathCurves), len(d.AccessPaths))
	}
	curve := g.AccessPathCurves[0]
	if curve.Side != level.Left || len(curve.Center) != config.DefaultGeometryConfig().CurvePoints {
		t.Errorf("curve = side %s with %d points", curve.Side, len(curve.Center))
	}
	for _, p := range curve.Center {
		if !g.IsOnAccessPath(p.X, p.Y) {
			t.Errorf("curve point (%.1f, %.1f) not on access path", p.X, p.Y)
		}
	}

	mid := curve.Center[len(curve.Center)/2]
	row := int(mid.Y / tile)
	if mid.X >= g.PistePath[row].Left()*tile {
		t.Errorf("left road apex x=%.1f should sit left of the piste edge %.1f", mid.X, g.PistePath[row].Left()*tile)
	}

	for _, rect := range g.AccessPathRects {
		if rect.PathIndex != 0 || rect.Side != level.Left {
			t.Errorf("unexpected rect %+v", rect)
		}
		if !g.IsOnAccessPath(rect.LeftX, rect.StartY) || !g.IsOnAccessPath(rect.RightX, rect.EndY) {
			t.Error("access path bounds should be inclusive")
		}
	}
	if g.IsOnAccessPath(-1000, -1000) {
		t.Error("far point reported on access path")
	}
}

func TestIsInPiste(t *testing.T) {
	g := newEngine()
	d := marmottes()

	// Permissive before generation.
	if !g.IsInPiste(0, 30, d) {
		t.Error("rows without geometry should count as piste")
	}
	if g.IsInPiste(20, 0, d) || g.IsInPiste(20, d.Height-1, d) {
		t.Error("boundary rows are never piste, even before generation")
	}

	g.Generate(d, tile)
	mid := d.Height / 2
	p := g.PistePath[mid]

	tests := []struct {
		name string
		x    float64
		y    int
		want bool
	}{
		{"center", p.CenterX, mid, true},
		{"left edge", p.Left(), mid, true},
		{"right edge", p.Right(), mid, true},
		{"left of edge", p.Left() - 0.01, mid, false},
		{"right of edge", p.Right() + 0.01, mid, false},
		{"top boundary", g.PistePath[1].CenterX, 1, false},
		{"bottom boundary", g.PistePath[d.Height-2].CenterX, d.Height - 2, false},
		{"first playable row", g.PistePath[3].CenterX, 3, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.IsInPiste(tc.x, tc.y, d); got != tc.want {
				t.Errorf("IsInPiste(%.2f, %d) = %v, expected %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestGeneratedLevelsCenterOnPiste(t *testing.T) {
	g := newEngine()
	for _, rank := range level.Ranks {
		for seed := uint32(1); seed <= 40; seed++ {
			d := generator.Generate(seed, rank)
			g.Generate(d, tile)

			if len(g.PistePath) != d.Height {
				t.Fatalf("seed %d %s: %d path rows for height %d", seed, rank, len(g.PistePath), d.Height)
			}
			for _, mid := range []int{d.Height / 4, d.Height / 2, 3 * d.Height / 4} {
				p := g.PistePath[mid]
				if !g.IsInPiste(p.CenterX, mid, d) {
					t.Fatalf("seed %d %s: center of row %d not on piste", seed, rank, mid)
				}
				if p.Left() < -1e-9 || p.Right() > float64(d.Width)+1e-9 {
					t.Fatalf("seed %d %s: row %d corridor %.2f-%.2f leaves the level", seed, rank, mid, p.Left(), p.Right())
				}
			}
			if !d.HasDangerousBoundaries && len(g.CliffSegments) > 0 {
				t.Fatalf("seed %d %s: cliffs on a safe level", seed, rank)
			}
			if len(g.AccessPathCurves) != len(d.AccessPaths) {
				t.Fatalf("seed %d %s: %d curves for %d paths", seed, rank, len(g.AccessPathCurves), len(d.AccessPaths))
			}
		}
	}
}

func TestSteepZoneRects(t *testing.T) {
	g := newEngine()
	d := verticale()
	g.Generate(d, tile)

	if len(g.SteepZoneRects) != 1 {
		t.Fatalf("steep rects = %d, expected 1", len(g.SteepZoneRects))
	}
	z := g.SteepZoneRects[0]
	if z.Slope != 42 || z.ZoneIndex != 0 {
		t.Errorf("rect = %+v", z)
	}
	if z.StartY != 36*tile || z.EndY != 51*tile {
		t.Errorf("rect spans %.0f-%.0f, expected %d-%d", z.StartY, z.EndY, 36*tile, 51*tile)
	}

	cx, cy := (z.LeftX+z.RightX)/2, (z.StartY+z.EndY)/2
	if got, ok := g.SteepZoneAt(cx, cy); !ok || got.Slope != 42 {
		t.Error("center of the steep rect not found")
	}
	if _, ok := g.SteepZoneAt(cx, 5*tile); ok {
		t.Error("top of the run reported steep")
	}
	for row := 36; row < 51; row++ {
		if g.PistePath[row].Left()*tile < z.LeftX || g.PistePath[row].Right()*tile > z.RightX {
			t.Errorf("row %d corridor escapes the steep rect", row)
		}
	}
}

func TestResetClearsState(t *testing.T) {
	g := newEngine()
	g.Generate(verticale(), tile)
	if !g.Generated() || len(g.CliffSegments) == 0 {
		t.Fatal("expected populated geometry")
	}

	g.Reset()
	if g.Generated() || g.PistePath != nil || g.CliffSegments != nil || g.AccessPathRects != nil ||
		g.AccessPathCurves != nil || g.SteepZoneRects != nil {
		t.Errorf("Reset left state behind: %+v", g)
	}
	if g.IsOnCliff(100, 600) || g.IsOnAccessPath(100, 600) || len(g.CliffAvoidRects(10)) != 0 {
		t.Error("queries should see an empty geometry after Reset")
	}
	if g.IsBoundaryRow(0) {
		t.Error("no boundary rows before generation")
	}
}

func TestReuseAcrossLevels(t *testing.T) {
	g := newEngine()
	g.Generate(verticale(), tile)
	g.Generate(marmottes(), tile)

	if len(g.CliffSegments) != 0 || len(g.AccessPathRects) != 0 || len(g.SteepZoneRects) != 0 {
		t.Errorf("stale records leaked: %d cliffs, %d roads, %d steep",
			len(g.CliffSegments), len(g.AccessPathRects), len(g.SteepZoneRects))
	}
	if len(g.PistePath) != marmottes().Height {
		t.Errorf("path rows = %d, expected %d", len(g.PistePath), marmottes().Height)
	}
	if g.Descriptor().Name != "Les Marmottes" {
		t.Errorf("descriptor = %q", g.Descriptor().Name)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, b := newEngine(), newEngine()
	a.Generate(verticale(), tile)
	b.Generate(verticale(), tile)

	if diff := cmp.Diff(a.PistePath, b.PistePath); diff != "" {
		t.Errorf("piste path differs:\n%s", diff)
	}
	if diff := cmp.Diff(a.AccessPathRects, b.AccessPathRects); diff != "" {
		t.Errorf("road rects differ:\n%s", diff)
	}
	if len(a.CliffSegments) != len(b.CliffSegments) {
		t.Fatalf("cliff count %d != %d", len(a.CliffSegments), len(b.CliffSegments))
	}
	for i := range a.CliffSegments {
		sa, sb := a.CliffSegments[i], b.CliffSegments[i]
		if sa.StartY != sb.StartY || sa.Offset != sb.Offset || sa.Extent != sb.Extent {
			t.Errorf("segment %d differs", i)
		}
		if diff := cmp.Diff(sa.Tiles, sb.Tiles); diff != "" {
			t.Errorf("segment %d tiles differ:\n%s", i, diff)
		}
	}
}

func TestTileSizeFallback(t *testing.T) {
	g := newEngine()
	g.Generate(marmottes(), 0)
	if g.TileSize != 16 {
		t.Errorf("TileSize = %.0f, expected configured 16", g.TileSize)
	}
	g.Generate(marmottes(), 32)
	if g.TileSize != 32 {
		t.Errorf("TileSize = %.0f, expected 32", g.TileSize)
	}
}

func TestPisteBoundsAndBoundaryRows(t *testing.T) {
	g := newEngine()
	d := marmottes()
	g.Generate(d, tile)

	left, right, ok := g.PisteBounds(30)
	if !ok || left >= right {
		t.Errorf("PisteBounds(30) = %.2f, %.2f, %v", left, right, ok)
	}
	if _, _, ok := g.PisteBounds(d.Height); ok {
		t.Error("row past the level should have no bounds")
	}

	for _, tc := range []struct {
		y    int
		want bool
	}{{0, true}, {2, true}, {3, false}, {56, false}, {57, true}, {59, true}} {
		if got := g.IsBoundaryRow(tc.y); got != tc.want {
			t.Errorf("IsBoundaryRow(%d) = %v, expected %v", tc.y, got, tc.want)
		}
	}
}
