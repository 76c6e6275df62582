package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snowgroomer/internal/catalog"
	"github.com/vovakirdan/snowgroomer/internal/config"
	"github.com/vovakirdan/snowgroomer/internal/core"
	"github.com/vovakirdan/snowgroomer/internal/geometry"
	"github.com/vovakirdan/snowgroomer/internal/level"
	"github.com/vovakirdan/snowgroomer/internal/rng"
	"github.com/vovakirdan/snowgroomer/internal/storage"
)

var fixedNow = time.Date(2026, 3, 14, 22, 30, 15, 0, time.UTC)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func countGlyph(s *core.Screen, r rune) int {
	n := 0
	for y := range s.Height() {
		n += strings.Count(s.Row(y), string(r))
	}
	return n
}

func newTestPreview(t *testing.T, opts PreviewOptions) PreviewModel {
	t.Helper()
	opts.Now = func() time.Time { return fixedNow }
	if opts.RandomSeed == nil {
		opts.RandomSeed = func() uint32 { return 42 }
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = t.TempDir()
	}
	return NewPreviewModel(opts, 100, 40)
}

func TestRenderLevelVerticale(t *testing.T) {
	d, err := catalog.Get(6)
	if err != nil {
		t.Fatalf("catalog.Get(6) failed: %v", err)
	}
	g := geometry.New(config.DefaultGeometryConfig(), nil)
	s := RenderLevel(g, d)

	if s.Width() != d.Width || s.Height() != d.Height {
		t.Fatalf("screen is %dx%d, want %dx%d", s.Width(), s.Height(), d.Width, d.Height)
	}
	for _, y := range []int{0, 2, d.Height - 1} {
		if row := s.Row(y); row != strings.Repeat(string(glyphBoundary), d.Width) {
			t.Errorf("boundary row %d = %q", y, row)
		}
	}

	tests := []struct {
		name  string
		glyph rune
	}{
		{"piste", glyphPiste},
		{"steep zone", glyphSteep},
		{"service road", glyphRoad},
		{"cliff", glyphCliff},
		{"winch anchor", glyphAnchor},
		{"rocks", obstacleGlyphs[level.Rocks].r},
	}
	for _, tt := range tests {
		if countGlyph(s, tt.glyph) == 0 {
			t.Errorf("no %s (%q) drawn", tt.name, tt.glyph)
		}
	}
}

func TestRenderLevelMatchesGeometry(t *testing.T) {
	d, err := catalog.Get(1)
	if err != nil {
		t.Fatalf("catalog.Get(1) failed: %v", err)
	}
	g := geometry.New(config.DefaultGeometryConfig(), nil)
	s := RenderLevel(g, d)

	for y := 3; y < d.Height-3; y++ {
		for x := range d.Width {
			onPiste := g.IsInPiste(float64(x)+0.5, y, d)
			cell := s.GetCell(x, y)
			drawnPiste := cell.Color == core.ColorPiste || cell.Color == core.ColorSteep
			if drawnPiste && !onPiste {
				t.Fatalf("cell (%d,%d) drawn as piste but off the corridor", x, y)
			}
		}
	}
	if countGlyph(s, glyphCliff) != 0 {
		t.Error("cliffs drawn on a level without dangerous boundaries")
	}
}

func TestRenderLevelRegeneratesForNewLevel(t *testing.T) {
	g := geometry.New(config.DefaultGeometryConfig(), nil)
	first, _ := catalog.Get(1)
	second, _ := catalog.Get(6)

	RenderLevel(g, first)
	s := RenderLevel(g, second)
	if g.Descriptor().ID != second.ID {
		t.Errorf("geometry holds level %d, want %d", g.Descriptor().ID, second.ID)
	}
	if s.Height() != second.Height {
		t.Errorf("screen height = %d, want %d", s.Height(), second.Height)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab", core.ColorPiste)
	s.DrawText(2, 0, "cd", core.ColorCliff)
	s.DrawText(0, 1, "xyz", core.ColorDefault)

	out := RenderScreen(s)
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Fatalf("RenderScreen() produced %d lines, want 2", len(lines))
	}
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() output missing %q", want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "no limit"},
		{59, "0:59"},
		{60, "1:00"},
		{150, "2:30"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.secs); got != tt.want {
			t.Errorf("FormatTime(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}

func TestSummaryAndBonuses(t *testing.T) {
	d, _ := catalog.Get(6)
	sum := Summary(d)
	for _, want := range []string{"black", "60x120", "night", "winch", "cliffs", "1 steep zone", "1 service road"} {
		if !strings.Contains(sum, want) {
			t.Errorf("Summary() = %q, missing %q", sum, want)
		}
	}

	bonus := Bonuses(d)
	if !strings.Contains(bonus, "no tumble") || !strings.Contains(bonus, "groom 95%") {
		t.Errorf("Bonuses() = %q", bonus)
	}
}

func TestPreviewRankKeys(t *testing.T) {
	m := newTestPreview(t, PreviewOptions{Rank: level.Red, Seed: 1234})

	tests := []struct {
		key  tea.KeyMsg
		want level.Difficulty
	}{
		{tea.KeyMsg{Type: tea.KeyRight}, level.Black},
		{tea.KeyMsg{Type: tea.KeyRight}, level.Black},
		{tea.KeyMsg{Type: tea.KeyLeft}, level.Red},
		{runes("h"), level.Blue},
		{runes("h"), level.Green},
		{runes("h"), level.Green},
		{runes("l"), level.Blue},
	}
	for i, tt := range tests {
		next, _ := m.Update(tt.key)
		m = next.(PreviewModel)
		if m.Rank() != tt.want {
			t.Fatalf("step %d: rank = %s, want %s", i, m.Rank(), tt.want)
		}
		if m.Result().Level.Difficulty != level.Park && m.Level().Difficulty != tt.want {
			t.Errorf("step %d: level difficulty = %s, want %s", i, m.Level().Difficulty, tt.want)
		}
	}
}

func TestPreviewSeedKeys(t *testing.T) {
	m := newTestPreview(t, PreviewOptions{Rank: level.Blue, Daily: true})
	if !m.IsDaily() {
		t.Fatal("preview should start on the daily contract")
	}
	want := rng.DailySeed(fixedNow)
	if m.seed != want {
		t.Errorf("daily seed = %d, want %d", m.seed, want)
	}

	next, _ := m.Update(runes("r"))
	m = next.(PreviewModel)
	if m.IsDaily() || m.seed != 42 {
		t.Errorf("after r: daily=%v seed=%d, want random seed 42", m.IsDaily(), m.seed)
	}

	next, _ = m.Update(runes("d"))
	m = next.(PreviewModel)
	if !m.IsDaily() || m.seed != want {
		t.Errorf("after d: daily=%v seed=%d, want daily seed %d", m.IsDaily(), m.seed, want)
	}
}

func TestPreviewDailyRollover(t *testing.T) {
	m := newTestPreview(t, PreviewOptions{Rank: level.Green, Daily: true})
	before := m.seed

	next, cmd := m.Update(TickMsg(fixedNow.Add(2 * time.Hour)))
	m = next.(PreviewModel)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.seed == before || m.seed != rng.DailySeed(fixedNow.Add(2*time.Hour)) {
		t.Errorf("seed after midnight = %d, want next day's seed", m.seed)
	}
}

func TestPreviewFixedLevelIgnoresSeedKeys(t *testing.T) {
	d, _ := catalog.Get(3)
	m := newTestPreview(t, PreviewOptions{Level: &d})

	for _, k := range []tea.KeyMsg{{Type: tea.KeyRight}, runes("r"), runes("d")} {
		next, _ := m.Update(k)
		m = next.(PreviewModel)
	}
	if m.Level().ID != 3 || m.IsDaily() {
		t.Errorf("fixed preview changed level: id=%d daily=%v", m.Level().ID, m.IsDaily())
	}
	if !strings.Contains(m.View(), d.Name) {
		t.Error("View() does not show the level name")
	}
}

func TestPreviewQuitAndBack(t *testing.T) {
	m := newTestPreview(t, PreviewOptions{Seed: 7})

	next, cmd := m.Update(runes("q"))
	if !next.(PreviewModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(PreviewModel).BackToMenu() {
		t.Error("esc should go back")
	}
	if next.(PreviewModel).View() != "" {
		t.Error("View() after back should be empty")
	}
}

func TestPreviewSaveScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestPreview(t, PreviewOptions{Rank: level.Red, Seed: 1234, ScreenshotDir: dir})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(PreviewModel)
	if !strings.HasPrefix(m.status, "saved ") {
		t.Fatalf("status = %q, want saved", m.status)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one screenshot, got %v (%v)", files, err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.HasPrefix(string(data), strings.Repeat(string(glyphBoundary), m.Level().Width)) {
		t.Error("screenshot does not start with the boundary row")
	}
}

func TestPreviewNoSave(t *testing.T) {
	m := newTestPreview(t, PreviewOptions{Seed: 7, NoSave: true})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if got := next.(PreviewModel).status; !strings.HasPrefix(got, "save failed") {
		t.Errorf("status = %q, want save failed", got)
	}
}

func TestUntilNextContract(t *testing.T) {
	if got := untilNextContract(fixedNow); got != "01:29:45" {
		t.Errorf("untilNextContract() = %q, want 01:29:45", got)
	}
}

func TestMenuListsDailyThenCampaign(t *testing.T) {
	m := NewMenuModel(80, 24)
	if len(m.items) != len(catalog.Campaign())+1 {
		t.Fatalf("menu has %d items, want %d", len(m.items), len(catalog.Campaign())+1)
	}
	if !m.items[0].Daily {
		t.Error("first item should be the daily contract")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sel := next.(MenuModel).Selected()
	if sel == nil || sel.Daily || sel.LevelID != 0 {
		t.Errorf("Selected() = %+v, want level 0", sel)
	}
}

func TestMenuKeyMapping(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key  tea.KeyMsg
		want MenuAction
	}{
		{runes("q"), MenuActionQuit},
		{runes("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionRuns},
		{runes("x"), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.key); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.key.String(), got, tt.want)
		}
	}
}

func TestSessionFlow(t *testing.T) {
	opts := PreviewOptions{
		Rank:          level.Green,
		Daily:         true,
		Now:           func() time.Time { return fixedNow },
		ScreenshotDir: t.TempDir(),
	}
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	var m tea.Model = NewSessionModel(store, opts, 100, 40)

	steps := []struct {
		key  tea.KeyMsg
		want sessionScreen
	}{
		{tea.KeyMsg{Type: tea.KeyEsc}, screenMenu},
		{tea.KeyMsg{Type: tea.KeyTab}, screenRuns},
		{tea.KeyMsg{Type: tea.KeyEsc}, screenMenu},
		{tea.KeyMsg{Type: tea.KeyDown}, screenMenu},
		{tea.KeyMsg{Type: tea.KeyEnter}, screenPreview},
	}
	for i, st := range steps {
		m, _ = m.Update(st.key)
		if got := m.(SessionModel).screen; got != st.want {
			t.Fatalf("step %d: screen = %d, want %d", i, got, st.want)
		}
	}
	if id := m.(SessionModel).preview.Level().ID; id != 0 {
		t.Errorf("previewed level %d, want 0", id)
	}

	m, cmd := m.Update(runes("q"))
	if !m.(SessionModel).quitting || cmd == nil {
		t.Error("q should end the session")
	}
}

func TestRunsModelShowsRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	d, _ := catalog.Get(6)
	if _, err := store.SaveRun(storage.NewRun(d, d.Difficulty, "LVL6", "LVL6", 200, 92, true)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	m := NewRunsModel(store, 120, 30)
	if len(m.Runs()) != 1 {
		t.Fatalf("Runs() = %d, want 1", len(m.Runs()))
	}
	row := RunRow(m.Runs()[0])
	if row[0] != "LVL6" || row[2] != "La Verticale" || row[4] != "92%" {
		t.Errorf("RunRow() = %v", row)
	}

	empty := NewRunsModel(nil, 80, 24)
	if !strings.Contains(empty.View(), "No runs recorded yet") {
		t.Error("empty history should say so")
	}
}
