package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snowgroomer/internal/config"
	"github.com/vovakirdan/snowgroomer/internal/core"
	"github.com/vovakirdan/snowgroomer/internal/generator"
	"github.com/vovakirdan/snowgroomer/internal/geometry"
	"github.com/vovakirdan/snowgroomer/internal/level"
	"github.com/vovakirdan/snowgroomer/internal/rng"
)

// headerHeight is the number of lines above the map.
const headerHeight = 3

// previewRanks is the order the rank keys step through.
var previewRanks = []level.Difficulty{level.Green, level.Blue, level.Red, level.Black}

// PreviewOptions configures a PreviewModel.
type PreviewOptions struct {
	Generator *generator.Generator
	Geometry  config.GeometryConfig
	Logger    *log.Logger

	Rank  level.Difficulty
	Seed  uint32 // used when Daily is unset
	Daily bool

	// Level pins an authored level; rank and seed keys are disabled.
	Level *level.Descriptor

	Now           func() time.Time
	RandomSeed    func() uint32
	ScreenshotDir string
	NoSave        bool
}

// PreviewModel is the Bubble Tea model showing one level's map.
type PreviewModel struct {
	opts     PreviewOptions
	geo      *geometry.Geometry
	rank     level.Difficulty
	seed     uint32
	daily    bool
	result   generator.Result
	desc     level.Descriptor
	screen   *core.Screen
	viewport viewport.Model
	help     help.Model
	keys     PreviewKeyMap
	width    int
	height   int
	now      time.Time
	status   string
	quitting bool
	back     bool
}

// NewPreviewModel creates a preview sized for a width x height terminal and
// renders its first level.
func NewPreviewModel(opts PreviewOptions, width, height int) PreviewModel {
	if opts.Generator == nil {
		opts.Generator = generator.New(config.DefaultGeneratorConfig(), opts.Logger)
	}
	if opts.Geometry.TileSize == 0 {
		opts.Geometry = config.DefaultGeometryConfig()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RandomSeed == nil {
		opts.RandomSeed = rng.RandomSeed
	}
	if opts.ScreenshotDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			opts.ScreenshotDir = filepath.Join(home, ".groomer", "screenshots")
		}
	}

	m := PreviewModel{
		opts:   opts,
		geo:    geometry.New(opts.Geometry, opts.Logger),
		rank:   level.ParseRank(string(opts.Rank)),
		seed:   opts.Seed,
		daily:  opts.Daily && opts.Level == nil,
		help:   help.New(),
		keys:   DefaultPreviewKeyMap(),
		width:  width,
		height: height,
		now:    opts.Now(),
	}
	m.viewport = viewport.New(max(width, 1), m.viewportHeight())
	m.reload()
	return m
}

// reload regenerates the level for the current seed and rank and redraws
// the map.
func (m *PreviewModel) reload() {
	switch {
	case m.opts.Level != nil:
		m.desc = m.opts.Level.Clone()
		m.result = generator.Result{Level: m.desc, Valid: true}
	default:
		if m.daily {
			m.seed = rng.DailySeed(m.now)
		}
		m.result = m.opts.Generator.GenerateValidLevel(m.seed, m.rank)
		m.desc = m.result.Level
	}
	m.screen = RenderLevel(m.geo, m.desc)
	m.viewport.SetContent(RenderScreen(m.screen))
	m.viewport.GotoTop()
}

func (m PreviewModel) viewportHeight() int {
	helpLines := 1
	if m.help.ShowAll {
		helpLines = 4
	}
	return max(m.height-headerHeight-helpLines, 1)
}

// Init starts the clock used by the daily countdown.
func (m PreviewModel) Init() tea.Cmd {
	return tickCmd(1)
}

// Update handles messages.
func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width, 1)
		m.viewport.Height = m.viewportHeight()
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.now = time.Time(msg)
		// The daily contract rolls over at UTC midnight.
		if m.daily && rng.DailySeed(m.now) != m.seed {
			m.reload()
		}
		return m, tickCmd(1)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m PreviewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fixed := m.opts.Level != nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.back = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.viewport.Height = m.viewportHeight()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		if path, err := m.saveScreenshot(); err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.status = "saved " + path
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevRank):
		if !fixed {
			m.stepRank(-1)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextRank):
		if !fixed {
			m.stepRank(1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Random):
		if !fixed {
			m.daily = false
			m.seed = m.opts.RandomSeed()
			m.status = ""
			m.reload()
		}
		return m, nil

	case key.Matches(msg, m.keys.Daily):
		if !fixed {
			m.daily = true
			m.status = ""
			m.reload()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// stepRank moves one rank easier or harder, stopping at green and black.
func (m *PreviewModel) stepRank(delta int) {
	idx := 0
	for i, r := range previewRanks {
		if r == m.rank {
			idx = i
		}
	}
	next := core.Clamp(idx+delta, 0, len(previewRanks)-1)
	if previewRanks[next] == m.rank {
		return
	}
	m.rank = previewRanks[next]
	m.status = ""
	m.reload()
}

// saveScreenshot writes the plain-text map to the screenshot directory.
func (m PreviewModel) saveScreenshot() (string, error) {
	if m.opts.NoSave {
		return "", errors.New("saving is disabled")
	}
	if m.opts.ScreenshotDir == "" {
		return "", errors.New("no screenshot directory")
	}
	if err := os.MkdirAll(m.opts.ScreenshotDir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("level%d_%s.txt", m.desc.ID, m.now.Format("20060102_150405"))
	if m.opts.Level == nil {
		name = fmt.Sprintf("%s_%s_%s.txt", rng.SeedToCode(m.result.Seed), m.rank, m.now.Format("20060102_150405"))
	}
	path := filepath.Join(m.opts.ScreenshotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()+"\n"), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the header, the map and the help bar.
func (m PreviewModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	rankStyles  = map[level.Difficulty]lipgloss.Style{
		level.Tutorial: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		level.Green:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		level.Blue:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		level.Red:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		level.Black:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("0")).Bold(true),
		level.Park:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	}
)

// header renders exactly headerHeight lines.
func (m PreviewModel) header() string {
	title := titleStyle.Render(m.desc.Name) + "  " + rankStyles[m.desc.Difficulty].Render(" "+string(m.desc.Difficulty)+" ")

	var origin string
	switch {
	case m.opts.Level != nil:
		origin = fmt.Sprintf("campaign level %d", m.desc.ID)
	default:
		origin = "seed " + rng.SeedToCode(m.result.Seed)
		if m.result.Seed != m.seed {
			origin += " (from " + rng.SeedToCode(m.seed) + ")"
		}
		if !m.result.Valid {
			origin += " (unvalidated)"
		}
		if m.daily {
			origin = fmt.Sprintf("daily contract %s · %s · next in %s",
				m.now.UTC().Format(time.DateOnly), origin, untilNextContract(m.now))
		}
	}

	third := Bonuses(m.desc)
	if m.status != "" {
		third = statusStyle.Render(m.status)
	} else if third != "" {
		third = mutedStyle.Render("bonus: " + third)
	}

	return strings.Join([]string{
		title + "  " + mutedStyle.Render(origin),
		Summary(m.desc),
		third,
	}, "\n")
}

// untilNextContract formats the time left until the next UTC day.
func untilNextContract(now time.Time) string {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	left := next.Sub(now).Truncate(time.Second)
	h := int(left.Hours())
	mnt := int(left.Minutes()) % 60
	s := int(left.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, mnt, s)
}

// Level returns the level currently shown.
func (m PreviewModel) Level() level.Descriptor {
	return m.desc
}

// Result returns the generator result behind the current level.
func (m PreviewModel) Result() generator.Result {
	return m.result
}

// Rank returns the selected rank.
func (m PreviewModel) Rank() level.Difficulty {
	return m.rank
}

// IsDaily reports whether the daily contract is shown.
func (m PreviewModel) IsDaily() bool {
	return m.daily
}

// IsQuitting returns true if user requested to quit entirely.
func (m PreviewModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m PreviewModel) BackToMenu() bool {
	return m.back
}

// RunPreview starts a standalone preview program.
func RunPreview(opts PreviewOptions, width, height int) error {
	p := tea.NewProgram(
		NewPreviewModel(opts, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
