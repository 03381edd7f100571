package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/engine"
	"github.com/vovakirdan/tui-flappy/internal/render"
)

// Rows reserved below the playfield for help and status.
const (
	shortFooterRows = 1
	fullFooterRows  = 4
)

var (
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
)

// Model is the Bubble Tea model that hosts one Machine.
type Model struct {
	machine *engine.Machine
	router  *core.Router
	screen  *core.Screen
	canvas  *render.TermCanvas
	styles  styleCache
	images  render.Images
	keys    KeyMap
	help    help.Model
	logger  *log.Logger
	copy    func(string) error
	shotDir string

	config   core.RuntimeConfig
	last     time.Time
	status   string
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithImages sets the sprites. Nil fields fall back to shapes.
func WithImages(img render.Images) Option {
	return func(m *Model) {
		m.images = img
	}
}

// WithLogger routes model logs to l.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClipboard replaces the clipboard writer. Nil disables copying, which
// is what remote sessions want.
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) {
		m.copy = fn
	}
}

// WithScreenshotDir sets where ctrl+s writes text screenshots. Empty
// disables screenshots.
func WithScreenshotDir(dir string) Option {
	return func(m *Model) {
		m.shotDir = dir
	}
}

// NewModel creates a model around machine, sized from cfg until the first
// window size message arrives.
func NewModel(machine *engine.Machine, cfg core.RuntimeConfig, opts ...Option) Model {
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := Model{
		machine: machine,
		router:  core.NewRouter(),
		styles:  styleCache{},
		keys:    DefaultKeyMap(),
		help:    help.New(),
		logger:  log.New(io.Discard),
		config:  cfg,
	}
	if !clipboard.Unsupported {
		m.copy = clipboard.WriteAll
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.resize(cfg.ScreenW, cfg.ScreenH)
	return m
}

func (m *Model) resize(w, h int) {
	m.config.ScreenW, m.config.ScreenH = w, h
	footer := shortFooterRows
	if m.help.ShowAll {
		footer = fullFooterRows
	}
	rows := max(h-footer, 1)
	if m.screen == nil {
		m.screen = core.NewScreen(w, rows)
	} else {
		m.screen.Resize(w, rows)
	}
	world := m.machine.World()
	m.canvas = render.NewTermCanvas(m.screen, world.Width, world.Height)
	m.help.Width = w
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Copy):
			m.copySummary()
			return m, nil
		case key.Matches(msg, m.keys.Screenshot):
			m.saveScreenshot()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize(m.config.ScreenW, m.config.ScreenH)
			return m, nil
		}
	}

	ev, ok := inputEvent(msg)
	if !ok {
		return m, nil
	}
	action := m.router.Route(ev, m.machine.Phase() == engine.PhaseRunning)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if m.machine.Handle(action) {
		m.status = ""
	}
	return m, nil
}

// handleTick feeds the wall-clock time since the previous tick to the
// machine. The first tick uses the nominal frame length.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := m.config.FrameMs()
	if !m.last.IsZero() {
		dt = float64(now.Sub(m.last)) / float64(time.Millisecond)
	}
	m.last = now
	m.machine.Update(dt)
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) copySummary() {
	if m.machine.Phase() != engine.PhaseGameOver {
		return
	}
	if m.copy == nil {
		m.status = "clipboard unavailable"
		return
	}
	if err := m.copy(m.machine.Frame().Summary()); err != nil {
		m.logger.Warn("clipboard copy failed", "err", err)
		m.status = "copy failed"
		return
	}
	m.status = "score copied"
}

// saveScreenshot writes the current playfield as plain text.
func (m *Model) saveScreenshot() {
	if m.shotDir == "" {
		return
	}
	render.Draw(m.canvas, m.machine.Frame(), m.images)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.shotDir, 0o755)

	name := fmt.Sprintf("flappy_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(m.shotDir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		m.status = "screenshot failed"
		return
	}
	m.status = "saved " + name
}

// Status returns the transient footer message.
func (m Model) Status() string {
	return m.status
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	render.Draw(m.canvas, m.machine.Frame(), m.images)

	footer := footerStyle.Render(m.help.View(m.keys))
	if m.status != "" {
		footer = statusStyle.Render(m.status) + "  " + footer
	}
	return renderScreen(m.screen, m.styles) + "\n" + footer
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(machine *engine.Machine, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(machine, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
