package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/bunTree/BrickFast/internal/core"
	"github.com/bunTree/BrickFast/internal/game"
)

// Model is the Bubble Tea model driving one BrickFast game.
type Model struct {
	game    *game.Game
	screen  *core.Screen
	config  core.RuntimeConfig
	keys    KeyMap
	help    help.Model
	notices *noticeBoard
	logger  *log.Logger

	inputFrame core.InputFrame
	holdLeft   int // frames the left intent stays held after a key press
	holdRight  int
	holdFrames int
	last       time.Time
	snapshot   game.Snapshot
	quitting   bool
}

// newModel wires a game to the terminal. notices, when set, must also be the
// game's observer.
func newModel(g *game.Game, notices *noticeBoard, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if notices == nil {
		notices = newNoticeBoard(nil, cfg.TickRate*2)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       g,
		screen:     core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-1)),
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		notices:    notices,
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		holdFrames: max(1, cfg.TickRate/6),
		snapshot:   g.Snapshot(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		m.game.Close()
		st := m.game.Stats()
		s := m.game.Session()
		m.logger.Info("session ended", "score", s.Score, "level", s.Level, "ticks", st.Ticks, "peak_balls", st.PeakBalls)
		return m, tea.Quit
	case core.ActionLeft:
		m.holdLeft, m.holdRight = m.holdFrames, 0
	case core.ActionRight:
		m.holdRight, m.holdLeft = m.holdFrames, 0
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := frameInterval(m.config.TickRate)
	if !m.last.IsZero() {
		elapsed = now.Sub(m.last)
	}
	m.last = now

	in := m.inputFrame.Clone()
	if m.holdLeft > 0 {
		in.Set(core.ActionLeft)
		m.holdLeft--
	}
	if m.holdRight > 0 {
		in.Set(core.ActionRight)
		m.holdRight--
	}

	m.snapshot = m.game.Step(in, elapsed)
	m.notices.tick()
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawSnapshot(m.screen, m.snapshot)
	if text, c, ok := m.notices.current(); ok && m.snapshot.State == game.StatePlaying {
		m.screen.DrawTextCenteredColor(m.screen.Height()-1, text, c)
	}

	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Snapshot returns the last frame drawn.
func (m Model) Snapshot() game.Snapshot {
	return m.snapshot
}

// Run builds a game from opts and plays it in the terminal until the user
// quits.
func Run(opts game.Options, cfg core.RuntimeConfig) error {
	notices := newNoticeBoard(opts.Observer, cfg.TickRate*2)
	opts.Observer = notices

	g, err := game.New(opts)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	defer g.Close()

	p := tea.NewProgram(
		newModel(g, notices, cfg, opts.Logger),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
