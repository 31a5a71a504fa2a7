package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/pickfire/bugs/internal/core"
	"github.com/pickfire/bugs/internal/loop"
	"github.com/pickfire/bugs/internal/registry"
	"github.com/pickfire/bugs/internal/storage"
)

// loggerSetter is implemented by games that accept a session logger.
type loggerSetter interface {
	SetLogger(*log.Logger)
}

// Model is the Bubble Tea model for running a game.
//
// Each render frame the model feeds the held keys into an input frame and
// runs as many simulation steps as the game's fixed rate asks for. Games
// that do not implement registry.Paced step once per frame.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	held       *HeldKeys
	stepper    *loop.Stepper
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	tickID     uint64

	lastTick  time.Time
	fpsSince  time.Time
	fpsFrames int

	embedded   bool // running inside a menu session
	quitting   bool
	backToMenu bool
	scoreSaved bool // whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
// store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if ls, ok := game.(loggerSetter); ok {
		ls.SetLogger(logger)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		held:       NewHeldKeys(DefaultHoldWindow),
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		tickID:     nextTickID(),
	}
	if _, ok := game.(registry.Paced); ok {
		m.stepper = loop.NewStepper(0, 0)
	}
	return m
}

// Init resets the game and starts the frame loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Pacing is read after Reset because games load their tick rate there.
	if p, ok := m.game.(registry.Paced); ok && m.stepper != nil {
		*m.stepper = *loop.NewStepper(p.TickRate(), p.MaxStepsPerFrame())
	}
	return tickCmd(m.config.TickRate, m.tickID)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick(msg.At)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		m.held.Press(action, now)
		m.inputFrame.Set(action)
	case core.ActionBack:
		if m.embedded && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
			return m, nil
		}
		if !m.gameState.GameOver {
			m.inputFrame.Set(core.ActionPause)
		}
	case core.ActionPause:
		m.inputFrame.Set(core.ActionPause)
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	}
	return m, nil
}

// handleResize follows the terminal size. Games that cannot resize in
// place are restarted, as long as they are still running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick runs the simulation steps due for this frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = now.UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		m.held.Release()
		if m.stepper != nil {
			m.stepper.Reset()
		}
		m.lastTick = now
		return m, tickCmd(m.config.TickRate, m.tickID)
	}

	m.held.Apply(&m.inputFrame, now)

	steps := 1
	if m.stepper != nil {
		elapsed := frameInterval(m.config.TickRate)
		if !m.lastTick.IsZero() {
			elapsed = now.Sub(m.lastTick)
		}
		steps = m.stepper.Advance(elapsed)
	}
	m.lastTick = now

	// Only the first step of a frame sees one-shot actions like pause.
	frame := m.inputFrame
	for i := 0; i < steps; i++ {
		m.gameState = m.game.Step(frame).State
		if i == 0 {
			frame = m.inputFrame.Directional()
		}
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
	}
	m.logFrameRate(now)

	// Keep pending actions until a step has consumed them.
	if steps > 0 && !m.inputFrame.Empty() {
		m.inputFrame.Clear()
	}
	return m, tickCmd(m.config.TickRate, m.tickID)
}

// saveScore records the finished game once.
func (m *Model) saveScore() {
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score, m.gameState.Ticks); err != nil {
		m.logger.Warn("could not save score", "err", err)
		return
	}
	m.logger.Info("score saved", "game", m.game.ID(), "score", m.gameState.Score, "ticks", m.gameState.Ticks)
}

// logFrameRate reports the achieved render rate about once per second.
func (m *Model) logFrameRate(now time.Time) {
	if m.fpsSince.IsZero() {
		m.fpsSince = now
		return
	}
	m.fpsFrames++
	if d := now.Sub(m.fpsSince); d >= time.Second {
		steps := 0
		if m.stepper != nil {
			steps = m.stepper.Total()
		}
		m.logger.Debug("frame rate", "fps", float64(m.fpsFrames)/d.Seconds(), "steps", steps)
		m.fpsFrames = 0
		m.fpsSince = now
	}
}

// saveScreenshot writes the current screen to ~/.bugs/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".bugs", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
