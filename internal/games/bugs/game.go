// Package bugs implements the bugs avoidance game on top of the world
// simulation: collect the blue target, dodge the red bugs.
package bugs

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/pickfire/bugs/internal/config"
	"github.com/pickfire/bugs/internal/control"
	"github.com/pickfire/bugs/internal/core"
	"github.com/pickfire/bugs/internal/registry"
	"github.com/pickfire/bugs/internal/world"
)

// Game identifiers as registered with the registry.
const (
	IDManual    = "bugs"
	IDAutopilot = "bugs_auto"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// defaultLogger is used by games without their own logger.
var defaultLogger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	defaultLogger = l
}

// Game wires a world to a controller and draws it into a terminal screen.
type Game struct {
	mode control.Mode

	cfg        config.BugsConfig
	runtime    core.RuntimeConfig
	rng        *rand.Rand
	world      *world.World
	ctrl       control.Controller
	manual     *control.Manual // set in manual mode only
	difficulty *config.DifficultyManager
	logger     *log.Logger

	paused   bool
	gameOver bool
	tooSmall bool
}

// New creates a game driven by the keyboard.
func New() *Game {
	return &Game{mode: control.ModeManual}
}

// NewAutopilot creates a game driven by the autopilot.
func NewAutopilot() *Game {
	return &Game{mode: control.ModeAutonomous}
}

// ForMode returns the game ID for a controller mode.
func ForMode(m control.Mode) string {
	if m == control.ModeAutonomous {
		return IDAutopilot
	}
	return IDManual
}

func init() {
	registry.Register(IDManual, func() registry.Game {
		return New()
	})
	registry.Register(IDAutopilot, func() registry.Game {
		return NewAutopilot()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ForMode(g.mode)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == control.ModeAutonomous {
		return "Bugs (Autopilot)"
	}
	return "Bugs"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	return g.mode.Description()
}

// Mode returns the controller mode.
func (g *Game) Mode() control.Mode {
	return g.mode
}

// SetLogger overrides the package logger for this game.
func (g *Game) SetLogger(l *log.Logger) {
	g.logger = l
}

func (g *Game) log() *log.Logger {
	if g.logger != nil {
		return g.logger
	}
	return defaultLogger
}

// TickRate returns the simulation rate in ticks per second.
func (g *Game) TickRate() int {
	if g.cfg.Simulation.TickRate <= 0 {
		return config.DefaultBugsConfig().Simulation.TickRate
	}
	return g.cfg.Simulation.TickRate
}

// MaxStepsPerFrame returns the catch-up bound for one render frame.
func (g *Game) MaxStepsPerFrame() int {
	if g.cfg.Simulation.MaxStepsPerFrame <= 0 {
		return config.DefaultBugsConfig().Simulation.MaxStepsPerFrame
	}
	return g.cfg.Simulation.MaxStepsPerFrame
}

// World exposes the simulation for inspection.
func (g *Game) World() *world.World {
	return g.world
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, err := config.LoadBugs(configPath)
	if err != nil {
		g.log().Warn("using default config", "err", err)
		cfg = config.DefaultBugsConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyBugsPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.world = world.New(cfg.Screen.Width, cfg.Screen.Height, cfg.WorldParams(), g.rng)
	if g.difficulty.IsEnabled() {
		g.world.SpeedScale = g.difficulty.BugSpeedScale
	}

	ctrl, err := control.New(g.mode, cfg.Bot.Horizon, g.log())
	if err != nil {
		// Modes are fixed at construction, so this is a programming error.
		panic(err)
	}
	g.ctrl = ctrl
	g.manual, _ = ctrl.(*control.Manual)

	g.paused = false
	g.gameOver = false
	g.tooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH
}

// Resize adapts to a new terminal size without restarting. The world keeps
// its logical size; only the projection changes.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	// Handle restart
	if in.Has(core.ActionRestart) && g.gameOver {
		rt := g.runtime
		rt.Seed = g.rng.Int63()
		g.Reset(rt)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.manual != nil {
		g.manual.Observe(in)
	}

	out := g.world.Tick(g.ctrl.Decide(g.world))
	if out.Captured {
		g.log().Info("score", "game", g.ID(), "score", out.Score, "bugs", len(g.world.Bugs))
	}
	if out.Over {
		g.gameOver = true
		g.log().Info("game over", "game", g.ID(), "score", out.Score, "ticks", g.world.Ticks())
	}

	return core.StepResult{State: g.State(), Scored: out.Captured, Collided: out.Over}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.world.ScoreCount,
		Ticks:    g.world.Ticks(),
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

func (g *Game) hud() string {
	mode := "manual"
	if g.mode == control.ModeAutonomous {
		mode = "autopilot"
	}
	return fmt.Sprintf(" %s | Score: %d | Bugs: %d | %s", g.Title(), g.world.ScoreCount, len(g.world.Bugs), mode)
}
