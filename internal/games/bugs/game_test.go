package bugs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/pickfire/bugs/internal/control"
	"github.com/pickfire/bugs/internal/core"
	"github.com/pickfire/bugs/internal/registry"
	"github.com/pickfire/bugs/internal/world"
)

func newTestGame(t *testing.T, g *Game) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset("")

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{IDManual, IDAutopilot} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
	if ForMode(control.ModeAutonomous) != IDAutopilot || ForMode(control.ModeManual) != IDManual {
		t.Error("ForMode returned the wrong IDs")
	}
}

func TestManualMovement(t *testing.T) {
	g := newTestGame(t, New())
	w := g.World()
	w.Bugs = nil
	w.Score = core.Point{X: 100, Y: 100}
	start := w.Player

	g.Step(frame(core.ActionRight, core.ActionUp))
	want := core.Point{X: start.X + 5, Y: start.Y - 5}
	if w.Player != want {
		t.Errorf("player = %+v, expected %+v", w.Player, want)
	}

	g.Step(frame())
	if w.Player != want {
		t.Error("player should stay put without keys")
	}
	if st := g.State(); st.Ticks != 2 {
		t.Errorf("ticks = %d, expected 2", st.Ticks)
	}
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, New())
	w := g.World()
	w.Bugs = nil
	w.Score = core.Point{X: 100, Y: 100}

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	before := w.Player
	g.Step(frame(core.ActionLeft))
	if w.Player != before || w.Ticks() != 0 {
		t.Error("paused game should not advance")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("expected unpaused")
	}
}

func TestScoreAndGameOverLogged(t *testing.T) {
	var buf bytes.Buffer
	g := New()
	g.SetLogger(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	newTestGame(t, g)

	w := g.World()
	w.Bugs = nil
	w.Score = w.Player
	if res := g.Step(frame()); !res.Scored || res.Collided {
		t.Errorf("capture tick reported %+v", res)
	}
	if g.State().Score != 1 {
		t.Fatalf("score = %d, expected 1", g.State().Score)
	}

	// Bug right edge reaches one unit into the player.
	w.Bugs = []world.Bug{{
		Pos: core.Point{X: w.Player.X - 18, Y: w.Player.Y},
		Vel: core.Vector{X: 4},
	}}
	w.Score = core.Point{X: 700, Y: 500}
	if res := g.Step(frame()); !res.Collided || res.Scored {
		t.Errorf("collision tick reported %+v", res)
	}

	st := g.State()
	if !st.GameOver || st.Score != 1 {
		t.Fatalf("state = %+v, expected game over with score 1", st)
	}

	logs := buf.String()
	if !strings.Contains(logs, "score") || !strings.Contains(logs, "game over") {
		t.Errorf("expected score and game over logs, got %q", logs)
	}

	// Pause is ignored once the game is over.
	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("game over should not pause")
	}

	g.Step(frame(core.ActionRestart))
	if st := g.State(); st.GameOver || st.Score != 0 || st.Ticks != 0 {
		t.Errorf("restart should start a fresh game, got %+v", st)
	}
}

func TestAutopilotPlays(t *testing.T) {
	g := newTestGame(t, NewAutopilot())
	if g.Mode() != control.ModeAutonomous {
		t.Fatalf("mode = %q", g.Mode())
	}

	for i := 0; i < 3000 && !g.State().GameOver; i++ {
		// Keys are ignored in autopilot mode.
		g.Step(frame(core.ActionLeft))
	}
	st := g.State()
	if st.Ticks == 0 {
		t.Fatal("autopilot never advanced the world")
	}
	if st.Score == 0 && !st.GameOver {
		t.Error("autopilot should collect at least one target in 3000 ticks")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, New())
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD missing score: %q", screen.Row(0))
	}

	found := map[core.Color]bool{}
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			found[screen.GetCell(x, y).Color] = true
		}
	}
	for _, c := range []core.Color{core.ColorGreen, core.ColorBlue, core.ColorRed} {
		if !found[c] {
			t.Errorf("colour %d not drawn", c)
		}
	}
}

func TestRenderPlayerPosition(t *testing.T) {
	g := newTestGame(t, New())
	g.World().Bugs = nil
	g.World().Player = core.Point{X: 10, Y: 10}
	g.World().Score = core.Point{X: 700, Y: 500}

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	// Top-left corner of the inner playfield.
	if c := screen.GetCell(1, hudHeight+1); c.Rune != PlayerChar || c.Color != core.ColorGreen {
		t.Errorf("expected player at inner origin, got %+v", c)
	}
}

func TestRenderTooSmall(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 10, ScreenH: 5, Seed: 1})
	screen := core.NewScreen(10, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too") {
		t.Errorf("expected too small message, got %q", screen.String())
	}

	before := g.State().Ticks
	g.Step(frame())
	if g.State().Ticks != before {
		t.Error("too small screen should not advance the game")
	}

	g.Resize(80, 24)
	g.Step(frame())
	if g.State().Ticks != before+1 {
		t.Error("game should resume after growing the screen")
	}
}

func TestDifficultyPresetScalesBugs(t *testing.T) {
	g := New()
	newTestGame(t, g)
	if g.World().SpeedScale != nil {
		t.Fatal("default config should not scale bug speed")
	}

	SetDifficultyPreset("hard")
	defer SetDifficultyPreset("")
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	if g.World().SpeedScale == nil {
		t.Fatal("hard preset should scale bug speed")
	}
	if s := g.World().SpeedScale(0, 0); s <= 1 {
		t.Errorf("hard preset scale = %v, expected > 1", s)
	}
}
