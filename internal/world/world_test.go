package world

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pickfire/bugs/internal/core"
)

func newTestWorld(seed int64) *World {
	return New(DefaultWidth, DefaultHeight, DefaultParams(), rand.New(rand.NewSource(seed)))
}

func bugSpeed(b Bug) float64 {
	return b.Vel.Len()
}

func TestNewWorld(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		w := newTestWorld(seed)

		if w.Player != (core.Point{X: 390, Y: 290}) {
			t.Fatalf("seed %d: player = %+v, expected (390, 290)", seed, w.Player)
		}
		if len(w.Bugs) != 1 {
			t.Fatalf("seed %d: expected 1 initial bug, got %d", seed, len(w.Bugs))
		}
		if w.ScoreCount != 0 || w.Over() || w.Ticks() != 0 {
			t.Fatalf("seed %d: fresh world should have no score, ticks or game over", seed)
		}

		b := w.Bugs[0]
		if (b.Vel.X == 0) == (b.Vel.Y == 0) {
			t.Errorf("seed %d: bug velocity %+v should have exactly one non-zero axis", seed, b.Vel)
		}
		if s := bugSpeed(b); s < MinBugSpeed || s >= MaxBugSpeed {
			t.Errorf("seed %d: bug speed %v outside [%v, %v)", seed, s, MinBugSpeed, MaxBugSpeed)
		}
		if b.Vel.X < 0 || b.Vel.Y < 0 {
			t.Errorf("seed %d: bugs spawn moving in the positive direction, got %+v", seed, b.Vel)
		}

		sh := ScoreSize / 2
		if w.Score.X < sh || w.Score.X > DefaultWidth-PlayerSize/2-sh ||
			w.Score.Y < sh || w.Score.Y > DefaultHeight-PlayerSize/2-sh {
			t.Errorf("seed %d: score %+v outside spawn rectangle", seed, w.Score)
		}
	}
}

func TestTickCapture(t *testing.T) {
	w := newTestWorld(1)
	w.Bugs = []Bug{{Pos: core.Point{X: 50, Y: 50}, Vel: core.Vector{X: 0, Y: 2}}}
	w.Score = core.Point{X: w.Player.X + 20, Y: w.Player.Y}
	w.ScoreCount = 3

	out := w.Tick(Intent{})

	if !out.Captured {
		t.Fatal("expected capture when player overlaps score")
	}
	if out.Over {
		t.Fatal("capture should not end the game")
	}
	if w.ScoreCount != 4 || out.Score != 4 {
		t.Errorf("score = %d (outcome %d), expected 4", w.ScoreCount, out.Score)
	}
	if len(w.Bugs) != 2 {
		t.Errorf("expected exactly one bug appended, got %d bugs", len(w.Bugs))
	}
	if w.Bugs[0].Pos != (core.Point{X: 50, Y: 52}) {
		t.Errorf("existing bug should keep spawn order and move, got %+v", w.Bugs[0].Pos)
	}
}

func TestTickNoCaptureWhenTouching(t *testing.T) {
	w := newTestWorld(2)
	w.Bugs = nil
	// Player right edge 400, score left edge 400.
	w.Score = core.Point{X: w.Player.X + 25, Y: w.Player.Y}

	out := w.Tick(Intent{})
	if out.Captured || w.ScoreCount != 0 {
		t.Error("touching edges must not count as a capture")
	}
}

func TestTickReflectsAtEdge(t *testing.T) {
	tests := []struct {
		name    string
		bug     Bug
		wantVel core.Vector
	}{
		{"right", Bug{Pos: core.Point{X: 792, Y: 100}, Vel: core.Vector{X: 5}}, core.Vector{X: -5}},
		{"left", Bug{Pos: core.Point{X: 7, Y: 100}, Vel: core.Vector{X: -3}}, core.Vector{X: 3}},
		{"bottom", Bug{Pos: core.Point{X: 100, Y: 593}, Vel: core.Vector{Y: 4}}, core.Vector{Y: -4}},
		{"top", Bug{Pos: core.Point{X: 100, Y: 6}, Vel: core.Vector{Y: -2.5}}, core.Vector{Y: 2.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(3)
			w.Score = core.Point{X: 600, Y: 450}
			w.Bugs = []Bug{tt.bug}

			w.Tick(Intent{})
			exited := w.Bugs[0].Pos
			if w.Bugs[0].Vel != tt.wantVel {
				t.Fatalf("velocity after exit = %+v, expected %+v", w.Bugs[0].Vel, tt.wantVel)
			}

			w.Tick(Intent{})
			back := w.Bugs[0].Pos
			inward := back.Sub(exited)
			if inward.X*tt.wantVel.X < 0 || inward.Y*tt.wantVel.Y < 0 || inward.Len() == 0 {
				t.Errorf("bug should move back inward, went from %+v to %+v", exited, back)
			}
		})
	}
}

func TestTickReflectsOneAxisPerTick(t *testing.T) {
	w := newTestWorld(4)
	w.Score = core.Point{X: 100, Y: 100}
	w.Bugs = []Bug{{Pos: core.Point{X: 794, Y: 594}, Vel: core.Vector{X: 5, Y: 5}}}

	w.Tick(Intent{})

	if got := w.Bugs[0].Vel; got != (core.Vector{X: -5, Y: 5}) {
		t.Errorf("corner exit should flip only x, got %+v", got)
	}
}

func TestTickKeepsBugSpeed(t *testing.T) {
	w := newTestWorld(5)
	w.Player = core.Point{X: 10, Y: 10}
	w.Score = core.Point{X: 700, Y: 500}
	w.Bugs = []Bug{
		{Pos: core.Point{X: 400, Y: 300}, Vel: core.Vector{X: 4.2}},
		{Pos: core.Point{X: 200, Y: 500}, Vel: core.Vector{Y: 3.1}},
		{Pos: core.Point{X: 600, Y: 100}, Vel: core.Vector{X: 2.0}},
	}
	speeds := make([]float64, len(w.Bugs))
	for i, b := range w.Bugs {
		speeds[i] = bugSpeed(b)
	}

	for i := 0; i < 2000 && !w.Over(); i++ {
		w.Tick(Intent{})
		for j, b := range w.Bugs {
			if math.Abs(bugSpeed(b)-speeds[j]) > 1e-9 {
				t.Fatalf("tick %d: bug %d speed changed from %v to %v", i, j, speeds[j], bugSpeed(b))
			}
		}
	}
}

func TestTickCollisionEndsSession(t *testing.T) {
	w := newTestWorld(6)
	w.ScoreCount = 7
	w.Score = core.Point{X: 700, Y: 500}
	// Bug right edge reaches 381, player left edge is 380.
	w.Bugs = []Bug{
		{Pos: core.Point{X: 100, Y: 100}, Vel: core.Vector{X: 2}},
		{Pos: core.Point{X: 372, Y: 290}, Vel: core.Vector{X: 4}},
	}

	out := w.Tick(Intent{})
	if !out.Over || !w.Over() {
		t.Fatal("expected game over on overlap")
	}
	if out.Score != 7 {
		t.Errorf("final score = %d, expected 7", out.Score)
	}
	if out.Hit != 1 {
		t.Errorf("hit bug = %d, expected 1", out.Hit)
	}

	player := w.Player
	ticks := w.Ticks()
	again := w.Tick(Intent{DX: PlayerSpeed})
	if again != out {
		t.Errorf("frozen world returned %+v, expected %+v", again, out)
	}
	if w.Player != player || w.Ticks() != ticks {
		t.Error("frozen world must not change")
	}
}

func TestTickTouchingBugIsNotCollision(t *testing.T) {
	w := newTestWorld(7)
	w.Score = core.Point{X: 700, Y: 500}
	// Bug right edge reaches exactly 380.
	w.Bugs = []Bug{{Pos: core.Point{X: 372, Y: 290}, Vel: core.Vector{X: 3}}}

	if out := w.Tick(Intent{}); out.Over {
		t.Error("touching edges must not end the game")
	}
}

func TestTickPlayerClamp(t *testing.T) {
	tests := []struct {
		name   string
		start  core.Point
		intent Intent
		want   core.Point
	}{
		{"left edge blocks x only", core.Point{X: 10, Y: 290}, Intent{DX: -5, DY: 5}, core.Point{X: 10, Y: 295}},
		{"right edge", core.Point{X: 788, Y: 290}, Intent{DX: 5}, core.Point{X: 788, Y: 290}},
		{"exact fit allowed", core.Point{X: 785, Y: 290}, Intent{DX: 5}, core.Point{X: 790, Y: 290}},
		{"top edge", core.Point{X: 300, Y: 12}, Intent{DY: -5}, core.Point{X: 300, Y: 12}},
		{"bottom edge blocks y only", core.Point{X: 300, Y: 590}, Intent{DX: 5, DY: 5}, core.Point{X: 305, Y: 590}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(8)
			w.Bugs = nil
			w.Score = core.Point{X: 100, Y: 100}
			w.Player = tt.start

			w.Tick(tt.intent)
			if w.Player != tt.want {
				t.Errorf("player = %+v, expected %+v", w.Player, tt.want)
			}
		})
	}
}

func TestPlayerStaysOnScreen(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	steps := []float64{-PlayerSpeed, 0, PlayerSpeed}
	w := newTestWorld(9)
	w.Bugs = nil
	half := PlayerSize / 2

	for i := 0; i < 5000 && !w.Over(); i++ {
		w.Tick(Intent{DX: steps[rng.Intn(3)], DY: steps[rng.Intn(3)]})
		p := w.Player
		if p.X-half < 0 || p.X+half > w.Width || p.Y-half < 0 || p.Y+half > w.Height {
			t.Fatalf("tick %d: player %+v left the screen", i, p)
		}
	}
}

func TestSpeedScaleAppliesToNewBugs(t *testing.T) {
	w := newTestWorld(10)
	w.SpeedScale = func(score, ticks int) float64 { return 2 }
	w.Bugs = nil
	w.Score = w.Player

	w.Tick(Intent{})
	if len(w.Bugs) != 1 {
		t.Fatalf("expected one spawned bug, got %d", len(w.Bugs))
	}
	if s := bugSpeed(w.Bugs[0]); s < 2*MinBugSpeed || s >= 2*MaxBugSpeed {
		t.Errorf("scaled speed %v outside [%v, %v)", s, 2*MinBugSpeed, 2*MaxBugSpeed)
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	a := newTestWorld(11)
	b := newTestWorld(11)
	for i := 0; i < 300; i++ {
		in := Intent{DX: PlayerSpeed}
		if i%60 >= 30 {
			in = Intent{DX: -PlayerSpeed, DY: PlayerSpeed}
		}
		oa, ob := a.Tick(in), b.Tick(in)
		if oa != ob {
			t.Fatalf("tick %d: outcomes diverged: %+v vs %+v", i, oa, ob)
		}
	}
	if a.Player != b.Player || a.Score != b.Score || len(a.Bugs) != len(b.Bugs) {
		t.Error("worlds with the same seed diverged")
	}
}
