// Package world holds the mutable state of one bugs session and advances it
// one fixed simulation tick at a time.
//
// All positions are square centres in logical screen units. The world knows
// nothing about controllers or rendering: it consumes an Intent per tick and
// reports an Outcome.
package world

import (
	"math/rand"
	"time"

	"github.com/pickfire/bugs/internal/core"
)

// Default entity sizes and speeds, in logical units per tick.
const (
	PlayerSize  = 20.0
	ScoreSize   = 30.0
	BugSize     = 10.0
	PlayerSpeed = 5.0
	MinBugSpeed = 2.0
	MaxBugSpeed = 5.0
)

// Default logical screen size.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Params are the fixed tunables of a session.
type Params struct {
	PlayerSize  float64
	ScoreSize   float64
	BugSize     float64
	PlayerSpeed float64
	MinBugSpeed float64 // inclusive
	MaxBugSpeed float64 // exclusive
}

// DefaultParams returns the classic sizes and speeds.
func DefaultParams() Params {
	return Params{
		PlayerSize:  PlayerSize,
		ScoreSize:   ScoreSize,
		BugSize:     BugSize,
		PlayerSpeed: PlayerSpeed,
		MinBugSpeed: MinBugSpeed,
		MaxBugSpeed: MaxBugSpeed,
	}
}

func (p Params) PlayerHalf() float64 { return p.PlayerSize / 2 }
func (p Params) ScoreHalf() float64  { return p.ScoreSize / 2 }
func (p Params) BugHalf() float64    { return p.BugSize / 2 }

// Bug is a hazard moving in a straight line and bouncing off the edges.
type Bug struct {
	Pos core.Point
	Vel core.Vector
}

// Intent is the per-tick movement requested by a controller.
// Each component is -speed, 0 or +speed.
type Intent struct {
	DX, DY float64
}

// Outcome reports what happened during a tick.
type Outcome struct {
	Over     bool // player collided with a bug; the world is frozen
	Score    int  // score count after the tick
	Captured bool // player reached the score target this tick
	Hit      int  // index of the colliding bug, -1 if none
}

// World is the whole state of a session.
type World struct {
	Player     core.Point
	Score      core.Point
	Bugs       []Bug
	ScoreCount int
	Width      float64
	Height     float64

	// SpeedScale, when set, multiplies the speed of newly spawned bugs.
	// It receives the score count and ticks played at spawn time.
	SpeedScale func(score, ticks int) float64

	params  Params
	rng     *rand.Rand
	ticks   int
	over    bool
	outcome Outcome
}

// New creates a world of the given size. The player starts near the centre,
// one bug is spawned and the score target is placed away from the player.
// A nil rng is replaced by a time-seeded one.
func New(width, height float64, params Params, rng *rand.Rand) *World {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	w := &World{
		Width:  width,
		Height: height,
		params: params,
		rng:    rng,
	}
	half := params.PlayerHalf()
	w.Player = core.Point{X: width/2 - half, Y: height/2 - half}
	w.Bugs = []Bug{w.spawnBug()}
	w.Score = core.SpawnPosition(rng, w.Player, half, width, height, params.ScoreHalf())
	w.outcome = Outcome{Hit: -1}
	return w
}

// Params returns the session tunables.
func (w *World) Params() Params {
	return w.params
}

// Over reports whether the session has ended.
func (w *World) Over() bool {
	return w.over
}

// Ticks returns the number of ticks simulated so far.
func (w *World) Ticks() int {
	return w.ticks
}

// Tick advances the world by one step. After a collision the world is frozen
// and every further call returns the final outcome unchanged.
func (w *World) Tick(in Intent) Outcome {
	if w.over {
		return w.outcome
	}
	w.ticks++

	w.movePlayer(in)

	out := Outcome{Hit: -1}
	ph := w.params.PlayerHalf()
	if core.Overlaps(w.Player, ph, w.Score, w.params.ScoreHalf()) {
		w.Score = core.SpawnPosition(w.rng, w.Player, ph, w.Width, w.Height, w.params.ScoreHalf())
		w.ScoreCount++
		w.Bugs = append(w.Bugs, w.spawnBug())
		out.Captured = true
	}

	bh := w.params.BugHalf()
	for i := range w.Bugs {
		b := &w.Bugs[i]
		b.Pos = b.Pos.Add(b.Vel)

		// One axis per tick: a bug leaving through a corner flips x first.
		if b.Pos.X-bh < 0 || b.Pos.X+bh > w.Width {
			b.Vel.X = -b.Vel.X
		} else if b.Pos.Y-bh < 0 || b.Pos.Y+bh > w.Height {
			b.Vel.Y = -b.Vel.Y
		}
	}

	for i, b := range w.Bugs {
		if core.Overlaps(b.Pos, bh, w.Player, ph) {
			out.Over = true
			out.Hit = i
			w.over = true
			break
		}
	}

	out.Score = w.ScoreCount
	w.outcome = out
	return out
}

// movePlayer applies the intent per axis, leaving an axis unchanged when the
// move would push any part of the player outside the screen.
func (w *World) movePlayer(in Intent) {
	half := w.params.PlayerHalf()
	if x := w.Player.X + in.DX; x-half >= 0 && x+half <= w.Width {
		w.Player.X = x
	}
	if y := w.Player.Y + in.DY; y-half >= 0 && y+half <= w.Height {
		w.Player.Y = y
	}
}

// spawnBug creates a bug away from the player moving along one random axis
// in the positive direction.
func (w *World) spawnBug() Bug {
	p := w.params
	speed := p.MinBugSpeed + w.rng.Float64()*(p.MaxBugSpeed-p.MinBugSpeed)
	if w.SpeedScale != nil {
		speed *= w.SpeedScale(w.ScoreCount, w.ticks)
	}
	var vel core.Vector
	if w.rng.Intn(2) == 0 {
		vel.X = speed
	} else {
		vel.Y = speed
	}
	return Bug{
		Pos: core.SpawnPosition(w.rng, w.Player, p.PlayerHalf(), w.Width, w.Height, p.BugHalf()),
		Vel: vel,
	}
}
