package control

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/pickfire/bugs/internal/core"
	"github.com/pickfire/bugs/internal/world"
)

// DefaultHorizon is the number of lookahead indices: index 0 is standing
// still, the rest are ticks of movement in the pursuit direction.
const DefaultHorizon = 3

// Safety records which moves are free of predicted collisions.
// A field is false when the move is unsafe against at least one bug.
type Safety struct {
	Left, Right, Up, Down bool
	Wait                  bool
}

// Plan is the autopilot's full reasoning for one tick.
type Plan struct {
	Safety   Safety
	WantX    int // pursuit direction on x: -1, 0 or 1
	WantY    int
	Intent   world.Intent
	Cornered bool // some axis had no safe option
}

// Autopilot chases the score target greedily and steers away from bugs
// predicted to collide within a short horizon.
//
// It is a heuristic: when every option on an axis is unsafe it keeps the
// pursuit direction and accepts the collision.
type Autopilot struct {
	horizon int
	logger  *log.Logger
}

// NewAutopilot creates an autopilot. Horizons below 2 fall back to
// DefaultHorizon. A nil logger discards output.
func NewAutopilot(horizon int, logger *log.Logger) *Autopilot {
	if horizon < 2 {
		horizon = DefaultHorizon
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Autopilot{horizon: horizon, logger: logger}
}

// Horizon returns the number of lookahead indices.
func (a *Autopilot) Horizon() int {
	return a.horizon
}

// Decide implements Controller.
func (a *Autopilot) Decide(w *world.World) world.Intent {
	return a.Plan(w).Intent
}

// Plan evaluates the world without mutating it.
func (a *Autopilot) Plan(w *world.World) Plan {
	p := w.Params()
	ph, sh, bh := p.PlayerHalf(), p.ScoreHalf(), p.BugHalf()

	plan := Plan{
		WantX:  pursuit(w.Score.X-w.Player.X, ph+sh),
		WantY:  pursuit(w.Score.Y-w.Player.Y, ph+sh),
		Safety: Safety{Left: true, Right: true, Up: true, Down: true, Wait: true},
	}
	vel := core.Vector{
		X: float64(plan.WantX) * p.PlayerSpeed,
		Y: float64(plan.WantY) * p.PlayerSpeed,
	}

	s := &plan.Safety
	for i, b := range w.Bugs {
		if core.Overlaps(w.Player, ph, b.Pos.Add(b.Vel), bh) {
			s.Wait = false
		}

		for n := 1; n < a.horizon; n++ {
			pp := w.Player.Add(vel.Scale(float64(n)))
			bp := b.Pos.Add(b.Vel.Scale(float64(n)))
			if !core.Overlaps(pp, ph, bp, bh) {
				continue
			}

			found := false
			if within(pp.X-ph, bp.X, bh) {
				s.Left, found = false, true
			}
			if within(pp.X+ph, bp.X, bh) {
				s.Right, found = false, true
			}
			if within(pp.Y-ph, bp.Y, bh) {
				s.Up, found = false, true
			}
			if within(pp.Y+ph, bp.Y, bh) {
				s.Down, found = false, true
			}
			a.logger.Debug("predicted collision", "bug", i, "tick", n, "player", pp, "at", bp, "edge", found)
			if found {
				break
			}
		}
	}

	dx, cx := resolve(s.Right, s.Left, s.Wait, plan.WantX)
	dy, cy := resolve(s.Down, s.Up, s.Wait, plan.WantY)
	plan.Cornered = cx || cy
	plan.Intent = world.Intent{
		DX: float64(dx) * p.PlayerSpeed,
		DY: float64(dy) * p.PlayerSpeed,
	}

	if plan.Cornered {
		a.logger.Debug("cornered", "player", w.Player, "bugs", len(w.Bugs), "score", w.ScoreCount)
	}
	return plan
}

// pursuit returns the direction to move on one axis so the player's edge
// reaches the target's edge. reach is the sum of both half sides; any
// remainder shorter than reach means the edges already meet.
func pursuit(d, reach float64) int {
	if reach > 0 {
		d -= math.Mod(d, reach)
	}
	return core.Sign(d)
}

// within reports whether edge lies inside the closed span centre±half.
func within(edge, centre, half float64) bool {
	return edge >= centre-half && edge <= centre+half
}

// resolve picks the direction on one axis from the safety of moving
// positive, moving negative and waiting. The second result is true when
// nothing is safe and the pursuit direction is kept anyway.
func resolve(pos, neg, wait bool, want int) (int, bool) {
	switch {
	case pos && neg && wait:
		return want, false
	case pos && !neg:
		return 1, false
	case neg && !pos:
		return -1, false
	case !pos && !neg && wait:
		return 0, false
	case !pos && !neg:
		return want, true
	default:
		// Both directions are safe but standing still is not. With no
		// pursuit direction, following pursuit would mean standing still
		// into a predicted hit, so step positive instead.
		if want != 0 {
			return want, false
		}
		return 1, false
	}
}
