package config

import "fmt"

// Progression kinds for difficulty.progression.type.
const (
	ProgressScore = "score"
	ProgressTime  = "time"
	ProgressNone  = "none"
)

func validProgression(kind string) error {
	switch kind {
	case ProgressScore, ProgressTime, ProgressNone:
		return nil
	}
	return fmt.Errorf("config: unknown progression type %q", kind)
}

// DifficultyManager ramps the difficulty level from the configured initial
// level up to 1 as a session goes on, either by score or by ticks played.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	d := &DifficultyManager{cfg: cfg}
	d.SetInitialLevel(cfg.InitialLevel)
	return d
}

// SetInitialLevel sets the level a session starts at, clamped to [0, 1].
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = unit(level)
}

// IsEnabled reports whether the level moves at all.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressNone
}

// Level returns the difficulty in [0, 1] after score captures and ticks.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var done int
	switch d.cfg.Progression.Type {
	case ProgressScore:
		done = score
	case ProgressTime:
		done = ticks
	default:
		return d.initialLevel
	}

	progress := unit(float64(done) / float64(max(d.cfg.Progression.MaxAt, 1)))
	return d.initialLevel + progress*(1-d.initialLevel)
}

// BugSpeedScale is the factor applied to a new bug's speed: 1 at level 0
// and 1+speed_multiplier at level 1. Its signature matches
// world.World.SpeedScale.
func (d *DifficultyManager) BugSpeedScale(score, ticks int) float64 {
	return 1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier
}

func unit(v float64) float64 {
	return min(max(v, 0), 1)
}
