// Package config provides YAML-based configuration loading and difficulty
// management for bugs sessions.
package config

import (
	"fmt"
	"strings"

	"github.com/pickfire/bugs/internal/control"
	"github.com/pickfire/bugs/internal/world"
)

// BugsConfig contains all configuration for a bugs session.
type BugsConfig struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Player     PlayerConfig     `yaml:"player"`
	Score      ScoreConfig      `yaml:"score"`
	Bug        BugConfig        `yaml:"bug"`
	Bot        BotConfig        `yaml:"bot"`
	Mode       string           `yaml:"mode"` // "manual" or "autonomous"
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ScreenConfig defines the logical playfield in world units.
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SimulationConfig defines the fixed timestep.
type SimulationConfig struct {
	TickRate         int `yaml:"tick_rate"`           // simulation ticks per second
	MaxStepsPerFrame int `yaml:"max_steps_per_frame"` // catch-up bound per render frame
}

// PlayerConfig defines the player square.
type PlayerConfig struct {
	Size  float64 `yaml:"size"`
	Speed float64 `yaml:"speed"`
}

// ScoreConfig defines the score target square.
type ScoreConfig struct {
	Size float64 `yaml:"size"`
}

// BugConfig defines bug size and the spawn speed range [min, max).
type BugConfig struct {
	Size     float64 `yaml:"size"`
	MinSpeed float64 `yaml:"min_speed"`
	MaxSpeed float64 `yaml:"max_speed"`
}

// BotConfig tunes the autopilot.
type BotConfig struct {
	Horizon int `yaml:"horizon"` // lookahead indices including standing still
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to bug speed at max difficulty
}

// WorldParams converts the entity settings into world parameters.
func (c BugsConfig) WorldParams() world.Params {
	return world.Params{
		PlayerSize:  c.Player.Size,
		ScoreSize:   c.Score.Size,
		BugSize:     c.Bug.Size,
		PlayerSpeed: c.Player.Speed,
		MinBugSpeed: c.Bug.MinSpeed,
		MaxBugSpeed: c.Bug.MaxSpeed,
	}
}

// Validate reports the first setting that would make a session unplayable.
func (c BugsConfig) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("config: screen must be positive, got %vx%v", c.Screen.Width, c.Screen.Height)
	case c.Simulation.TickRate <= 0:
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.Simulation.TickRate)
	case c.Simulation.MaxStepsPerFrame <= 0:
		return fmt.Errorf("config: max_steps_per_frame must be positive, got %d", c.Simulation.MaxStepsPerFrame)
	case c.Player.Size <= 0 || c.Score.Size <= 0 || c.Bug.Size <= 0:
		return fmt.Errorf("config: entity sizes must be positive")
	case c.Player.Size > c.Screen.Width || c.Player.Size > c.Screen.Height:
		return fmt.Errorf("config: player of size %v does not fit the screen", c.Player.Size)
	case c.Player.Speed <= 0:
		return fmt.Errorf("config: player speed must be positive, got %v", c.Player.Speed)
	case c.Bug.MinSpeed <= 0 || c.Bug.MaxSpeed < c.Bug.MinSpeed:
		return fmt.Errorf("config: bug speed range [%v, %v) is invalid", c.Bug.MinSpeed, c.Bug.MaxSpeed)
	case c.Bot.Horizon < 2:
		return fmt.Errorf("config: bot horizon must be at least 2, got %d", c.Bot.Horizon)
	}
	if err := validProgression(c.Difficulty.Progression.Type); err != nil {
		return err
	}
	if c.Mode != "" {
		if _, err := control.ParseMode(c.Mode); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets returns all difficulty presets.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset converts a name into a DifficultyPreset.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
