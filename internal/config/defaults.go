package config

import (
	_ "embed"

	"github.com/pickfire/bugs/internal/world"
)

//go:embed defaults/bugs.yaml
var defaultBugsYAML []byte

// DefaultBugsConfig returns the default configuration: an 800x600 field
// simulated at 30 ticks per second with progression off.
func DefaultBugsConfig() BugsConfig {
	return BugsConfig{
		Screen: ScreenConfig{
			Width:  world.DefaultWidth,
			Height: world.DefaultHeight,
		},
		Simulation: SimulationConfig{
			TickRate:         30,
			MaxStepsPerFrame: 5,
		},
		Player: PlayerConfig{
			Size:  world.PlayerSize,
			Speed: world.PlayerSpeed,
		},
		Score: ScoreConfig{
			Size: world.ScoreSize,
		},
		Bug: BugConfig{
			Size:     world.BugSize,
			MinSpeed: world.MinBugSpeed,
			MaxSpeed: world.MaxBugSpeed,
		},
		Bot: BotConfig{
			Horizon: 3,
		},
		Mode: "manual",
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressScore,
				MaxAt: 40,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBugsYAML
}
