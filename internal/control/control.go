// Package control provides the movement sources that drive a world: a manual
// controller fed by key states and an autopilot that looks a few ticks ahead.
package control

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pickfire/bugs/internal/world"
)

// Controller decides the player's movement for the next tick.
// Decide must not mutate the world.
type Controller interface {
	Decide(w *world.World) world.Intent
}

// Mode selects a controller.
type Mode string

const (
	ModeManual     Mode = "manual"
	ModeAutonomous Mode = "autonomous"
)

// Modes returns the available controller modes.
func Modes() []Mode {
	return []Mode{ModeManual, ModeAutonomous}
}

// Description returns a short human-readable summary of the mode.
func (m Mode) Description() string {
	switch m {
	case ModeManual:
		return "arrow keys or WASD move the player"
	case ModeAutonomous:
		return "autopilot chases the target and dodges bugs"
	default:
		return ""
	}
}

// ParseMode converts a user supplied name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manual", "human":
		return ModeManual, nil
	case "autonomous", "auto", "bot":
		return ModeAutonomous, nil
	default:
		return "", fmt.Errorf("control: unknown mode %q", s)
	}
}

// New creates the controller for mode. A nil logger discards output.
func New(mode Mode, horizon int, logger *log.Logger) (Controller, error) {
	switch mode {
	case ModeManual:
		return NewManual(), nil
	case ModeAutonomous:
		return NewAutopilot(horizon, logger), nil
	default:
		return nil, fmt.Errorf("control: unknown mode %q", string(mode))
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
