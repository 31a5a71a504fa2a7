package control

import (
	"github.com/pickfire/bugs/internal/core"
	"github.com/pickfire/bugs/internal/world"
)

// KeyState is the set of directional keys currently held.
type KeyState struct {
	Up, Down, Left, Right bool
}

// Manual maps held keys directly to movement, one axis at a time.
type Manual struct {
	keys KeyState
}

// NewManual creates a manual controller with no keys held.
func NewManual() *Manual {
	return &Manual{}
}

// SetKeys replaces the held key state.
func (m *Manual) SetKeys(k KeyState) {
	m.keys = k
}

// Keys returns the held key state.
func (m *Manual) Keys() KeyState {
	return m.keys
}

// Observe updates the held keys from an input frame.
func (m *Manual) Observe(in core.InputFrame) {
	m.keys = KeyState{
		Up:    in.Has(core.ActionUp),
		Down:  in.Has(core.ActionDown),
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
	}
}

// Decide returns full speed on each axis with a held key. Left beats right
// and up beats down when both are held.
func (m *Manual) Decide(w *world.World) world.Intent {
	speed := w.Params().PlayerSpeed
	var in world.Intent

	switch {
	case m.keys.Left:
		in.DX = -speed
	case m.keys.Right:
		in.DX = speed
	}
	switch {
	case m.keys.Up:
		in.DY = -speed
	case m.keys.Down:
		in.DY = speed
	}
	return in
}
