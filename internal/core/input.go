package core

import "strings"

// Action is a key press after the platform has mapped it to its meaning.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause
	numActions
)

var actionNames = [numActions]string{
	"None", "Up", "Down", "Left", "Right",
	"Confirm", "Back", "Restart", "Quit", "Pause",
}

func (a Action) String() string {
	if a < numActions {
		return actionNames[a]
	}
	return "Unknown"
}

// Directions lists the four movement actions.
var Directions = [4]Action{ActionUp, ActionDown, ActionLeft, ActionRight}

// InputFrame is the set of actions active during one simulation tick. The
// zero value is empty and frames are plain values, so copies never alias.
type InputFrame struct {
	bits uint16
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

func (f *InputFrame) Set(a Action) {
	if a != ActionNone && a < numActions {
		f.bits |= 1 << a
	}
}

func (f InputFrame) Has(a Action) bool {
	return a < numActions && f.bits&(1<<a) != 0
}

func (f InputFrame) Empty() bool {
	return f.bits == 0
}

func (f *InputFrame) Clear() {
	f.bits = 0
}

// Directional keeps only the movement actions. A frame that drives several
// simulation steps passes this to all but the first, so toggles such as
// pause fire once.
func (f InputFrame) Directional() InputFrame {
	var out InputFrame
	for _, a := range Directions {
		if f.Has(a) {
			out.Set(a)
		}
	}
	return out
}

// String lists the set actions, e.g. "Up+Left".
func (f InputFrame) String() string {
	var names []string
	for a := ActionUp; a < numActions; a++ {
		if f.Has(a) {
			names = append(names, a.String())
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, "+")
}
