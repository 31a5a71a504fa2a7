package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pickfire/bugs/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"w", runeKey("w"), core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"a", runeKey("a"), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"vim left", runeKey("h"), core.ActionLeft, false},
		{"pause", runeKey("p"), core.ActionPause, false},
		{"space pauses", tea.KeyMsg{Type: tea.KeySpace}, core.ActionPause, false},
		{"restart", runeKey("r"), core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("b"), MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestHeldKeys(t *testing.T) {
	t0 := time.Unix(1000, 0)
	h := NewHeldKeys(100 * time.Millisecond)

	h.Press(core.ActionRight, t0)
	h.Press(core.ActionUp, t0.Add(20*time.Millisecond))

	f := core.NewInputFrame()
	h.Apply(&f, t0.Add(90*time.Millisecond))
	if !f.Has(core.ActionRight) || !f.Has(core.ActionUp) {
		t.Errorf("both directions should be held, got %v", f)
	}

	// Right expires first.
	f = core.NewInputFrame()
	h.Apply(&f, t0.Add(110*time.Millisecond))
	if f.Has(core.ActionRight) || !f.Has(core.ActionUp) {
		t.Errorf("only up should remain held, got %v", f)
	}
	if h.Held(core.ActionRight, t0.Add(110*time.Millisecond)) {
		t.Error("expired key reported as held")
	}
}

func TestHeldKeysOppositeReleases(t *testing.T) {
	t0 := time.Unix(1000, 0)
	h := NewHeldKeys(0)

	h.Press(core.ActionLeft, t0)
	h.Press(core.ActionRight, t0.Add(time.Millisecond))
	if h.Held(core.ActionLeft, t0.Add(2*time.Millisecond)) {
		t.Error("pressing right should release left")
	}
	if !h.Held(core.ActionRight, t0.Add(2*time.Millisecond)) {
		t.Error("right should be held")
	}

	h.Press(core.ActionPause, t0)
	f := core.NewInputFrame()
	h.Apply(&f, t0.Add(2*time.Millisecond))
	if f.Has(core.ActionPause) {
		t.Error("non-directional actions must not be held")
	}

	h.Release()
	if h.Held(core.ActionRight, t0.Add(2*time.Millisecond)) {
		t.Error("Release should drop every key")
	}
}
