// Package tui provides the Bubble Tea integration for the bugs game.
// It handles the terminal UI loop, input mapping, and fixed-step pacing.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per render frame. ID ties the message to the model
// that scheduled it, so a replaced model's frames are dropped.
type TickMsg struct {
	At time.Time
	ID uint64
}

var lastTickID atomic.Uint64

func nextTickID() uint64 {
	return lastTickID.Add(1)
}

// frameInterval returns the duration of one render frame at fps.
func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// tickCmd schedules the next render frame.
func tickCmd(fps int, id uint64) tea.Cmd {
	return tea.Tick(frameInterval(fps), func(t time.Time) tea.Msg {
		return TickMsg{At: t, ID: id}
	})
}
