package core

// RuntimeConfig is what the platform knows when it starts a game: the
// terminal size, the render rate and the seed.
type RuntimeConfig struct {
	ScreenW  int   // terminal columns
	ScreenH  int   // terminal rows
	TickRate int   // render frames per second; games pick their own simulation rate
	Seed     int64 // 0 lets the platform seed from the clock
}

// DefaultConfig describes an 80x24 terminal rendered at 60 fps.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// GameState is the part of a game the platform cares about: what to save
// and whether to keep stepping.
type GameState struct {
	Score    int
	Ticks    int // simulation ticks played
	GameOver bool
	Paused   bool
}

// StepResult reports one simulation tick.
type StepResult struct {
	State GameState

	Scored   bool // the player reached the target this tick
	Collided bool // the player touched a bug this tick
}
