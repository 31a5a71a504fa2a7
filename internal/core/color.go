package core

// Color tags a screen cell. Each entity has its own colour and the
// platform decides how to draw it.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed           // bugs
	ColorGreen         // the player
	ColorYellow        // warnings and the game-over banner
	ColorBlue          // the score target
	ColorGray          // border and HUD
)
