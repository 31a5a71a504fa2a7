// Package core provides fundamental types and utilities shared by the
// simulation, the controllers and the terminal platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"math"
	"math/rand"
)

// Point is a position in logical world coordinates.
type Point struct {
	X, Y float64
}

// Vector is a displacement or velocity in logical world coordinates.
type Vector struct {
	X, Y float64
}

// Add returns p moved by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Vector {
	return Vector{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns v multiplied by k.
func (v Vector) Scale(k float64) Vector {
	return Vector{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vector) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Overlaps reports whether two axis-aligned squares, given by centre and
// half side, intersect. Intervals are open: squares that only share an edge
// do not overlap.
func Overlaps(a Point, aHalf float64, b Point, bHalf float64) bool {
	return a.X-aHalf < b.X+bHalf &&
		a.X+aHalf > b.X-bHalf &&
		a.Y-aHalf < b.Y+bHalf &&
		a.Y+aHalf > b.Y-bHalf
}

// SpawnPosition draws a random centre for an entity with half side
// entityHalf inside [entityHalf, w-avoidHalf-entityHalf] x
// [entityHalf, h-avoidHalf-entityHalf].
//
// On each axis where the candidate lands within reach of avoid it is pushed
// once by the combined side lengths. This is an approximation: the result can
// still overlap avoid near the screen corners.
func SpawnPosition(rng *rand.Rand, avoid Point, avoidHalf, w, h, entityHalf float64) Point {
	return Point{
		X: spawnAxis(rng, avoid.X, avoidHalf, w, entityHalf),
		Y: spawnAxis(rng, avoid.Y, avoidHalf, h, entityHalf),
	}
}

func spawnAxis(rng *rand.Rand, avoid, avoidHalf, extent, half float64) float64 {
	lo := half
	hi := extent - avoidHalf - half
	if hi < lo {
		hi = lo
	}

	c := lo + rng.Float64()*(hi-lo)
	if math.Abs(c-avoid) >= avoidHalf+half {
		return c
	}

	shift := 2*avoidHalf + 2*half
	switch {
	case c+shift <= hi:
		return c + shift
	case c-shift >= lo:
		return c - shift
	default:
		return ClampF(c+shift, lo, hi)
	}
}

// Sign returns -1, 0 or 1. NaN maps to 0.
func Sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Rect represents an axis-aligned cell rectangle on the terminal screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
