// Package core implements the Star Pusher puzzle rules.
// This package is UI-agnostic and deterministic: it knows nothing about
// terminals, key presses or level files.
package core

import "fmt"

// Coord represents a 2D coordinate on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns a new Coord one step in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// Dir is one of the four facing/movement directions.
// The order matters: turning is a rotation over this sequence, and +1 turns
// counter-clockwise (Up -> Left -> Down -> Right -> Up).
type Dir uint8

const (
	DirUp Dir = iota
	DirLeft
	DirDown
	DirRight
)

const dirCount = 4

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirLeft:
		return "Left"
	case DirDown:
		return "Down"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirLeft:
		return -1, 0
	case DirDown:
		return 0, 1
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// Rotate returns the direction n steps away, wrapping mod 4.
// Positive n turns counter-clockwise, negative n clockwise.
func (d Dir) Rotate(n int) Dir {
	r := (int(d) + n) % dirCount
	if r < 0 {
		r += dirCount
	}
	return Dir(r)
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	return d.Rotate(2)
}

// ParseDir converts a direction name ("up", "Left", ...) to a Dir.
func ParseDir(s string) (Dir, bool) {
	switch s {
	case "up", "Up", "UP", "u":
		return DirUp, true
	case "left", "Left", "LEFT", "l":
		return DirLeft, true
	case "down", "Down", "DOWN", "d":
		return DirDown, true
	case "right", "Right", "RIGHT", "r":
		return DirRight, true
	default:
		return 0, false
	}
}
