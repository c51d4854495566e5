// Package core provides the grid pathfinding engine.
// This package is UI-agnostic, deterministic, and has no external
// dependencies (especially no Bubble Tea) to keep the search logic pure
// and testable.
package core

import "fmt"

// Coord represents a 2D coordinate on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
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

// AddCoord returns the sum of two coordinates. Used to apply a relative
// move offset to a position.
func (c Coord) AddCoord(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Equal returns true if two coordinates are the same.
func (c Coord) Equal(other Coord) bool {
	return c.X == other.X && c.Y == other.Y
}

// CardinalMoves returns the 4-directional move set: up, down, left, right.
func CardinalMoves() []Coord {
	return []Coord{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
}

// KingMoves returns the 8-directional move set: cardinals plus diagonals.
func KingMoves() []Coord {
	return []Coord{
		{0, -1}, {0, 1}, {-1, 0}, {1, 0},
		{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
	}
}

// ParseMoves returns the move set for a preset name.
// Recognized names: "cardinal" (default when empty) and "king".
func ParseMoves(name string) ([]Coord, bool) {
	switch name {
	case "", "cardinal":
		return CardinalMoves(), true
	case "king":
		return KingMoves(), true
	default:
		return nil, false
	}
}
