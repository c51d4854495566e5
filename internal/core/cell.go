package core

import "math"

// Cell holds the per-position search state of one grid cell.
//
// The distance fields start at +Inf and are only lowered, never raised.
// Parent is a coordinate handle into the owning grid rather than a
// pointer, so back-links never outlive or alias grid storage.
type Cell struct {
	Pos       Coord   // Fixed at grid construction
	Obstacle  bool    // Fixed at grid construction; never traversable
	Explored  bool    // True once removed from the frontier (obstacles start true)
	DistStart float64 // Best known distance from the search start
	DistEnd   float64 // Best known estimate to the goal
	Parent    Coord   // Predecessor on the best path found so far
	HasParent bool    // False until a predecessor is recorded
}

// Cost is the frontier-selection key: distance-to-start plus
// distance-to-end. It is always derived, never stored.
func (c *Cell) Cost() float64 {
	return c.DistStart + c.DistEnd
}

// resetSearch clears the mutable search state, leaving position and
// obstacle flag intact. Obstacles stay marked explored so they are never
// added to the frontier.
func (c *Cell) resetSearch() {
	c.Explored = c.Obstacle
	c.DistStart = math.Inf(1)
	c.DistEnd = math.Inf(1)
	c.Parent = Coord{}
	c.HasParent = false
}
