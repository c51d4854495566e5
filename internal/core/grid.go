package core

// Grid is a fixed-size rectangular board of cells.
// Cells are stored in row-major order: index = y*W + x.
//
// The grid is owned by the caller. A search mutates per-cell state in
// place and assumes exclusive access for the duration of the call; it is
// not safe to run two searches over the same grid concurrently.
type Grid struct {
	W     int    // Width of the grid
	H     int    // Height of the grid
	Cells []Cell // Flat array of cells, length W*H
}

// NewGrid creates a grid of the given dimensions with all cells free.
func NewGrid(w, h int) *Grid {
	g := &Grid{
		W:     w,
		H:     h,
		Cells: make([]Cell, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := &g.Cells[y*w+x]
			cell.Pos = C(x, y)
			cell.resetSearch()
		}
	}
	return g
}

// NewGridWithObstacles creates a grid with the given cells marked as
// obstacles. Out-of-bounds obstacle coordinates are ignored.
func NewGridWithObstacles(w, h int, obstacles []Coord) *Grid {
	g := NewGrid(w, h)
	for _, c := range obstacles {
		g.SetObstacle(c)
	}
	return g
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// At returns the cell at the given coordinate, or nil if out of bounds.
func (g *Grid) At(c Coord) *Cell {
	if !g.InBounds(c) {
		return nil
	}
	return &g.Cells[g.index(c)]
}

// SetObstacle marks the cell at the given coordinate as an obstacle.
// Obstacle cells are pre-marked explored so the search never enqueues
// them. Out-of-bounds coordinates are ignored.
func (g *Grid) SetObstacle(c Coord) {
	if cell := g.At(c); cell != nil {
		cell.Obstacle = true
		cell.Explored = true
	}
}

// IsObstacle returns true if the coordinate is in bounds and marked as
// an obstacle.
func (g *Grid) IsObstacle(c Coord) bool {
	cell := g.At(c)
	return cell != nil && cell.Obstacle
}

// Reset clears all mutable search state so the grid can be searched
// again. Re-running a search on an unreset grid produces degenerate
// results; resetting between runs is the caller's responsibility.
func (g *Grid) Reset() {
	for i := range g.Cells {
		g.Cells[i].resetSearch()
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:     g.W,
		H:     g.H,
		Cells: cells,
	}
}

// ObstacleCount returns the number of obstacle cells.
func (g *Grid) ObstacleCount() int {
	count := 0
	for i := range g.Cells {
		if g.Cells[i].Obstacle {
			count++
		}
	}
	return count
}

// Obstacles returns the coordinates of all obstacle cells in row-major
// order.
func (g *Grid) Obstacles() []Coord {
	coords := make([]Coord, 0)
	for i := range g.Cells {
		if g.Cells[i].Obstacle {
			coords = append(coords, g.Cells[i].Pos)
		}
	}
	return coords
}
