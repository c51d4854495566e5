package core

import (
	"container/heap"
	"errors"
	"fmt"
)

// Precondition errors returned by FindPath and NewStepper.
var (
	ErrOutOfBounds = errors.New("coordinate out of grid bounds")
	ErrObstacle    = errors.New("start coordinate is an obstacle")
	ErrNoMoves     = errors.New("move set is empty")
)

// Options defines parameters for a search.
type Options struct {
	Metric Metric
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithMetric selects the distance metric. The default is Manhattan.
func WithMetric(m Metric) Option {
	return func(o *Options) { o.Metric = m }
}

// Result contains the outcome of a search.
type Result struct {
	// Path runs from the start cell to the terminal cell, inclusive.
	Path []*Cell
	// Found is true if the terminal cell is the goal.
	Found bool
	// Terminal is the cell the search stopped at: the goal, or the
	// explored cell nearest the goal when the goal is unreachable.
	Terminal *Cell
	// Expanded counts cells removed from the frontier.
	Expanded int
}

// frontier is a min-heap of discovered-but-unexpanded cells, ordered by
// cost with distance-to-end as the tie-break. The tie-break is part of
// the engine's contract: it decides which of several equal-cost paths is
// returned.
type frontier []*Cell

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	ci, cj := f[i].Cost(), f[j].Cost()
	if ci != cj {
		return ci < cj
	}
	return f[i].DistEnd < f[j].DistEnd
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(*Cell))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	cell := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return cell
}

// FindPath searches the grid for a path from start to end using the
// given relative move set.
//
// The engine repeatedly expands the lowest-cost frontier cell, updating
// each reachable neighbor's distance fields with the active metric:
// distance-to-start is measured from the fixed start coordinate (not
// accumulated along the path) and distance-to-end from the goal. A cell
// removed from the frontier is never re-added, even if a cheaper route
// to it turns up later; both behaviors are deliberate and pinned by
// tests, so the result can be suboptimal compared to canonical A*.
//
// If the goal is unreachable the search degrades gracefully: the
// returned path ends at the explored cell closest to the goal under the
// active metric. The grid must be in a freshly built or Reset state;
// searching an unreset grid yields degenerate results.
func FindPath(g *Grid, start, end Coord, moves []Coord, opts ...Option) (Result, error) {
	options := Options{Metric: MetricManhattan}
	for _, opt := range opts {
		opt(&options)
	}

	if err := checkEndpoints(g, start, end, moves); err != nil {
		return Result{}, err
	}

	startCell := g.At(start)
	if start.Equal(end) {
		startCell.DistStart = 0
		startCell.DistEnd = 0
		startCell.Explored = true
		return Result{
			Path:     []*Cell{startCell},
			Found:    true,
			Terminal: startCell,
		}, nil
	}

	metric := options.Metric
	startCell.DistStart = 0
	startCell.DistEnd = metric.Distance(start, end)

	open := make(frontier, 0)
	heap.Init(&open)
	heap.Push(&open, startCell)
	inFrontier := map[Coord]bool{start: true}

	expanded := 0
	var terminal *Cell

	for open.Len() > 0 {
		current := heap.Pop(&open).(*Cell)
		delete(inFrontier, current.Pos)
		current.Explored = true
		expanded++

		goalReached := false
		for _, move := range moves {
			pos := current.Pos.AddCoord(move)
			neighbor := g.At(pos)
			if neighbor == nil || neighbor.Obstacle {
				continue
			}

			// Both distances depend only on the neighbor's position, so
			// a strict improvement can only happen the first time the
			// cell is seen.
			improved := false
			if d := metric.Distance(start, pos); d < neighbor.DistStart {
				neighbor.DistStart = d
				improved = true
			}
			if d := metric.Distance(pos, end); d < neighbor.DistEnd {
				neighbor.DistEnd = d
				improved = true
			}
			if improved {
				neighbor.Parent = current.Pos
				neighbor.HasParent = true
			}

			if pos.Equal(end) {
				neighbor.Parent = current.Pos
				neighbor.HasParent = true
				terminal = neighbor
				goalReached = true
				break
			}

			if !neighbor.Explored && !inFrontier[pos] {
				heap.Push(&open, neighbor)
				inFrontier[pos] = true
			}
		}
		if goalReached {
			break
		}
	}

	found := terminal != nil
	if !found {
		terminal = closestExplored(g, end, metric)
		if terminal == nil {
			// Cannot happen with a validated non-obstacle start, which
			// is always explored first.
			return Result{}, fmt.Errorf("search explored no cells from %v", start)
		}
	}

	return Result{
		Path:     reconstructPath(g, terminal, start),
		Found:    found,
		Terminal: terminal,
		Expanded: expanded,
	}, nil
}

// checkEndpoints validates the search preconditions. The start must be
// an in-bounds free cell; the end must be in bounds but may be an
// obstacle, in which case the search degrades to the closest-cell
// fallback instead of erroring.
func checkEndpoints(g *Grid, start, end Coord, moves []Coord) error {
	if len(moves) == 0 {
		return ErrNoMoves
	}
	startCell := g.At(start)
	if startCell == nil {
		return fmt.Errorf("%w: start %v", ErrOutOfBounds, start)
	}
	if startCell.Obstacle {
		return fmt.Errorf("%w: %v", ErrObstacle, start)
	}
	if g.At(end) == nil {
		return fmt.Errorf("%w: end %v", ErrOutOfBounds, end)
	}
	return nil
}

// closestExplored scans the whole grid for the explored, non-obstacle
// cell nearest the goal under the active metric. Ties go to the first
// cell in row-major order, which keeps the fallback deterministic.
func closestExplored(g *Grid, end Coord, metric Metric) *Cell {
	var best *Cell
	bestDist := 0.0
	for i := range g.Cells {
		cell := &g.Cells[i]
		if !cell.Explored || cell.Obstacle {
			continue
		}
		d := metric.Distance(cell.Pos, end)
		if best == nil || d < bestDist {
			best = cell
			bestDist = d
		}
	}
	return best
}

// reconstructPath walks parent links backward from the terminal cell to
// the start, then reverses so the path runs start -> terminal.
func reconstructPath(g *Grid, terminal *Cell, start Coord) []*Cell {
	path := []*Cell{terminal}
	current := terminal
	for !current.Pos.Equal(start) {
		if !current.HasParent {
			break
		}
		current = g.At(current.Parent)
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
