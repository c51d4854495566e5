package core

import "container/heap"

// StepSnapshot exposes the per-iteration state of a search, for driving
// visualizers and debugging tools.
type StepSnapshot struct {
	Current   Coord            // Cell expanded by this step
	Frontier  map[Coord]bool   // Discovered but not yet expanded
	Explored  map[Coord]bool   // Expanded, never re-added
	Done      bool
	Found     bool             // True if the goal was reached
	Path      []Coord          // Set once Done: start -> terminal
	StepIndex int
}

// Stepper advances the search one expansion at a time. It runs the same
// algorithm as FindPath, synchronously, against the same caller-owned
// grid; the grid must not be touched by anything else until the stepper
// is done.
type Stepper struct {
	grid   *Grid
	start  Coord
	end    Coord
	moves  []Coord
	metric Metric

	open       frontier
	inFrontier map[Coord]bool

	stepCount int
	done      bool
	found     bool
	terminal  *Cell
}

// NewStepper prepares a step-by-step search. It validates the same
// preconditions as FindPath.
func NewStepper(g *Grid, start, end Coord, moves []Coord, opts ...Option) (*Stepper, error) {
	options := Options{Metric: MetricManhattan}
	for _, opt := range opts {
		opt(&options)
	}

	if err := checkEndpoints(g, start, end, moves); err != nil {
		return nil, err
	}

	s := &Stepper{
		grid:       g,
		start:      start,
		end:        end,
		moves:      moves,
		metric:     options.Metric,
		open:       make(frontier, 0),
		inFrontier: map[Coord]bool{start: true},
	}

	startCell := g.At(start)
	startCell.DistStart = 0
	startCell.DistEnd = s.metric.Distance(start, end)
	heap.Init(&s.open)
	heap.Push(&s.open, startCell)

	return s, nil
}

// Step advances the search by one cell expansion and returns a snapshot.
// Once the search is done, further calls return the final snapshot.
func (s *Stepper) Step() StepSnapshot {
	if s.done {
		return s.snapshot(Coord{})
	}

	if s.start.Equal(s.end) {
		startCell := s.grid.At(s.start)
		startCell.Explored = true
		s.done = true
		s.found = true
		s.terminal = startCell
		s.stepCount++
		return s.snapshot(s.start)
	}

	if s.open.Len() == 0 {
		s.done = true
		s.terminal = closestExplored(s.grid, s.end, s.metric)
		return s.snapshot(Coord{})
	}

	s.stepCount++
	current := heap.Pop(&s.open).(*Cell)
	delete(s.inFrontier, current.Pos)
	current.Explored = true

	for _, move := range s.moves {
		pos := current.Pos.AddCoord(move)
		neighbor := s.grid.At(pos)
		if neighbor == nil || neighbor.Obstacle {
			continue
		}

		improved := false
		if d := s.metric.Distance(s.start, pos); d < neighbor.DistStart {
			neighbor.DistStart = d
			improved = true
		}
		if d := s.metric.Distance(pos, s.end); d < neighbor.DistEnd {
			neighbor.DistEnd = d
			improved = true
		}
		if improved {
			neighbor.Parent = current.Pos
			neighbor.HasParent = true
		}

		if pos.Equal(s.end) {
			neighbor.Parent = current.Pos
			neighbor.HasParent = true
			s.done = true
			s.found = true
			s.terminal = neighbor
			return s.snapshot(current.Pos)
		}

		if !neighbor.Explored && !s.inFrontier[pos] {
			heap.Push(&s.open, neighbor)
			s.inFrontier[pos] = true
		}
	}

	if s.open.Len() == 0 {
		s.done = true
		s.terminal = closestExplored(s.grid, s.end, s.metric)
	}

	return s.snapshot(current.Pos)
}

// Done reports whether the search has finished.
func (s *Stepper) Done() bool { return s.done }

// Steps returns the number of expansions performed so far.
func (s *Stepper) Steps() int { return s.stepCount }

// snapshot captures the current search state. Sets are copied so callers
// can hold snapshots across steps.
func (s *Stepper) snapshot(current Coord) StepSnapshot {
	snap := StepSnapshot{
		Current:   current,
		Frontier:  make(map[Coord]bool, len(s.inFrontier)),
		Explored:  make(map[Coord]bool),
		Done:      s.done,
		Found:     s.found,
		StepIndex: s.stepCount,
	}
	for c := range s.inFrontier {
		snap.Frontier[c] = true
	}
	for i := range s.grid.Cells {
		cell := &s.grid.Cells[i]
		if cell.Explored && !cell.Obstacle {
			snap.Explored[cell.Pos] = true
		}
	}
	if s.done && s.terminal != nil {
		for _, cell := range reconstructPath(s.grid, s.terminal, s.start) {
			snap.Path = append(snap.Path, cell.Pos)
		}
	}
	return snap
}
