package core

import "math"

// Metric selects the distance policy used for both the start-distance and
// the goal estimate during a search.
type Metric uint8

const (
	// MetricManhattan is |dx| + |dy|. The default.
	MetricManhattan Metric = iota
	// MetricEuclidean is the straight-line distance.
	MetricEuclidean
)

// String returns the string representation of a metric.
func (m Metric) String() string {
	switch m {
	case MetricManhattan:
		return "manhattan"
	case MetricEuclidean:
		return "euclidean"
	default:
		return "unknown"
	}
}

// Distance returns the scalar separation between two coordinates under
// this metric. It is pure, non-negative, and zero for identical coords.
func (m Metric) Distance(a, b Coord) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	switch m {
	case MetricEuclidean:
		return math.Hypot(float64(dx), float64(dy))
	default:
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		return float64(dx + dy)
	}
}

// ParseMetric returns the metric for a name.
// Recognized names: "manhattan" (default when empty) and "euclidean".
func ParseMetric(name string) (Metric, bool) {
	switch name {
	case "", "manhattan":
		return MetricManhattan, true
	case "euclidean":
		return MetricEuclidean, true
	default:
		return 0, false
	}
}
