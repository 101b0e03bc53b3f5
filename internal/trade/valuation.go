package trade

import (
	"fmt"
	"math"
)

// Valuator scores a single player. HigherIsBetter declares the comparison
// direction every other component must respect.
type Valuator interface {
	Value(p Player) float64
	HigherIsBetter() bool
}

// PercentileValuator is the canonical strategy: 1 - percentile, maximized.
type PercentileValuator struct{}

func (PercentileValuator) Value(p Player) float64 { return 1 - p.Percentile }
func (PercentileValuator) HigherIsBetter() bool   { return true }

// PercentileCostValuator sums raw percentiles and minimizes them.
type PercentileCostValuator struct{}

func (PercentileCostValuator) Value(p Player) float64 { return p.Percentile }
func (PercentileCostValuator) HigherIsBetter() bool   { return false }

// ProjectionValuator uses projected points. Players without a projection are worth 0.
type ProjectionValuator struct{}

func (ProjectionValuator) Value(p Player) float64 { return p.ProjectedPoints }
func (ProjectionValuator) HigherIsBetter() bool   { return true }

const (
	ValuationPercentile     = "percentile"
	ValuationPercentileCost = "percentile-cost"
	ValuationProjection     = "projection"
)

func NewValuator(name string) (Valuator, error) {
	switch name {
	case "", ValuationPercentile:
		return PercentileValuator{}, nil
	case ValuationPercentileCost:
		return PercentileCostValuator{}, nil
	case ValuationProjection:
		return ProjectionValuator{}, nil
	}
	return nil, fmt.Errorf("unknown valuation strategy %q", name)
}

// Better reports whether a is strictly better than b.
func Better(v Valuator, a, b float64) bool {
	if v.HigherIsBetter() {
		return a > b
	}
	return a < b
}

// Worst is the infeasible sentinel. It loses to every finite value.
func Worst(v Valuator) float64 {
	if v.HigherIsBetter() {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// IsWorst reports whether value is the infeasible sentinel for v.
func IsWorst(v Valuator, value float64) bool {
	return value == Worst(v)
}

// WorstPlayer returns the index of the lowest-valued player, or -1 for an empty slice.
// Ties resolve to the later player so earlier roster entries are kept.
func WorstPlayer(v Valuator, players []Player) int {
	worst := -1
	for i, p := range players {
		if worst == -1 || !Better(v, v.Value(p), v.Value(players[worst])) {
			worst = i
		}
	}
	return worst
}
