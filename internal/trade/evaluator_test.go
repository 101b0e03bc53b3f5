package trade

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluator_IsMutuallyBeneficial(t *testing.T) {
	tests := []struct {
		name                    string
		valuator                Valuator
		edge                    float64
		policy                  EdgePolicy
		myBefore, myAfter       float64
		theirBefore, theirAfter float64
		want                    bool
	}{
		{"tolerance boundary inclusive", PercentileValuator{}, 0.1, EdgeTolerate, 5, 6, 100, 90, true},
		{"loss under edge times start value accepted", PercentileValuator{}, 0.1, EdgeTolerate, 5, 6, 100, 91, true},
		{"beyond tolerance", PercentileValuator{}, 0.1, EdgeTolerate, 5, 6, 100, 89, false},
		{"my side must strictly improve", PercentileValuator{}, 0.1, EdgeTolerate, 5, 5, 100, 120, false},
		{"zero tolerance rejects pure transfer", PercentileValuator{}, 0, EdgeTolerate, 5, 6, 100, 100, false},
		{"zero tolerance accepts mutual gain", PercentileValuator{}, 0, EdgeTolerate, 5, 6, 100, 100.5, true},
		{"both gain requires counterparty gain", PercentileValuator{}, 0.1, EdgeBothGain, 5, 6, 100, 105, false},
		{"both gain boundary inclusive", PercentileValuator{}, 0.1, EdgeBothGain, 5, 6, 100, 110, true},
		{"cost mode improves downward", PercentileCostValuator{}, 0.1, EdgeTolerate, 6, 5, 100, 110, true},
		{"cost mode beyond tolerance", PercentileCostValuator{}, 0.1, EdgeTolerate, 6, 5, 100, 111, false},
		{"cost mode my side worsens", PercentileCostValuator{}, 0.1, EdgeTolerate, 5, 6, 100, 100, false},
		{"cost mode both gain", PercentileCostValuator{}, 0.1, EdgeBothGain, 6, 5, 100, 90, true},
		{"counterparty left infeasible", PercentileValuator{}, 0.1, EdgeTolerate, 5, 6, 100, math.Inf(-1), false},
		{"my side infeasible after", PercentileValuator{}, 0.1, EdgeTolerate, 5, math.Inf(-1), 100, 100, false},
		{"my side leaves infeasibility", PercentileValuator{}, 0.1, EdgeTolerate, math.Inf(-1), 4, 100, 95, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEvaluator(tc.valuator, tc.edge, tc.policy)
			got := e.IsMutuallyBeneficial(tc.myBefore, tc.myAfter, tc.theirBefore, tc.theirAfter)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluator_IsBeneficial(t *testing.T) {
	benefit := NewEvaluator(PercentileValuator{}, 0, "")
	assert.True(t, benefit.IsBeneficial(1, 2))
	assert.False(t, benefit.IsBeneficial(2, 2))
	assert.False(t, benefit.IsBeneficial(2, 1))

	cost := NewEvaluator(PercentileCostValuator{}, 0, "")
	assert.True(t, cost.IsBeneficial(2, 1))
	assert.False(t, cost.IsBeneficial(1, 2))
	assert.False(t, cost.IsBeneficial(1, math.Inf(1)))
}

func TestSamePosition(t *testing.T) {
	wr1, wr2, wr3 := player(t, "W1", WR, 0.1), player(t, "W2", WR, 0.2), player(t, "W3", WR, 0.3)
	rb := player(t, "R1", RB, 0.1)

	assert.True(t, SamePosition([]Player{wr1}, []Player{wr2}))
	assert.True(t, SamePosition([]Player{wr1, wr2}, []Player{wr3}))
	assert.False(t, SamePosition([]Player{wr1}, []Player{rb}))
	assert.False(t, SamePosition([]Player{wr1, rb}, []Player{wr2}))
	assert.False(t, SamePosition(nil, []Player{wr2}))
}
