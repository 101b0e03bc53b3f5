package trade

import "math"

// relEpsilon absorbs float rounding at the tolerance boundary.
const relEpsilon = 1e-9

// Evaluator decides whether a trade is worth offering.
type Evaluator struct {
	valuator Valuator
	edge     float64
	policy   EdgePolicy
}

func NewEvaluator(v Valuator, edge float64, policy EdgePolicy) *Evaluator {
	if policy == "" {
		policy = EdgeTolerate
	}
	return &Evaluator{valuator: v, edge: edge, policy: policy}
}

// IsBeneficial reports whether after is strictly better than before.
func (e *Evaluator) IsBeneficial(before, after float64) bool {
	return Better(e.valuator, after, before)
}

// IsMutuallyBeneficial requires my side to strictly improve and bounds the
// counterparty's change by the edge policy.
func (e *Evaluator) IsMutuallyBeneficial(myBefore, myAfter, theirBefore, theirAfter float64) bool {
	if !e.IsBeneficial(myBefore, myAfter) {
		return false
	}
	if IsWorst(e.valuator, theirAfter) {
		return false
	}
	if e.edge == 0 {
		return e.IsBeneficial(theirBefore, theirAfter)
	}

	factor := 1 - e.edge
	if e.policy == EdgeBothGain {
		factor = 1 + e.edge
	}
	if !e.valuator.HigherIsBetter() {
		factor = 2 - factor
	}
	bound := theirBefore * factor
	slack := relEpsilon * math.Max(1, math.Abs(bound))
	if e.valuator.HigherIsBetter() {
		return theirAfter >= bound-slack
	}
	return theirAfter <= bound+slack
}

// SamePosition reports whether every given and received player share one
// position. Such swaps are skipped without evaluation.
func SamePosition(give, receive []Player) bool {
	if len(give) == 0 || len(receive) == 0 {
		return false
	}
	pos := give[0].Position
	for _, p := range give {
		if p.Position != pos {
			return false
		}
	}
	for _, p := range receive {
		if p.Position != pos {
			return false
		}
	}
	return true
}
