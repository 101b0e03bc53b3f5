package trade

import "slices"

// Chain is an ordered list of accepted trades and the team they produce.
type Chain struct {
	Trades []Candidate
	Team   Team
	Value  float64
}

// SortBestFirst orders candidates by my-side delta, best first. The order of
// equal deltas is preserved.
func SortBestFirst(v Valuator, candidates []Candidate) []Candidate {
	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b Candidate) int {
		switch {
		case Better(v, a.MyDelta, b.MyDelta):
			return -1
		case Better(v, b.MyDelta, a.MyDelta):
			return 1
		}
		return 0
	})
	return sorted
}

// SelectGreedy walks candidates best first and accepts each one that does not
// reuse a committed player and strictly improves the running team. A no-op
// trade is skipped; the first harmful trade ends the chain.
func SelectGreedy(tv *TeamValuator, start Team, candidates []Candidate) Chain {
	return selectGreedySorted(tv, start, SortBestFirst(tv.Valuator(), candidates))
}

func selectGreedySorted(tv *TeamValuator, start Team, sorted []Candidate) Chain {
	committed := make(map[PlayerKey]struct{})
	running := start.Clone()
	value := tv.Value(running)
	chain := Chain{}

outer:
	for _, c := range sorted {
		for _, p := range c.Players() {
			if _, ok := committed[p.Key()]; ok {
				continue outer
			}
		}

		next, ok := c.Apply(running)
		if !ok {
			continue
		}
		nextValue := tv.Value(next)
		switch {
		case tv.Better(value, nextValue):
			break outer
		case !tv.Better(nextValue, value):
			continue
		}

		for _, p := range c.Players() {
			committed[p.Key()] = struct{}{}
		}
		running, value = next, nextValue
		chain.Trades = append(chain.Trades, c)
	}

	chain.Team = running
	chain.Value = value
	return chain
}
