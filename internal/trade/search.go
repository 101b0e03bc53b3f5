package trade

import (
	"context"
	"math"
	"math/rand/v2"
	"slices"
	"time"
)

const emptySlot = -1

// SearchResult is the best trade set seen so far.
type SearchResult struct {
	Trades       []Candidate
	Team         Team
	Value        float64
	Iterations   int
	Improvements int
}

// Searcher explores combinations of candidate trades with random substitution
// and reordering, accepting worse sets with a probability that shrinks as the
// best score grows.
type Searcher struct {
	tv   *TeamValuator
	opts SearchOptions
	rng  *rand.Rand

	// OnImprove is called each time the best-ever set improves.
	OnImprove func(SearchResult)
}

func NewSearcher(tv *TeamValuator, opts SearchOptions) *Searcher {
	seed := uint64(opts.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Searcher{
		tv:   tv,
		opts: opts,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Run searches until ctx is done or MaxIterations is reached, then returns the
// best valid trade set found. Cancellation is checked between iterations.
func (s *Searcher) Run(ctx context.Context, start Team, pool []Candidate) SearchResult {
	startValue := s.tv.Value(start)
	best := SearchResult{Team: start.Clone(), Value: startValue}
	if len(pool) == 0 {
		return best
	}

	size := max(1, s.opts.ExplorationSize)
	current := make([]int, size)
	for i := range current {
		current[i] = emptySlot
	}
	currentScore := startValue

	for iter := 1; ; iter++ {
		if ctx.Err() != nil {
			break
		}
		if s.opts.MaxIterations > 0 && iter > s.opts.MaxIterations {
			break
		}
		best.Iterations = iter

		proposal, changed := s.mutate(current, len(pool))
		if !changed {
			continue
		}

		team, trades, valid := applySet(start, proposal, pool)
		score := Worst(s.tv.Valuator())
		if valid {
			score = s.tv.Value(team)
		}

		if s.tv.Better(score, currentScore) || s.rng.Float64() < s.acceptProbability(best.Value) {
			current, currentScore = proposal, score
		}

		if valid && s.tv.Better(score, best.Value) {
			best.Trades = trades
			best.Team = team
			best.Value = score
			best.Improvements++
			if s.OnImprove != nil {
				s.OnImprove(best)
			}
		}
	}
	return best
}

// acceptProbability is 10^(-temperature*best), clamped to [0, 1].
func (s *Searcher) acceptProbability(best float64) float64 {
	p := math.Pow(10, -s.opts.Temperature*best)
	if math.IsNaN(p) {
		return 0
	}
	return math.Min(p, 1)
}

func (s *Searcher) mutate(current []int, poolSize int) ([]int, bool) {
	proposal := slices.Clone(current)
	changed := false

	if s.rng.Float64() < s.opts.SubstituteProbability {
		k := 1 + s.rng.IntN(len(proposal))
		for _, i := range s.rng.Perm(len(proposal))[:k] {
			proposal[i] = s.sample(poolSize)
		}
		changed = true
	}

	if len(proposal) > 1 && s.rng.Float64() < s.opts.SwapProbability {
		for range max(1, s.opts.SwapCount) {
			i, j := s.rng.IntN(len(proposal)), s.rng.IntN(len(proposal))
			proposal[i], proposal[j] = proposal[j], proposal[i]
		}
		changed = true
	}
	return proposal, changed
}

func (s *Searcher) sample(poolSize int) int {
	if s.rng.Float64() < s.opts.EmptySlotProbability {
		return emptySlot
	}
	return s.rng.IntN(poolSize)
}

// applySet applies the chosen trades to start in order. Empty slots and
// repeats of an already applied trade are skipped; any other conflict makes
// the whole set invalid.
func applySet(start Team, set []int, pool []Candidate) (Team, []Candidate, bool) {
	team := start
	var trades []Candidate
	applied := make(map[int]struct{}, len(set))
	for _, idx := range set {
		if idx == emptySlot {
			continue
		}
		if _, ok := applied[idx]; ok {
			continue
		}
		next, ok := pool[idx].Apply(team)
		if !ok {
			return start, nil, false
		}
		applied[idx] = struct{}{}
		team = next
		trades = append(trades, pool[idx])
	}
	return team.Clone(), trades, true
}
