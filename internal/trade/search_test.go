package trade

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchPool(t *testing.T, roster Roster) []Candidate {
	return []Candidate{
		swap(roster[1], player(t, "Their RB", RB, 0.1), 0.4),
		swap(roster[3], player(t, "Their WR", WR, 0.2), 0.3),
		swap(roster[0], player(t, "Their QB", QB, 0.9), -0.4),
		swap(roster[5], player(t, "Their TE", TE, 0.4), 0.1),
		swap(roster[1], player(t, "Other WR", WR, 0.05), 0.1),
		swap(roster[7], player(t, "Their K", K, 0.45), 0.05),
	}
}

func searchOptions() SearchOptions {
	opts := DefaultOptions().Search
	opts.Seed = 42
	opts.MaxIterations = 20000
	return opts
}

func TestSearcher_FindsBestCombination(t *testing.T) {
	roster := starterRoster(t, "Me", 0.5)
	me := teamOf(1, "Me", roster)
	tv := NewTeamValuator(PercentileValuator{}, DefaultSlotCapacities())

	result := NewSearcher(tv, searchOptions()).Run(context.Background(), me, searchPool(t, roster))

	assert.InDelta(t, 4.5+0.4+0.3+0.1+0.05, result.Value, 1e-9)
	assert.Len(t, result.Trades, 4)
	assert.Equal(t, 20000, result.Iterations)
	assert.InDelta(t, result.Value, tv.Value(result.Team), 1e-9)
	assert.Equal(t, roster, me.Roster, "starting team is untouched")

	replayed := me
	for _, c := range result.Trades {
		var ok bool
		replayed, ok = c.Apply(replayed)
		require.True(t, ok)
	}
	assert.ElementsMatch(t, result.Team.Roster, replayed.Roster)
}

func TestSearcher_BestNeverRegresses(t *testing.T) {
	for _, v := range []Valuator{PercentileValuator{}, PercentileCostValuator{}} {
		roster := starterRoster(t, "Me", 0.5)
		me := teamOf(1, "Me", roster)
		tv := NewTeamValuator(v, DefaultSlotCapacities())
		start := tv.Value(me)

		opts := searchOptions()
		opts.Temperature = 0.01
		opts.MaxIterations = 5000
		s := NewSearcher(tv, opts)

		var history []float64
		s.OnImprove = func(r SearchResult) {
			history = append(history, r.Value)
		}
		result := s.Run(context.Background(), me, searchPool(t, roster))

		require.NotEmpty(t, history, "%T", v)
		prev := start
		for _, score := range history {
			assert.True(t, tv.Better(score, prev), "%T: %v does not beat %v", v, score, prev)
			prev = score
		}
		assert.Equal(t, history[len(history)-1], result.Value)
		assert.Equal(t, len(history), result.Improvements)
	}
}

func TestSearcher_StopsOnCancellation(t *testing.T) {
	roster := starterRoster(t, "Me", 0.5)
	me := teamOf(1, "Me", roster)
	tv := NewTeamValuator(PercentileValuator{}, DefaultSlotCapacities())

	opts := searchOptions()
	opts.MaxIterations = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := NewSearcher(tv, opts).Run(ctx, me, searchPool(t, roster))
	assert.Zero(t, result.Iterations)
	assert.Empty(t, result.Trades)
	assert.InDelta(t, 4.5, result.Value, 1e-9)

	ctx, cancel = context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	done := make(chan SearchResult, 1)
	go func() {
		done <- NewSearcher(tv, opts).Run(ctx, me, searchPool(t, roster))
	}()

	select {
	case result := <-done:
		assert.Positive(t, result.Iterations)
		assert.GreaterOrEqual(t, result.Value, 4.5)
	case <-time.After(5 * time.Second):
		t.Fatal("search did not stop after cancellation")
	}
}

func TestSearcher_EmptyPoolReturnsStart(t *testing.T) {
	me := teamOf(1, "Me", starterRoster(t, "Me", 0.5))
	tv := NewTeamValuator(PercentileValuator{}, DefaultSlotCapacities())

	result := NewSearcher(tv, searchOptions()).Run(context.Background(), me, nil)
	assert.Empty(t, result.Trades)
	assert.InDelta(t, 4.5, result.Value, 1e-9)
}

func TestApplySet(t *testing.T) {
	roster := starterRoster(t, "Me", 0.5)
	me := teamOf(1, "Me", roster)
	pool := searchPool(t, roster)

	team, trades, ok := applySet(me, []int{emptySlot, 0, 0, 1}, pool)
	require.True(t, ok, "repeats and empty slots are skipped")
	assert.Len(t, trades, 2)
	assert.True(t, team.Has(pool[0].Receive[0]))

	_, _, ok = applySet(me, []int{0, 4}, pool)
	assert.False(t, ok, "second trade gives away a player already traded")

	_, _, ok = applySet(me, []int{4, 0}, pool)
	assert.False(t, ok, "order does not rescue a conflict")
}

func TestSearcher_AcceptProbability(t *testing.T) {
	tv := NewTeamValuator(PercentileValuator{}, DefaultSlotCapacities())
	s := NewSearcher(tv, SearchOptions{Temperature: 1, ExplorationSize: 1})

	assert.InDelta(t, 0.01, s.acceptProbability(2), 1e-12)
	assert.Equal(t, 1.0, s.acceptProbability(-3))
	assert.Equal(t, 1.0, s.acceptProbability(0))
}
