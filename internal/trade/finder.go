package trade

import (
	"context"
	"fmt"
	"slices"
)

// FreeAgentsTeam names the counterparty of free-agent swaps.
const FreeAgentsTeam = "Free Agents"

// Candidate is one evaluated trade offer.
type Candidate struct {
	Give       []Player
	Receive    []Player
	Drop       []Player
	TeamID     int
	TeamName   string
	MyDelta    float64
	TheirDelta float64
}

// Players returns every player the candidate touches.
func (c Candidate) Players() []Player {
	out := make([]Player, 0, len(c.Give)+len(c.Receive)+len(c.Drop))
	out = append(out, c.Give...)
	out = append(out, c.Receive...)
	return append(out, c.Drop...)
}

// Apply returns team after giving, receiving and dropping. ok is false when a
// given or dropped player is missing or a received player is already rostered.
func (c Candidate) Apply(team Team) (Team, bool) {
	next := team.Clone()
	for _, p := range c.Give {
		if !next.Has(p) {
			return team, false
		}
		next = next.WithoutPlayer(p)
	}
	for _, p := range c.Receive {
		if next.Has(p) {
			return team, false
		}
		next = next.WithPlayer(p)
	}
	for _, p := range c.Drop {
		if !next.Has(p) {
			return team, false
		}
		next = next.WithoutPlayer(p)
	}
	return next, true
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s: give %v for %v (drop %v)", c.TeamName, c.Give, c.Receive, c.Drop)
}

// FinderStats counts the work done by one Find call.
type FinderStats struct {
	Evaluated    int
	SamePosition int
	Beneficial   int
}

// Finder enumerates and evaluates trades against every opponent.
type Finder struct {
	opts      Options
	mine      *TeamValuator
	theirs    *TeamValuator
	evaluator *Evaluator
}

func NewFinder(v Valuator, opts Options) *Finder {
	mine := NewTeamValuator(v, opts.Slots)
	return &Finder{
		opts:      opts,
		mine:      mine,
		theirs:    mine.WithBenchWeight(opts.OpponentBenchWeight),
		evaluator: NewEvaluator(v, opts.MaxTradeEdge, opts.EdgePolicy),
	}
}

func (f *Finder) TeamValuator() *TeamValuator { return f.mine }

func (f *Finder) Evaluator() *Evaluator { return f.evaluator }

const ctxCheckInterval = 1024

// Find returns every mutually beneficial trade between mine and each of
// others, plus beneficial 1-for-1 free-agent swaps when enabled.
func (f *Finder) Find(ctx context.Context, mine Team, others []Team, freeAgents []Player) ([]Candidate, FinderStats, error) {
	var (
		found []Candidate
		stats FinderStats
	)
	myBefore := f.mine.Value(mine)

	for _, other := range others {
		if err := ctx.Err(); err != nil {
			return found, stats, err
		}
		theirBefore := f.theirs.Value(other)

		for give, receive := range TradesBetween(mine.Roster, other.Roster, f.opts.MaxTradeSize) {
			stats.Evaluated++
			if stats.Evaluated%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return found, stats, err
				}
			}
			if SamePosition(give, receive) {
				stats.SamePosition++
				continue
			}

			myAfter, theirAfter := mine, other
			for _, p := range give {
				myAfter = myAfter.WithoutPlayer(p)
				theirAfter = theirAfter.WithPlayer(p)
			}
			for _, p := range receive {
				myAfter = myAfter.WithPlayer(p)
				theirAfter = theirAfter.WithoutPlayer(p)
			}
			myAfter, drop, ok := f.trimRoster(myAfter)
			if !ok {
				continue
			}

			myValue := f.mine.Value(myAfter)
			theirValue := f.theirs.Value(theirAfter)
			if !f.evaluator.IsMutuallyBeneficial(myBefore, myValue, theirBefore, theirValue) {
				continue
			}
			stats.Beneficial++
			found = append(found, Candidate{
				Give:       give,
				Receive:    receive,
				Drop:       drop,
				TeamID:     other.ID,
				TeamName:   other.Name,
				MyDelta:    myValue - myBefore,
				TheirDelta: theirValue - theirBefore,
			})
		}
	}

	if !f.opts.CheckFreeAgents || len(freeAgents) == 0 {
		return found, stats, nil
	}

	for give, receive := range TradesBetween(mine.Roster, freeAgents, 2) {
		stats.Evaluated++
		if stats.Evaluated%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return found, stats, err
			}
		}
		if mine.Has(receive[0]) {
			continue
		}
		after := mine.WithoutPlayer(give[0]).WithPlayer(receive[0])
		value := f.mine.Value(after)
		if !f.evaluator.IsBeneficial(myBefore, value) {
			continue
		}
		stats.Beneficial++
		found = append(found, Candidate{
			Give:     give,
			Receive:  receive,
			TeamName: FreeAgentsTeam,
			MyDelta:  value - myBefore,
		})
	}
	return found, stats, nil
}

// trimRoster drops the worst bench players until the roster fits. It fails
// when the roster is still too large and nobody is left on the bench.
func (f *Finder) trimRoster(team Team) (Team, []Player, bool) {
	var drop []Player
	if f.opts.MaxRosterSize <= 0 {
		return team, nil, true
	}
	for team.Size() > f.opts.MaxRosterSize {
		bench := f.mine.Lineup(team).Bench()
		i := WorstPlayer(f.mine.Valuator(), bench)
		if i < 0 {
			return team, nil, false
		}
		drop = append(drop, bench[i])
		team = team.WithoutPlayer(bench[i])
	}
	return team, slices.Clip(drop), true
}
