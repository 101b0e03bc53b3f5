package trade

import "slices"

// Lineup maps each slot to the players assigned to it, best first.
type Lineup map[Slot][]Player

// Starters returns every non-bench player.
func (l Lineup) Starters() []Player {
	var starters []Player
	for _, slot := range l.Slots() {
		if slot != SlotBench {
			starters = append(starters, l[slot]...)
		}
	}
	return starters
}

func (l Lineup) Bench() []Player {
	return l[SlotBench]
}

// Slots returns the lineup's slots in display order: positions, FLEX, then Bench.
func (l Lineup) Slots() []Slot {
	order := make([]Slot, 0, len(l))
	for _, pos := range Positions {
		if _, ok := l[Slot(pos)]; ok {
			order = append(order, Slot(pos))
		}
	}
	var extra []Slot
	for slot := range l {
		if !slices.Contains(order, slot) && slot != SlotFlex && slot != SlotBench {
			extra = append(extra, slot)
		}
	}
	slices.Sort(extra)
	order = append(order, extra...)
	if _, ok := l[SlotFlex]; ok {
		order = append(order, SlotFlex)
	}
	if _, ok := l[SlotBench]; ok {
		order = append(order, SlotBench)
	}
	return order
}

// OptimizeLineup assigns roster players to starting slots, promotes the best
// leftover RB/WR/TE into FLEX and benches everyone else. Equal-valued players
// keep their roster order.
func OptimizeLineup(v Valuator, roster Roster, slots SlotCapacities) Lineup {
	lineup := Lineup{SlotBench: nil}
	for slot := range slots {
		lineup[slot] = nil
	}

	byPosition := make(map[Position][]Player)
	for _, p := range roster {
		byPosition[p.Position] = append(byPosition[p.Position], p)
	}

	var bench []Player
	for _, p := range roster {
		players, ok := byPosition[p.Position]
		if !ok {
			continue
		}
		delete(byPosition, p.Position)

		sortBestFirst(v, players)
		n := max(0, min(slots[Slot(p.Position)], len(players)))
		if n > 0 {
			lineup[Slot(p.Position)] = players[:n:n]
		}
		bench = append(bench, players[n:]...)
	}

	bench = benchInRosterOrder(roster, bench)

	var eligible []Player
	for _, p := range bench {
		if slices.Contains(FlexPositions, p.Position) {
			eligible = append(eligible, p)
		}
	}
	sortBestFirst(v, eligible)
	flex := eligible[:min(slots[SlotFlex], len(eligible))]
	if len(flex) > 0 {
		lineup[SlotFlex] = slices.Clone(flex)
		for _, p := range flex {
			bench = removeOnce(bench, p)
		}
	}
	lineup[SlotBench] = bench
	return lineup
}

func sortBestFirst(v Valuator, players []Player) {
	slices.SortStableFunc(players, func(a, b Player) int {
		va, vb := v.Value(a), v.Value(b)
		switch {
		case Better(v, va, vb):
			return -1
		case Better(v, vb, va):
			return 1
		}
		return 0
	})
}

// benchInRosterOrder reorders bench to follow the roster so that the lineup
// does not depend on map iteration order.
func benchInRosterOrder(roster Roster, bench []Player) []Player {
	out := make([]Player, 0, len(bench))
	remaining := slices.Clone(bench)
	for _, p := range roster {
		for i, q := range remaining {
			if q == p {
				out = append(out, q)
				remaining = slices.Delete(remaining, i, i+1)
				break
			}
		}
	}
	return out
}

func removeOnce(players []Player, p Player) []Player {
	for i, q := range players {
		if q == p {
			return slices.Delete(players, i, i+1)
		}
	}
	return players
}

// TeamValuator scores whole teams from their optimized lineups.
type TeamValuator struct {
	valuator    Valuator
	slots       SlotCapacities
	benchWeight float64
}

func NewTeamValuator(v Valuator, slots SlotCapacities) *TeamValuator {
	return &TeamValuator{valuator: v, slots: slots}
}

// WithBenchWeight returns a valuator that also counts bench players at weight w.
func (tv *TeamValuator) WithBenchWeight(w float64) *TeamValuator {
	c := *tv
	c.benchWeight = w
	return &c
}

func (tv *TeamValuator) Valuator() Valuator { return tv.valuator }

func (tv *TeamValuator) Slots() SlotCapacities { return tv.slots }

func (tv *TeamValuator) Lineup(t Team) Lineup {
	return OptimizeLineup(tv.valuator, t.Roster, tv.slots)
}

// Value sums starter values. A team that cannot fill every slot gets the
// sentinel from Worst.
func (tv *TeamValuator) Value(t Team) float64 {
	lineup := tv.Lineup(t)
	for slot, n := range tv.slots {
		if len(lineup[slot]) < n {
			return Worst(tv.valuator)
		}
	}

	var total float64
	for _, p := range lineup.Starters() {
		total += tv.valuator.Value(p)
	}
	if tv.benchWeight != 0 {
		for _, p := range lineup.Bench() {
			total += tv.benchWeight * tv.valuator.Value(p)
		}
	}
	return total
}

// Better reports whether a is strictly better than b under the team valuator's direction.
func (tv *TeamValuator) Better(a, b float64) bool {
	return Better(tv.valuator, a, b)
}
