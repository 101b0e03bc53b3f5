package trade

import "iter"

// Combinations yields every k-sized combination of players in roster order.
// Each yielded slice is freshly allocated and safe to keep.
func Combinations(players []Player, k int) iter.Seq[[]Player] {
	return func(yield func([]Player) bool) {
		n := len(players)
		if k <= 0 || k > n {
			return
		}
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			combo := make([]Player, k)
			for i, j := range idx {
				combo[i] = players[j]
			}
			if !yield(combo) {
				return
			}

			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}

// TradesBetween lazily yields every (give, receive) pair with at least one
// player per side and at most maxTradeSize players in total. Ranging over the
// result again restarts the enumeration.
func TradesBetween(mine, theirs Roster, maxTradeSize int) iter.Seq2[[]Player, []Player] {
	return func(yield func([]Player, []Player) bool) {
		for give := 1; give < maxTradeSize; give++ {
			for receive := 1; give+receive <= maxTradeSize; receive++ {
				for g := range Combinations(mine, give) {
					for r := range Combinations(theirs, receive) {
						if !yield(clonePlayers(g), r) {
							return
						}
					}
				}
			}
		}
	}
}

func clonePlayers(players []Player) []Player {
	out := make([]Player, len(players))
	copy(out, players)
	return out
}

// CountTrades returns the number of pairs TradesBetween yields for rosters of
// the given sizes.
func CountTrades(mine, theirs, maxTradeSize int) int {
	total := 0
	for give := 1; give < maxTradeSize; give++ {
		for receive := 1; give+receive <= maxTradeSize; receive++ {
			total += binomial(mine, give) * binomial(theirs, receive)
		}
	}
	return total
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	result := 1
	for i := 1; i <= k; i++ {
		result = result * (n - k + i) / i
	}
	return result
}
