package trade

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedRoster(t *testing.T, prefix string, n int) Roster {
	t.Helper()
	roster := make(Roster, 0, n)
	for i := range n {
		roster = append(roster, player(t, fmt.Sprintf("%s%d", prefix, i), WR, 0.5))
	}
	return roster
}

func TestCombinations(t *testing.T) {
	roster := namedRoster(t, "p", 4)

	var got [][]string
	for combo := range Combinations(roster, 2) {
		var names []string
		for _, p := range combo {
			names = append(names, p.Name)
		}
		got = append(got, names)
	}
	assert.Equal(t, [][]string{
		{"p0", "p1"}, {"p0", "p2"}, {"p0", "p3"},
		{"p1", "p2"}, {"p1", "p3"}, {"p2", "p3"},
	}, got)

	count := 0
	for range Combinations(roster, 5) {
		count++
	}
	assert.Zero(t, count)
}

func TestTradesBetween_Exhaustive(t *testing.T) {
	tests := []struct {
		mine, theirs, max int
		want              int
	}{
		{4, 4, 2, 16},
		{4, 4, 3, 16 + 6*4 + 4*6},
		{3, 5, 4, 3*5 + 3*10 + 3*10 + 3*5 + 3*10 + 1*5},
		{0, 4, 3, 0},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%dx%d_max%d", tc.mine, tc.theirs, tc.max), func(t *testing.T) {
			mine, theirs := namedRoster(t, "a", tc.mine), namedRoster(t, "b", tc.theirs)

			seen := make(map[string]struct{})
			count := 0
			for give, receive := range TradesBetween(mine, theirs, tc.max) {
				require.NotEmpty(t, give)
				require.NotEmpty(t, receive)
				require.LessOrEqual(t, len(give)+len(receive), tc.max)
				seen[fmt.Sprint(give, receive)] = struct{}{}
				count++
			}
			assert.Equal(t, tc.want, count)
			assert.Len(t, seen, count, "no pair repeats")
			assert.Equal(t, tc.want, CountTrades(tc.mine, tc.theirs, tc.max))
		})
	}
}

func TestTradesBetween_LazyAndRestartable(t *testing.T) {
	seq := TradesBetween(namedRoster(t, "a", 15), namedRoster(t, "b", 15), 4)

	taken := 0
	for range seq {
		taken++
		if taken == 3 {
			break
		}
	}
	assert.Equal(t, 3, taken)

	var first []Player
	for give := range seq {
		first = give
		break
	}
	require.Len(t, first, 1)
	assert.Equal(t, "a0", first[0].Name)
}

func TestTradesBetween_YieldsIndependentSlices(t *testing.T) {
	var gives [][]Player
	for give := range TradesBetween(namedRoster(t, "a", 2), namedRoster(t, "b", 2), 2) {
		gives = append(gives, give)
	}
	require.Len(t, gives, 4)
	gives[0][0] = player(t, "changed", QB, 0)
	assert.Equal(t, "a0", gives[1][0].Name)
}
