package trade

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func player(t *testing.T, name string, pos Position, percentile float64) Player {
	t.Helper()
	p, err := NewPlayer(name, pos, percentile)
	require.NoError(t, err)
	return p
}

// starterRoster returns a roster that exactly fills the default slots, with
// every player at the given percentile.
func starterRoster(t *testing.T, prefix string, percentile float64) Roster {
	t.Helper()
	return Roster{
		player(t, prefix+" QB", QB, percentile),
		player(t, prefix+" RB1", RB, percentile),
		player(t, prefix+" RB2", RB, percentile),
		player(t, prefix+" WR1", WR, percentile),
		player(t, prefix+" WR2", WR, percentile),
		player(t, prefix+" TE", TE, percentile),
		player(t, prefix+" DST", DST, percentile),
		player(t, prefix+" K", K, percentile),
		player(t, prefix+" FLEX", WR, percentile),
	}
}

func teamOf(id int, name string, roster Roster) Team {
	return Team{ID: id, Name: name, Roster: roster}
}
