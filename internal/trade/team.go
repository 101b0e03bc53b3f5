package trade

import "slices"

type Roster []Player

// Index returns the position of the first player equal to p, or -1.
func (r Roster) Index(p Player) int {
	for i, q := range r {
		if q.Same(p) {
			return i
		}
	}
	return -1
}

func (r Roster) Contains(p Player) bool {
	return r.Index(p) >= 0
}

// Team is a snapshot of a fantasy team. Mutating methods return a new Team
// with its own roster backing array.
type Team struct {
	ID     int
	Name   string
	Abbrev string
	IsMine bool
	Roster Roster
}

func (t Team) Has(p Player) bool {
	return t.Roster.Contains(p)
}

func (t Team) Size() int {
	return len(t.Roster)
}

// WithPlayer returns a copy of t with p appended to the roster.
func (t Team) WithPlayer(p Player) Team {
	roster := make(Roster, 0, len(t.Roster)+1)
	roster = append(roster, t.Roster...)
	t.Roster = append(roster, p)
	return t
}

// WithoutPlayer returns a copy of t with the first entry equal to p removed.
// The roster is copied even when p is absent.
func (t Team) WithoutPlayer(p Player) Team {
	roster := slices.Clone(t.Roster)
	if i := roster.Index(p); i >= 0 {
		roster = slices.Delete(roster, i, i+1)
	}
	t.Roster = roster
	return t
}

// Clone returns a copy of t that shares nothing with the original.
func (t Team) Clone() Team {
	t.Roster = slices.Clone(t.Roster)
	return t
}
