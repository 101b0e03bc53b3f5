package models

// LeaguePlayer is a rostered or free-agent player as the league reports it.
type LeaguePlayer struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Position        string  `json:"position"`
	ProTeam         string  `json:"proTeam"`
	InjuryStatus    string  `json:"injuryStatus,omitempty"`
	PercentOwned    float64 `json:"percentOwned"`
	ProjectedPoints float64 `json:"projectedPoints"`
}

type LeagueTeam struct {
	ID      int            `json:"id"`
	Abbrev  string         `json:"abbrev"`
	Name    string         `json:"name"`
	IsMine  bool           `json:"isMine"`
	Players []LeaguePlayer `json:"players"`
}

// RankedPlayer is one entry of a positional ranking page.
type RankedPlayer struct {
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	Rank       int     `json:"rank"`
	Percentile float64 `json:"percentile"`
}
