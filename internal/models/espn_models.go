package models

type LeagueResponse struct {
	ID              int      `json:"id"`
	ScoringPeriodID int      `json:"scoringPeriodId"`
	SeasonID        int      `json:"seasonId"`
	Status          Status   `json:"status"`
	Teams           []Team   `json:"teams"`
	Settings        Settings `json:"settings"`
}

type Settings struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type Status struct {
	CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
	IsActive             bool `json:"isActive"`
}

type Team struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbrev"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	Nickname     string `json:"nickname"`
	Roster       Roster `json:"roster"`
}

type Roster struct {
	Entries []RosterEntry `json:"entries"`
}

type RosterEntry struct {
	PlayerPoolEntry PlayerPoolEntry `json:"playerPoolEntry"`
	LineupSlotID    int             `json:"lineupSlotId"`
}

type PlayerCardResponse struct {
	Players []PlayerPoolEntry `json:"players"`
}

type PlayerPoolEntry struct {
	ID       int    `json:"id"`
	OnTeamID int    `json:"onTeamId"`
	Player   Player `json:"player"`
}

type Player struct {
	ID                int       `json:"id"`
	FullName          string    `json:"fullName"`
	DefaultPositionID int       `json:"defaultPositionId"`
	ProTeamID         int       `json:"proTeamId"`
	Ownership         Ownership `json:"ownership"`
	Stats             []Stat    `json:"stats"`
	InjuryStatus      string    `json:"injuryStatus"`
}

type Ownership struct {
	PercentOwned float64 `json:"percentOwned"`
}

type Stat struct {
	StatSourceID    int     `json:"statSourceId"`
	ScoringPeriodID int     `json:"scoringPeriodId"`
	AppliedTotal    float64 `json:"appliedTotal"`
}
