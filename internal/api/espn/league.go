package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/omarshaarawi/tradecoach/internal/models"
)

const (
	statSourceProjected = 1
	injuredReserveSlot  = 21
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) leagueEndpoint() string {
	return fmt.Sprintf("/seasons/%s/segments/0/leagues/%s", a.client.Config.Year, a.client.Config.LeagueID)
}

// GetTeams returns every league team with its active roster. Players on
// injured reserve do not count toward the roster and are left out.
func (a *API) GetTeams(ctx context.Context) ([]models.LeagueTeam, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view": "mTeam,mRoster",
	}

	if err := a.client.Get(ctx, a.leagueEndpoint(), params, nil, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching league rosters: %w", err)
	}

	period := leagueResponse.ScoringPeriodID
	teams := make([]models.LeagueTeam, 0, len(leagueResponse.Teams))
	for _, team := range leagueResponse.Teams {
		lt := models.LeagueTeam{
			ID:     team.ID,
			Abbrev: team.Abbreviation,
			Name:   teamName(team),
		}
		for _, entry := range team.Roster.Entries {
			if entry.LineupSlotID == injuredReserveSlot {
				continue
			}
			lt.Players = append(lt.Players, toLeaguePlayer(entry.PlayerPoolEntry, period))
		}
		teams = append(teams, lt)
	}

	return teams, nil
}

// GetFreeAgents returns up to limit free agents and waiver players, most
// rostered first.
func (a *API) GetFreeAgents(ctx context.Context, limit int) ([]models.LeaguePlayer, error) {
	period, err := a.currentScoringPeriod(ctx)
	if err != nil {
		return nil, err
	}

	filters := map[string]any{
		"players": map[string]any{
			"filterStatus": map[string]any{
				"value": []string{"FREEAGENT", "WAIVERS"},
			},
			"limit": limit,
			"sortPercOwned": map[string]any{
				"sortPriority": 1,
				"sortAsc":      false,
			},
		},
	}

	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return nil, fmt.Errorf("error marshalling filters: %w", err)
	}

	headers := map[string]string{
		"x-fantasy-filter": string(filtersJSON),
	}
	params := map[string]string{
		"view":            "kona_player_info",
		"scoringPeriodId": fmt.Sprintf("%d", period),
	}

	var response models.PlayerCardResponse
	if err := a.client.Get(ctx, a.leagueEndpoint(), params, headers, &response); err != nil {
		return nil, fmt.Errorf("fetching free agents: %w", err)
	}

	players := make([]models.LeaguePlayer, 0, len(response.Players))
	for _, entry := range response.Players {
		players = append(players, toLeaguePlayer(entry, period))
	}
	return players, nil
}

func (a *API) currentScoringPeriod(ctx context.Context) (int, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view": "mStatus",
	}
	if err := a.client.Get(ctx, a.leagueEndpoint(), params, nil, &leagueResponse); err != nil {
		return 0, fmt.Errorf("fetching league status: %w", err)
	}
	return leagueResponse.ScoringPeriodID, nil
}

func teamName(team models.Team) string {
	if team.Name != "" {
		return team.Name
	}
	return strings.TrimSpace(team.Location + " " + team.Nickname)
}

func toLeaguePlayer(entry models.PlayerPoolEntry, period int) models.LeaguePlayer {
	player := entry.Player
	return models.LeaguePlayer{
		ID:              player.ID,
		Name:            player.FullName,
		Position:        getPositionString(player.DefaultPositionID),
		ProTeam:         getProTeamString(player.ProTeamID),
		InjuryStatus:    player.InjuryStatus,
		PercentOwned:    player.Ownership.PercentOwned,
		ProjectedPoints: projectedPoints(player, period),
	}
}

func projectedPoints(player models.Player, period int) float64 {
	for _, stat := range player.Stats {
		if stat.ScoringPeriodID == period && stat.StatSourceID == statSourceProjected {
			return stat.AppliedTotal
		}
	}
	return 0
}

func getPositionString(positionID int) string {
	positions := map[int]string{
		1: "QB", 2: "RB", 3: "WR", 4: "TE", 5: "K", 16: "D/ST",
	}
	if pos, ok := positions[positionID]; ok {
		return pos
	}
	return "Unknown"
}

func getProTeamString(proTeamID int) string {
	teams := map[int]string{
		1: "ATL", 2: "BUF", 3: "CHI", 4: "CIN", 5: "CLE", 6: "DAL", 7: "DEN", 8: "DET",
		9: "GB", 10: "TEN", 11: "IND", 12: "KC", 13: "LV", 14: "LAR", 15: "MIA", 16: "MIN",
		17: "NE", 18: "NO", 19: "NYG", 20: "NYJ", 21: "PHI", 22: "ARI", 23: "PIT", 24: "LAC",
		25: "SF", 26: "SEA", 27: "TB", 28: "WSH", 29: "CAR", 30: "JAX", 33: "BAL", 34: "HOU",
	}

	if team, ok := teams[proTeamID]; ok {
		return team
	}

	return "Unknown"
}
