package espn

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/tradecoach/internal/config"
)

const leagueFixture = `{
  "id": 42,
  "scoringPeriodId": 7,
  "seasonId": 2024,
  "teams": [
    {
      "id": 1,
      "abbrev": "OMAR",
      "name": "",
      "location": "Team",
      "nickname": "Omar",
      "roster": {"entries": [
        {"lineupSlotId": 0, "playerPoolEntry": {"id": 100, "onTeamId": 1, "player": {
          "id": 100, "fullName": "Patrick Mahomes", "defaultPositionId": 1, "proTeamId": 12,
          "ownership": {"percentOwned": 99.8},
          "stats": [
            {"statSourceId": 0, "scoringPeriodId": 7, "appliedTotal": 3.5},
            {"statSourceId": 1, "scoringPeriodId": 7, "appliedTotal": 21.4},
            {"statSourceId": 1, "scoringPeriodId": 8, "appliedTotal": 19.0}
          ]}}},
        {"lineupSlotId": 16, "playerPoolEntry": {"id": -16012, "onTeamId": 1, "player": {
          "id": -16012, "fullName": "Chiefs D/ST", "defaultPositionId": 16, "proTeamId": 12}}},
        {"lineupSlotId": 21, "playerPoolEntry": {"id": 200, "onTeamId": 1, "player": {
          "id": 200, "fullName": "Hurt Guy", "defaultPositionId": 2, "proTeamId": 3,
          "injuryStatus": "INJURY_RESERVE"}}}
      ]}
    },
    {"id": 2, "abbrev": "DAD", "name": "Coach Dad", "roster": {"entries": []}}
  ]
}`

func newTestAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.ESPNAPI{Year: "2024", LeagueID: "42", SWID: "{abc}", ESPNS2: "s2"})
	client.BaseURL = srv.URL
	return NewAPI(client)
}

func TestGetTeams(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/seasons/2024/segments/0/leagues/42", r.URL.Path)
		assert.ElementsMatch(t, []string{"mTeam", "mRoster"}, r.URL.Query()["view"])
		assert.Equal(t, "SWID={abc}; espn_s2=s2", r.Header.Get("Cookie"))
		_, _ = w.Write([]byte(leagueFixture))
	})

	teams, err := api.GetTeams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 2)

	omar := teams[0]
	assert.Equal(t, "Team Omar", omar.Name)
	assert.Equal(t, "OMAR", omar.Abbrev)
	require.Len(t, omar.Players, 2, "injured reserve is excluded")

	qb := omar.Players[0]
	assert.Equal(t, "Patrick Mahomes", qb.Name)
	assert.Equal(t, "QB", qb.Position)
	assert.Equal(t, "KC", qb.ProTeam)
	assert.InDelta(t, 21.4, qb.ProjectedPoints, 1e-9)
	assert.InDelta(t, 99.8, qb.PercentOwned, 1e-9)

	assert.Equal(t, "D/ST", omar.Players[1].Position)
	assert.Zero(t, omar.Players[1].ProjectedPoints)

	assert.Equal(t, "Coach Dad", teams[1].Name)
	assert.Empty(t, teams[1].Players)
}

func TestGetFreeAgents(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("view") {
		case "mStatus":
			_, _ = w.Write([]byte(`{"scoringPeriodId": 3}`))
		case "kona_player_info":
			assert.Equal(t, "3", r.URL.Query().Get("scoringPeriodId"))

			var filter map[string]map[string]any
			if assert.NoError(t, json.Unmarshal([]byte(r.Header.Get("x-fantasy-filter")), &filter)) {
				assert.EqualValues(t, 25, filter["players"]["limit"])
			}

			_, _ = w.Write([]byte(`{"players": [
				{"id": 7, "onTeamId": 0, "player": {"id": 7, "fullName": "Waiver Wire", "defaultPositionId": 3,
				 "proTeamId": 99, "stats": [{"statSourceId": 1, "scoringPeriodId": 3, "appliedTotal": 8.25}]}},
				{"id": 8, "player": {"id": 8, "fullName": "Long Snapper", "defaultPositionId": 9}}
			]}`))
		default:
			t.Errorf("unexpected view %q", r.URL.Query().Get("view"))
		}
	})

	players, err := api.GetFreeAgents(context.Background(), 25)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Waiver Wire", players[0].Name)
	assert.Equal(t, "WR", players[0].Position)
	assert.Equal(t, "Unknown", players[0].ProTeam)
	assert.InDelta(t, 8.25, players[0].ProjectedPoints, 1e-9)
	assert.Equal(t, "Unknown", players[1].Position)
}

func TestGet_PropagatesStatusErrors(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := api.GetTeams(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code")
	assert.Contains(t, err.Error(), "401")
}

func TestGet_PublicLeagueSendsNoCookies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Cookie"))
		assert.Equal(t, []string{"a", "b"}, r.URL.Query()["view"])
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
		_, _ = w.Write([]byte(`{"id": 7}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(config.ESPNAPI{Year: "2024", LeagueID: "7"})
	client.BaseURL = srv.URL

	var got struct {
		ID int `json:"id"`
	}
	err := client.Get(context.Background(), "/x", map[string]string{"view": "a, b"}, map[string]string{"X-Test": "yes"}, &got)
	require.NoError(t, err)
	assert.Equal(t, 7, got.ID)
}
