package fantasy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/omarshaarawi/tradecoach/internal/config"
	"github.com/omarshaarawi/tradecoach/internal/models"
	"github.com/omarshaarawi/tradecoach/internal/trade"
)

var (
	ErrNoTeams        = errors.New("league has no teams")
	ErrMyTeamNotFound = errors.New("no team resembles the configured team name")
)

const (
	rankingsKey   = "rankings"
	teamsKey      = "league:teams"
	freeAgentsKey = "league:free-agents"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type LeagueSource interface {
	GetTeams(ctx context.Context) ([]models.LeagueTeam, error)
	GetFreeAgents(ctx context.Context, limit int) ([]models.LeaguePlayer, error)
}

type RankingSource interface {
	FetchAll(ctx context.Context) ([]models.RankedPlayer, error)
}

type API struct {
	league   LeagueSource
	rankings RankingSource
	cache    Cache

	teamName       string
	freeAgentLimit int
	playerTTL      time.Duration
	leagueTTL      time.Duration
}

func NewAPI(league LeagueSource, rankings RankingSource, cache Cache, tradeCfg config.Trade, cacheCfg config.Cache) *API {
	return &API{
		league:         league,
		rankings:       rankings,
		cache:          cache,
		teamName:       tradeCfg.TeamName,
		freeAgentLimit: tradeCfg.FreeAgentLimit,
		playerTTL:      cacheCfg.PlayerTTL,
		leagueTTL:      cacheCfg.LeagueTTL,
	}
}

func (a *API) FetchAllRankedPlayers(ctx context.Context) ([]models.RankedPlayer, error) {
	return cached(ctx, a.cache, rankingsKey, a.playerTTL, a.rankings.FetchAll)
}

// FetchTeams returns every team with mine flagged and placed first.
func (a *API) FetchTeams(ctx context.Context) ([]models.LeagueTeam, error) {
	teams, err := cached(ctx, a.cache, teamsKey, a.leagueTTL, a.league.GetTeams)
	if err != nil {
		return nil, err
	}
	return markMine(teams, a.teamName)
}

func (a *API) FetchFreeAgents(ctx context.Context) ([]models.LeaguePlayer, error) {
	return cached(ctx, a.cache, freeAgentsKey, a.leagueTTL, func(ctx context.Context) ([]models.LeaguePlayer, error) {
		return a.league.GetFreeAgents(ctx, a.freeAgentLimit)
	})
}

func (a *API) Resolver(ctx context.Context) (*Resolver, error) {
	ranked, err := a.FetchAllRankedPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching rankings: %w", err)
	}
	return NewResolver(ranked), nil
}

// ResolvePlayer looks up one player by ranking-page name.
func (a *API) ResolvePlayer(ctx context.Context, name string, pos trade.Position) (models.RankedPlayer, bool, error) {
	r, err := a.Resolver(ctx)
	if err != nil {
		return models.RankedPlayer{}, false, err
	}
	ranked, ok := r.Resolve(name, pos)
	return ranked, ok, nil
}

// SearchPlayer looks up one player by name across all positions.
func (a *API) SearchPlayer(ctx context.Context, name string) (models.RankedPlayer, bool, error) {
	r, err := a.Resolver(ctx)
	if err != nil {
		return models.RankedPlayer{}, false, err
	}
	ranked, ok := r.Search(name)
	return ranked, ok, nil
}

// BuildTeams returns ranked teams, mine first.
func (a *API) BuildTeams(ctx context.Context) ([]trade.Team, error) {
	r, err := a.Resolver(ctx)
	if err != nil {
		return nil, err
	}
	league, err := a.FetchTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}

	teams := make([]trade.Team, 0, len(league))
	for _, lt := range league {
		team := trade.Team{
			ID:     lt.ID,
			Name:   lt.Name,
			Abbrev: lt.Abbrev,
			IsMine: lt.IsMine,
			Roster: resolveAll(r, lt.Players),
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func (a *API) BuildFreeAgents(ctx context.Context) ([]trade.Player, error) {
	r, err := a.Resolver(ctx)
	if err != nil {
		return nil, err
	}
	agents, err := a.FetchFreeAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching free agents: %w", err)
	}
	return resolveAll(r, agents), nil
}

func resolveAll(r *Resolver, players []models.LeaguePlayer) trade.Roster {
	roster := make(trade.Roster, 0, len(players))
	for _, lp := range players {
		p, err := r.Player(lp)
		if err != nil {
			slog.Debug("Skipping player", "name", lp.Name, "error", err)
			continue
		}
		if roster.Contains(p) {
			continue
		}
		roster = append(roster, p)
	}
	return roster
}

func markMine(teams []models.LeagueTeam, teamName string) ([]models.LeagueTeam, error) {
	if len(teams) == 0 {
		return nil, ErrNoTeams
	}

	mine, best := -1, 0.0
	for i, t := range teams {
		if score := similarity(t.Name, teamName); score > best {
			mine, best = i, score
		}
	}
	if mine == -1 {
		return nil, fmt.Errorf("%w: %q", ErrMyTeamNotFound, teamName)
	}

	out := make([]models.LeagueTeam, 0, len(teams))
	out = append(out, teams[mine])
	out[0].IsMine = true
	for i, t := range teams {
		if i != mine {
			t.IsMine = false
			out = append(out, t)
		}
	}
	return out, nil
}

// cached serves key from the cache, falling back to fetch on a miss. Cache
// failures are logged and never fail the call. Empty results are not stored.
func cached[T any](ctx context.Context, cache Cache, key string, ttl time.Duration, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if data, ok, err := cache.Get(ctx, key); err != nil {
		slog.Warn("Cache read failed", "key", key, "error", err)
	} else if ok {
		var out []T
		if err := json.Unmarshal(data, &out); err == nil {
			return out, nil
		}
		slog.Warn("Discarding unreadable cache entry", "key", key)
	}

	out, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := cache.Set(ctx, key, data, ttl); err != nil {
		slog.Warn("Cache write failed", "key", key, "error", err)
	}
	return out, nil
}
