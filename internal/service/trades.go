package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/omarshaarawi/tradecoach/internal/api/fantasy"
	"github.com/omarshaarawi/tradecoach/internal/metrics"
	"github.com/omarshaarawi/tradecoach/internal/models"
	"github.com/omarshaarawi/tradecoach/internal/trade"
)

const (
	SelectorGreedy = "greedy"
	SelectorSearch = "search"
)

type LeagueData interface {
	BuildTeams(ctx context.Context) ([]trade.Team, error)
	BuildFreeAgents(ctx context.Context) ([]trade.Player, error)
	SearchPlayer(ctx context.Context, name string) (models.RankedPlayer, bool, error)
	FetchAllRankedPlayers(ctx context.Context) ([]models.RankedPlayer, error)
}

// TradeReport is the outcome of one trade selection run.
type TradeReport struct {
	RunID      string
	Selector   string
	TeamName   string
	StartValue float64
	Value      float64
	Trades     []trade.Candidate
	Candidates int
	Stats      trade.FinderStats
	Iterations int
	Elapsed    time.Duration
}

type TradeService struct {
	league   LeagueData
	valuator trade.Valuator
	opts     trade.Options
	metrics  *metrics.Metrics
}

func NewTradeService(league LeagueData, valuator trade.Valuator, opts trade.Options, m *metrics.Metrics) *TradeService {
	if m == nil {
		m = metrics.New(nil)
	}
	return &TradeService{league: league, valuator: valuator, opts: opts, metrics: m}
}

func (s *TradeService) teamValuator() *trade.TeamValuator {
	return trade.NewTeamValuator(s.valuator, s.opts.Slots)
}

type leagueSnapshot struct {
	mine       trade.Team
	others     []trade.Team
	freeAgents []trade.Player
}

// loadLeague returns nil without error when the league has no teams.
func (s *TradeService) loadLeague(ctx context.Context) (*leagueSnapshot, error) {
	teams, err := s.league.BuildTeams(ctx)
	if errors.Is(err, fantasy.ErrNoTeams) {
		slog.Warn("League has no teams")
		return nil, nil
	}
	if err != nil {
		s.metrics.FetchErrors.WithLabelValues("teams").Inc()
		return nil, fmt.Errorf("error loading teams: %w", err)
	}

	snap := &leagueSnapshot{mine: teams[0], others: teams[1:]}

	if s.opts.CheckFreeAgents {
		agents, err := s.league.BuildFreeAgents(ctx)
		if err != nil {
			s.metrics.FetchErrors.WithLabelValues("free_agents").Inc()
			slog.Error("Failed to load free agents, continuing without them", "error", err)
		}
		snap.freeAgents = agents
	}
	return snap, nil
}

func (s *TradeService) findCandidates(ctx context.Context, snap *leagueSnapshot) (*trade.Finder, []trade.Candidate, trade.FinderStats, error) {
	finder := trade.NewFinder(s.valuator, s.opts)
	candidates, stats, err := finder.Find(ctx, snap.mine, snap.others, snap.freeAgents)
	if err != nil {
		return nil, nil, stats, err
	}

	s.metrics.CandidatesEvaluated.Add(float64(stats.Evaluated))
	s.metrics.SamePositionSkipped.Add(float64(stats.SamePosition))
	for _, c := range candidates {
		kind := "team"
		if c.TeamName == trade.FreeAgentsTeam {
			kind = "free_agent"
		}
		s.metrics.TradesFound.WithLabelValues(kind).Inc()
	}
	return finder, candidates, stats, nil
}

// SuggestTrades finds beneficial trades and picks a non-conflicting chain
// greedily.
func (s *TradeService) SuggestTrades(ctx context.Context) (*TradeReport, error) {
	runID := uuid.NewString()
	started := time.Now()
	log := slog.With("run_id", runID, "selector", SelectorGreedy)

	snap, err := s.loadLeague(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return emptyReport(runID, SelectorGreedy), nil
	}

	finder, candidates, stats, err := s.findCandidates(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("error finding trades: %w", err)
	}

	tv := finder.TeamValuator()
	chain := trade.SelectGreedy(tv, snap.mine, candidates)
	s.metrics.SearchRuns.WithLabelValues(SelectorGreedy).Inc()

	report := &TradeReport{
		RunID:      runID,
		Selector:   SelectorGreedy,
		TeamName:   snap.mine.Name,
		StartValue: tv.Value(snap.mine),
		Value:      chain.Value,
		Trades:     chain.Trades,
		Candidates: len(candidates),
		Stats:      stats,
		Elapsed:    time.Since(started),
	}
	log.Info("Trade suggestions ready", "candidates", len(candidates), "accepted", len(chain.Trades), "value", chain.Value)
	return report, nil
}

// SearchTrades runs the randomized search over the beneficial trades for d,
// or until ctx is cancelled when d is zero.
func (s *TradeService) SearchTrades(ctx context.Context, d time.Duration) (*TradeReport, error) {
	runID := uuid.NewString()
	started := time.Now()
	log := slog.With("run_id", runID, "selector", SelectorSearch)

	snap, err := s.loadLeague(ctx)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return emptyReport(runID, SelectorSearch), nil
	}

	finder, candidates, stats, err := s.findCandidates(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("error finding trades: %w", err)
	}

	searchCtx := ctx
	if d > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	tv := finder.TeamValuator()
	searcher := trade.NewSearcher(tv, s.opts.Search)
	searcher.OnImprove = func(r trade.SearchResult) {
		s.metrics.SearchImprovements.Inc()
		log.Info("New best trade set", "iteration", r.Iterations, "value", r.Value, "trades", len(r.Trades))
	}

	log.Info("Searching trades", "candidates", len(candidates), "duration", d)
	result := searcher.Run(searchCtx, snap.mine, candidates)
	s.metrics.SearchRuns.WithLabelValues(SelectorSearch).Inc()
	s.metrics.SearchIterations.Add(float64(result.Iterations))
	s.metrics.BestSearchScore.Set(result.Value)

	report := &TradeReport{
		RunID:      runID,
		Selector:   SelectorSearch,
		TeamName:   snap.mine.Name,
		StartValue: tv.Value(snap.mine),
		Value:      result.Value,
		Trades:     result.Trades,
		Candidates: len(candidates),
		Stats:      stats,
		Iterations: result.Iterations,
		Elapsed:    time.Since(started),
	}
	log.Info("Search finished", "iterations", result.Iterations, "improvements", result.Improvements, "value", result.Value)
	return report, nil
}

func emptyReport(runID, selector string) *TradeReport {
	return &TradeReport{RunID: runID, Selector: selector}
}

func (s *TradeService) MyLineup(ctx context.Context) (string, error) {
	snap, err := s.loadLeague(ctx)
	if err != nil {
		return "", err
	}
	if snap == nil {
		return "No teams found in the league.", nil
	}

	tv := s.teamValuator()
	lineup := tv.Lineup(snap.mine)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *%s's Lineup*\n\n", snap.mine.Name))
	for _, slot := range lineup.Slots() {
		players := lineup[slot]
		if slot == trade.SlotBench {
			sb.WriteString("\n*Bench:*\n")
		}
		for _, p := range players {
			sb.WriteString(fmt.Sprintf("%s: %s (%.2f)\n", slot, p.Name, s.valuator.Value(p)))
		}
		if missing := s.opts.Slots[slot] - len(players); missing > 0 && slot != trade.SlotBench {
			sb.WriteString(fmt.Sprintf("%s: _empty_ (%d open)\n", slot, missing))
		}
	}
	sb.WriteString(fmt.Sprintf("\nTeam value: %s", formatValue(tv.Value(snap.mine))))
	return sb.String(), nil
}

func (s *TradeService) PlayerValue(ctx context.Context, name string) (string, error) {
	ranked, ok, err := s.league.SearchPlayer(ctx, name)
	if err != nil {
		return "", fmt.Errorf("error searching player: %w", err)
	}
	if !ok {
		return fmt.Sprintf("🔍 No ranked player matching '%s'.", name), nil
	}

	pos, err := trade.ParsePosition(ranked.Position)
	if err != nil {
		return "", err
	}
	p, err := trade.NewPlayer(ranked.Name, pos, ranked.Percentile)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* (%s)\n", p.Name, p.Position))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")
	sb.WriteString(fmt.Sprintf("Rank: %d\n", ranked.Rank))
	sb.WriteString(fmt.Sprintf("Percentile: %.3f\n", p.Percentile))
	sb.WriteString(fmt.Sprintf("Value: %.3f", s.valuator.Value(p)))
	return sb.String(), nil
}

// WarmRankings refreshes the ranking cache.
func (s *TradeService) WarmRankings(ctx context.Context) error {
	players, err := s.league.FetchAllRankedPlayers(ctx)
	if err != nil {
		s.metrics.FetchErrors.WithLabelValues("rankings").Inc()
		return fmt.Errorf("error warming rankings: %w", err)
	}
	slog.Info("Rankings warmed", "players", len(players))
	return nil
}
