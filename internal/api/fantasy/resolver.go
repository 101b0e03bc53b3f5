package fantasy

import (
	"log/slog"

	"github.com/omarshaarawi/tradecoach/internal/models"
	"github.com/omarshaarawi/tradecoach/internal/trade"
)

// minNameSimilarity is the lowest ratio accepted as a match.
const minNameSimilarity = 0.7

// Resolver matches league players against ranked players of the same
// position.
type Resolver struct {
	byPosition map[trade.Position][]models.RankedPlayer
}

func NewResolver(ranked []models.RankedPlayer) *Resolver {
	r := &Resolver{byPosition: make(map[trade.Position][]models.RankedPlayer)}
	for _, p := range ranked {
		pos, err := trade.ParsePosition(p.Position)
		if err != nil {
			slog.Debug("Skipping ranked player", "name", p.Name, "error", err)
			continue
		}
		r.byPosition[pos] = append(r.byPosition[pos], p)
	}
	return r
}

// Resolve returns the closest ranked player by name. Equal matches go to the
// better ranked player. Without a match the result is a placeholder with the
// worst percentile.
func (r *Resolver) Resolve(name string, pos trade.Position) (models.RankedPlayer, bool) {
	best := -1
	bestScore := minNameSimilarity
	candidates := r.byPosition[pos]
	for i, p := range candidates {
		score := similarity(name, p.Name)
		switch {
		case score > bestScore, best == -1 && score == bestScore:
			best, bestScore = i, score
		case best != -1 && score == bestScore && p.Percentile < candidates[best].Percentile:
			best = i
		}
	}

	if best == -1 {
		return models.RankedPlayer{Name: name, Position: string(pos), Percentile: 1}, false
	}
	return candidates[best], true
}

// Search resolves name against every position, accepting either an ESPN
// display name or a ranking-page name.
func (r *Resolver) Search(name string) (models.RankedPlayer, bool) {
	var found models.RankedPlayer
	bestScore := -1.0
	for _, pos := range trade.Positions {
		for _, query := range []string{name, ToRankingName(name)} {
			ranked, ok := r.Resolve(query, pos)
			if !ok {
				continue
			}
			if score := similarity(query, ranked.Name); score > bestScore ||
				(score == bestScore && ranked.Percentile < found.Percentile) {
				found, bestScore = ranked, score
			}
		}
	}
	if bestScore < 0 {
		return models.RankedPlayer{Name: name, Percentile: 1}, false
	}
	return found, true
}

// Player converts a league player into a ranked trade.Player.
func (r *Resolver) Player(lp models.LeaguePlayer) (trade.Player, error) {
	pos, err := trade.ParsePosition(lp.Position)
	if err != nil {
		return trade.Player{}, err
	}

	ranked, ok := r.Resolve(ToRankingName(lp.Name), pos)
	if !ok {
		slog.Debug("No ranking for player", "name", lp.Name, "position", pos)
	}

	p, err := trade.NewPlayer(lp.Name, pos, ranked.Percentile)
	if err != nil {
		return trade.Player{}, err
	}
	p = p.WithProjection(lp.ProjectedPoints)
	p.ProTeam = lp.ProTeam
	return p, nil
}
