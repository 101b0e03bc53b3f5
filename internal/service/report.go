package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/omarshaarawi/tradecoach/internal/trade"
)

func FormatReport(r *TradeReport) string {
	var sb strings.Builder

	title := "Trade Suggestions"
	if r.Selector == SelectorSearch {
		title = "Trade Search"
	}
	sb.WriteString(fmt.Sprintf("🔁 *%s*\n", title))
	if r.TeamName != "" {
		sb.WriteString(fmt.Sprintf("Team: %s\n", r.TeamName))
	}

	if len(r.Trades) == 0 {
		if r.Candidates == 0 {
			sb.WriteString("\nNo beneficial trades found.")
		} else {
			sb.WriteString(fmt.Sprintf("\n%d beneficial trades found, but none improve the team together.", r.Candidates))
		}
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Value: %s → %s (%+.2f)\n\n", formatValue(r.StartValue), formatValue(r.Value), r.Value-r.StartValue))

	for i, c := range r.Trades {
		sb.WriteString(fmt.Sprintf("%d. *%s*\n", i+1, c.TeamName))
		sb.WriteString(fmt.Sprintf("   Give: %s\n", joinPlayers(c.Give)))
		sb.WriteString(fmt.Sprintf("   Get: %s\n", joinPlayers(c.Receive)))
		if len(c.Drop) > 0 {
			sb.WriteString(fmt.Sprintf("   Drop: %s\n", joinPlayers(c.Drop)))
		}
		if c.TeamName == trade.FreeAgentsTeam {
			sb.WriteString(fmt.Sprintf("   Δ me %+.2f\n", c.MyDelta))
		} else {
			sb.WriteString(fmt.Sprintf("   Δ me %+.2f / them %+.2f\n", c.MyDelta, c.TheirDelta))
		}
	}

	if r.Selector == SelectorSearch {
		sb.WriteString(fmt.Sprintf("\n_%d candidates, %d iterations_", r.Candidates, r.Iterations))
	} else {
		sb.WriteString(fmt.Sprintf("\n_%d candidates_", r.Candidates))
	}
	return sb.String()
}

func joinPlayers(players []trade.Player) string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.String()
	}
	return strings.Join(names, ", ")
}

func formatValue(v float64) string {
	if math.IsInf(v, 0) {
		return "infeasible"
	}
	return fmt.Sprintf("%.2f", v)
}
