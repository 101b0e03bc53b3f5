package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/omarshaarawi/tradecoach/internal/api/espn"
	"github.com/omarshaarawi/tradecoach/internal/api/fantasy"
	"github.com/omarshaarawi/tradecoach/internal/api/rankings"
	"github.com/omarshaarawi/tradecoach/internal/config"
	"github.com/omarshaarawi/tradecoach/internal/repository/memory"
	"github.com/omarshaarawi/tradecoach/internal/service"
	"github.com/omarshaarawi/tradecoach/internal/trade"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running trade search", "error", err)
		os.Exit(1)
	}
}

// run prints the current lineup and greedy suggestions, then searches trade
// combinations until interrupted and prints the best set found.
func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	valuator, err := trade.NewValuator(cfg.Trade.Valuation)
	if err != nil {
		return err
	}

	espnAPI := espn.NewAPI(espn.NewClient(cfg.ESPNAPI))
	fantasyAPI := fantasy.NewAPI(espnAPI, rankings.NewClient(cfg.Rankings), memory.NewRepository(nil), cfg.Trade, cfg.Cache)
	tradeService := service.NewTradeService(fantasyAPI, valuator, opts, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lineup, err := tradeService.MyLineup(ctx)
	if err != nil {
		return err
	}
	fmt.Println(lineup)
	fmt.Println()

	greedy, err := tradeService.SuggestTrades(ctx)
	if err != nil {
		return err
	}
	fmt.Println(service.FormatReport(greedy))
	fmt.Println()

	fmt.Println("Searching trade combinations, press Ctrl-C to stop...")
	best, err := tradeService.SearchTrades(ctx, 0)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(service.FormatReport(best))
	return nil
}
