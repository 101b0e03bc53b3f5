package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/omarshaarawi/tradecoach/internal/api/espn"
	"github.com/omarshaarawi/tradecoach/internal/api/fantasy"
	"github.com/omarshaarawi/tradecoach/internal/api/rankings"
	"github.com/omarshaarawi/tradecoach/internal/bot"
	"github.com/omarshaarawi/tradecoach/internal/config"
	"github.com/omarshaarawi/tradecoach/internal/metrics"
	"github.com/omarshaarawi/tradecoach/internal/repository/memory"
	redisrepo "github.com/omarshaarawi/tradecoach/internal/repository/redis"
	"github.com/omarshaarawi/tradecoach/internal/scheduler"
	"github.com/omarshaarawi/tradecoach/internal/service"
	"github.com/omarshaarawi/tradecoach/internal/trade"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	if cfg.TelegramBot.Token == "" {
		return errors.New("TELEGRAM_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache, closeCache, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeCache(); err != nil {
			slog.Error("Error closing cache", "error", err)
		}
	}()

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	valuator, err := trade.NewValuator(cfg.Trade.Valuation)
	if err != nil {
		return err
	}

	espnAPI := espn.NewAPI(espn.NewClient(cfg.ESPNAPI))
	rankingsClient := rankings.NewClient(cfg.Rankings)
	fantasyAPI := fantasy.NewAPI(espnAPI, rankingsClient, cache, cfg.Trade, cfg.Cache)

	m := metrics.New(nil)
	tradeService := service.NewTradeService(fantasyAPI, valuator, opts, m)

	handler := bot.NewHandler(tradeService, cfg.Search.Duration)
	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, handler)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(tradeService, cfg.Schedule, cfg.Cache.PlayerTTL, telegramBot.SendMessage)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/", healthCheckHandler)
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{Addr: cfg.HTTPAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newCache returns the configured cache and a func releasing its connection.
func newCache(ctx context.Context, cfg config.Cache) (fantasy.Cache, func() error, error) {
	switch cfg.Backend {
	case "redis":
		client, err := redisrepo.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("Using redis cache")
		return redisrepo.NewRepository(client), client.Close, nil
	case "", "memory":
		return memory.NewRepository(nil), func() error { return nil }, nil
	default:
		return nil, nil, errors.New("unknown cache backend: " + cfg.Backend)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
