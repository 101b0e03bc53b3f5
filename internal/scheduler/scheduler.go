package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"

	"github.com/omarshaarawi/tradecoach/internal/config"
	"github.com/omarshaarawi/tradecoach/internal/service"
)

const jobTimeout = 10 * time.Minute

type TradeReporter interface {
	SuggestTrades(ctx context.Context) (*service.TradeReport, error)
	WarmRankings(ctx context.Context) error
}

type Scheduler struct {
	s           gocron.Scheduler
	reporter    TradeReporter
	sendMessage func(string) error
	reportCron  string
	warmEvery   time.Duration
}

// NewScheduler validates the report schedule. A non-positive warmEvery
// disables the rankings warm-up job.
func NewScheduler(reporter TradeReporter, cfg config.Schedule, warmEvery time.Duration, sendMessage func(string) error) (*Scheduler, error) {
	if _, err := cron.ParseStandard(cfg.TradeReport); err != nil {
		return nil, fmt.Errorf("invalid trade report schedule %q: %w", cfg.TradeReport, err)
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %q: %w", cfg.Timezone, err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		reporter:    reporter,
		sendMessage: sendMessage,
		reportCron:  cfg.TradeReport,
		warmEvery:   warmEvery,
	}, nil
}

func (s *Scheduler) Start() error {
	_, err := s.s.NewJob(
		gocron.CronJob(s.reportCron, false),
		gocron.NewTask(s.sendTradeReport),
		gocron.WithName("trade-report"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create trade report job: %w", err)
	}

	if s.warmEvery > 0 {
		_, err = s.s.NewJob(
			gocron.DurationJob(s.warmEvery),
			gocron.NewTask(s.warmRankings),
			gocron.WithName("rankings-warmup"),
			gocron.WithStartAt(gocron.WithStartImmediately()),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to create rankings warm-up job: %w", err)
		}
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendTradeReport() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	report, err := s.reporter.SuggestTrades(ctx)
	if err != nil {
		slog.Error("Failed to build trade report", "error", err)
		return
	}
	if err := s.sendMessage(service.FormatReport(report)); err != nil {
		slog.Error("Failed to send trade report", "run_id", report.RunID, "error", err)
	}
}

func (s *Scheduler) warmRankings() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.reporter.WarmRankings(ctx); err != nil {
		slog.Error("Failed to warm rankings", "error", err)
	}
}
