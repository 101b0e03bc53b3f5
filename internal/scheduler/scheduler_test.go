package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/tradecoach/internal/config"
	"github.com/omarshaarawi/tradecoach/internal/service"
)

type fakeReporter struct {
	report  *service.TradeReport
	err     error
	warmed  atomic.Int32
	reports atomic.Int32
}

func (f *fakeReporter) SuggestTrades(context.Context) (*service.TradeReport, error) {
	f.reports.Add(1)
	return f.report, f.err
}

func (f *fakeReporter) WarmRankings(context.Context) error {
	f.warmed.Add(1)
	return nil
}

func scheduleConfig() config.Schedule {
	return config.Schedule{TradeReport: "30 7 * * 2", Timezone: "America/Chicago"}
}

func TestNewScheduler_ValidatesConfig(t *testing.T) {
	send := func(string) error { return nil }

	cfg := scheduleConfig()
	cfg.TradeReport = "every tuesday"
	_, err := NewScheduler(&fakeReporter{}, cfg, 0, send)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid trade report schedule")

	cfg = scheduleConfig()
	cfg.Timezone = "Mars/Olympus_Mons"
	_, err = NewScheduler(&fakeReporter{}, cfg, 0, send)
	require.Error(t, err)

	_, err = NewScheduler(&fakeReporter{}, scheduleConfig(), 0, send)
	require.NoError(t, err)
}

func TestScheduler_SendsFormattedReport(t *testing.T) {
	reporter := &fakeReporter{report: &service.TradeReport{Selector: service.SelectorGreedy, TeamName: "Team Omar"}}
	var sent []string
	s, err := NewScheduler(reporter, scheduleConfig(), 0, func(msg string) error {
		sent = append(sent, msg)
		return nil
	})
	require.NoError(t, err)

	s.sendTradeReport()
	require.Len(t, sent, 1)
	assert.Equal(t, service.FormatReport(reporter.report), sent[0])

	reporter.err = errors.New("espn down")
	s.sendTradeReport()
	assert.Len(t, sent, 1, "failed reports are not sent")
}

func TestScheduler_WarmsRankingsOnStart(t *testing.T) {
	reporter := &fakeReporter{}
	s, err := NewScheduler(reporter, scheduleConfig(), time.Hour, func(string) error { return nil })
	require.NoError(t, err)

	require.NoError(t, s.Start())
	defer func() { assert.NoError(t, s.Stop()) }()

	assert.Eventually(t, func() bool { return reporter.warmed.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Len(t, s.s.Jobs(), 2)
	assert.Zero(t, reporter.reports.Load())
}
