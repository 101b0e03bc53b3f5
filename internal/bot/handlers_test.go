package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"

	"github.com/omarshaarawi/tradecoach/internal/service"
)

type fakeAdvisor struct {
	lineup   string
	value    string
	report   *service.TradeReport
	err      error
	gotName  string
	gotDelay time.Duration
}

func (f *fakeAdvisor) MyLineup(context.Context) (string, error) { return f.lineup, f.err }

func (f *fakeAdvisor) PlayerValue(_ context.Context, name string) (string, error) {
	f.gotName = name
	return f.value, f.err
}

func (f *fakeAdvisor) SuggestTrades(context.Context) (*service.TradeReport, error) {
	return f.report, f.err
}

func (f *fakeAdvisor) SearchTrades(_ context.Context, d time.Duration) (*service.TradeReport, error) {
	f.gotDelay = d
	return f.report, f.err
}

func command(text string) tgbotapi.Update {
	length := len(text)
	for i, r := range text {
		if r == ' ' {
			length = i
			break
		}
	}
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: 99},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}}
}

func TestHandleCommand(t *testing.T) {
	report := &service.TradeReport{Selector: service.SelectorGreedy, TeamName: "Team Omar"}
	advisor := &fakeAdvisor{lineup: "my lineup", value: "mahomes value", report: report}
	h := NewHandler(advisor, 30*time.Second)
	ctx := context.Background()

	tests := []struct {
		text string
		want string
	}{
		{"/start", "Welcome to TradeCoach! Use /help to see available commands."},
		{"/help", helpText},
		{"/lineup", "my lineup"},
		{"/value Patrick Mahomes", "mahomes value"},
		{"/value", "Please provide a player name. Usage: /value <player name>"},
		{"/trades", service.FormatReport(report)},
		{"/search", service.FormatReport(report)},
		{"/search soon", "Please provide a positive duration. Usage: /search 45s"},
		{"/bogus", "Unknown command. Use /help to see available commands."},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			msg := h.HandleCommand(ctx, command(tt.text))
			assert.Equal(t, int64(99), msg.ChatID)
			assert.Equal(t, "Markdown", msg.ParseMode)
			assert.Equal(t, tt.want, msg.Text)
		})
	}
	assert.Equal(t, "Patrick Mahomes", advisor.gotName)
}

func TestHandleSearch_Duration(t *testing.T) {
	advisor := &fakeAdvisor{report: &service.TradeReport{}}
	h := NewHandler(advisor, 30*time.Second)

	h.HandleCommand(context.Background(), command("/search"))
	assert.Equal(t, 30*time.Second, advisor.gotDelay)

	h.HandleCommand(context.Background(), command("/search 45s"))
	assert.Equal(t, 45*time.Second, advisor.gotDelay)

	h.HandleCommand(context.Background(), command("/search 3h"))
	assert.Equal(t, maxSearchDuration, advisor.gotDelay)
}

func TestHandleCommand_ReportsErrors(t *testing.T) {
	h := NewHandler(&fakeAdvisor{err: errors.New("espn down")}, time.Second)

	msg := h.HandleCommand(context.Background(), command("/trades"))
	assert.Equal(t, "Error suggesting trades: espn down", msg.Text)

	msg = h.HandleCommand(context.Background(), command("/lineup"))
	assert.Equal(t, "Error building lineup: espn down", msg.Text)
}
