package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/tradecoach/internal/service"
)

const helpText = "Available commands:\n" +
	"/lineup - Show your optimal lineup\n" +
	"/value <player> - Show a player's ranking and value\n" +
	"/trades - Suggest a greedy set of trades\n" +
	"/search [duration] - Search trade combinations, e.g. /search 45s"

const maxSearchDuration = 10 * time.Minute

type TradeAdvisor interface {
	MyLineup(ctx context.Context) (string, error)
	PlayerValue(ctx context.Context, name string) (string, error)
	SuggestTrades(ctx context.Context) (*service.TradeReport, error)
	SearchTrades(ctx context.Context, d time.Duration) (*service.TradeReport, error)
}

type Handler struct {
	advisor        TradeAdvisor
	searchDuration time.Duration
}

func NewHandler(advisor TradeAdvisor, searchDuration time.Duration) *Handler {
	return &Handler{advisor: advisor, searchDuration: searchDuration}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to TradeCoach! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "lineup":
		h.handleLineup(ctx, &msg)
	case "value":
		h.handleValue(ctx, &msg, args)
	case "trades":
		h.handleTrades(ctx, &msg)
	case "search":
		h.handleSearch(ctx, &msg, args)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleLineup(ctx context.Context, msg *tgbotapi.MessageConfig) {
	lineup, err := h.advisor.MyLineup(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error building lineup: %v", err)
	} else {
		msg.Text = lineup
	}
}

func (h *Handler) handleValue(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a player name. Usage: /value <player name>"
		return
	}
	result, err := h.advisor.PlayerValue(ctx, args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error valuing player: %v", err)
	} else {
		msg.Text = result
	}
}

func (h *Handler) handleTrades(ctx context.Context, msg *tgbotapi.MessageConfig) {
	report, err := h.advisor.SuggestTrades(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error suggesting trades: %v", err)
	} else {
		msg.Text = service.FormatReport(report)
	}
}

func (h *Handler) handleSearch(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	d := h.searchDuration
	if args != "" {
		parsed, err := time.ParseDuration(args)
		if err != nil || parsed <= 0 {
			msg.Text = "Please provide a positive duration. Usage: /search 45s"
			return
		}
		d = min(parsed, maxSearchDuration)
	}

	report, err := h.advisor.SearchTrades(ctx, d)
	if err != nil {
		msg.Text = fmt.Sprintf("Error searching trades: %v", err)
	} else {
		msg.Text = service.FormatReport(report)
	}
}
