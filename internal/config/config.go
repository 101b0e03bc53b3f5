package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/omarshaarawi/tradecoach/internal/trade"
)

type Config struct {
	TelegramBot TelegramBot
	ESPNAPI     ESPNAPI
	Rankings    Rankings
	Cache       Cache
	Trade       Trade
	Search      Search
	Schedule    Schedule
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":80"`
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

type ESPNAPI struct {
	Year     string `envconfig:"YEAR" required:"true"`
	LeagueID string `envconfig:"LEAGUE_ID" required:"true"`
	SWID     string `envconfig:"SWID"`
	ESPNS2   string `envconfig:"ESPN_S2"`
}

type Rankings struct {
	BaseURL        string  `envconfig:"RANKINGS_BASE_URL" default:"https://www.cbssports.com/fantasy/football/rankings/ppr"`
	UserAgent      string  `envconfig:"USER_AGENT" default:"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"`
	UseProxies     bool    `envconfig:"USE_PROXIES" default:"false"`
	ProxyListURL   string  `envconfig:"PROXY_LIST_URL" default:"https://api.proxyscrape.com/v2/?request=displayproxies&protocol=http&timeout=10000&country=all&anonymity=all"`
	MaxRetries     uint64  `envconfig:"MAX_RETRIES" default:"3"`
	RequestsPerSec float64 `envconfig:"RANKINGS_RPS" default:"2"`
}

type Cache struct {
	Backend   string        `envconfig:"CACHE_BACKEND" default:"memory"`
	RedisURL  string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	PlayerTTL time.Duration `envconfig:"PLAYER_CACHE_TTL" default:"12h"`
	LeagueTTL time.Duration `envconfig:"LEAGUE_CACHE_TTL" default:"15m"`
}

type Trade struct {
	TeamName            string         `envconfig:"TEAM_NAME" required:"true"`
	MaxTradeSize        int            `envconfig:"MAXIMUM_TRADE_SIZE" default:"3"`
	MaxTradeEdge        float64        `envconfig:"MAXIMUM_TRADE_EDGE" default:"0.05"`
	EdgePolicy          string         `envconfig:"TRADE_EDGE_POLICY" default:"tolerate"`
	CheckFreeAgents     bool           `envconfig:"CHECK_FREE_AGENTS" default:"true"`
	FreeAgentLimit      int            `envconfig:"FREE_AGENT_LIMIT" default:"200"`
	MaxRosterSize       int            `envconfig:"MAXIMUM_TEAM_SIZE" default:"16"`
	LineupSlots         map[string]int `envconfig:"LINEUP_SLOTS" default:"QB:1,RB:2,WR:2,TE:1,D/ST:1,K:1,FLEX:1"`
	OpponentBenchWeight float64        `envconfig:"OPPONENT_BENCH_WEIGHT" default:"0"`
	Valuation           string         `envconfig:"VALUATION" default:"percentile"`
}

type Search struct {
	Temperature           float64       `envconfig:"SEARCH_TEMPERATURE" default:"1"`
	ExplorationSize       int           `envconfig:"SEARCH_EXPLORATION_SIZE" default:"5"`
	SubstituteProbability float64       `envconfig:"SEARCH_SUBSTITUTE_PROBABILITY" default:"0.5"`
	SwapProbability       float64       `envconfig:"SEARCH_SWAP_PROBABILITY" default:"0.3"`
	SwapCount             int           `envconfig:"SEARCH_SWAP_COUNT" default:"1"`
	EmptySlotProbability  float64       `envconfig:"SEARCH_EMPTY_SLOT_PROBABILITY" default:"0.3"`
	Seed                  int64         `envconfig:"SEARCH_SEED" default:"0"`
	Duration              time.Duration `envconfig:"SEARCH_DURATION" default:"30s"`
}

type Schedule struct {
	TradeReport string `envconfig:"TRADE_REPORT_CRON" default:"30 7 * * 2"`
	Timezone    string `envconfig:"TIMEZONE" default:"America/Chicago"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if _, err := c.Options(); err != nil {
		return nil, err
	}
	if _, err := trade.NewValuator(c.Trade.Valuation); err != nil {
		return nil, err
	}
	return &c, nil
}

// Options converts the trade and search sections into validated engine options.
func (c *Config) Options() (trade.Options, error) {
	slots := make(trade.SlotCapacities, len(c.Trade.LineupSlots))
	for name, n := range c.Trade.LineupSlots {
		slot, err := trade.ParseSlot(name)
		if err != nil {
			return trade.Options{}, fmt.Errorf("invalid lineup slot: %w", err)
		}
		slots[slot] += n
	}

	opts := trade.Options{
		Slots:               slots,
		MaxTradeSize:        c.Trade.MaxTradeSize,
		MaxTradeEdge:        c.Trade.MaxTradeEdge,
		EdgePolicy:          trade.EdgePolicy(c.Trade.EdgePolicy),
		CheckFreeAgents:     c.Trade.CheckFreeAgents,
		MaxRosterSize:       c.Trade.MaxRosterSize,
		OpponentBenchWeight: c.Trade.OpponentBenchWeight,
		Search: trade.SearchOptions{
			Temperature:           c.Search.Temperature,
			ExplorationSize:       c.Search.ExplorationSize,
			SubstituteProbability: c.Search.SubstituteProbability,
			SwapProbability:       c.Search.SwapProbability,
			SwapCount:             c.Search.SwapCount,
			EmptySlotProbability:  c.Search.EmptySlotProbability,
			Seed:                  c.Search.Seed,
		},
	}
	if err := opts.Validate(); err != nil {
		return trade.Options{}, fmt.Errorf("invalid trade configuration: %w", err)
	}
	return opts, nil
}
