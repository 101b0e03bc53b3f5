package rankings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/omarshaarawi/tradecoach/internal/config"
	"github.com/omarshaarawi/tradecoach/internal/models"
)

// Positions are the ranking pages fetched, in order.
var Positions = []string{"QB", "RB", "WR", "TE", "K", "DST"}

type Client struct {
	httpClient    *http.Client
	cfg           config.Rankings
	limiter       *rate.Limiter
	breaker       *gobreaker.CircuitBreaker
	retryInterval time.Duration
}

func NewClient(cfg config.Rankings) *Client {
	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "rankings",
		Timeout: time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		cfg:           cfg,
		limiter:       rate.NewLimiter(limit, 1),
		breaker:       breaker,
		retryInterval: 500 * time.Millisecond,
	}
}

// FetchAll fetches every position page. A position that keeps failing is
// logged and skipped, so the result may be partial or empty.
func (c *Client) FetchAll(ctx context.Context) ([]models.RankedPlayer, error) {
	var players []models.RankedPlayer
	for _, pos := range Positions {
		ranked, err := c.FetchPosition(ctx, pos)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Error("Failed to fetch rankings", "position", pos, "error", err)
			continue
		}
		players = append(players, ranked...)
	}
	slog.Info("Fetched rankings", "players", len(players))
	return players, nil
}

func (c *Client) FetchPosition(ctx context.Context, pos string) ([]models.RankedPlayer, error) {
	target := fmt.Sprintf("%s/%s/", strings.TrimRight(c.cfg.BaseURL, "/"), pos)
	body, err := c.get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("fetching %s rankings: %w", pos, err)
	}

	position := pos
	if pos == "DST" {
		position = "D/ST"
	}
	return ParseConsensus(bytes.NewReader(body), position)
}

// get retries the request up to MaxRetries times, routing each attempt
// through a different proxy when proxies are enabled.
func (c *Client) get(ctx context.Context, target string) ([]byte, error) {
	attempts := max(c.cfg.MaxRetries, 1)

	var proxies []string
	if c.cfg.UseProxies {
		list, err := c.proxyList(ctx)
		if err != nil {
			slog.Warn("Proxy list unavailable, going direct", "error", err)
		}
		proxies = pickProxies(list, int(attempts))
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, attempts-1), ctx)

	attempt := 0
	var body []byte
	op := func() error {
		var proxy string
		if attempt < len(proxies) {
			proxy = proxies[attempt]
		}
		attempt++

		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		out, err := c.breaker.Execute(func() (any, error) {
			return c.do(ctx, target, proxy)
		})
		if errors.Is(err, gobreaker.ErrOpenState) {
			return backoff.Permanent(err)
		}
		if err != nil {
			return err
		}
		body = out.([]byte)
		return nil
	}
	notify := func(err error, wait time.Duration) {
		slog.Warn("Request failed, retrying", "url", target, "attempt", attempt, "wait", wait, "error", err)
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, target, proxy string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("error creating request: %w", err))
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	client := c.httpClient
	if proxy != "" {
		proxyURL, err := url.Parse("http://" + strings.TrimPrefix(proxy, "http://"))
		if err == nil {
			client = &http.Client{
				Timeout:   c.httpClient.Timeout,
				Transport: &http.Transport{Proxy: http.ProxyURL(proxyURL)},
			}
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) proxyList(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, c.cfg.ProxyListURL, "")
	if err != nil {
		return nil, err
	}
	var proxies []string
	for _, line := range strings.Split(string(body), "\n") {
		if p := strings.TrimSpace(line); p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies, nil
}

// pickProxies draws n proxies with replacement.
func pickProxies(list []string, n int) []string {
	if len(list) == 0 {
		return nil
	}
	picked := make([]string, n)
	for i := range picked {
		picked[i] = list[rand.IntN(len(list))]
	}
	return picked
}
