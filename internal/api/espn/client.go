package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/omarshaarawi/tradecoach/internal/config"
)

const defaultBaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"

type Client struct {
	httpClient *http.Client
	BaseURL    string
	Config     config.ESPNAPI
}

func NewClient(cfg config.ESPNAPI) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    defaultBaseURL,
		Config:     cfg,
	}
}

// Get issues a GET to BaseURL+endpoint and decodes the JSON body into result.
// Comma-separated param values become repeated query keys (ESPN's view=a&view=b).
// League cookies are sent only when configured, so public leagues work without
// them. Any status other than 200 is an error.
func (c *Client) Get(ctx context.Context, endpoint string, params, headers map[string]string, result any) error {
	target := c.BaseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	q := req.URL.Query()
	for key, value := range params {
		values := strings.Split(value, ",")
		for _, v := range values {
			q.Add(key, strings.TrimSpace(v))
		}
	}
	req.URL.RawQuery = q.Encode()

	c.setCookies(req)

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code from %s: %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}

func (c *Client) setCookies(req *http.Request) {
	if c.Config.SWID == "" && c.Config.ESPNS2 == "" {
		return
	}
	cookie := fmt.Sprintf("SWID=%s; espn_s2=%s", c.Config.SWID, c.Config.ESPNS2)
	req.Header.Set("Cookie", cookie)
}
