package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher returns the latest rates for base. Implementations never fail; they
// degrade to demo data.
type Fetcher interface {
	Latest(ctx context.Context, base string) Rates
}

// Client calls an exchangerate.host compatible API once per request.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	clock      func() time.Time
}

// NewClient constructs a Client.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
		clock:  time.Now,
	}
}

type latestResponse struct {
	Success *bool              `json:"success"`
	Base    string             `json:"base"`
	Date    string             `json:"date"`
	Rates   map[string]float64 `json:"rates"`
}

// Latest fetches the rates for base, or the demo table on any failure.
func (c *Client) Latest(ctx context.Context, base string) Rates {
	rates, err := c.fetch(ctx, base)
	if err != nil {
		c.logger.Warn("exchange rate api unavailable, serving demo rates", slog.String("base", base), slog.Any("error", err))
		return Demo(base, c.clock())
	}
	return rates
}

func (c *Client) fetch(ctx context.Context, base string) (Rates, error) {
	q := url.Values{}
	q.Set("base", base)
	if c.apiKey != "" {
		q.Set("access_key", c.apiKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/latest?"+q.Encode(), nil)
	if err != nil {
		return Rates{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Rates{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return Rates{}, fmt.Errorf("exchange rate api returned status %d", resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Rates{}, fmt.Errorf("decode rates: %w", err)
	}
	if body.Success != nil && !*body.Success {
		return Rates{}, fmt.Errorf("exchange rate api reported failure")
	}
	if len(body.Rates) == 0 {
		return Rates{}, fmt.Errorf("exchange rate api returned no rates")
	}
	if body.Base == "" {
		body.Base = base
	}
	now := c.clock()
	if body.Date == "" {
		body.Date = now.Format("2006-01-02")
	}
	return Rates{
		Base:      body.Base,
		Date:      body.Date,
		Rates:     body.Rates,
		Source:    SourceAPI,
		FetchedAt: now,
	}, nil
}
