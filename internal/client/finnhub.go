// Package client implements the upstream API clients: Finnhub for quotes
// and Brandfetch for brand metadata.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/foliolabs/folio-portal/internal/config"
	"github.com/foliolabs/folio-portal/internal/models"
)

// ErrNoAPIKey is returned when a client is called without a configured key.
var ErrNoAPIKey = errors.New("api key not configured")

// FinnhubClient fetches real-time quotes from the Finnhub REST API.
type FinnhubClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewFinnhubClient creates a quote client from configuration.
func NewFinnhubClient(cfg config.FinnhubConfig) *FinnhubClient {
	return &FinnhubClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.GetTimeout()},
	}
}

// HasAPIKey reports whether the client can make upstream calls.
func (c *FinnhubClient) HasAPIKey() bool {
	return c.apiKey != ""
}

// Quote fetches the current quote for one symbol.
// GET /quote?symbol={symbol}&token={key} -> { c, d, dp, h, l, o, pc, t }
func (c *FinnhubClient) Quote(ctx context.Context, symbol string) (models.FinnhubQuote, error) {
	if c.apiKey == "" {
		return models.FinnhubQuote{}, ErrNoAPIKey
	}

	endpoint := fmt.Sprintf("%s/quote?symbol=%s&token=%s", c.baseURL, url.QueryEscape(symbol), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.FinnhubQuote{}, err
	}
	req.Header.Set("User-Agent", config.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.FinnhubQuote{}, fmt.Errorf("failed to reach finnhub: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return models.FinnhubQuote{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return models.FinnhubQuote{}, fmt.Errorf("finnhub returned %d: %s", resp.StatusCode, string(body))
	}

	var quote models.FinnhubQuote
	if err := json.Unmarshal(body, &quote); err != nil {
		return models.FinnhubQuote{}, fmt.Errorf("failed to parse quote: %w", err)
	}

	return quote, nil
}
