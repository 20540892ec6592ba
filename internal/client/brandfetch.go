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

// ErrBrandNotFound is returned when Brandfetch has no record for a symbol.
// Unknown tickers are expected; callers treat this as a miss, not a failure.
var ErrBrandNotFound = errors.New("brand not found")

// BrandfetchClient fetches brand metadata from the Brandfetch REST API.
type BrandfetchClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewBrandfetchClient creates a brand client from configuration.
func NewBrandfetchClient(cfg config.BrandfetchConfig) *BrandfetchClient {
	return &BrandfetchClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.GetTimeout()},
	}
}

// HasAPIKey reports whether the client can make upstream calls.
func (c *BrandfetchClient) HasAPIKey() bool {
	return c.apiKey != ""
}

// Brand fetches brand metadata for one symbol.
// GET /brands/{symbol} with Bearer auth -> BrandInfo
func (c *BrandfetchClient) Brand(ctx context.Context, symbol string) (models.BrandInfo, error) {
	if c.apiKey == "" {
		return models.BrandInfo{}, ErrNoAPIKey
	}

	endpoint := c.baseURL + "/brands/" + url.PathEscape(symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.BrandInfo{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", config.UserAgent())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.BrandInfo{}, fmt.Errorf("failed to reach brandfetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return models.BrandInfo{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return models.BrandInfo{}, fmt.Errorf("%w: %s", ErrBrandNotFound, symbol)
	}
	if resp.StatusCode != http.StatusOK {
		return models.BrandInfo{}, fmt.Errorf("brandfetch returned %d: %s", resp.StatusCode, string(body))
	}

	var brand models.BrandInfo
	if err := json.Unmarshal(body, &brand); err != nil {
		return models.BrandInfo{}, fmt.Errorf("failed to parse brand: %w", err)
	}

	return brand, nil
}
