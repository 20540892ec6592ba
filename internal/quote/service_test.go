package quote

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/foliolabs/folio-portal/internal/common"
	"github.com/foliolabs/folio-portal/internal/models"
)

type stubClient struct {
	mu     sync.Mutex
	quotes map[string]models.FinnhubQuote
	errs   map[string]error
	calls  []string
}

func (c *stubClient) Quote(ctx context.Context, symbol string) (models.FinnhubQuote, error) {
	c.mu.Lock()
	c.calls = append(c.calls, symbol)
	c.mu.Unlock()

	if err, ok := c.errs[symbol]; ok {
		return models.FinnhubQuote{}, err
	}
	return c.quotes[symbol], nil
}

func TestFetchResolvesAllSymbols(t *testing.T) {
	client := &stubClient{quotes: map[string]models.FinnhubQuote{
		"AAPL": {Current: 120, Change: 2, ChangePercent: 1.7},
		"MSFT": {Current: 60},
	}}
	svc := NewService(common.NewSilentLogger(), client)

	results := svc.Fetch(context.Background(), []string{"AAPL", "MSFT"})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results["AAPL"].CurrentPrice != 120 || results["AAPL"].Symbol != "AAPL" {
		t.Errorf("unexpected AAPL record: %+v", results["AAPL"])
	}
	if results["MSFT"].CurrentPrice != 60 {
		t.Errorf("unexpected MSFT record: %+v", results["MSFT"])
	}
}

func TestFetchOmitsFailedSymbols(t *testing.T) {
	client := &stubClient{
		quotes: map[string]models.FinnhubQuote{"AAPL": {Current: 120}},
		errs:   map[string]error{"BAD": fmt.Errorf("upstream status 502")},
	}
	svc := NewService(common.NewSilentLogger(), client)

	results := svc.Fetch(context.Background(), []string{"AAPL", "BAD"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if _, ok := results["BAD"]; ok {
		t.Errorf("failed symbol should be absent from results")
	}
	if len(client.calls) != 2 {
		t.Errorf("expected both symbols attempted, got %v", client.calls)
	}
}

func TestFetchEmptyBatch(t *testing.T) {
	svc := NewService(common.NewSilentLogger(), &stubClient{})
	if results := svc.Fetch(context.Background(), nil); len(results) != 0 {
		t.Fatalf("expected empty result for empty batch, got %v", results)
	}
}
