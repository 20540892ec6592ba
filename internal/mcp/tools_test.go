package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/foliolabs/folio-portal/internal/brand"
	"github.com/foliolabs/folio-portal/internal/common"
	"github.com/foliolabs/folio-portal/internal/models"
	"github.com/foliolabs/folio-portal/internal/portfolio"
	"github.com/foliolabs/folio-portal/internal/storage"
)

type noopQuotes struct{}

func (noopQuotes) Fetch(ctx context.Context, symbols []string) map[string]models.StockData {
	return nil
}

type noopBrands struct{}

func (noopBrands) Fetch(ctx context.Context, symbols []string) map[string]models.BrandInfo {
	return nil
}

func newTestService(t *testing.T) *portfolio.Service {
	t.Helper()
	logger := common.NewSilentLogger()
	store := portfolio.NewStore(storage.NewMemoryKV(), logger)
	return portfolio.NewService(logger, store, noopQuotes{}, noopBrands{})
}

func textOf(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	return result.Content[0].(mcpgo.TextContent).Text
}

func TestPortfolioToolHandler(t *testing.T) {
	svc := newTestService(t)
	svc.SetRows(context.Background(), []models.PositionRow{
		{Symbol: "AAPL", Volume: "10", OpenPrice: "100"},
	}, "positions.xlsx")

	handler := PortfolioToolHandler(svc)
	result, err := handler(context.Background(), mcpgo.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var snap portfolio.Snapshot
	if err := json.Unmarshal([]byte(textOf(t, result)), &snap); err != nil {
		t.Fatalf("failed to unmarshal snapshot: %v", err)
	}
	if snap.PositionCount != 1 || len(snap.Groups) != 1 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestRefreshToolHandler(t *testing.T) {
	svc := newTestService(t)

	handler := RefreshToolHandler(svc)
	result, err := handler(context.Background(), mcpgo.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal([]byte(textOf(t, result)), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp["status"] != "refreshing" {
		t.Errorf("expected refreshing status, got %v", resp)
	}
}

func TestBrandCacheStatsToolHandler(t *testing.T) {
	logger := common.NewSilentLogger()
	store := brand.NewStore(storage.NewMemoryKV())
	cache := brand.NewCache(logger, store, common.FreshnessBrand)

	err := store.Put(context.Background(), "AAPL", brand.CachedBrand{
		Data:      models.BrandInfo{Name: "Apple"},
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	handler := BrandCacheStatsToolHandler(cache)
	result, err := handler(context.Background(), mcpgo.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stats brand.Stats
	if err := json.Unmarshal([]byte(textOf(t, result)), &stats); err != nil {
		t.Fatalf("failed to unmarshal stats: %v", err)
	}
	if stats.Entries != 1 || stats.Fresh != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestVersionToolHandler(t *testing.T) {
	handler := VersionToolHandler()
	result, err := handler(context.Background(), mcpgo.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal([]byte(textOf(t, result)), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp["version"] == "" {
		t.Error("expected version field")
	}
}
