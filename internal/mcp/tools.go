package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/foliolabs/folio-portal/internal/brand"
	"github.com/foliolabs/folio-portal/internal/config"
	"github.com/foliolabs/folio-portal/internal/portfolio"
)

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// jsonResult marshals v into a text content result.
func jsonResult(v interface{}) *mcp.CallToolResult {
	out, err := json.Marshal(v)
	if err != nil {
		return errorResult("failed to marshal result")
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(out))},
	}
}

// PortfolioTool returns the tool definition for get_portfolio.
func PortfolioTool() mcp.Tool {
	return mcp.NewTool("get_portfolio",
		mcp.WithDescription("Get the current portfolio: grouped positions with quote and brand enrichment."),
	)
}

// PortfolioToolHandler returns the handler for get_portfolio.
func PortfolioToolHandler(service *portfolio.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(service.Snapshot()), nil
	}
}

// RefreshTool returns the tool definition for refresh_portfolio.
func RefreshTool() mcp.Tool {
	return mcp.NewTool("refresh_portfolio",
		mcp.WithDescription("Trigger a background refresh of quotes and brand data for all positions."),
	)
}

// RefreshToolHandler returns the handler for refresh_portfolio.
func RefreshToolHandler(service *portfolio.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		service.TriggerRefresh()
		return jsonResult(map[string]string{"status": "refreshing"}), nil
	}
}

// BrandCacheStatsTool returns the tool definition for get_brand_cache_stats.
func BrandCacheStatsTool() mcp.Tool {
	return mcp.NewTool("get_brand_cache_stats",
		mcp.WithDescription("Get brand cache statistics: entry counts and freshness. Useful for watching the monthly upstream quota."),
	)
}

// BrandCacheStatsToolHandler returns the handler for get_brand_cache_stats.
func BrandCacheStatsToolHandler(cache *brand.Cache) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := cache.Stats(ctx)
		if err != nil {
			return errorResult("failed to read brand cache: " + err.Error()), nil
		}
		return jsonResult(stats), nil
	}
}

// VersionTool returns the tool definition for get_version.
func VersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get folio-portal version and build info. Use this to verify connectivity."),
	)
}

// VersionToolHandler returns the handler for get_version.
func VersionToolHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(map[string]string{
			"version": config.GetVersion(),
			"build":   config.GetBuild(),
			"commit":  config.GetGitCommit(),
		}), nil
	}
}
