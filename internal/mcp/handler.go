// Package mcp exposes the portfolio over the Model Context Protocol so
// desktop agents can query and refresh it.
package mcp

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/foliolabs/folio-portal/internal/brand"
	"github.com/foliolabs/folio-portal/internal/common"
	"github.com/foliolabs/folio-portal/internal/config"
	"github.com/foliolabs/folio-portal/internal/portfolio"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates a new MCP handler with the portfolio tools registered.
func NewHandler(logger *common.Logger, service *portfolio.Service, brandCache *brand.Cache) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"folio-portal",
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(PortfolioTool(), PortfolioToolHandler(service))
	mcpSrv.AddTool(RefreshTool(), RefreshToolHandler(service))
	mcpSrv.AddTool(BrandCacheStatsTool(), BrandCacheStatsToolHandler(brandCache))
	mcpSrv.AddTool(VersionTool(), VersionToolHandler())

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().Int("tools", 4).Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		logger:     logger,
	}
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
