// Package app wires configuration, storage, clients, services, and HTTP
// handlers into one application object.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/foliolabs/folio-portal/internal/brand"
	"github.com/foliolabs/folio-portal/internal/cache"
	"github.com/foliolabs/folio-portal/internal/client"
	"github.com/foliolabs/folio-portal/internal/common"
	"github.com/foliolabs/folio-portal/internal/config"
	"github.com/foliolabs/folio-portal/internal/handlers"
	"github.com/foliolabs/folio-portal/internal/interfaces"
	"github.com/foliolabs/folio-portal/internal/mcp"
	"github.com/foliolabs/folio-portal/internal/portfolio"
	"github.com/foliolabs/folio-portal/internal/quote"
	badger "github.com/foliolabs/folio-portal/internal/storage/badger"
)

// quoteCacheEntries caps the quote proxy response cache.
const quoteCacheEntries = 500

// App holds all application components and dependencies.
type App struct {
	Config  *config.Config
	Logger  *common.Logger
	Storage interfaces.StorageManager

	PortfolioService *portfolio.Service
	BrandCache       *brand.Cache

	// HTTP handlers
	PageHandler       *handlers.PageHandler
	HealthHandler     *handlers.HealthHandler
	VersionHandler    *handlers.VersionHandler
	PortfolioHandler  *handlers.PortfolioHandler
	CategoriesHandler *handlers.CategoriesHandler
	QuoteHandler      *handlers.QuoteHandler
	BrandHandler      *handlers.BrandHandler
	MCPHandler        *mcp.Handler
}

// New initializes the application with BadgerDB-backed storage.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	manager, err := badger.NewManager(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return NewWithStorage(cfg, logger, manager)
}

// NewWithStorage initializes the application over an existing storage
// manager. Tests use this with an in-memory store.
func NewWithStorage(cfg *config.Config, logger *common.Logger, storage interfaces.StorageManager) (*App, error) {
	a := &App{
		Config:  cfg,
		Logger:  logger,
		Storage: storage,
	}

	kv := storage.KeyValueStorage()

	finnhub := client.NewFinnhubClient(cfg.Clients.Finnhub)
	brandfetch := client.NewBrandfetchClient(cfg.Clients.Brandfetch)
	if !finnhub.HasAPIKey() {
		logger.Warn().Msg("no Finnhub API key configured, quote enrichment disabled")
	}
	if !brandfetch.HasAPIKey() {
		logger.Warn().Msg("no Brandfetch API key configured, brand enrichment disabled")
	}

	portfolioStore := portfolio.NewStore(kv, logger)
	brandStore := brand.NewStore(kv)
	a.BrandCache = brand.NewCache(logger, brandStore, cfg.Clients.Brandfetch.GetCacheTTL())

	quoteService := quote.NewService(logger, finnhub)
	brandService := brand.NewService(logger, a.BrandCache, brandfetch, cfg.Clients.Brandfetch.GetPaceInterval())

	a.PortfolioService = portfolio.NewService(logger, portfolioStore, quoteService, brandService)

	a.initHandlers(portfolioStore, finnhub, brandfetch)

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers(portfolioStore *portfolio.Store, finnhub *client.FinnhubClient, brandfetch *client.BrandfetchClient) {
	if hasPageTemplates() {
		a.PageHandler = handlers.NewPageHandler(a.Logger)
	} else {
		a.Logger.Warn().Msg("no page templates found, UI routes disabled")
	}

	a.HealthHandler = handlers.NewHealthHandler(a.Logger, a.Storage)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.PortfolioHandler = handlers.NewPortfolioHandler(a.Logger, a.PortfolioService)
	a.CategoriesHandler = handlers.NewCategoriesHandler(a.Logger, portfolioStore)

	quoteCache := cache.New(a.Config.Clients.Finnhub.GetCacheTTL(), quoteCacheEntries)
	a.QuoteHandler = handlers.NewQuoteHandler(a.Logger, finnhub, quoteCache)
	a.BrandHandler = handlers.NewBrandHandler(a.Logger, brandfetch, a.BrandCache)

	a.MCPHandler = mcp.NewHandler(a.Logger, a.PortfolioService, a.BrandCache)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// hasPageTemplates reports whether the pages directory holds templates.
func hasPageTemplates() bool {
	matches, err := filepath.Glob(filepath.Join(handlers.FindPagesDir(), "*.html"))
	if err != nil {
		return false
	}
	if len(matches) == 0 {
		return false
	}
	if _, err := os.Stat(matches[0]); err != nil {
		return false
	}
	return true
}

// Close closes all application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
