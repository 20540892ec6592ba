package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/foliolabs/folio-portal/internal/brand"
	"github.com/foliolabs/folio-portal/internal/cache"
	"github.com/foliolabs/folio-portal/internal/client"
	"github.com/foliolabs/folio-portal/internal/common"
)

// QuoteHandler proxies quote lookups to Finnhub with a short-lived response
// cache in front, so a browser polling the same symbol does not burn
// upstream quota.
type QuoteHandler struct {
	logger *common.Logger
	client *client.FinnhubClient
	cache  *cache.ResponseCache
}

// NewQuoteHandler creates a new quote proxy handler.
func NewQuoteHandler(logger *common.Logger, finnhub *client.FinnhubClient, respCache *cache.ResponseCache) *QuoteHandler {
	return &QuoteHandler{logger: logger, client: finnhub, cache: respCache}
}

// ServeHTTP handles GET /api/stock-quote?symbol=XXX.
func (h *QuoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	symbol := strings.TrimSpace(r.URL.Query().Get("symbol"))
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol parameter is required")
		return
	}

	key := cache.MakeKey("quote", symbol)
	if cached, ok := h.cache.Get(key); ok {
		w.Header().Set("Content-Type", cached.ContentType)
		w.WriteHeader(cached.StatusCode)
		w.Write(cached.Body)
		return
	}

	quote, err := h.client.Quote(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, client.ErrNoAPIKey) {
			WriteError(w, http.StatusInternalServerError, "quote API key not configured")
			return
		}
		h.logger.Warn().Str("symbol", symbol).Str("error", err.Error()).Msg("quote proxy failed")
		WriteError(w, http.StatusBadGateway, "failed to fetch quote")
		return
	}

	// Raw Finnhub shape, unconverted. Consumers read c/d/dp/h/l/o/pc/t.
	body, err := json.Marshal(quote)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to encode quote")
		return
	}

	h.cache.Set(key, &cache.CachedResponse{
		StatusCode:  http.StatusOK,
		ContentType: "application/json",
		Body:        body,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// BrandHandler proxies brand lookups to Brandfetch through the persistent
// 30-day brand cache, the same one enrichment uses.
type BrandHandler struct {
	logger *common.Logger
	client *client.BrandfetchClient
	cache  *brand.Cache
}

// NewBrandHandler creates a new brand proxy handler.
func NewBrandHandler(logger *common.Logger, brandfetch *client.BrandfetchClient, brandCache *brand.Cache) *BrandHandler {
	return &BrandHandler{logger: logger, client: brandfetch, cache: brandCache}
}

// ServeHTTP handles GET /api/brandfetch/{symbol}.
func (h *BrandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	symbol := strings.TrimPrefix(r.URL.Path, "/api/brandfetch/")
	if symbol == "" || strings.Contains(symbol, "/") {
		WriteError(w, http.StatusBadRequest, "missing symbol")
		return
	}

	if info, ok := h.cache.Lookup(r.Context(), symbol); ok {
		WriteJSON(w, http.StatusOK, info)
		return
	}

	info, err := h.client.Brand(r.Context(), symbol)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrBrandNotFound):
			WriteError(w, http.StatusNotFound, "no brand record for "+symbol)
		case errors.Is(err, client.ErrNoAPIKey):
			WriteError(w, http.StatusInternalServerError, "brand API key not configured")
		default:
			h.logger.Warn().Str("symbol", symbol).Str("error", err.Error()).Msg("brand proxy failed")
			WriteError(w, http.StatusBadGateway, "failed to fetch brand")
		}
		return
	}

	if err := h.cache.Save(r.Context(), symbol, info); err != nil {
		h.logger.Warn().Str("symbol", symbol).Str("error", err.Error()).Msg("failed to cache brand")
	}

	WriteJSON(w, http.StatusOK, info)
}
