package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI page routes (HTML templates)
	if s.app.PageHandler != nil {
		mux.HandleFunc("/", s.app.PageHandler.ServePage("index.html", "portfolio"))
		mux.HandleFunc("/static/", s.app.PageHandler.StaticFileHandler)
	}

	// MCP endpoint (JSON-RPC over HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	// Portfolio state
	mux.HandleFunc("/api/portfolio", func(w http.ResponseWriter, r *http.Request) {
		RouteByMethod(w, r, MethodRouter{
			"GET":    s.app.PortfolioHandler.Get,
			"DELETE": s.app.PortfolioHandler.Clear,
		})
	})
	mux.HandleFunc("/api/portfolio/upload", func(w http.ResponseWriter, r *http.Request) {
		RouteByMethod(w, r, MethodRouter{
			"POST": s.app.PortfolioHandler.Upload,
		})
	})
	mux.HandleFunc("/api/portfolio/refresh", func(w http.ResponseWriter, r *http.Request) {
		RouteByMethod(w, r, MethodRouter{
			"POST": s.app.PortfolioHandler.Refresh,
		})
	})
	mux.HandleFunc("/api/portfolio/positions", func(w http.ResponseWriter, r *http.Request) {
		RouteByMethod(w, r, MethodRouter{
			"POST": s.app.PortfolioHandler.AddPosition,
		})
	})
	mux.HandleFunc("/api/portfolio/positions/", func(w http.ResponseWriter, r *http.Request) {
		RouteByMethod(w, r, MethodRouter{
			"DELETE": s.app.PortfolioHandler.DeleteSymbol,
		})
	})

	// Symbol categories
	mux.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		RouteByMethod(w, r, MethodRouter{
			"GET": s.app.CategoriesHandler.Get,
			"PUT": s.app.CategoriesHandler.Put,
		})
	})

	// Upstream proxies
	mux.HandleFunc("/api/stock-quote", s.app.QuoteHandler.ServeHTTP)
	mux.HandleFunc("/api/brandfetch/", s.app.BrandHandler.ServeHTTP)

	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, "/api/") {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
