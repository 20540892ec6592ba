package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/foliolabs/folio-portal/internal/common"
	"github.com/foliolabs/folio-portal/internal/models"
	"github.com/foliolabs/folio-portal/internal/portfolio"
	"github.com/foliolabs/folio-portal/internal/spreadsheet"
)

// maxUploadBytes caps the spreadsheet upload size.
const maxUploadBytes = 10 << 20

// PortfolioHandler handles portfolio state requests: upload, read, manual
// position edits, refresh, and clear.
type PortfolioHandler struct {
	logger  *common.Logger
	service *portfolio.Service
}

// NewPortfolioHandler creates a new portfolio handler.
func NewPortfolioHandler(logger *common.Logger, service *portfolio.Service) *PortfolioHandler {
	return &PortfolioHandler{logger: logger, service: service}
}

// Get handles GET /api/portfolio.
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.service.Snapshot())
}

// Upload handles POST /api/portfolio/upload. The spreadsheet arrives as a
// multipart form file; a file that cannot be parsed is rejected with 400 and
// leaves the previously loaded portfolio untouched.
func (h *PortfolioHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	if len(data) > maxUploadBytes {
		WriteError(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	rows, err := spreadsheet.Extract(data)
	if err != nil {
		h.logger.Warn().Str("file", header.Filename).Str("error", err.Error()).Msg("spreadsheet rejected")
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.service.SetRows(r.Context(), rows, header.Filename)
	h.logger.Info().Str("file", header.Filename).Int("rows", len(rows)).Msg("portfolio uploaded")

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"fileName": header.Filename,
		"rows":     len(rows),
	})
}

// AddPosition handles POST /api/portfolio/positions.
func (h *PortfolioHandler) AddPosition(w http.ResponseWriter, r *http.Request) {
	var row models.PositionRow
	if err := DecodeJSON(r, &row); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	row.Symbol = strings.TrimSpace(row.Symbol)

	if err := h.service.AddPosition(r.Context(), row); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]string{
		"status": "ok",
		"symbol": row.Symbol,
	})
}

// DeleteSymbol handles DELETE /api/portfolio/positions/{symbol}.
func (h *PortfolioHandler) DeleteSymbol(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimPrefix(r.URL.Path, "/api/portfolio/positions/")
	if symbol == "" || strings.Contains(symbol, "/") {
		WriteError(w, http.StatusBadRequest, "missing symbol")
		return
	}

	removed := h.service.DeleteSymbol(r.Context(), symbol)
	if removed == 0 {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("no positions for symbol %s", symbol))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"symbol":  symbol,
		"removed": removed,
	})
}

// Refresh handles POST /api/portfolio/refresh. The enrichment batch runs in
// the background; the response only acknowledges the trigger.
func (h *PortfolioHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.service.TriggerRefresh()
	WriteJSON(w, http.StatusAccepted, map[string]string{
		"status": "refreshing",
	})
}

// Clear handles DELETE /api/portfolio.
func (h *PortfolioHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.service.Clear(r.Context())
	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
