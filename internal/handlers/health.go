// Package handlers implements the HTTP API surface of folio-portal.
package handlers

import (
	"errors"
	"net/http"

	"github.com/foliolabs/folio-portal/internal/common"
	"github.com/foliolabs/folio-portal/internal/interfaces"
)

// HealthHandler reports service liveness and storage reachability.
type HealthHandler struct {
	logger  *common.Logger
	storage interfaces.StorageManager
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(logger *common.Logger, storage interfaces.StorageManager) *HealthHandler {
	return &HealthHandler{logger: logger, storage: storage}
}

// ServeHTTP handles GET /api/health. Storage is probed with a read of a
// key that may not exist; only a real I/O failure degrades the status.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	overall := "ok"
	storageStatus := "ok"
	status := http.StatusOK
	if h.storage != nil {
		_, err := h.storage.KeyValueStorage().Get(r.Context(), "health:probe")
		if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
			h.logger.Warn().Str("error", err.Error()).Msg("storage health probe failed")
			overall = "degraded"
			storageStatus = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	WriteJSON(w, status, map[string]string{
		"status":  overall,
		"storage": storageStatus,
	})
}
