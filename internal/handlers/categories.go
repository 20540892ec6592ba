package handlers

import (
	"fmt"
	"net/http"

	"github.com/foliolabs/folio-portal/internal/common"
	"github.com/foliolabs/folio-portal/internal/models"
	"github.com/foliolabs/folio-portal/internal/portfolio"
)

// CategoriesHandler handles the user-assigned symbol categories.
type CategoriesHandler struct {
	logger *common.Logger
	store  *portfolio.Store
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(logger *common.Logger, store *portfolio.Store) *CategoriesHandler {
	return &CategoriesHandler{logger: logger, store: store}
}

// Get handles GET /api/categories.
func (h *CategoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": h.store.LoadCategories(r.Context()),
		"labels":     models.CategoryLabels,
	})
}

// Put handles PUT /api/categories. The body replaces the whole mapping;
// every value must be one of the known labels.
func (h *CategoriesHandler) Put(w http.ResponseWriter, r *http.Request) {
	var categories map[string]string
	if err := DecodeJSON(r, &categories); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	for symbol, label := range categories {
		if !validCategory(label) {
			WriteError(w, http.StatusBadRequest, fmt.Sprintf("unknown category %q for symbol %s", label, symbol))
			return
		}
	}

	if err := h.store.SaveCategories(r.Context(), categories); err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("failed to persist categories")
		WriteError(w, http.StatusInternalServerError, "failed to save categories")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func validCategory(label string) bool {
	for _, known := range models.CategoryLabels {
		if label == known {
			return true
		}
	}
	return false
}
