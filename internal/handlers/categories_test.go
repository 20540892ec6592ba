package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/foliolabs/folio-portal/internal/common"
	"github.com/foliolabs/folio-portal/internal/portfolio"
	"github.com/foliolabs/folio-portal/internal/storage"
)

func newTestCategoriesHandler(t *testing.T) (*CategoriesHandler, *portfolio.Store) {
	t.Helper()
	logger := common.NewSilentLogger()
	store := portfolio.NewStore(storage.NewMemoryKV(), logger)
	return NewCategoriesHandler(logger, store), store
}

func TestCategoriesGetEmpty(t *testing.T) {
	h, _ := newTestCategoriesHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Categories map[string]string `json:"categories"`
		Labels     []string          `json:"labels"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(resp.Categories) != 0 {
		t.Errorf("expected empty categories, got %v", resp.Categories)
	}
	if len(resp.Labels) != 4 {
		t.Errorf("expected 4 labels, got %v", resp.Labels)
	}
}

func TestCategoriesPutAndGet(t *testing.T) {
	h, store := newTestCategoriesHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/api/categories",
		strings.NewReader(`{"AAPL":"Staple","NVDA":"High Growth"}`))
	rec := httptest.NewRecorder()
	h.Put(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	saved := store.LoadCategories(context.Background())
	if saved["AAPL"] != "Staple" || saved["NVDA"] != "High Growth" {
		t.Errorf("unexpected persisted categories: %v", saved)
	}
}

func TestCategoriesPutRejectsUnknownLabel(t *testing.T) {
	h, store := newTestCategoriesHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/api/categories",
		strings.NewReader(`{"AAPL":"Meme Stocks"}`))
	rec := httptest.NewRecorder()
	h.Put(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown label, got %d", rec.Code)
	}
	if saved := store.LoadCategories(context.Background()); len(saved) != 0 {
		t.Errorf("rejected update must not persist, got %v", saved)
	}
}

func TestCategoriesPutInvalidJSON(t *testing.T) {
	h, _ := newTestCategoriesHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/api/categories", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	h.Put(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
