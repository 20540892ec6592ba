package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foliolabs/folio-portal/internal/config"
)

func newBrandfetchClient(baseURL, apiKey string) *BrandfetchClient {
	return NewBrandfetchClient(config.BrandfetchConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Timeout: "5s",
	})
}

func TestBrand_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/brands/AAPL" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"name": "Apple",
			"domain": "apple.com",
			"colors": [{"hex": "#000000", "type": "dark"}, {"hex": "#0071E3", "type": "accent"}]
		}`))
	}))
	defer srv.Close()

	c := newBrandfetchClient(srv.URL, "test-key")
	brand, err := c.Brand(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if brand.Name != "Apple" {
		t.Errorf("expected name Apple, got %s", brand.Name)
	}
	if brand.AccentColor() != "#0071E3" {
		t.Errorf("expected accent #0071E3, got %s", brand.AccentColor())
	}
}

func TestBrand_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"brand not found"}`))
	}))
	defer srv.Close()

	c := newBrandfetchClient(srv.URL, "test-key")
	_, err := c.Brand(context.Background(), "UNKNOWN")
	if !errors.Is(err, ErrBrandNotFound) {
		t.Fatalf("expected ErrBrandNotFound, got %v", err)
	}
}

func TestBrand_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newBrandfetchClient(srv.URL, "test-key")
	_, err := c.Brand(context.Background(), "AAPL")
	if err == nil || errors.Is(err, ErrBrandNotFound) {
		t.Fatalf("expected hard error for 500, got %v", err)
	}
}

func TestBrand_NoAPIKey(t *testing.T) {
	c := newBrandfetchClient("http://unused.invalid", "")
	_, err := c.Brand(context.Background(), "AAPL")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}
