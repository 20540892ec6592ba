package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foliolabs/folio-portal/internal/config"
)

func newFinnhubClient(baseURL, apiKey string) *FinnhubClient {
	return NewFinnhubClient(config.FinnhubConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Timeout: "5s",
	})
}

func TestQuote_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quote" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", got)
		}
		if got := r.URL.Query().Get("token"); got != "test-key" {
			t.Errorf("expected token test-key, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"c":120.5,"d":2.5,"dp":2.12,"h":121,"l":118,"o":119,"pc":118,"t":1700000000}`))
	}))
	defer srv.Close()

	c := newFinnhubClient(srv.URL, "test-key")
	quote, err := c.Quote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Current != 120.5 {
		t.Errorf("expected current price 120.5, got %v", quote.Current)
	}
	if quote.ChangePercent != 2.12 {
		t.Errorf("expected change percent 2.12, got %v", quote.ChangePercent)
	}
	if quote.PreviousClose != 118 {
		t.Errorf("expected previous close 118, got %v", quote.PreviousClose)
	}
}

func TestQuote_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limit"}`))
	}))
	defer srv.Close()

	c := newFinnhubClient(srv.URL, "test-key")
	if _, err := c.Quote(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestQuote_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := newFinnhubClient(srv.URL, "test-key")
	if _, err := c.Quote(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestQuote_NoAPIKey(t *testing.T) {
	c := newFinnhubClient("http://unused.invalid", "")
	_, err := c.Quote(context.Background(), "AAPL")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
	if c.HasAPIKey() {
		t.Error("expected HasAPIKey false")
	}
}
