package cache

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"
)

func TestResponseCache_GetSet(t *testing.T) {
	c := New(5*time.Second, 100)

	resp := &CachedResponse{
		StatusCode:  http.StatusOK,
		ContentType: "application/json",
		Body:        []byte(`{"c":120.5}`),
	}

	key := MakeKey("quote", "AAPL")
	c.Set(key, resp)

	got, ok := c.Get(key)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", got.StatusCode)
	}
	if string(got.Body) != `{"c":120.5}` {
		t.Errorf("unexpected body: %s", got.Body)
	}
	if got.ContentType != "application/json" {
		t.Errorf("unexpected content-type: %s", got.ContentType)
	}
}

func TestResponseCache_Miss(t *testing.T) {
	c := New(5*time.Second, 100)

	if _, ok := c.Get("nonexistent"); ok {
		t.Error("expected cache miss for nonexistent key")
	}
}

func TestResponseCache_TTLExpiration(t *testing.T) {
	c := New(50*time.Millisecond, 100)

	resp := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("data")}

	key := MakeKey("quote", "AAPL")
	c.Set(key, resp)

	// Should be found immediately
	if _, ok := c.Get(key); !ok {
		t.Fatal("expected cache hit before expiry")
	}

	// Wait for expiry
	time.Sleep(60 * time.Millisecond)

	if _, ok := c.Get(key); ok {
		t.Error("expected cache miss after TTL expiration")
	}
	if c.Len() != 0 {
		t.Errorf("expected expired entry removed lazily, len=%d", c.Len())
	}
}

func TestResponseCache_SymbolsAreIsolated(t *testing.T) {
	c := New(5*time.Second, 100)

	c.Set(MakeKey("quote", "AAPL"), &CachedResponse{StatusCode: http.StatusOK, Body: []byte(`{"c":120}`)})
	c.Set(MakeKey("quote", "MSFT"), &CachedResponse{StatusCode: http.StatusOK, Body: []byte(`{"c":60}`)})

	got, ok := c.Get(MakeKey("quote", "AAPL"))
	if !ok || string(got.Body) != `{"c":120}` {
		t.Errorf("AAPL entry wrong: %v %v", got, ok)
	}
	got, ok = c.Get(MakeKey("quote", "MSFT"))
	if !ok || string(got.Body) != `{"c":60}` {
		t.Errorf("MSFT entry wrong: %v %v", got, ok)
	}
}

func TestResponseCache_InvalidatePrefix(t *testing.T) {
	c := New(5*time.Second, 100)

	resp := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("data")}

	c.Set(MakeKey("quote", "AAPL"), resp)
	c.Set(MakeKey("quote", "MSFT"), resp)
	c.Set(MakeKey("brand", "AAPL"), resp)

	c.InvalidatePrefix("quote:")

	if _, ok := c.Get(MakeKey("quote", "AAPL")); ok {
		t.Error("expected quote:AAPL to be invalidated")
	}
	if _, ok := c.Get(MakeKey("quote", "MSFT")); ok {
		t.Error("expected quote:MSFT to be invalidated")
	}
	if _, ok := c.Get(MakeKey("brand", "AAPL")); !ok {
		t.Error("expected brand:AAPL to remain in cache")
	}
}

func TestResponseCache_MaxEntries(t *testing.T) {
	c := New(5*time.Second, 3)

	resp := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("data")}

	c.Set("key1", resp)
	c.Set("key2", resp)
	c.Set("key3", resp)

	for _, k := range []string{"key1", "key2", "key3"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("expected %s to be in cache", k)
		}
	}

	// Adding a 4th should evict the oldest (key1)
	c.Set("key4", resp)

	if _, ok := c.Get("key1"); ok {
		t.Error("expected key1 to be evicted (oldest entry)")
	}
	if _, ok := c.Get("key4"); !ok {
		t.Error("expected key4 to be in cache")
	}
}

func TestResponseCache_OverwriteExistingKey(t *testing.T) {
	c := New(5*time.Second, 100)

	c.Set("key", &CachedResponse{StatusCode: http.StatusOK, Body: []byte("v1")})
	c.Set("key", &CachedResponse{StatusCode: http.StatusOK, Body: []byte("v2")})

	got, ok := c.Get("key")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(got.Body) != "v2" {
		t.Errorf("expected updated body v2, got %s", got.Body)
	}
}

func TestMakeKey(t *testing.T) {
	if key := MakeKey("quote", "AAPL"); key != "quote:AAPL" {
		t.Errorf("expected key quote:AAPL, got %q", key)
	}
}

func TestResponseCache_ThreadSafety(t *testing.T) {
	c := New(5*time.Second, 1000)

	resp := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("data")}

	var wg sync.WaitGroup

	// Concurrent writes
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set(MakeKey("quote", fmt.Sprintf("SYM%d", n%26)), resp)
		}(i)
	}

	// Concurrent reads
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Get(MakeKey("quote", fmt.Sprintf("SYM%d", n%26)))
		}(i)
	}

	// Concurrent invalidations
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.InvalidatePrefix("quote:")
		}()
	}

	wg.Wait()
	// If we get here without a race condition panic, the test passes
}

func TestResponseCache_EvictionUnderLoad(t *testing.T) {
	maxEntries := 50
	c := New(5*time.Second, maxEntries)

	resp := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("x")}

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set(MakeKey("quote", fmt.Sprintf("SYM%d", n)), resp)
		}(i)
	}
	wg.Wait()

	if count := c.Len(); count > maxEntries {
		t.Errorf("cache exceeded maxEntries: got %d, max %d", count, maxEntries)
	}
}

func TestResponseCache_ConcurrentGetExpiredAndSet(t *testing.T) {
	c := New(1*time.Millisecond, 1000)

	resp := &CachedResponse{StatusCode: http.StatusOK, Body: []byte("data")}

	for i := 0; i < 100; i++ {
		c.Set(MakeKey("quote", fmt.Sprintf("SYM%d", i)), resp)
	}

	// Let them expire
	time.Sleep(5 * time.Millisecond)

	var wg sync.WaitGroup
	// Concurrent Gets (which trigger lazy expiry deletion) + Sets
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			c.Get(MakeKey("quote", fmt.Sprintf("SYM%d", n)))
		}(i)
		go func(n int) {
			defer wg.Done()
			c.Set(MakeKey("brand", fmt.Sprintf("SYM%d", n)), resp)
		}(i)
	}
	wg.Wait()
	// If we get here without a race panic, concurrency is safe
}
