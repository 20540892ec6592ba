// Package brand caches and serves brand metadata. Brand records change
// rarely and the upstream quota is tight, so successful fetches are
// persisted for 30 days and refetched one at a time with pacing.
package brand

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/foliolabs/folio-portal/internal/interfaces"
	"github.com/foliolabs/folio-portal/internal/models"
)

const keyPrefix = "brand:"

// CachedBrand is the persisted cache entry for one symbol. Timestamp is
// unix milliseconds at the time of the upstream fetch.
type CachedBrand struct {
	Data      models.BrandInfo `json:"data"`
	Timestamp int64            `json:"timestamp"`
}

// FetchedAt returns the entry's fetch time.
func (c CachedBrand) FetchedAt() time.Time {
	return time.UnixMilli(c.Timestamp)
}

// Store persists brand cache entries in the key-value store, one entry per
// symbol under "brand:<symbol>".
type Store struct {
	kv interfaces.KeyValueStorage
}

func NewStore(kv interfaces.KeyValueStorage) *Store {
	return &Store{kv: kv}
}

// Get loads the cache entry for a symbol. A missing key returns
// interfaces.ErrNotFound; a corrupt entry is an error the caller can treat
// as a miss.
func (s *Store) Get(ctx context.Context, symbol string) (CachedBrand, error) {
	raw, err := s.kv.Get(ctx, keyPrefix+symbol)
	if err != nil {
		return CachedBrand{}, err
	}

	var entry CachedBrand
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return CachedBrand{}, fmt.Errorf("corrupt brand cache entry for %s: %w", symbol, err)
	}
	return entry, nil
}

// Put persists a cache entry for a symbol.
func (s *Store) Put(ctx context.Context, symbol string, entry CachedBrand) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keyPrefix+symbol, string(raw))
}

// Delete removes the entry for a symbol. Deleting a missing entry is not
// an error.
func (s *Store) Delete(ctx context.Context, symbol string) error {
	return s.kv.Delete(ctx, keyPrefix+symbol)
}

// All returns every persisted entry keyed by symbol. Corrupt entries are
// skipped.
func (s *Store) All(ctx context.Context) (map[string]CachedBrand, error) {
	raw, err := s.kv.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]CachedBrand)
	for key, value := range raw {
		if !strings.HasPrefix(key, keyPrefix) {
			continue
		}
		var entry CachedBrand
		if err := json.Unmarshal([]byte(value), &entry); err != nil {
			continue
		}
		entries[strings.TrimPrefix(key, keyPrefix)] = entry
	}
	return entries, nil
}

// IsNotFound reports whether err means "no cache entry".
func IsNotFound(err error) bool {
	return errors.Is(err, interfaces.ErrNotFound)
}
