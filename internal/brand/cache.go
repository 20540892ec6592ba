package brand

import (
	"context"
	"time"

	"github.com/foliolabs/folio-portal/internal/common"
	"github.com/foliolabs/folio-portal/internal/models"
)

// Cache wraps the persistent store with TTL semantics. Expiry is lazy: an
// entry past its TTL is evicted when it is next looked up.
type Cache struct {
	logger *common.Logger
	store  *Store
	ttl    time.Duration
}

func NewCache(logger *common.Logger, store *Store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = common.FreshnessBrand
	}
	return &Cache{logger: logger, store: store, ttl: ttl}
}

// Lookup returns the cached brand for a symbol if it is still fresh.
// Expired entries are deleted on the way out, and corrupt entries are
// treated as misses.
func (c *Cache) Lookup(ctx context.Context, symbol string) (*models.BrandInfo, bool) {
	entry, err := c.store.Get(ctx, symbol)
	if err != nil {
		if !IsNotFound(err) {
			c.logger.Warn().Str("symbol", symbol).Str("error", err.Error()).Msg("dropping unreadable brand cache entry")
			_ = c.store.Delete(ctx, symbol)
		}
		return nil, false
	}

	if !common.IsFresh(entry.FetchedAt(), c.ttl) {
		c.logger.Debug().Str("symbol", symbol).Msg("evicting expired brand cache entry")
		if err := c.store.Delete(ctx, symbol); err != nil {
			c.logger.Warn().Str("symbol", symbol).Str("error", err.Error()).Msg("failed to evict brand cache entry")
		}
		return nil, false
	}

	info := entry.Data
	return &info, true
}

// Save persists a freshly fetched brand with the current timestamp.
func (c *Cache) Save(ctx context.Context, symbol string, info models.BrandInfo) error {
	return c.store.Put(ctx, symbol, CachedBrand{
		Data:      info,
		Timestamp: time.Now().UnixMilli(),
	})
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries int       `json:"entries"`
	Fresh   int       `json:"fresh"`
	Expired int       `json:"expired"`
	Oldest  time.Time `json:"oldest,omitzero"`
}

// Stats reports entry counts without evicting anything.
func (c *Cache) Stats(ctx context.Context) (Stats, error) {
	entries, err := c.store.All(ctx)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, entry := range entries {
		stats.Entries++
		if common.IsFresh(entry.FetchedAt(), c.ttl) {
			stats.Fresh++
		} else {
			stats.Expired++
		}
		fetched := entry.FetchedAt()
		if stats.Oldest.IsZero() || fetched.Before(stats.Oldest) {
			stats.Oldest = fetched
		}
	}
	return stats, nil
}
