package brand

import (
	"context"
	"errors"
	"time"

	"github.com/foliolabs/folio-portal/internal/client"
	"github.com/foliolabs/folio-portal/internal/common"
	"github.com/foliolabs/folio-portal/internal/models"
)

// Client fetches brand metadata from the upstream provider.
type Client interface {
	Brand(ctx context.Context, symbol string) (models.BrandInfo, error)
}

// Service resolves brand metadata for symbol batches. Unlike quotes, brand
// lookups run strictly sequentially: the upstream quota is small, so network
// fetches within a batch are spaced out by a Pacer. Cache hits cost nothing
// and never touch the pacer.
type Service struct {
	logger *common.Logger
	cache  *Cache
	client Client

	newLimiter func() Limiter // swapped out in tests
}

func NewService(logger *common.Logger, cache *Cache, client Client, pace time.Duration) *Service {
	return &Service{
		logger:     logger,
		cache:      cache,
		client:     client,
		newLimiter: func() Limiter { return NewPacer(pace) },
	}
}

// Fetch resolves brand metadata for the given symbols, serving from cache
// where possible. Symbols the upstream does not know, or that fail, are
// absent from the result.
func (s *Service) Fetch(ctx context.Context, symbols []string) map[string]models.BrandInfo {
	results := make(map[string]models.BrandInfo, len(symbols))

	limiter := s.newLimiter()
	for _, symbol := range symbols {
		if info, ok := s.cache.Lookup(ctx, symbol); ok {
			results[symbol] = *info
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			s.logger.Warn().Str("error", err.Error()).Msg("brand batch aborted")
			break
		}

		info, err := s.client.Brand(ctx, symbol)
		if err != nil {
			if errors.Is(err, client.ErrBrandNotFound) {
				s.logger.Debug().Str("symbol", symbol).Msg("no brand record upstream")
			} else {
				s.logger.Warn().Str("symbol", symbol).Str("error", err.Error()).Msg("brand fetch failed")
			}
			continue
		}

		if err := s.cache.Save(ctx, symbol, info); err != nil {
			s.logger.Warn().Str("symbol", symbol).Str("error", err.Error()).Msg("failed to cache brand")
		}
		results[symbol] = info
	}

	return results
}
